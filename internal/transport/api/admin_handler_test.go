package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/fsdevblog/etf-ledger/internal/domain"
	"github.com/fsdevblog/etf-ledger/internal/logger"
	"github.com/fsdevblog/etf-ledger/internal/transport/api/mocks"
	"github.com/fsdevblog/etf-ledger/internal/transport/api/testutils"
)

const testAdminToken = "operator-token"

type AdminHandlerTestSuite struct {
	suite.Suite
	router           *gin.Engine
	mockAdminService *mocks.MockAdminServicer
}

func TestAdminHandlerSuite(t *testing.T) {
	suite.Run(t, new(AdminHandlerTestSuite))
}

func (s *AdminHandlerTestSuite) SetupTest() {
	mockCtrl := gomock.NewController(s.T())
	defer mockCtrl.Finish()

	s.mockAdminService = mocks.NewMockAdminServicer(mockCtrl)

	s.router = New(RouterArgs{
		Logger:       logger.New(os.Stdout),
		AdminService: s.mockAdminService,
		JWTSecretKey: []byte("super secret key"),
		AdminToken:   testAdminToken,
	})
}

func (s *AdminHandlerTestSuite) TestAddBalance() {
	s.mockAdminService.EXPECT().
		CreditBalance(gomock.Any(), "alice", decimalEq(decimal.NewFromInt(100))).
		Return(int64(1), nil)
	s.mockAdminService.EXPECT().
		CreditBalance(gomock.Any(), "ghost", decimalEq(decimal.NewFromInt(100))).
		Return(int64(0), domain.ErrRecordNotFound)
	s.mockAdminService.EXPECT().
		CreditBalance(gomock.Any(), "alice", decimalEq(decimal.NewFromInt(-5))).
		Return(int64(0), domain.ErrNonPositiveAmount)

	cases := []struct {
		name       string
		payload    string
		adminToken string
		wantStatus int
	}{
		{
			name:       "ok",
			payload:    `{"username":"alice","amount":100}`,
			adminToken: testAdminToken,
			wantStatus: http.StatusOK,
		}, {
			name:       "unknown username",
			payload:    `{"username":"ghost","amount":100}`,
			adminToken: testAdminToken,
			wantStatus: http.StatusNotFound,
		}, {
			name:       "negative amount",
			payload:    `{"username":"alice","amount":-5}`,
			adminToken: testAdminToken,
			wantStatus: http.StatusBadRequest,
		}, {
			name:       "no admin token",
			payload:    `{"username":"alice","amount":100}`,
			wantStatus: http.StatusUnauthorized,
		}, {
			name:       "wrong admin token",
			payload:    `{"username":"alice","amount":100}`,
			adminToken: "nope",
			wantStatus: http.StatusForbidden,
		}, {
			name:       "bad request",
			payload:    `{"amount":100}`,
			adminToken: testAdminToken,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			args := testutils.RequestArgs{
				Router: s.router,
				Method: http.MethodPost,
				URL:    RouteGroup + AdminRouteGroup + AdminAddBalanceRoute,
				Body:   bytes.NewReader([]byte(t.payload)),
			}
			reqOpts := []func(*testutils.RequestOptions){
				testutils.WithHeader("Content-Type", "application/json"),
			}
			if t.adminToken != "" {
				reqOpts = append(reqOpts, testutils.WithHeader("X-Admin-Token", t.adminToken))
			}
			res, err := testutils.MakeRequest(args, reqOpts...)
			s.Require().NoError(err)
			defer func() {
				closeErr := res.Body.Close()
				s.Require().NoError(closeErr)
			}()

			s.Equal(t.wantStatus, res.StatusCode)

			if t.wantStatus == http.StatusOK {
				var body struct {
					Message string `json:"message"`
					Changes int64  `json:"changes"`
				}
				s.Require().NoError(json.NewDecoder(res.Body).Decode(&body))
				s.Equal(int64(1), body.Changes)
			}
		})
	}
}

func (s *AdminHandlerTestSuite) TestCreateInvite() {
	inviteCode := domain.InviteCode{ID: 1, Code: "ETF-V-XYZ789"}

	s.mockAdminService.EXPECT().CreateInvite(gomock.Any()).Return(&inviteCode, nil)

	cases := []struct {
		name       string
		adminToken string
		wantStatus int
	}{
		{name: "ok", adminToken: testAdminToken, wantStatus: http.StatusOK},
		{name: "no admin token", wantStatus: http.StatusUnauthorized},
		{name: "wrong admin token", adminToken: "nope", wantStatus: http.StatusForbidden},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			args := testutils.RequestArgs{
				Router: s.router,
				Method: http.MethodPost,
				URL:    RouteGroup + AdminRouteGroup + AdminCreateInviteRoute,
			}
			var reqOpts []func(*testutils.RequestOptions)
			if t.adminToken != "" {
				reqOpts = append(reqOpts, testutils.WithHeader("X-Admin-Token", t.adminToken))
			}
			res, err := testutils.MakeRequest(args, reqOpts...)
			s.Require().NoError(err)
			defer func() {
				closeErr := res.Body.Close()
				s.Require().NoError(closeErr)
			}()

			s.Equal(t.wantStatus, res.StatusCode)

			if t.wantStatus == http.StatusOK {
				var body struct {
					Message    string `json:"message"`
					InviteCode string `json:"inviteCode"`
				}
				s.Require().NoError(json.NewDecoder(res.Body).Decode(&body))
				s.Equal(inviteCode.Code, body.InviteCode)
			}
		})
	}
}
