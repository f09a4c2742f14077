package service

import (
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/fsdevblog/etf-ledger/internal/domain"
	"github.com/fsdevblog/etf-ledger/internal/repository/repoargs"
	"github.com/fsdevblog/etf-ledger/internal/service/codes"
	"github.com/fsdevblog/etf-ledger/internal/service/mocks"
	"github.com/fsdevblog/etf-ledger/pkg/uow"
	uowmocks "github.com/fsdevblog/etf-ledger/pkg/uow/mocks"
)

type AdminServiceTestSuite struct {
	suite.Suite
	mockCtrl           *gomock.Controller
	mockUOW            *uowmocks.MockUOW
	mockUserRepo       *mocks.MockUserRepository
	mockInviteCodeRepo *mocks.MockInviteCodeRepository
	mockCodes          *mocks.MockInviteCodeGenerator
	service            *AdminService
}

func TestAdminServiceSuite(t *testing.T) {
	suite.Run(t, new(AdminServiceTestSuite))
}

func (s *AdminServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockUOW = uowmocks.NewMockUOW(s.mockCtrl)
	s.mockUserRepo = mocks.NewMockUserRepository(s.mockCtrl)
	s.mockInviteCodeRepo = mocks.NewMockInviteCodeRepository(s.mockCtrl)
	s.mockCodes = mocks.NewMockInviteCodeGenerator(s.mockCtrl)

	s.mockUOW.EXPECT().
		GetRepository(uow.RepositoryName(repoargs.UserRepoName)).
		Return(s.mockUserRepo, nil).AnyTimes()
	s.mockUOW.EXPECT().
		GetRepository(uow.RepositoryName(repoargs.InviteCodeRepoName)).
		Return(s.mockInviteCodeRepo, nil).AnyTimes()

	var err error
	s.service, err = NewAdminService(s.mockUOW, s.mockCodes)
	s.Require().NoError(err)
}

func (s *AdminServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *AdminServiceTestSuite) TestCreditBalance() {
	amount := decimal.NewFromInt(100)

	s.mockUserRepo.EXPECT().
		CreditBalanceByUsername(gomock.Any(), "alice", amount).
		Return(int64(1), nil)
	s.mockUserRepo.EXPECT().
		CreditBalanceByUsername(gomock.Any(), "ghost", amount).
		Return(int64(0), domain.ErrRecordNotFound)

	cases := []struct {
		name        string
		username    string
		amount      decimal.Decimal
		wantChanges int64
		wantErr     error
	}{
		{name: "ok", username: "alice", amount: amount, wantChanges: 1},
		{name: "unknown username", username: "ghost", amount: amount, wantErr: domain.ErrRecordNotFound},
		{name: "zero amount", username: "alice", amount: decimal.Zero, wantErr: domain.ErrNonPositiveAmount},
		{
			name:     "negative amount",
			username: "alice",
			amount:   decimal.NewFromInt(-5),
			wantErr:  domain.ErrNonPositiveAmount,
		},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			changes, err := s.service.CreditBalance(s.T().Context(), t.username, t.amount)
			if t.wantErr != nil {
				s.Require().ErrorIs(err, t.wantErr)
				return
			}
			s.Require().NoError(err)
			s.Equal(t.wantChanges, changes)
		})
	}
}

func (s *AdminServiceTestSuite) TestCreateInvite() {
	code := codes.Prefix + "XYZ789"

	s.mockCodes.EXPECT().Generate().Return(code, nil)
	// Операторский код выпускается без владельца.
	s.mockInviteCodeRepo.EXPECT().
		Create(gomock.Any(), gomock.Eq(repoargs.InviteCodeCreate{Code: code})).
		Return(&domain.InviteCode{ID: 1, Code: code}, nil)

	inviteCode, err := s.service.CreateInvite(s.T().Context())
	s.Require().NoError(err)
	s.Equal(code, inviteCode.Code)
	s.Nil(inviteCode.CreatedBy)
}

func (s *AdminServiceTestSuite) TestCreateInvite_RetriesOnCollision() {
	takenCode := codes.Prefix + "TAKEN1"
	freeCode := codes.Prefix + "FREE22"

	gomock.InOrder(
		s.mockCodes.EXPECT().Generate().Return(takenCode, nil),
		s.mockCodes.EXPECT().Generate().Return(freeCode, nil),
	)
	s.mockInviteCodeRepo.EXPECT().
		Create(gomock.Any(), gomock.Eq(repoargs.InviteCodeCreate{Code: takenCode})).
		Return(nil, domain.ErrDuplicateKey)
	s.mockInviteCodeRepo.EXPECT().
		Create(gomock.Any(), gomock.Eq(repoargs.InviteCodeCreate{Code: freeCode})).
		Return(&domain.InviteCode{ID: 1, Code: freeCode}, nil)

	inviteCode, err := s.service.CreateInvite(s.T().Context())
	s.Require().NoError(err)
	s.Equal(freeCode, inviteCode.Code)
}

// Если все попытки уперлись в занятые коды, операция завершается ошибкой.
func (s *AdminServiceTestSuite) TestCreateInvite_OutOfAttempts() {
	s.mockCodes.EXPECT().Generate().Return(codes.Prefix+"SAME00", nil).Times(inviteCodeMaxAttempts)
	s.mockInviteCodeRepo.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		Return(nil, domain.ErrDuplicateKey).Times(inviteCodeMaxAttempts)

	_, err := s.service.CreateInvite(s.T().Context())
	s.Require().ErrorIs(err, domain.ErrDuplicateKey)
}
