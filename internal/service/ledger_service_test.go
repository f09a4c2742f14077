package service

import (
	"context"
	"testing"
	"time"

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

type LedgerServiceTestSuite struct {
	suite.Suite
	mockCtrl           *gomock.Controller
	mockUOW            *uowmocks.MockUOW
	mockTX             *uowmocks.MockTX
	mockUserRepo       *mocks.MockUserRepository
	mockTrRepo         *mocks.MockTransactionRepository
	mockInviteCodeRepo *mocks.MockInviteCodeRepository
	mockCodes          *mocks.MockInviteCodeGenerator
	service            *LedgerService
}

func TestLedgerServiceSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}

func (s *LedgerServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockUOW = uowmocks.NewMockUOW(s.mockCtrl)
	s.mockTX = uowmocks.NewMockTX(s.mockCtrl)
	s.mockUserRepo = mocks.NewMockUserRepository(s.mockCtrl)
	s.mockTrRepo = mocks.NewMockTransactionRepository(s.mockCtrl)
	s.mockInviteCodeRepo = mocks.NewMockInviteCodeRepository(s.mockCtrl)
	s.mockCodes = mocks.NewMockInviteCodeGenerator(s.mockCtrl)

	// Настроить возврат TransactionRepository в сервисе при инициализации.
	s.mockUOW.EXPECT().
		GetRepository(uow.RepositoryName(repoargs.TransactionRepoName)).
		Return(s.mockTrRepo, nil).AnyTimes()

	var err error
	s.service, err = NewLedgerService(s.mockUOW, s.mockCodes)
	s.Require().NoError(err)

	// Репозитории внутри транзакции.
	s.mockTX.EXPECT().
		Get(uow.RepositoryName(repoargs.UserRepoName)).
		Return(s.mockUserRepo, nil).AnyTimes()
	s.mockTX.EXPECT().
		Get(uow.RepositoryName(repoargs.TransactionRepoName)).
		Return(s.mockTrRepo, nil).AnyTimes()
	s.mockTX.EXPECT().
		Get(uow.RepositoryName(repoargs.InviteCodeRepoName)).
		Return(s.mockInviteCodeRepo, nil).AnyTimes()

	// Мок UOW обертки.
	s.mockUOW.EXPECT().Do(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context, uow.TX) error) error {
			return fn(ctx, s.mockTX)
		},
	).AnyTimes()
}

func (s *LedgerServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *LedgerServiceTestSuite) TestTransfer() {
	amount := decimal.NewFromInt(15)

	sender := domain.User{
		ID:       1,
		Username: "alice",
		Balance:  decimal.NewFromInt(20),
	}
	receiver := domain.User{
		ID:       2,
		Username: "bob",
		Balance:  decimal.NewFromInt(20),
	}
	debitedSender := sender
	debitedSender.Balance = sender.Balance.Sub(amount)

	s.mockUserRepo.EXPECT().FindUserByID(gomock.Any(), sender.ID).
		Return(&sender, nil).AnyTimes()
	s.mockUserRepo.EXPECT().FindUserByID(gomock.Any(), int64(999)).
		Return(nil, domain.ErrRecordNotFound)

	s.mockUserRepo.EXPECT().FindUserByUsername(gomock.Any(), receiver.Username).
		Return(&receiver, nil)
	s.mockUserRepo.EXPECT().FindUserByUsername(gomock.Any(), "ghost").
		Return(nil, domain.ErrRecordNotFound)
	s.mockUserRepo.EXPECT().FindUserByUsername(gomock.Any(), sender.Username).
		Return(&sender, nil)

	s.mockUserRepo.EXPECT().DebitBalance(gomock.Any(), sender.ID, amount).
		Return(&debitedSender, nil)
	s.mockUserRepo.EXPECT().CreditBalance(gomock.Any(), receiver.ID, amount).
		Return(&receiver, nil)

	// Обе стороны и сумма должны попасть в журнал.
	s.mockTrRepo.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, args repoargs.TransactionCreate) (*domain.Transaction, error) {
			s.Require().NotNil(args.FromUserID)
			s.Require().NotNil(args.ToUserID)
			s.Equal(sender.ID, *args.FromUserID)
			s.Equal(receiver.ID, *args.ToUserID)
			s.Equal(amount, args.Amount)
			s.Equal(domain.TransactionKindTransfer, args.Kind)
			return &domain.Transaction{ID: 1, CreatedAt: time.Now(), Amount: amount}, nil
		})

	cases := []struct {
		name       string
		fromUserID int64
		toUsername string
		amount     decimal.Decimal
		wantErr    error
	}{
		{name: "ok", fromUserID: sender.ID, toUsername: receiver.Username, amount: amount},
		{
			name:       "amount below minimum",
			fromUserID: sender.ID,
			toUsername: receiver.Username,
			amount:     MinTransferAmount.Sub(decimal.NewFromFloat(0.01)),
			wantErr:    domain.ErrAmountTooSmall,
		},
		{
			name:       "sender not found",
			fromUserID: 999,
			toUsername: receiver.Username,
			amount:     amount,
			wantErr:    domain.ErrRecordNotFound,
		},
		{
			name:       "not enough balance",
			fromUserID: sender.ID,
			toUsername: receiver.Username,
			amount:     sender.Balance.Add(decimal.NewFromFloat(0.01)),
			wantErr:    domain.ErrNotEnoughBalance,
		},
		{
			name:       "receiver not found",
			fromUserID: sender.ID,
			toUsername: "ghost",
			amount:     amount,
			wantErr:    domain.ErrReceiverNotFound,
		},
		{
			name:       "self transfer",
			fromUserID: sender.ID,
			toUsername: sender.Username,
			amount:     amount,
			wantErr:    domain.ErrSelfTransfer,
		},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			result, err := s.service.Transfer(s.T().Context(), t.fromUserID, t.toUsername, t.amount)
			if t.wantErr != nil {
				s.Require().ErrorIs(err, t.wantErr)
				return
			}
			s.Require().NoError(err)
			s.Require().NotNil(result)
			// Возвращается отправитель с уже списанным балансом.
			s.True(result.Balance.Equal(sender.Balance.Sub(t.amount)))
		})
	}
}

// Конкурентное списание: предварительная проверка баланса прошла, но условный UPDATE
// не нашел строку, потому что параллельный перевод уже забрал деньги.
func (s *LedgerServiceTestSuite) TestTransfer_ConcurrentDebit() {
	amount := decimal.NewFromInt(15)
	sender := domain.User{ID: 1, Username: "alice", Balance: decimal.NewFromInt(20)}
	receiver := domain.User{ID: 2, Username: "bob", Balance: decimal.NewFromInt(20)}

	s.mockUserRepo.EXPECT().FindUserByID(gomock.Any(), sender.ID).Return(&sender, nil)
	s.mockUserRepo.EXPECT().FindUserByUsername(gomock.Any(), receiver.Username).Return(&receiver, nil)
	s.mockUserRepo.EXPECT().DebitBalance(gomock.Any(), sender.ID, amount).
		Return(nil, domain.ErrNotEnoughBalance)

	_, err := s.service.Transfer(s.T().Context(), sender.ID, receiver.Username, amount)
	s.Require().ErrorIs(err, domain.ErrNotEnoughBalance)
}

func (s *LedgerServiceTestSuite) TestUpgradeVip() {
	code := codes.Prefix + "A1B2C3"

	user := domain.User{
		ID:       1,
		Username: "alice",
		Balance:  decimal.NewFromInt(50),
	}
	upgraded := user
	upgraded.IsVip = true
	upgraded.InviteCode = code
	upgraded.Balance = user.Balance.Sub(VipUpgradeCost)

	vipUser := domain.User{ID: 2, Username: "bob", Balance: decimal.NewFromInt(50), IsVip: true}
	poorUser := domain.User{ID: 3, Username: "carol", Balance: VipUpgradeCost.Sub(decimal.NewFromFloat(0.01))}

	s.mockCodes.EXPECT().Generate().Return(code, nil).AnyTimes()

	s.mockUserRepo.EXPECT().FindUserByID(gomock.Any(), user.ID).Return(&user, nil)
	s.mockUserRepo.EXPECT().FindUserByID(gomock.Any(), vipUser.ID).Return(&vipUser, nil)
	s.mockUserRepo.EXPECT().FindUserByID(gomock.Any(), poorUser.ID).Return(&poorUser, nil)

	s.mockInviteCodeRepo.EXPECT().
		Create(gomock.Any(), gomock.Eq(repoargs.InviteCodeCreate{Code: code, CreatedBy: &user.ID})).
		Return(&domain.InviteCode{ID: 1, Code: code, CreatedBy: &user.ID}, nil)
	s.mockUserRepo.EXPECT().MarkVip(gomock.Any(), user.ID, code).Return(&upgraded, nil)
	s.mockUserRepo.EXPECT().DebitBalance(gomock.Any(), user.ID, VipUpgradeCost).
		Return(&upgraded, nil)

	// Апгрейд пишется в журнал без получателя.
	s.mockTrRepo.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, args repoargs.TransactionCreate) (*domain.Transaction, error) {
			s.Require().NotNil(args.FromUserID)
			s.Equal(user.ID, *args.FromUserID)
			s.Nil(args.ToUserID)
			s.Equal(VipUpgradeCost, args.Amount)
			s.Equal(domain.TransactionKindVipUpgrade, args.Kind)
			return &domain.Transaction{ID: 2, CreatedAt: time.Now(), Amount: args.Amount}, nil
		})

	cases := []struct {
		name    string
		userID  int64
		wantErr error
	}{
		{name: "ok", userID: user.ID},
		{name: "already vip", userID: vipUser.ID, wantErr: domain.ErrAlreadyVip},
		{name: "not enough balance", userID: poorUser.ID, wantErr: domain.ErrNotEnoughBalance},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			result, err := s.service.UpgradeVip(s.T().Context(), t.userID)
			if t.wantErr != nil {
				s.Require().ErrorIs(err, t.wantErr)
				return
			}
			s.Require().NoError(err)
			s.Require().NotNil(result)
			s.True(result.IsVip)
			s.Equal(code, result.InviteCode)
			s.True(result.Balance.Equal(user.Balance.Sub(VipUpgradeCost)))
		})
	}
}

// Коллизия инвайт-кода откатывает транзакцию, операция повторяется с новым кодом.
func (s *LedgerServiceTestSuite) TestUpgradeVip_RetriesOnCodeCollision() {
	takenCode := codes.Prefix + "TAKEN1"
	freeCode := codes.Prefix + "FREE22"

	user := domain.User{ID: 1, Username: "alice", Balance: decimal.NewFromInt(50)}
	upgraded := user
	upgraded.IsVip = true
	upgraded.InviteCode = freeCode
	upgraded.Balance = user.Balance.Sub(VipUpgradeCost)

	gomock.InOrder(
		s.mockCodes.EXPECT().Generate().Return(takenCode, nil),
		s.mockCodes.EXPECT().Generate().Return(freeCode, nil),
	)

	s.mockUserRepo.EXPECT().FindUserByID(gomock.Any(), user.ID).Return(&user, nil).Times(2)

	s.mockInviteCodeRepo.EXPECT().
		Create(gomock.Any(), gomock.Eq(repoargs.InviteCodeCreate{Code: takenCode, CreatedBy: &user.ID})).
		Return(nil, domain.ErrDuplicateKey)
	s.mockInviteCodeRepo.EXPECT().
		Create(gomock.Any(), gomock.Eq(repoargs.InviteCodeCreate{Code: freeCode, CreatedBy: &user.ID})).
		Return(&domain.InviteCode{ID: 1, Code: freeCode, CreatedBy: &user.ID}, nil)

	s.mockUserRepo.EXPECT().MarkVip(gomock.Any(), user.ID, freeCode).Return(&upgraded, nil)
	s.mockUserRepo.EXPECT().DebitBalance(gomock.Any(), user.ID, VipUpgradeCost).
		Return(&upgraded, nil)
	s.mockTrRepo.EXPECT().Create(gomock.Any(), gomock.Any()).
		Return(&domain.Transaction{ID: 1, CreatedAt: time.Now()}, nil)

	result, err := s.service.UpgradeVip(s.T().Context(), user.ID)
	s.Require().NoError(err)
	s.Equal(freeCode, result.InviteCode)
}

func (s *LedgerServiceTestSuite) TestTransactions() {
	fromID := int64(1)
	toID := int64(2)
	rows := []domain.TransactionWithUsernames{
		{
			Transaction: domain.Transaction{
				ID:         2,
				CreatedAt:  time.Now(),
				FromUserID: &fromID,
				ToUserID:   &toID,
				Amount:     decimal.NewFromInt(15),
				Kind:       domain.TransactionKindTransfer,
			},
			FromUsername: "alice",
			ToUsername:   "bob",
		},
		{
			Transaction: domain.Transaction{
				ID:         1,
				CreatedAt:  time.Now().Add(-time.Hour),
				FromUserID: &fromID,
				Amount:     VipUpgradeCost,
				Kind:       domain.TransactionKindVipUpgrade,
			},
			FromUsername: "alice",
		},
	}

	s.mockTrRepo.EXPECT().
		GetByUserID(gomock.Any(), fromID, TransactionsLimit).
		Return(rows, nil)

	result, err := s.service.Transactions(s.T().Context(), fromID)
	s.Require().NoError(err)
	s.Equal(rows, result)
}
