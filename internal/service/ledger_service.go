package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fsdevblog/etf-ledger/internal/domain"
	"github.com/fsdevblog/etf-ledger/internal/repository/repoargs"
	"github.com/fsdevblog/etf-ledger/pkg/uow"
)

// TransactionsLimit максимум строк в выписке по операциям.
const TransactionsLimit uint = 50

// inviteCodeMaxAttempts сколько раз перегенерировать инвайт-код при коллизии уникального
// индекса прежде чем сдаться.
const inviteCodeMaxAttempts = 5

var (
	// MinTransferAmount минимальная сумма перевода.
	MinTransferAmount = decimal.NewFromInt(10)
	// VipUpgradeCost стоимость перехода в VIP.
	VipUpgradeCost = decimal.NewFromInt(30)
)

// LedgerService выполняет операции, изменяющие балансы. Каждая операция атомарна: изменение
// балансов и запись в журнал транзакций коммитятся вместе либо не коммитятся вовсе.
type LedgerService struct {
	uow             uow.UOW
	transactionRepo TransactionRepository
	codes           InviteCodeGenerator
}

func NewLedgerService(u uow.UOW, codes InviteCodeGenerator) (*LedgerService, error) {
	rName := uow.RepositoryName(repoargs.TransactionRepoName)
	transactionRepo, repoErr := uow.GetRepositoryAs[TransactionRepository](u, rName)
	if repoErr != nil {
		return nil, repoErr
	}
	return &LedgerService{
		uow:             u,
		transactionRepo: transactionRepo,
		codes:           codes,
	}, nil
}

// Transfer переводит amount от юзера fromUserID юзеру с юзернеймом toUsername. Возвращает
// отправителя с уже списанным балансом.
//
// Предусловия проверяются по порядку, возвращается первая нарушенная:
//  1. amount >= MinTransferAmount, иначе domain.ErrAmountTooSmall;
//  2. отправитель существует, иначе domain.ErrRecordNotFound;
//  3. у отправителя хватает баланса, иначе domain.ErrNotEnoughBalance;
//  4. получатель существует, иначе domain.ErrReceiverNotFound;
//  5. получатель не совпадает с отправителем, иначе domain.ErrSelfTransfer.
//
// Списание, зачисление и запись в журнал выполняются в одной транзакции; баланс отправителя
// повторно валидируется условным UPDATE, так что конкурентное списание не уводит его в минус.
func (s *LedgerService) Transfer(
	ctx context.Context,
	fromUserID int64,
	toUsername string,
	amount decimal.Decimal,
) (*domain.User, error) {
	if amount.LessThan(MinTransferAmount) {
		return nil, fmt.Errorf("transferring to %s: %w", toUsername, domain.ErrAmountTooSmall)
	}

	var sender *domain.User
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		userRepo, userRepoErr := uow.GetAs[UserRepository](tx, uow.RepositoryName(repoargs.UserRepoName))
		if userRepoErr != nil {
			return userRepoErr //nolint:wrapcheck
		}
		transactionRepo, trRepoErr :=
			uow.GetAs[TransactionRepository](tx, uow.RepositoryName(repoargs.TransactionRepoName))
		if trRepoErr != nil {
			return trRepoErr //nolint:wrapcheck
		}

		from, fromErr := userRepo.FindUserByID(c, fromUserID)
		if fromErr != nil {
			return fromErr //nolint:wrapcheck
		}
		if from.Balance.LessThan(amount) {
			return domain.ErrNotEnoughBalance //nolint:wrapcheck
		}

		receiver, receiverErr := userRepo.FindUserByUsername(c, toUsername)
		if receiverErr != nil {
			if errors.Is(receiverErr, domain.ErrRecordNotFound) {
				return domain.ErrReceiverNotFound //nolint:wrapcheck
			}
			return receiverErr //nolint:wrapcheck
		}
		if receiver.ID == from.ID {
			return domain.ErrSelfTransfer //nolint:wrapcheck
		}

		var debitErr error
		sender, debitErr = userRepo.DebitBalance(c, from.ID, amount)
		if debitErr != nil {
			return debitErr //nolint:wrapcheck
		}
		if _, creditErr := userRepo.CreditBalance(c, receiver.ID, amount); creditErr != nil {
			return creditErr //nolint:wrapcheck
		}

		_, recordErr := transactionRepo.Create(c, repoargs.TransactionCreate{
			FromUserID: &from.ID,
			ToUserID:   &receiver.ID,
			Amount:     amount,
			Kind:       domain.TransactionKindTransfer,
		})
		return recordErr //nolint:wrapcheck
	})

	if txErr != nil {
		return nil, fmt.Errorf("transferring to %s: %w", toUsername, txErr)
	}
	return sender, nil
}

// UpgradeVip переводит юзера в VIP: списывает VipUpgradeCost, выставляет флаг, выдает
// инвайт-код и записывает vip_upgrade транзакцию - все в одной транзакции. Переход
// односторонний и срабатывает ровно один раз.
//
// Ошибки: domain.ErrRecordNotFound, domain.ErrAlreadyVip, domain.ErrNotEnoughBalance.
//
// Коллизия инвайт-кода откатывает транзакцию целиком, после чего операция повторяется
// с новым кодом (не более inviteCodeMaxAttempts раз).
func (s *LedgerService) UpgradeVip(ctx context.Context, userID int64) (*domain.User, error) {
	var lastErr error
	for attempt := 0; attempt < inviteCodeMaxAttempts; attempt++ {
		code, genErr := s.codes.Generate()
		if genErr != nil {
			return nil, fmt.Errorf("upgrading user %d to vip: %s", userID, genErr.Error())
		}

		upgraded, txErr := s.upgradeVipWithCode(ctx, userID, code)
		if txErr == nil {
			return upgraded, nil
		}
		if !errors.Is(txErr, domain.ErrDuplicateKey) {
			return nil, fmt.Errorf("upgrading user %d to vip: %w", userID, txErr)
		}
		lastErr = txErr
	}
	return nil, fmt.Errorf("upgrading user %d to vip: out of invite code attempts: %w", userID, lastErr)
}

func (s *LedgerService) upgradeVipWithCode(ctx context.Context, userID int64, code string) (*domain.User, error) {
	var upgraded *domain.User
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		userRepo, userRepoErr := uow.GetAs[UserRepository](tx, uow.RepositoryName(repoargs.UserRepoName))
		if userRepoErr != nil {
			return userRepoErr //nolint:wrapcheck
		}
		transactionRepo, trRepoErr :=
			uow.GetAs[TransactionRepository](tx, uow.RepositoryName(repoargs.TransactionRepoName))
		if trRepoErr != nil {
			return trRepoErr //nolint:wrapcheck
		}
		inviteCodeRepo, icRepoErr :=
			uow.GetAs[InviteCodeRepository](tx, uow.RepositoryName(repoargs.InviteCodeRepoName))
		if icRepoErr != nil {
			return icRepoErr //nolint:wrapcheck
		}

		user, findErr := userRepo.FindUserByID(c, userID)
		if findErr != nil {
			return findErr //nolint:wrapcheck
		}
		if user.IsVip {
			return domain.ErrAlreadyVip //nolint:wrapcheck
		}
		if user.Balance.LessThan(VipUpgradeCost) {
			return domain.ErrNotEnoughBalance //nolint:wrapcheck
		}

		if _, icErr := inviteCodeRepo.Create(c, repoargs.InviteCodeCreate{
			Code:      code,
			CreatedBy: &user.ID,
		}); icErr != nil {
			return icErr //nolint:wrapcheck
		}

		// MarkVip защищен условием is_vip = FALSE: конкурентный апгрейд того же юзера
		// получит ErrAlreadyVip после коммита первого.
		if _, vipErr := userRepo.MarkVip(c, user.ID, code); vipErr != nil {
			return vipErr //nolint:wrapcheck
		}

		var debitErr error
		upgraded, debitErr = userRepo.DebitBalance(c, user.ID, VipUpgradeCost)
		if debitErr != nil {
			return debitErr //nolint:wrapcheck
		}

		_, recordErr := transactionRepo.Create(c, repoargs.TransactionCreate{
			FromUserID: &user.ID,
			Amount:     VipUpgradeCost,
			Kind:       domain.TransactionKindVipUpgrade,
		})
		return recordErr //nolint:wrapcheck
	})
	if txErr != nil {
		return nil, txErr
	}
	return upgraded, nil
}

// Transactions возвращает выписку юзера: не более TransactionsLimit операций, новые сверху.
func (s *LedgerService) Transactions(ctx context.Context, userID int64) ([]domain.TransactionWithUsernames, error) {
	transactions, err := s.transactionRepo.GetByUserID(ctx, userID, TransactionsLimit)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return transactions, nil
}
