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

// AdminService операторские ручки: ручное пополнение баланса и выпуск инвайт-кодов вне
// апгрейда. Доступ контролируется на уровне транспорта операторским токеном.
type AdminService struct {
	uow            uow.UOW
	userRepo       UserRepository
	inviteCodeRepo InviteCodeRepository
	codes          InviteCodeGenerator
}

func NewAdminService(u uow.UOW, codes InviteCodeGenerator) (*AdminService, error) {
	userRepo, userRepoErr := uow.GetRepositoryAs[UserRepository](u, uow.RepositoryName(repoargs.UserRepoName))
	if userRepoErr != nil {
		return nil, userRepoErr
	}
	icRepo, icRepoErr :=
		uow.GetRepositoryAs[InviteCodeRepository](u, uow.RepositoryName(repoargs.InviteCodeRepoName))
	if icRepoErr != nil {
		return nil, icRepoErr
	}
	return &AdminService{
		uow:            u,
		userRepo:       userRepo,
		inviteCodeRepo: icRepo,
		codes:          codes,
	}, nil
}

// CreditBalance пополняет баланс юзера на amount и возвращает число затронутых строк.
// Запись в журнал транзакций сознательно не делается. Отрицательные и нулевые суммы
// отклоняются с domain.ErrNonPositiveAmount: списание через эту ручку недопустимо.
func (s *AdminService) CreditBalance(ctx context.Context, username string, amount decimal.Decimal) (int64, error) {
	if !amount.IsPositive() {
		return 0, fmt.Errorf("crediting balance of %s: %w", username, domain.ErrNonPositiveAmount)
	}
	changes, err := s.userRepo.CreditBalanceByUsername(ctx, username, amount)
	if err != nil {
		return 0, fmt.Errorf("crediting balance of %s: %w", username, err)
	}
	return changes, nil
}

// CreateInvite выпускает инвайт-код без владельца (created_by остается пустым). На коллизии
// уникального индекса код перегенерируется.
func (s *AdminService) CreateInvite(ctx context.Context) (*domain.InviteCode, error) {
	var lastErr error
	for attempt := 0; attempt < inviteCodeMaxAttempts; attempt++ {
		code, genErr := s.codes.Generate()
		if genErr != nil {
			return nil, fmt.Errorf("creating invite code: %s", genErr.Error())
		}
		inviteCode, createErr := s.inviteCodeRepo.Create(ctx, repoargs.InviteCodeCreate{Code: code})
		if createErr == nil {
			return inviteCode, nil
		}
		if !errors.Is(createErr, domain.ErrDuplicateKey) {
			return nil, fmt.Errorf("creating invite code: %w", createErr)
		}
		lastErr = createErr
	}
	return nil, fmt.Errorf("creating invite code: out of attempts: %w", lastErr)
}
