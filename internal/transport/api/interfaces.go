package api

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/fsdevblog/etf-ledger/internal/domain"
	"github.com/fsdevblog/etf-ledger/internal/service"
)

// UserServicer интерфейс исключительно для моков.
type UserServicer interface {
	Register(ctx context.Context, args service.RegisterUserArgs) (*domain.User, string, error)
	Login(ctx context.Context, args service.LoginUserArgs) (*domain.User, string, error)
	Profile(ctx context.Context, userID int64) (*domain.User, error)
}

type LedgerServicer interface {
	Transfer(
		ctx context.Context,
		fromUserID int64,
		toUsername string,
		amount decimal.Decimal,
	) (*domain.User, error)
	UpgradeVip(ctx context.Context, userID int64) (*domain.User, error)
	Transactions(ctx context.Context, userID int64) ([]domain.TransactionWithUsernames, error)
}

type AdminServicer interface {
	CreditBalance(ctx context.Context, username string, amount decimal.Decimal) (int64, error)
	CreateInvite(ctx context.Context) (*domain.InviteCode, error)
}
