package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/fsdevblog/etf-ledger/internal/domain"
	"github.com/fsdevblog/etf-ledger/internal/repository/repoargs"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

type PasswordHasher interface {
	HashPassword(password string) (string, error)
	ComparePassword(password string, hashedPassword string) bool
}

type InviteCodeGenerator interface {
	Generate() (string, error)
}

type UserRepository interface {
	CreateUser(ctx context.Context, user repoargs.CreateUser) (*domain.User, error)
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
	FindUserByID(ctx context.Context, id int64) (*domain.User, error)
	DebitBalance(ctx context.Context, id int64, amount decimal.Decimal) (*domain.User, error)
	CreditBalance(ctx context.Context, id int64, amount decimal.Decimal) (*domain.User, error)
	CreditBalanceByUsername(ctx context.Context, username string, amount decimal.Decimal) (int64, error)
	MarkVip(ctx context.Context, id int64, inviteCode string) (*domain.User, error)
}

type TransactionRepository interface {
	Create(ctx context.Context, transaction repoargs.TransactionCreate) (*domain.Transaction, error)
	GetByUserID(ctx context.Context, userID int64, limit uint) ([]domain.TransactionWithUsernames, error)
}

type InviteCodeRepository interface {
	Create(ctx context.Context, code repoargs.InviteCodeCreate) (*domain.InviteCode, error)
}
