package repoargs

import (
	"github.com/shopspring/decimal"

	"github.com/fsdevblog/etf-ledger/internal/domain"
)

type TransactionCreate struct {
	FromUserID *int64
	ToUserID   *int64
	Amount     decimal.Decimal
	Kind       domain.TransactionKind
}
