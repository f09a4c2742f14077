package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type User struct {
	ID                int64
	CreatedAt         time.Time
	UpdatedAt         time.Time
	Username          string
	EncryptedPassword string
	Balance           decimal.Decimal
	IsVip             bool
	InviteCode        string
}

// Transaction запись журнала операций. Создается единожды и никогда не изменяется.
// FromUserID / ToUserID могут отсутствовать: например при vip_upgrade нет получателя.
type Transaction struct {
	ID         int64
	CreatedAt  time.Time
	FromUserID *int64
	ToUserID   *int64
	Amount     decimal.Decimal
	Kind       TransactionKind
}

// TransactionWithUsernames строка выписки: транзакция вместе с юзернеймами обеих сторон.
type TransactionWithUsernames struct {
	Transaction
	FromUsername string
	ToUsername   string
}

type InviteCode struct {
	ID        int64
	CreatedAt time.Time
	Code      string
	CreatedBy *int64
	UsedBy    *int64
	IsUsed    bool
}
