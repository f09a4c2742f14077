package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/fsdevblog/etf-ledger/internal/domain"
	"github.com/fsdevblog/etf-ledger/internal/transport/api/middlewares"
)

// getUserIDFromContext берет из контекста gin ID текущего юзера. ID устанавливается в
// middlewares.AuthRequired. В случае, если значения в контексте нет или ошибка утверждения
// типа - вернется 0.
func getUserIDFromContext(c *gin.Context) int64 {
	userIDStr, exist := c.Get(middlewares.CurrentUserIDKey)
	if !exist {
		return 0
	}
	userID, ok := userIDStr.(int64)
	if !ok {
		return 0
	}
	return userID
}

// UserResponse форма юзера в ответах login/profile.
type UserResponse struct {
	ID              int64   `json:"id"`
	Username        string  `json:"username"`
	Balance         float64 `json:"balance"`
	IsVip           bool    `json:"isVip"`
	InviteCode      string  `json:"inviteCode"`
	MembershipLevel string  `json:"membershipLevel"`
}

func newUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		ID:              user.ID,
		Username:        user.Username,
		Balance:         user.Balance.InexactFloat64(),
		IsVip:           user.IsVip,
		InviteCode:      user.InviteCode,
		MembershipLevel: string(domain.MembershipOf(user.IsVip)),
	}
}

// TransactionResponseItem строка выписки /api/transactions.
type TransactionResponseItem struct {
	ID           int64   `json:"id"`
	FromUserID   *int64  `json:"from_user_id"`
	ToUserID     *int64  `json:"to_user_id"`
	Amount       float64 `json:"amount"`
	Kind         string  `json:"kind"`
	CreatedAt    string  `json:"created_at"`
	FromUsername string  `json:"from_username"`
	ToUsername   string  `json:"to_username"`
}

func newTransactionResponseItem(t domain.TransactionWithUsernames) TransactionResponseItem {
	return TransactionResponseItem{
		ID:           t.ID,
		FromUserID:   t.FromUserID,
		ToUserID:     t.ToUserID,
		Amount:       t.Amount.InexactFloat64(),
		Kind:         string(t.Kind),
		CreatedAt:    t.CreatedAt.Format(time.RFC3339),
		FromUsername: t.FromUsername,
		ToUsername:   t.ToUsername,
	}
}
