package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/fsdevblog/etf-ledger/internal/domain"
)

type LedgerHandler struct {
	svs LedgerServicer
}

func NewLedgerHandler(svs LedgerServicer) *LedgerHandler {
	return &LedgerHandler{
		svs: svs,
	}
}

type TransferParams struct {
	ToUsername string          `binding:"required" json:"toUsername"`
	Amount     decimal.Decimal `binding:"required" json:"amount"`
}

// Transfer POST RouteGroup + TransferRoute. Переводит сумму текущего юзера указанному
// получателю.
func (h *LedgerHandler) Transfer(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	var params TransferParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	sender, err := h.svs.Transfer(ctx, currentUserID, params.ToUsername, params.Amount)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAmountTooSmall):
			_ = c.AbortWithError(http.StatusBadRequest, errors.New("minimum transfer amount is 10 USDT")).
				SetType(gin.ErrorTypePublic)
		case errors.Is(err, domain.ErrNotEnoughBalance):
			_ = c.AbortWithError(http.StatusBadRequest, errors.New("not enough balance")).
				SetType(gin.ErrorTypePublic)
		case errors.Is(err, domain.ErrSelfTransfer):
			_ = c.AbortWithError(http.StatusBadRequest, errors.New("cannot transfer to yourself")).
				SetType(gin.ErrorTypePublic)
		case errors.Is(err, domain.ErrReceiverNotFound):
			_ = c.AbortWithError(http.StatusNotFound, errors.New("receiver not found")).
				SetType(gin.ErrorTypePublic)
		case errors.Is(err, domain.ErrRecordNotFound):
			_ = c.AbortWithError(http.StatusNotFound, errors.New("user not found")).
				SetType(gin.ErrorTypePublic)
		default:
			_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    fmt.Sprintf("transferred %s USDT to %s", params.Amount.String(), params.ToUsername),
		"newBalance": sender.Balance.InexactFloat64(),
	})
}

// UpgradeVip POST RouteGroup + UpgradeVipRoute. Платный односторонний переход в VIP с выдачей
// инвайт-кода.
func (h *LedgerHandler) UpgradeVip(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	user, err := h.svs.UpgradeVip(ctx, currentUserID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAlreadyVip):
			_ = c.AbortWithError(http.StatusBadRequest, errors.New("you are already a VIP member")).
				SetType(gin.ErrorTypePublic)
		case errors.Is(err, domain.ErrNotEnoughBalance):
			_ = c.AbortWithError(http.StatusBadRequest, errors.New("not enough balance, 30 USDT required")).
				SetType(gin.ErrorTypePublic)
		case errors.Is(err, domain.ErrRecordNotFound):
			_ = c.AbortWithError(http.StatusNotFound, errors.New("user not found")).
				SetType(gin.ErrorTypePublic)
		default:
			_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "upgrade successful, you are now a VIP member",
		"inviteCode": user.InviteCode,
		"newBalance": user.Balance.InexactFloat64(),
	})
}

// Transactions GET RouteGroup + TransactionsRoute. Выписка операций текущего юзера, новые
// сверху.
func (h *LedgerHandler) Transactions(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	transactions, err := h.svs.Transactions(ctx, currentUserID)
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		return
	}

	response := make([]TransactionResponseItem, len(transactions))
	for i, transaction := range transactions {
		response[i] = newTransactionResponseItem(transaction)
	}

	c.JSON(http.StatusOK, response)
}
