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

type AdminHandler struct {
	svs AdminServicer
}

func NewAdminHandler(svs AdminServicer) *AdminHandler {
	return &AdminHandler{
		svs: svs,
	}
}

type AddBalanceParams struct {
	Username string          `binding:"required" json:"username"`
	Amount   decimal.Decimal `binding:"required" json:"amount"`
}

// AddBalance POST RouteGroup + AdminRouteGroup + AdminAddBalanceRoute. Ручное пополнение
// баланса юзера оператором. Запись в журнал транзакций не делается.
func (h *AdminHandler) AddBalance(c *gin.Context) {
	var params AddBalanceParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).SetType(gin.ErrorTypeBind)
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	changes, err := h.svs.CreditBalance(ctx, params.Username, params.Amount)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNonPositiveAmount):
			_ = c.AbortWithError(http.StatusBadRequest, errors.New("amount must be positive")).
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
		"message": fmt.Sprintf("added %s USDT to user %s", params.Amount.String(), params.Username),
		"changes": changes,
	})
}

// CreateInvite POST RouteGroup + AdminRouteGroup + AdminCreateInviteRoute. Выпускает
// инвайт-код без владельца.
func (h *AdminHandler) CreateInvite(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	inviteCode, err := h.svs.CreateInvite(ctx)
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "invite code created",
		"inviteCode": inviteCode.Code,
	})
}
