package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fsdevblog/etf-ledger/internal/domain"
	"github.com/fsdevblog/etf-ledger/internal/service"
)

type AuthHandler struct {
	userService UserServicer
}

func NewAuthHandler(userService UserServicer) *AuthHandler {
	return &AuthHandler{
		userService: userService,
	}
}

type CredentialsParams struct {
	Username string `binding:"required,min=1,max=64"  json:"username"`
	Password string `binding:"required,min=6,max=255" json:"password"`
}

// Register POST RouteGroup + RegisterRoute. Регистрирует пользователя и сразу аутентифицирует
// его: jwt токен уходит в заголовке Authorization. Инвайт-код при регистрации не требуется.
func (h *AuthHandler) Register(c *gin.Context) {
	var params CredentialsParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).
			SetType(gin.ErrorTypeBind)
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	user, jwtToken, createErr := h.userService.Register(ctx, service.RegisterUserArgs{
		Username: params.Username,
		Password: params.Password,
	})
	if createErr != nil {
		if errors.Is(createErr, domain.ErrDuplicateKey) {
			_ = c.AbortWithError(http.StatusBadRequest, errors.New("username already taken")).
				SetType(gin.ErrorTypePublic)
			return
		}
		_ = c.AbortWithError(http.StatusInternalServerError, createErr).
			SetType(gin.ErrorTypePrivate)
		return
	}

	c.Header("Authorization", "Bearer "+jwtToken)
	c.JSON(http.StatusOK, gin.H{
		"message": "registration successful",
		"userId":  user.ID,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"balance":  user.Balance.InexactFloat64(),
			"isVip":    user.IsVip,
		},
	})
}

// Login POST RouteGroup + LoginRoute. Аутентификация по паре юзернейм/пароль.
func (h *AuthHandler) Login(c *gin.Context) {
	var params CredentialsParams
	if bindErr := c.ShouldBindJSON(&params); bindErr != nil {
		_ = c.AbortWithError(http.StatusBadRequest, bindErr).
			SetType(gin.ErrorTypeBind)
		return
	}

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	user, token, err := h.userService.Login(ctx, service.LoginUserArgs{
		Username: params.Username,
		Password: params.Password,
	})

	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) || errors.Is(err, domain.ErrPasswordMissMatch) {
			_ = c.Error(err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		return
	}
	c.Header("Authorization", "Bearer "+token)

	c.JSON(http.StatusOK, gin.H{
		"message": "login successful",
		"user":    newUserResponse(user),
	})
}

// Profile GET RouteGroup + ProfileRoute. Возвращает текущего юзера.
func (h *AuthHandler) Profile(c *gin.Context) {
	currentUserID := getUserIDFromContext(c)

	ctx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	user, err := h.userService.Profile(ctx, currentUserID)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			_ = c.AbortWithError(http.StatusNotFound, errors.New("user not found")).
				SetType(gin.ErrorTypePublic)
			return
		}
		_ = c.AbortWithError(http.StatusInternalServerError, err).SetType(gin.ErrorTypePrivate)
		return
	}

	c.JSON(http.StatusOK, newUserResponse(user))
}
