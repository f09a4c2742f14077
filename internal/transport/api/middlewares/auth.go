package middlewares

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/fsdevblog/etf-ledger/internal/transport/api/tokens"
)

var ErrTokenNotExist = errors.New("token not exist")

const CurrentUserIDKey = "currentUserID"

// checkAuthorization извлекает токен из заголовка Authorization и проверяет его. Если токен
// не передан, вернется ошибка ErrTokenNotExist.
func checkAuthorization(c *gin.Context, jwtTokenSecret []byte) (*jwt.Token, error) {
	tokenHeader := c.GetHeader("Authorization")
	bearer := "Bearer "

	if len(tokenHeader) < len(bearer) || tokenHeader[:len(bearer)] != bearer {
		return nil, ErrTokenNotExist
	}

	tokenStr := tokenHeader[len(bearer):]
	token, err := tokens.ValidateUserJWT(tokenStr, jwtTokenSecret)
	if err != nil {
		return nil, fmt.Errorf("check authorization: %w", err)
	}
	return token, nil
}

// AuthRequired проверяет, что запрос авторизован, и записывает в контекст (поле
// CurrentUserIDKey) id юзера. Отсутствующий токен дает 401, переданный но невалидный - 403.
func AuthRequired(jwtTokenSecret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := checkAuthorization(c, jwtTokenSecret)
		if err != nil {
			if errors.Is(err, ErrTokenNotExist) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "access token missing"})
				return
			}
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "invalid token"})
			_ = c.Error(err).SetType(gin.ErrorTypePrivate)
			return
		}
		userClaim, ok := token.Claims.(*tokens.UserClaims)
		if !ok {
			_ = c.AbortWithError(http.StatusInternalServerError, errors.New("invalid jwt claims type")).
				SetType(gin.ErrorTypePrivate)
			return
		}
		c.Set(CurrentUserIDKey, userClaim.ID)
		c.Next()
	}
}

const adminTokenHeader = "X-Admin-Token"

// AdminRequired пропускает только запросы с операторским токеном в заголовке X-Admin-Token.
// Пустой настроенный токен закрывает админские ручки полностью.
func AdminRequired(adminToken string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(adminTokenHeader)
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "admin token missing"})
			return
		}
		if adminToken == "" || header != adminToken {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "invalid admin token"})
			return
		}
		c.Next()
	}
}
