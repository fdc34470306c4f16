package middleware

import (
	"errors"
	"strings"

	"destined_affinity/internal/auth"
	"destined_affinity/internal/logger"
	"destined_affinity/pkg/apperrors"
	"destined_affinity/pkg/contextkeys"

	"github.com/gin-gonic/gin"
)

// TokenVerifier - проверка токена (auth.TokenService)
type TokenVerifier interface {
	Verify(token string) (*auth.Identity, error)
}

// AuthMiddleware - токен обязателен: Bearer-заголовок или cookie
func AuthMiddleware(verifier TokenVerifier, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := verifier.Verify(extractToken(c, cookieName))
		if err != nil {
			if errors.Is(err, auth.ErrMissingToken) {
				apperrors.HandleError(c, apperrors.NewUnauthenticatedError("Authentication required"))
				return
			}
			logger.CtxWarn(c.Request.Context(), "Invalid token", "error", err, "path", c.Request.URL.Path)
			apperrors.HandleError(c, apperrors.ErrInvalidToken)
			return
		}

		setIdentity(c, identity)
		c.Next()
	}
}

// OptionalAuthMiddleware - публичные маршруты: без токена или с невалидным
// токеном запрос идет как гостевой
func OptionalAuthMiddleware(verifier TokenVerifier, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c, cookieName)
		if token != "" {
			if identity, err := verifier.Verify(token); err == nil {
				setIdentity(c, identity)
			}
		}
		c.Next()
	}
}

// GetIdentity извлекает личность из контекста; nil для гостя
func GetIdentity(c *gin.Context) *auth.Identity {
	val, exists := c.Get(string(contextkeys.IdentityKey))
	if !exists {
		return nil
	}
	identity, ok := val.(*auth.Identity)
	if !ok {
		return nil
	}
	return identity
}

func setIdentity(c *gin.Context, identity *auth.Identity) {
	c.Set(string(contextkeys.IdentityKey), identity)
	ctx := logger.WithUserEmail(c.Request.Context(), identity.Email)
	c.Request = c.Request.WithContext(ctx)
}

func extractToken(c *gin.Context, cookieName string) string {
	if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	if cookieName == "" {
		return ""
	}
	if cookie, err := c.Cookie(cookieName); err == nil {
		return cookie
	}
	return ""
}
