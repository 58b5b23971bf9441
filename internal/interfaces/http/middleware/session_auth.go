package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/badgekit/backend/internal/infrastructure/auth"
	"github.com/badgekit/backend/internal/infrastructure/logger"
	"github.com/badgekit/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Session token context keys
const (
	SessionTokenKey = "session_token"
	ShopKey         = "shop"
	AuthHeaderKey   = "Authorization"
	BearerPrefix    = "Bearer "
)

// SessionTokenVerifier validates the embedded admin's session tokens.
type SessionTokenVerifier interface {
	Verify(token string) (*auth.SessionToken, error)
}

// SessionAuth requires a valid platform session token and stores the
// resolved shop. Every admin handler reads its tenant from here and never
// from the request body.
func SessionAuth(verifier SessionTokenVerifier, log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.NewNop()
	}
	return func(c *gin.Context) {
		header := c.GetHeader(AuthHeaderKey)
		if header == "" {
			abortUnauthorized(c, dto.ErrCodeUnauthorized, "Missing authorization header")
			return
		}
		if !strings.HasPrefix(header, BearerPrefix) {
			abortUnauthorized(c, dto.ErrCodeUnauthorized, "Invalid authorization header format")
			return
		}
		raw := strings.TrimSpace(strings.TrimPrefix(header, BearerPrefix))
		if raw == "" {
			abortUnauthorized(c, dto.ErrCodeUnauthorized, "Missing token")
			return
		}

		token, err := verifier.Verify(raw)
		if err != nil {
			log.Debug("Session token rejected", zap.Error(err), zap.String("request_id", GetRequestID(c)))
			if errors.Is(err, auth.ErrExpiredToken) {
				abortUnauthorized(c, dto.ErrCodeTokenExpired, "Session token has expired")
				return
			}
			abortUnauthorized(c, dto.ErrCodeTokenInvalid, "Invalid session token")
			return
		}

		c.Set(SessionTokenKey, token)
		c.Set(ShopKey, token.Shop)

		ctx, _ := logger.WithShop(c.Request.Context(), logger.FromContext(c.Request.Context()), token.Shop)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// GetShop returns the authenticated shop, or "" outside SessionAuth.
func GetShop(c *gin.Context) string {
	return c.GetString(ShopKey)
}

// GetSessionToken returns the verified token, or nil outside SessionAuth.
func GetSessionToken(c *gin.Context) *auth.SessionToken {
	if v, ok := c.Get(SessionTokenKey); ok {
		if t, ok := v.(*auth.SessionToken); ok {
			return t
		}
	}
	return nil
}

func abortUnauthorized(c *gin.Context, code, message string) {
	c.Header("WWW-Authenticate", `Bearer realm="admin"`)
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(code, message, GetRequestID(c)))
}
