package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/badgekit/backend/internal/infrastructure/auth"
	"github.com/badgekit/backend/internal/infrastructure/logger"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubVerifier struct {
	tokens map[string]*auth.SessionToken
	err    error
}

func (v stubVerifier) Verify(token string) (*auth.SessionToken, error) {
	if t, ok := v.tokens[token]; ok {
		return t, nil
	}
	if v.err != nil {
		return nil, v.err
	}
	return nil, auth.ErrInvalidToken
}

func TestSessionAuth(t *testing.T) {
	verifier := stubVerifier{tokens: map[string]*auth.SessionToken{
		"good": {Shop: "demo.myshopify.com", Claims: &auth.SessionClaims{}},
	}}

	router := gin.New()
	router.Use(RequestID(), SessionAuth(verifier, nil))
	router.GET("/admin", func(c *gin.Context) {
		c.String(http.StatusOK, "%s|%s", GetShop(c), logger.GetShop(c.Request.Context()))
	})

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{"valid token", "Bearer good", http.StatusOK, "demo.myshopify.com|demo.myshopify.com"},
		{"missing header", "", http.StatusUnauthorized, "ERR_UNAUTHORIZED"},
		{"wrong scheme", "Basic good", http.StatusUnauthorized, "ERR_UNAUTHORIZED"},
		{"empty token", "Bearer   ", http.StatusUnauthorized, "ERR_UNAUTHORIZED"},
		{"unknown token", "Bearer bad", http.StatusUnauthorized, "ERR_TOKEN_INVALID"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tt.header != "" {
				req.Header.Set(AuthHeaderKey, tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
			if tt.wantStatus == http.StatusUnauthorized {
				assert.NotEmpty(t, w.Header().Get("WWW-Authenticate"))
			}
		})
	}

	t.Run("expired token", func(t *testing.T) {
		r := gin.New()
		r.Use(SessionAuth(stubVerifier{err: fmt.Errorf("%w: exp in the past", auth.ErrExpiredToken)}, nil))
		r.GET("/admin", func(c *gin.Context) { c.Status(http.StatusOK) })

		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set(AuthHeaderKey, "Bearer stale")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "ERR_TOKEN_EXPIRED")
	})
}
