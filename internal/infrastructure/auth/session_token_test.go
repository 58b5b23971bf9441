package auth

import (
	"testing"
	"time"

	"github.com/badgekit/backend/internal/infrastructure/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testKey    = "api-key"
	testSecret = "api-secret-at-least-32-characters!"
	testShop   = "demo.myshopify.com"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newTestVerifier() *SessionTokenVerifier {
	v := NewSessionTokenVerifier(config.ShopifyConfig{APIKey: testKey, APISecret: testSecret})
	v.now = func() time.Time { return fixedNow }
	return v
}

func validClaims() *SessionClaims {
	return &SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "https://" + testShop + "/admin",
			Subject:   "42",
			Audience:  jwt.ClaimStrings{testKey},
			ExpiresAt: jwt.NewNumericDate(fixedNow.Add(time.Minute)),
			NotBefore: jwt.NewNumericDate(fixedNow.Add(-time.Second)),
			IssuedAt:  jwt.NewNumericDate(fixedNow.Add(-time.Second)),
			ID:        "jti-1",
		},
		Dest: "https://" + testShop,
		Sid:  "sid-1",
	}
}

func signToken(t *testing.T, method jwt.SigningMethod, claims *SessionClaims, secret string) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func TestSessionTokenVerifier_Verify(t *testing.T) {
	v := newTestVerifier()

	t.Run("valid token resolves the shop", func(t *testing.T) {
		token, err := v.Verify(signToken(t, jwt.SigningMethodHS256, validClaims(), testSecret))
		require.NoError(t, err)
		assert.Equal(t, testShop, token.Shop)
		assert.Equal(t, "42", token.Claims.Subject)
	})

	tests := []struct {
		name    string
		mutate  func(c *SessionClaims)
		method  jwt.SigningMethod
		secret  string
		wantErr error
	}{
		{"wrong secret", nil, jwt.SigningMethodHS256, "other-secret", ErrInvalidToken},
		{"wrong algorithm", nil, jwt.SigningMethodHS512, testSecret, ErrInvalidToken},
		{"expired", func(c *SessionClaims) { c.ExpiresAt = jwt.NewNumericDate(fixedNow.Add(-time.Minute)) }, jwt.SigningMethodHS256, testSecret, ErrExpiredToken},
		{"not yet valid", func(c *SessionClaims) { c.NotBefore = jwt.NewNumericDate(fixedNow.Add(time.Minute)) }, jwt.SigningMethodHS256, testSecret, ErrTokenNotYetValid},
		{"no expiry", func(c *SessionClaims) { c.ExpiresAt = nil }, jwt.SigningMethodHS256, testSecret, ErrInvalidToken},
		{"other app", func(c *SessionClaims) { c.Audience = jwt.ClaimStrings{"someone-else"} }, jwt.SigningMethodHS256, testSecret, ErrInvalidClaims},
		{"bad dest", func(c *SessionClaims) { c.Dest = "not a url" }, jwt.SigningMethodHS256, testSecret, ErrInvalidClaims},
		{"issuer for another shop", func(c *SessionClaims) { c.Issuer = "https://evil.myshopify.com/admin" }, jwt.SigningMethodHS256, testSecret, ErrShopMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims := validClaims()
			if tt.mutate != nil {
				tt.mutate(claims)
			}
			_, err := v.Verify(signToken(t, tt.method, claims, tt.secret))
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("garbage", func(t *testing.T) {
		_, err := v.Verify("not.a.jwt")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("no secret configured", func(t *testing.T) {
		empty := NewSessionTokenVerifier(config.ShopifyConfig{APIKey: testKey})
		_, err := empty.Verify(signToken(t, jwt.SigningMethodHS256, validClaims(), testSecret))
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
