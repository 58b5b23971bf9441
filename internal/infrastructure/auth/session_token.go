// Package auth verifies the session tokens the embedded admin sends with
// every request.
package auth

import (
	"errors"
	"net/url"
	"time"

	"github.com/badgekit/backend/internal/domain/badge"
	"github.com/badgekit/backend/internal/infrastructure/config"
	"github.com/golang-jwt/jwt/v5"
)

// Common errors
var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrTokenNotYetValid = errors.New("token is not yet valid")
	ErrInvalidClaims    = errors.New("invalid token claims")
	ErrShopMismatch     = errors.New("token issuer does not match its destination shop")
)

// defaultLeeway absorbs clock skew between the platform and this server.
const defaultLeeway = 10 * time.Second

// SessionClaims are the claims of a platform session token. Dest is the shop
// URL, Sub the staff user id.
type SessionClaims struct {
	jwt.RegisteredClaims
	Dest string `json:"dest"`
	Sid  string `json:"sid,omitempty"`
}

// SessionToken is a verified token with its resolved shop.
type SessionToken struct {
	Claims *SessionClaims
	Shop   string
}

// SessionTokenVerifier checks HS256 session tokens signed with the app
// secret and addressed to the app's API key.
type SessionTokenVerifier struct {
	apiKey string
	secret []byte
	leeway time.Duration
	now    func() time.Time
}

// NewSessionTokenVerifier creates a verifier from the app credentials.
func NewSessionTokenVerifier(cfg config.ShopifyConfig) *SessionTokenVerifier {
	return &SessionTokenVerifier{
		apiKey: cfg.APIKey,
		secret: []byte(cfg.APISecret),
		leeway: defaultLeeway,
		now:    time.Now,
	}
}

// Verify validates signature, audience and lifetime and resolves the shop
// from the dest claim.
func (v *SessionTokenVerifier) Verify(tokenString string) (*SessionToken, error) {
	if len(v.secret) == 0 {
		return nil, ErrInvalidToken
	}

	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, ErrInvalidToken
			}
			return v.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(v.apiKey),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(v.leeway),
		jwt.WithTimeFunc(v.now),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenNotValidYet):
			return nil, ErrTokenNotYetValid
		case errors.Is(err, jwt.ErrTokenInvalidAudience):
			return nil, ErrInvalidClaims
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidClaims
	}

	shop, ok := shopFromURL(claims.Dest)
	if !ok {
		return nil, ErrInvalidClaims
	}
	if issuer, ok := shopFromURL(claims.Issuer); !ok || issuer != shop {
		return nil, ErrShopMismatch
	}

	return &SessionToken{Claims: claims, Shop: shop}, nil
}

func shopFromURL(raw string) (string, bool) {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "https" {
		return "", false
	}
	return badge.NormalizeShop(u.Hostname())
}
