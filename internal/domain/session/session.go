// Package session models the platform access sessions the app keeps per shop.
package session

import (
	"context"
	"strings"
	"time"
)

// Session is a stored platform session. Offline sessions carry the shop's
// long-lived Admin API token.
type Session struct {
	ID          string
	Shop        string
	State       string
	IsOnline    bool
	Scope       string
	Expires     *time.Time
	AccessToken string
	UserID      *int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OfflineID returns the conventional id of a shop's offline session.
func OfflineID(shop string) string {
	return "offline_" + shop
}

// Expired reports whether the session has an expiry at or before now.
func (s *Session) Expired(now time.Time) bool {
	return s.Expires != nil && !s.Expires.After(now)
}

// HasScope reports whether the granted scope list contains scope.
func (s *Session) HasScope(scope string) bool {
	for _, granted := range strings.Split(s.Scope, ",") {
		if strings.TrimSpace(granted) == scope {
			return true
		}
	}
	return false
}

// Store persists sessions.
type Store interface {
	Save(ctx context.Context, s *Session) error

	// FindOffline returns the shop's offline session or shared.ErrNotFound.
	FindOffline(ctx context.Context, shop string) (*Session, error)

	ExistsForShop(ctx context.Context, shop string) (bool, error)

	// DeleteByShop removes every session of the shop, online and offline.
	DeleteByShop(ctx context.Context, shop string) (int64, error)
}
