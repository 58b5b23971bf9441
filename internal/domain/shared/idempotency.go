package shared

import (
	"context"
	"time"
)

// IdempotencyStore remembers delivery IDs that were already handled, so a
// redelivered webhook is acknowledged without running again.
type IdempotencyStore interface {
	// MarkProcessed records key for ttl. It returns true when the key was not
	// already present.
	MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// IsProcessed reports whether key was recorded and has not expired.
	IsProcessed(ctx context.Context, key string) (bool, error)

	// Forget removes key so a failed delivery can be retried.
	Forget(ctx context.Context, key string) error

	Close() error
}
