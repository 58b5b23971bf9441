package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestStore(t *testing.T) (*InMemoryIdempotencyStore, *manualClock) {
	clock := &manualClock{now: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)}
	store := newInMemoryIdempotencyStore(clock.Now, time.Hour)
	t.Cleanup(func() { _ = store.Close() })
	return store, clock
}

func TestInMemoryIdempotencyStore_MarkProcessed(t *testing.T) {
	ctx := context.Background()

	t.Run("first delivery claims the key", func(t *testing.T) {
		store, _ := newTestStore(t)

		isNew, err := store.MarkProcessed(ctx, "delivery-1", time.Hour)
		require.NoError(t, err)
		assert.True(t, isNew)

		isNew, err = store.MarkProcessed(ctx, "delivery-1", time.Hour)
		require.NoError(t, err)
		assert.False(t, isNew, "redelivery must be recognised")
	})

	t.Run("expired claim can be taken again", func(t *testing.T) {
		store, clock := newTestStore(t)

		_, _ = store.MarkProcessed(ctx, "delivery-2", time.Minute)
		clock.Advance(time.Minute)

		isNew, err := store.MarkProcessed(ctx, "delivery-2", time.Minute)
		require.NoError(t, err)
		assert.True(t, isNew)
	})

	t.Run("forget releases the key", func(t *testing.T) {
		store, _ := newTestStore(t)

		_, _ = store.MarkProcessed(ctx, "delivery-3", time.Hour)
		require.NoError(t, store.Forget(ctx, "delivery-3"))

		processed, err := store.IsProcessed(ctx, "delivery-3")
		require.NoError(t, err)
		assert.False(t, processed)

		isNew, err := store.MarkProcessed(ctx, "delivery-3", time.Hour)
		require.NoError(t, err)
		assert.True(t, isNew)
	})
}

func TestInMemoryIdempotencyStore_IsProcessed(t *testing.T) {
	ctx := context.Background()
	store, clock := newTestStore(t)

	processed, err := store.IsProcessed(ctx, "unknown")
	require.NoError(t, err)
	assert.False(t, processed)

	_, _ = store.MarkProcessed(ctx, "known", time.Minute)
	processed, _ = store.IsProcessed(ctx, "known")
	assert.True(t, processed)

	clock.Advance(2 * time.Minute)
	processed, _ = store.IsProcessed(ctx, "known")
	assert.False(t, processed)
}

func TestInMemoryIdempotencyStore_Cleanup(t *testing.T) {
	ctx := context.Background()
	store, clock := newTestStore(t)

	_, _ = store.MarkProcessed(ctx, "short", time.Minute)
	_, _ = store.MarkProcessed(ctx, "long", time.Hour)
	require.Equal(t, 2, store.Size())

	clock.Advance(30 * time.Minute)
	store.cleanup()
	assert.Equal(t, 1, store.Size())
}

func TestInMemoryIdempotencyStore_ConcurrentClaims(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t)

	var winners atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := store.MarkProcessed(ctx, "contended", time.Hour); ok {
				winners.Add(1)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), winners.Load())
}

func TestInMemoryIdempotencyStore_CloseTwice(t *testing.T) {
	store := NewInMemoryIdempotencyStore()
	assert.NoError(t, store.Close())
	assert.NoError(t, store.Close())
}
