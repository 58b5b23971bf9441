package teardown

import (
	"context"
	"errors"
	"testing"

	"github.com/badgekit/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

const shop = "s1.example"

func TestService_Handle(t *testing.T) {
	ctx := context.Background()

	t.Run("no session is a no-op", func(t *testing.T) {
		sessions := new(MockSessionStore)
		badges := new(MockBadgeWriter)

		res := NewService(sessions, badges, nil).Handle(ctx, UninstalledEvent{Shop: shop})
		assert.True(t, res.Skipped)
		assert.NoError(t, res.Err())
		sessions.AssertNotCalled(t, "DeleteByShop", mock.Anything, mock.Anything)
		badges.AssertNotCalled(t, "DeleteAllForShop", mock.Anything, mock.Anything)
	})

	t.Run("deletes sessions then badges", func(t *testing.T) {
		sessions := new(MockSessionStore)
		badges := new(MockBadgeWriter)
		sessions.On("DeleteByShop", ctx, shop).Return(int64(1), nil).Once()
		badges.On("DeleteAllForShop", ctx, shop).Return(int64(2), nil).Once()

		res := NewService(sessions, badges, nil).Handle(ctx, UninstalledEvent{Shop: shop, SessionPresent: true})
		require.NoError(t, res.Err())
		assert.Nil(t, res.Advisory)
		assert.Equal(t, int64(1), res.SessionsDeleted)
		assert.Equal(t, int64(2), res.BadgesDeleted)
		sessions.AssertExpectations(t)
		badges.AssertExpectations(t)
	})

	t.Run("badge purge failure is advisory", func(t *testing.T) {
		sessions := new(MockSessionStore)
		badges := new(MockBadgeWriter)
		storeErr := shared.NewPersistenceError("delete shop badges", errors.New("deadlock"))
		sessions.On("DeleteByShop", ctx, shop).Return(int64(1), nil)
		badges.On("DeleteAllForShop", ctx, shop).Return(int64(0), storeErr)
		core, logs := observer.New(zap.WarnLevel)

		res := NewService(sessions, badges, zap.New(core)).Handle(ctx, UninstalledEvent{Shop: shop, SessionPresent: true})
		assert.NoError(t, res.Err())
		require.NotNil(t, res.Advisory)
		assert.Equal(t, shop, res.Advisory.Shop)
		assert.ErrorIs(t, res.Advisory, shared.ErrPersistence)
		assert.Equal(t, 1, logs.Len())
	})

	t.Run("session failure is mandatory and skips the purge", func(t *testing.T) {
		sessions := new(MockSessionStore)
		badges := new(MockBadgeWriter)
		sessions.On("DeleteByShop", ctx, shop).Return(int64(0), errors.New("connection reset"))

		res := NewService(sessions, badges, nil).Handle(ctx, UninstalledEvent{Shop: shop, SessionPresent: true})
		require.Error(t, res.Err())
		assert.Contains(t, res.Err().Error(), "connection reset")
		badges.AssertNotCalled(t, "DeleteAllForShop", mock.Anything, mock.Anything)
	})
}

func TestSweepService_Sweep(t *testing.T) {
	ctx := context.Background()

	t.Run("purges only shops without sessions", func(t *testing.T) {
		sessions := new(MockSessionStore)
		badges := new(MockBadgeWriter)
		badges.On("ListShops", ctx).Return([]string{"a.example", "b.example", "c.example"}, nil)
		sessions.On("ExistsForShop", ctx, "a.example").Return(true, nil)
		sessions.On("ExistsForShop", ctx, "b.example").Return(false, nil)
		sessions.On("ExistsForShop", ctx, "c.example").Return(false, errors.New("timeout"))
		badges.On("DeleteAllForShop", ctx, "b.example").Return(int64(3), nil)

		report, err := NewSweepService(badges, sessions, nil).Sweep(ctx)
		require.NoError(t, err)
		assert.Equal(t, SweepReport{ShopsScanned: 3, ShopsPurged: 1, BadgesDeleted: 3, Failures: 1}, report)
		badges.AssertNotCalled(t, "DeleteAllForShop", ctx, "a.example")
		badges.AssertNotCalled(t, "DeleteAllForShop", ctx, "c.example")
	})

	t.Run("purge failure does not stop the sweep", func(t *testing.T) {
		sessions := new(MockSessionStore)
		badges := new(MockBadgeWriter)
		badges.On("ListShops", ctx).Return([]string{"a.example", "b.example"}, nil)
		sessions.On("ExistsForShop", ctx, mock.Anything).Return(false, nil)
		badges.On("DeleteAllForShop", ctx, "a.example").Return(int64(0), errors.New("locked"))
		badges.On("DeleteAllForShop", ctx, "b.example").Return(int64(1), nil)

		report, err := NewSweepService(badges, sessions, nil).Sweep(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, report.Failures)
		assert.Equal(t, 1, report.ShopsPurged)
	})

	t.Run("listing failure is returned", func(t *testing.T) {
		badges := new(MockBadgeWriter)
		badges.On("ListShops", ctx).Return(nil, errors.New("db down"))

		_, err := NewSweepService(badges, new(MockSessionStore), nil).Sweep(ctx)
		assert.Error(t, err)
	})
}
