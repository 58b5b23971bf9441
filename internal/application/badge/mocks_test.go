package badge

import (
	"context"

	"github.com/badgekit/backend/internal/domain/badge"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockBadgeStore is a mock implementation of badge.Store
type MockBadgeStore struct {
	mock.Mock
}

var _ badge.Store = (*MockBadgeStore)(nil)

func (m *MockBadgeStore) FindOne(ctx context.Context, shop, productID string) (*badge.Badge, error) {
	args := m.Called(ctx, shop, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*badge.Badge), args.Error(1)
}

func (m *MockBadgeStore) ListByShop(ctx context.Context, shop string) ([]badge.Badge, error) {
	args := m.Called(ctx, shop)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]badge.Badge), args.Error(1)
}

func (m *MockBadgeStore) CountByShop(ctx context.Context, shop string) (int64, error) {
	args := m.Called(ctx, shop)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBadgeStore) Create(ctx context.Context, shop, productID, name, color string) (*badge.Badge, error) {
	args := m.Called(ctx, shop, productID, name, color)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*badge.Badge), args.Error(1)
}

func (m *MockBadgeStore) CreateMany(ctx context.Context, shop string, productIDs []string, name, color string) ([]badge.Badge, error) {
	args := m.Called(ctx, shop, productIDs, name, color)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]badge.Badge), args.Error(1)
}

func (m *MockBadgeStore) UpdateByID(ctx context.Context, shop string, id uuid.UUID, name, color string) (*badge.Badge, error) {
	args := m.Called(ctx, shop, id, name, color)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*badge.Badge), args.Error(1)
}

func (m *MockBadgeStore) DeleteByID(ctx context.Context, shop string, id uuid.UUID) error {
	args := m.Called(ctx, shop, id)
	return args.Error(0)
}

func (m *MockBadgeStore) DeleteAllForShop(ctx context.Context, shop string) (int64, error) {
	args := m.Called(ctx, shop)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBadgeStore) ListShops(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
