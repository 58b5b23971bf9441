package teardown

import (
	"context"

	"github.com/badgekit/backend/internal/domain/badge"
	"github.com/badgekit/backend/internal/domain/session"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockSessionStore is a mock implementation of session.Store
type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) Save(ctx context.Context, s *session.Session) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockSessionStore) FindOffline(ctx context.Context, shop string) (*session.Session, error) {
	args := m.Called(ctx, shop)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*session.Session), args.Error(1)
}

func (m *MockSessionStore) ExistsForShop(ctx context.Context, shop string) (bool, error) {
	args := m.Called(ctx, shop)
	return args.Bool(0), args.Error(1)
}

func (m *MockSessionStore) DeleteByShop(ctx context.Context, shop string) (int64, error) {
	args := m.Called(ctx, shop)
	return args.Get(0).(int64), args.Error(1)
}

// MockBadgeWriter is a mock implementation of badge.Writer and OrphanStore
type MockBadgeWriter struct {
	mock.Mock
}

var (
	_ badge.Writer = (*MockBadgeWriter)(nil)
	_ OrphanStore  = (*MockBadgeWriter)(nil)
)

func (m *MockBadgeWriter) Create(ctx context.Context, shop, productID, name, color string) (*badge.Badge, error) {
	panic("not used")
}

func (m *MockBadgeWriter) CreateMany(ctx context.Context, shop string, productIDs []string, name, color string) ([]badge.Badge, error) {
	panic("not used")
}

func (m *MockBadgeWriter) UpdateByID(ctx context.Context, shop string, id uuid.UUID, name, color string) (*badge.Badge, error) {
	panic("not used")
}

func (m *MockBadgeWriter) DeleteByID(ctx context.Context, shop string, id uuid.UUID) error {
	panic("not used")
}

func (m *MockBadgeWriter) DeleteAllForShop(ctx context.Context, shop string) (int64, error) {
	args := m.Called(ctx, shop)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockBadgeWriter) ListShops(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
