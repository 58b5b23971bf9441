package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/badgekit/backend/internal/domain/session"
	"github.com/badgekit/backend/internal/domain/shared"
	"github.com/badgekit/backend/internal/infrastructure/persistence/models"
	"github.com/badgekit/backend/internal/infrastructure/persistence/shopscope"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSessionRepository implements session.Store using GORM
type GormSessionRepository struct {
	db *gorm.DB
}

// NewGormSessionRepository creates a new GormSessionRepository
func NewGormSessionRepository(db *gorm.DB) *GormSessionRepository {
	return &GormSessionRepository{db: db}
}

var _ session.Store = (*GormSessionRepository)(nil)

// Save inserts the session or replaces the stored one with the same id.
func (r *GormSessionRepository) Save(ctx context.Context, s *session.Session) error {
	if s.Shop == "" {
		return shopscope.ErrShopRequired
	}
	now := time.Now().UTC()
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	s.UpdatedAt = now

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"shop", "state", "is_online", "scope", "expires", "access_token", "user_id", "updated_at"}),
		}).
		Create(models.SessionModelFromDomain(s)).Error
	if err != nil {
		return shared.NewPersistenceError("save session", err)
	}
	return nil
}

// FindOffline returns the shop's offline session.
func (r *GormSessionRepository) FindOffline(ctx context.Context, shop string) (*session.Session, error) {
	var model models.SessionModel
	err := shopscope.For(ctx, r.db, shop).
		Where("id = ?", session.OfflineID(shop)).
		Take(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, shared.NewPersistenceError("find offline session", err)
	}
	return model.ToDomain(), nil
}

// ExistsForShop reports whether any session is stored for shop.
func (r *GormSessionRepository) ExistsForShop(ctx context.Context, shop string) (bool, error) {
	var count int64
	if err := shopscope.For(ctx, r.db, shop).Model(&models.SessionModel{}).Count(&count).Error; err != nil {
		return false, shared.NewPersistenceError("check sessions", err)
	}
	return count > 0, nil
}

// DeleteByShop removes all of the shop's sessions.
func (r *GormSessionRepository) DeleteByShop(ctx context.Context, shop string) (int64, error) {
	result := shopscope.For(ctx, r.db, shop).Delete(&models.SessionModel{})
	if result.Error != nil {
		return 0, shared.NewPersistenceError("delete sessions", result.Error)
	}
	return result.RowsAffected, nil
}
