package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/badgekit/backend/internal/domain/badge"
	"github.com/badgekit/backend/internal/domain/shared"
	"github.com/badgekit/backend/internal/infrastructure/persistence/models"
	"github.com/badgekit/backend/internal/infrastructure/persistence/shopscope"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// badgeOrder is the stable newest-first order for listings and FindOne.
const badgeOrder = "created_at DESC, id DESC"

// GormBadgeRepository implements badge.Store using GORM. Every statement is
// scoped to the caller's shop.
type GormBadgeRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// BadgeRepositoryOption configures a GormBadgeRepository
type BadgeRepositoryOption func(*GormBadgeRepository)

// WithBadgeClock overrides the time source used to stamp badges.
func WithBadgeClock(now func() time.Time) BadgeRepositoryOption {
	return func(r *GormBadgeRepository) {
		r.now = now
	}
}

// NewGormBadgeRepository creates a new GormBadgeRepository
func NewGormBadgeRepository(db *gorm.DB, opts ...BadgeRepositoryOption) *GormBadgeRepository {
	r := &GormBadgeRepository{db: db, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var _ badge.Store = (*GormBadgeRepository)(nil)

// stamp returns the current time at the precision postgres stores.
func (r *GormBadgeRepository) stamp() time.Time {
	return r.now().UTC().Truncate(time.Microsecond)
}

// Create inserts one badge.
func (r *GormBadgeRepository) Create(ctx context.Context, shop, productID, name, color string) (*badge.Badge, error) {
	b, err := badge.NewBadge(shop, productID, name, color, r.stamp())
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Create(models.BadgeModelFromDomain(b)).Error; err != nil {
		return nil, storeError("create badge", err)
	}
	return b, nil
}

// CreateMany inserts one badge per product id in a single transaction.
// Creation times decrease by one microsecond along the input, so newest-first
// listings show the records in input order. The result follows the input.
func (r *GormBadgeRepository) CreateMany(ctx context.Context, shop string, productIDs []string, name, color string) ([]badge.Badge, error) {
	if len(productIDs) == 0 {
		return []badge.Badge{}, nil
	}

	base := r.stamp()
	last := len(productIDs) - 1
	created := make([]badge.Badge, 0, len(productIDs))
	for i, productID := range productIDs {
		b, err := badge.NewBadge(shop, productID, name, color, base.Add(time.Duration(last-i)*time.Microsecond))
		if err != nil {
			return nil, err
		}
		created = append(created, *b)
	}

	err := shopscope.Transaction(ctx, r.db, shop, func(tx *gorm.DB) error {
		for i := range created {
			if err := tx.Create(models.BadgeModelFromDomain(&created[i])).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, storeError("create badges", err)
	}
	return created, nil
}

// UpdateByID changes name and color of a badge owned by shop and returns the
// stored record.
func (r *GormBadgeRepository) UpdateByID(ctx context.Context, shop string, id uuid.UUID, name, color string) (*badge.Badge, error) {
	name, color, err := badge.NormalizeAppearance(name, color)
	if err != nil {
		return nil, err
	}

	var model models.BadgeModel
	err = shopscope.Transaction(ctx, r.db, shop, func(tx *gorm.DB) error {
		result := tx.Scopes(shopscope.Scope(shop)).
			Model(&models.BadgeModel{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{
				"name":       name,
				"color":      color,
				"updated_at": r.stamp(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return tx.Scopes(shopscope.Scope(shop)).Where("id = ?", id).Take(&model).Error
	})
	if err != nil {
		return nil, storeError("update badge", err)
	}
	return model.ToDomain(), nil
}

// DeleteByID removes one badge owned by shop.
func (r *GormBadgeRepository) DeleteByID(ctx context.Context, shop string, id uuid.UUID) error {
	result := shopscope.For(ctx, r.db, shop).
		Where("id = ?", id).
		Delete(&models.BadgeModel{})
	if result.Error != nil {
		return storeError("delete badge", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteAllForShop removes every badge of shop.
func (r *GormBadgeRepository) DeleteAllForShop(ctx context.Context, shop string) (int64, error) {
	result := shopscope.For(ctx, r.db, shop).Delete(&models.BadgeModel{})
	if result.Error != nil {
		return 0, storeError("delete shop badges", result.Error)
	}
	return result.RowsAffected, nil
}

// FindOne returns the newest badge of shop for productID, or nil.
func (r *GormBadgeRepository) FindOne(ctx context.Context, shop, productID string) (*badge.Badge, error) {
	var model models.BadgeModel
	err := shopscope.For(ctx, r.db, shop).
		Where("product_id = ?", productID).
		Order(badgeOrder).
		Take(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storeError("find badge", err)
	}
	return model.ToDomain(), nil
}

// ListByShop returns the shop's badges, newest first.
func (r *GormBadgeRepository) ListByShop(ctx context.Context, shop string) ([]badge.Badge, error) {
	var rows []models.BadgeModel
	if err := shopscope.For(ctx, r.db, shop).Order(badgeOrder).Find(&rows).Error; err != nil {
		return nil, storeError("list badges", err)
	}

	badges := make([]badge.Badge, len(rows))
	for i := range rows {
		badges[i] = *rows[i].ToDomain()
	}
	return badges, nil
}

// CountByShop counts the shop's badges.
func (r *GormBadgeRepository) CountByShop(ctx context.Context, shop string) (int64, error) {
	var count int64
	if err := shopscope.For(ctx, r.db, shop).Model(&models.BadgeModel{}).Count(&count).Error; err != nil {
		return 0, storeError("count badges", err)
	}
	return count, nil
}

// ListShops returns every shop that owns at least one badge.
func (r *GormBadgeRepository) ListShops(ctx context.Context) ([]string, error) {
	var shops []string
	err := shopscope.CrossShop(r.db.WithContext(ctx)).
		Model(&models.BadgeModel{}).
		Distinct("shop").
		Order("shop").
		Pluck("shop", &shops).Error
	if err != nil {
		return nil, storeError("list badge shops", err)
	}
	return shops, nil
}

// storeError keeps domain errors as they are and wraps driver failures.
func storeError(op string, err error) error {
	var domainErr *shared.DomainError
	switch {
	case errors.As(err, &domainErr):
		return err
	case errors.Is(err, shopscope.ErrShopRequired):
		return badge.ErrShopRequired
	case errors.Is(err, gorm.ErrRecordNotFound):
		return shared.ErrNotFound
	}
	return shared.NewPersistenceError(op, err)
}
