package badge

import (
	"context"

	"github.com/google/uuid"
)

// Reader reads badges inside one shop.
type Reader interface {
	// FindOne returns the newest badge for the product, or nil when there is none.
	FindOne(ctx context.Context, shop, productID string) (*Badge, error)

	// ListByShop returns the shop's badges, newest first.
	ListByShop(ctx context.Context, shop string) ([]Badge, error)

	CountByShop(ctx context.Context, shop string) (int64, error)
}

// Writer mutates badges inside one shop. By-id operations on a badge owned
// by another shop report shared.ErrNotFound and change nothing.
type Writer interface {
	Create(ctx context.Context, shop, productID, name, color string) (*Badge, error)

	// CreateMany inserts one badge per product id atomically: either all are
	// stored or none are. The result follows the input order.
	CreateMany(ctx context.Context, shop string, productIDs []string, name, color string) ([]Badge, error)

	UpdateByID(ctx context.Context, shop string, id uuid.UUID, name, color string) (*Badge, error)
	DeleteByID(ctx context.Context, shop string, id uuid.UUID) error

	// DeleteAllForShop removes every badge of the shop and returns how many
	// rows went away. Repeating it returns 0.
	DeleteAllForShop(ctx context.Context, shop string) (int64, error)
}

// ShopLister enumerates shops that own at least one badge.
type ShopLister interface {
	ListShops(ctx context.Context) ([]string, error)
}

// Store is the full badge persistence port.
type Store interface {
	Reader
	Writer
	ShopLister
}
