// Package shopscope confines gorm statements to a single shop.
//
// Repositories scope explicitly:
//
//	db.WithContext(ctx).Scopes(shopscope.Scope(shop)).Find(&rows)
//
// and the Guard callback rejects any query, update or delete on a guarded
// table that reaches the database without a shop condition.
package shopscope

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
)

// Column is the tenant key column on every shop-owned table.
const Column = "shop"

// ErrShopRequired is returned when a scoped operation is given an empty shop.
var ErrShopRequired = errors.New("shopscope: shop is required")

// Scope restricts a statement to rows owned by shop.
func Scope(shop string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if strings.TrimSpace(shop) == "" {
			_ = db.AddError(ErrShopRequired)
			return db
		}
		return db.Where(Column+" = ?", shop)
	}
}

// For returns a session bound to ctx and scoped to shop.
func For(ctx context.Context, db *gorm.DB, shop string) *gorm.DB {
	return db.WithContext(ctx).Scopes(Scope(shop))
}

// Transaction runs fn in a transaction whose handle is scoped to shop. Rows
// created through tx must still set the shop column themselves.
func Transaction(ctx context.Context, db *gorm.DB, shop string, fn func(tx *gorm.DB) error) error {
	if strings.TrimSpace(shop) == "" {
		return ErrShopRequired
	}
	return db.WithContext(ctx).Transaction(fn)
}
