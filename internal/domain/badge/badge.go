// Package badge holds the Badge entity, the store port and the rules for
// resolving the shop and product a storefront request refers to.
package badge

import (
	"strings"
	"time"

	"github.com/badgekit/backend/internal/domain/shared"
)

// MaxNameLength bounds the display label.
const MaxNameLength = 100

// Badge is a named, colored label a shop attaches to one catalog product.
// Shop and ProductID are fixed at creation; only Name and Color change.
type Badge struct {
	shared.BaseEntity
	Shop      string
	ProductID string
	Name      string
	Color     string
}

var (
	ErrShopRequired    = shared.NewValidationError("shop is required")
	ErrProductRequired = shared.NewValidationError("product id is required")
	ErrNameRequired    = shared.NewValidationError("badge name is required")
	ErrNameTooLong     = shared.NewValidationError("badge name is too long")
	ErrColorRequired   = shared.NewValidationError("badge color is required")
)

// NewBadge builds a badge stamped at now. productID must already be in
// canonical form, see NormalizeProductID.
func NewBadge(shop, productID, name, color string, now time.Time) (*Badge, error) {
	if strings.TrimSpace(shop) == "" {
		return nil, ErrShopRequired
	}
	if strings.TrimSpace(productID) == "" {
		return nil, ErrProductRequired
	}
	name, color, err := NormalizeAppearance(name, color)
	if err != nil {
		return nil, err
	}
	return &Badge{
		BaseEntity: shared.NewBaseEntity(now),
		Shop:       shop,
		ProductID:  productID,
		Name:       name,
		Color:      color,
	}, nil
}

// NormalizeAppearance trims name and color, lower-cases the color and
// rejects empty or oversized values. Creation and edits both go through it.
func NormalizeAppearance(name, color string) (string, string, error) {
	name = strings.TrimSpace(name)
	color = strings.TrimSpace(color)
	switch {
	case name == "":
		return "", "", ErrNameRequired
	case len([]rune(name)) > MaxNameLength:
		return "", "", ErrNameTooLong
	case color == "":
		return "", "", ErrColorRequired
	}
	return name, strings.ToLower(color), nil
}
