package models

import (
	"github.com/badgekit/backend/internal/domain/badge"
)

// BadgeModel is the persistence model for badge.Badge. The shop column leads
// both composite indexes, so shop-only lookups are covered as well.
type BadgeModel struct {
	BaseModel
	Shop      string `gorm:"type:varchar(255);not null;index:idx_badges_shop_product,priority:1;index:idx_badges_shop_created,priority:1"`
	ProductID string `gorm:"column:product_id;type:varchar(255);not null;index:idx_badges_shop_product,priority:2"`
	Name      string `gorm:"type:varchar(100);not null"`
	Color     string `gorm:"type:varchar(32);not null"`
}

// TableName returns the table name for GORM
func (BadgeModel) TableName() string {
	return "badges"
}

// ToDomain converts the persistence model to a domain Badge.
func (m *BadgeModel) ToDomain() *badge.Badge {
	return &badge.Badge{
		BaseEntity: m.BaseModel.ToDomain(),
		Shop:       m.Shop,
		ProductID:  m.ProductID,
		Name:       m.Name,
		Color:      m.Color,
	}
}

// FromDomain populates the persistence model from a domain Badge.
func (m *BadgeModel) FromDomain(b *badge.Badge) {
	m.FromDomainBaseEntity(b.BaseEntity)
	m.Shop = b.Shop
	m.ProductID = b.ProductID
	m.Name = b.Name
	m.Color = b.Color
}

// BadgeModelFromDomain creates a persistence model from a domain Badge.
func BadgeModelFromDomain(b *badge.Badge) *BadgeModel {
	m := &BadgeModel{}
	m.FromDomain(b)
	return m
}
