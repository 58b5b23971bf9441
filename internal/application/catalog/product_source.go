package catalog

import (
	"context"

	"go.uber.org/zap"
)

// Product is a catalog entry offered to the merchant when picking products.
type Product struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Handle   string `json:"handle"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// ProductSource reads the shop's catalog from the commerce platform.
type ProductSource interface {
	ListProducts(ctx context.Context, shop string, limit int) ([]Product, error)
}

// PickerService serves the admin product picker.
type PickerService struct {
	source      ProductSource
	defaultSize int
	maxSize     int
	logger      *zap.Logger
}

// NewPickerService creates a new PickerService. defaultSize is used when the
// caller does not ask for a page size.
func NewPickerService(source ProductSource, defaultSize int, logger *zap.Logger) *PickerService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if defaultSize <= 0 {
		defaultSize = 50
	}
	return &PickerService{source: source, defaultSize: defaultSize, maxSize: 250, logger: logger}
}

// List returns up to limit products of shop. Out-of-range limits fall back to
// the default page size.
func (s *PickerService) List(ctx context.Context, shop string, limit int) ([]Product, error) {
	if limit <= 0 || limit > s.maxSize {
		limit = s.defaultSize
	}
	products, err := s.source.ListProducts(ctx, shop, limit)
	if err != nil {
		s.logger.Warn("Catalog fetch failed", zap.String("shop", shop), zap.Error(err))
		return nil, err
	}
	return products, nil
}
