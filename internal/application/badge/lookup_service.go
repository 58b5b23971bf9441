package badge

import (
	"context"

	"github.com/badgekit/backend/internal/domain/badge"
	"github.com/badgekit/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

// LookupQuery is an anonymous storefront request.
type LookupQuery struct {
	ProductRef string
	ShopHeader string
	Referer    string
}

// BadgeView is the public projection of a badge.
type BadgeView struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// LookupResult carries the badge, or nil, together with how the request was
// resolved.
type LookupResult struct {
	Badge      *BadgeView
	Shop       string
	ShopSource badge.ShopSource
	ProductID  string
}

// LookupService answers the storefront widget.
type LookupService struct {
	reader badge.Reader
	logger *zap.Logger
}

// NewLookupService creates a new LookupService
func NewLookupService(reader badge.Reader, logger *zap.Logger) *LookupService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LookupService{reader: reader, logger: logger}
}

// Lookup never fails. An unresolvable shop or product, a missing badge and a
// store error all yield a nil Badge.
func (s *LookupService) Lookup(ctx context.Context, q LookupQuery) *LookupResult {
	shop, source := badge.ResolveShop(q.ShopHeader, q.Referer)
	result := &LookupResult{Shop: shop, ShopSource: source}
	if source == badge.ShopUnresolved {
		return result
	}

	productID, ok := badge.NormalizeProductID(q.ProductRef)
	if !ok {
		return result
	}
	result.ProductID = productID

	ctx, span := telemetry.StartSpan(ctx, "badge_lookup", "find",
		telemetry.AttrShop.String(shop),
		telemetry.AttrProductID.String(productID))
	defer span.End()

	b, err := s.reader.FindOne(ctx, shop, productID)
	if err != nil {
		telemetry.Fail(span, err)
		s.logger.Warn("Badge lookup failed",
			zap.String("shop", shop),
			zap.String("product_id", productID),
			zap.Error(err))
		return result
	}
	if b != nil {
		result.Badge = &BadgeView{Name: b.Name, Color: b.Color}
	}
	span.SetAttributes(telemetry.AttrFound.Bool(b != nil))
	return result
}
