package handler

import (
	"context"
	"net/http"

	badgeapp "github.com/badgekit/backend/internal/application/badge"
	"github.com/badgekit/backend/internal/infrastructure/logger"
	"github.com/badgekit/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ShopDomainHeader names the shop on storefront and webhook requests.
const ShopDomainHeader = "X-Shopify-Shop-Domain"

// BadgeLookup is the storefront read.
type BadgeLookup interface {
	Lookup(ctx context.Context, q badgeapp.LookupQuery) *badgeapp.LookupResult
}

// PublicBadgeHandler answers the storefront widget. It never fails: every
// outcome other than a match is {"badge":null} with 200.
type PublicBadgeHandler struct {
	service BadgeLookup
}

// NewPublicBadgeHandler creates a new PublicBadgeHandler
func NewPublicBadgeHandler(service BadgeLookup) *PublicBadgeHandler {
	return &PublicBadgeHandler{service: service}
}

// Lookup godoc
// @ID           lookupBadge
// @Summary      Badge for a storefront product
// @Description  Resolves the shop from X-Shopify-Shop-Domain, else from the Referer host.
// @Description  Always 200; badge is null when the shop, product or badge is unknown.
// @Tags         storefront
// @Produce      json
// @Param        productId query string true "Numeric product id or Product gid"
// @Param        X-Shopify-Shop-Domain header string false "Shop domain"
// @Success      200 {object} dto.PublicBadgeResponse
// @Router       /api/badge [get]
func (h *PublicBadgeHandler) Lookup(c *gin.Context) {
	result := h.service.Lookup(c.Request.Context(), badgeapp.LookupQuery{
		ProductRef: c.Query("productId"),
		ShopHeader: c.GetHeader(ShopDomainHeader),
		Referer:    c.GetHeader("Referer"),
	})

	logger.L(c.Request.Context()).Debug("Badge lookup",
		zap.String("shop", result.Shop),
		zap.String("shop_source", string(result.ShopSource)),
		zap.String("product_id", result.ProductID),
		zap.Bool("matched", result.Badge != nil))

	resp := dto.PublicBadgeResponse{}
	if result.Badge != nil {
		resp.Badge = &dto.PublicBadge{Name: result.Badge.Name, Color: result.Badge.Color}
	}
	c.Header("Cache-Control", "no-cache")
	c.JSON(http.StatusOK, resp)
}

// Preflight answers CORS preflight for the lookup route.
func (h *PublicBadgeHandler) Preflight(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
