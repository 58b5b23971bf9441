package handler

import (
	"context"
	"strconv"

	"github.com/badgekit/backend/internal/application/catalog"
	"github.com/badgekit/backend/internal/interfaces/http/dto"
	"github.com/badgekit/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// ProductPicker lists products for the admin picker.
type ProductPicker interface {
	List(ctx context.Context, shop string, limit int) ([]catalog.Product, error)
}

// CatalogHandler serves the product picker.
type CatalogHandler struct {
	BaseHandler
	picker ProductPicker
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(picker ProductPicker) *CatalogHandler {
	return &CatalogHandler{picker: picker}
}

// List godoc
// @ID           listProducts
// @Summary      List catalog products
// @Description  First page of the shop's products, for choosing which ones get a badge
// @Tags         catalog
// @Produce      json
// @Param        limit query int false "Page size (1-250)"
// @Success      200 {object} APIResponse[[]dto.ProductResponse]
// @Failure      401 {object} ErrorResponse
// @Failure      503 {object} ErrorResponse
// @Security     SessionToken
// @Router       /api/v1/admin/products [get]
func (h *CatalogHandler) List(c *gin.Context) {
	shop := middleware.GetShop(c)
	if shop == "" {
		h.Unauthorized(c, "No authenticated shop")
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			h.BadRequest(c, "limit must be an integer")
			return
		}
		limit = n
	}

	products, err := h.picker.List(c.Request.Context(), shop, limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	resp := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		resp = append(resp, dto.ProductResponse{ID: p.ID, Title: p.Title, Handle: p.Handle, ImageURL: p.ImageURL})
	}
	h.Success(c, resp)
}
