package handler

import (
	"context"
	"errors"
	"strings"

	badgeapp "github.com/badgekit/backend/internal/application/badge"
	"github.com/badgekit/backend/internal/interfaces/http/dto"
	"github.com/badgekit/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// BadgeAdmin is the admin use case the handler drives.
type BadgeAdmin interface {
	Dispatch(ctx context.Context, shop string, req badgeapp.AdminActionRequest) (*badgeapp.AdminActionResult, error)
	List(ctx context.Context, shop string) (*badgeapp.AdminListResult, error)
}

// BadgeAdminHandler serves the embedded admin page.
type BadgeAdminHandler struct {
	BaseHandler
	service BadgeAdmin
}

// NewBadgeAdminHandler creates a new BadgeAdminHandler
func NewBadgeAdminHandler(service BadgeAdmin) *BadgeAdminHandler {
	return &BadgeAdminHandler{service: service}
}

// List godoc
// @ID           listBadges
// @Summary      List the shop's badges
// @Description  Returns every badge of the authenticated shop, newest first
// @Tags         badges
// @Produce      json
// @Success      200 {object} APIResponse[[]dto.BadgeResponse]
// @Failure      401 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     SessionToken
// @Router       /api/v1/admin/badges [get]
func (h *BadgeAdminHandler) List(c *gin.Context) {
	shop := middleware.GetShop(c)
	if shop == "" {
		h.Unauthorized(c, "No authenticated shop")
		return
	}

	result, err := h.service.List(c.Request.Context(), shop)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithTotal(c, dto.ToBadgeResponses(result.Badges), result.Total)
}

// Mutate godoc
// @ID           mutateBadges
// @Summary      Delete, edit or create badges
// @Description  Runs exactly one operation. deleteId wins over editingId, which wins over create.
// @Description  A delete or edit of an id the shop does not own returns a null result.
// @Description  Create is atomic: either every product gets a badge or none does.
// @Tags         badges
// @Accept       json
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        request body dto.BadgeMutationRequest true "Admin form submission"
// @Success      200 {object} APIResponse[dto.CreatedResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Failure      500 {object} ErrorResponse
// @Security     SessionToken
// @Router       /api/v1/admin/badges [post]
func (h *BadgeAdminHandler) Mutate(c *gin.Context) {
	shop := middleware.GetShop(c)
	if shop == "" {
		h.Unauthorized(c, "No authenticated shop")
		return
	}

	req, err := bindMutation(c)
	if err != nil {
		if errors.Is(err, dto.ErrProductIDsType) {
			h.HandleError(c, badgeapp.ErrInvalidProductIDs)
			return
		}
		h.ValidationError(c, err)
		return
	}

	name, color := req.Appearance()
	result, err := h.service.Dispatch(c.Request.Context(), shop, badgeapp.AdminActionRequest{
		DeleteID:       req.DeleteID,
		EditingID:      req.EditingID,
		ProductIDsJSON: req.ProductIDsRaw,
		ProductIDs:     req.ProductIDs,
		Name:           name,
		Color:          color,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, toMutationResponse(result))
}

// bindMutation reads the submission as JSON or as a form. A form may repeat
// productIds instead of posting one JSON-encoded value.
func bindMutation(c *gin.Context) (*dto.BadgeMutationRequest, error) {
	var req dto.BadgeMutationRequest
	if strings.HasPrefix(c.ContentType(), binding.MIMEJSON) {
		if err := c.ShouldBindJSON(&req); err != nil {
			return nil, err
		}
		return &req, nil
	}

	if err := c.ShouldBind(&req); err != nil {
		return nil, err
	}
	if values := c.PostFormArray("productIds"); len(values) > 1 {
		req.ProductIDs = values
		req.ProductIDsRaw = ""
	}
	return &req, nil
}

func toMutationResponse(result *badgeapp.AdminActionResult) any {
	switch result.Action {
	case badgeapp.ActionDelete:
		resp := dto.DeletedResponse{}
		if result.Found && result.DeletedID != nil {
			id := result.DeletedID.String()
			resp.DeletedID = &id
		}
		return resp
	case badgeapp.ActionEdit:
		resp := dto.UpdatedResponse{}
		if result.Found && result.UpdatedRecord != nil {
			b := dto.ToBadgeResponse(*result.UpdatedRecord)
			resp.UpdatedRecord = &b
		}
		return resp
	default:
		return dto.CreatedResponse{CreatedRecords: dto.ToBadgeResponses(result.CreatedRecords)}
	}
}
