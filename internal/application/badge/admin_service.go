package badge

import (
	"context"
	"errors"
	"strings"

	"github.com/badgekit/backend/internal/domain/badge"
	"github.com/badgekit/backend/internal/domain/shared"
	"github.com/badgekit/backend/internal/infrastructure/telemetry"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// AdminService handles the embedded admin page: listing and the single form
// submission that deletes, edits or creates badges.
type AdminService struct {
	store    badge.Store
	validate *validator.Validate
	logger   *zap.Logger
}

// NewAdminService creates a new AdminService
func NewAdminService(store badge.Store, logger *zap.Logger) *AdminService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminService{
		store:    store,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
	}
}

// Dispatch runs exactly one action with precedence delete, then edit, then
// create. Inputs are validated before the store is touched. A delete or edit
// of a badge the shop does not own is not an error: the result has
// Found=false.
func (s *AdminService) Dispatch(ctx context.Context, shop string, req AdminActionRequest) (*AdminActionResult, error) {
	ctx, span := telemetry.StartSpan(ctx, "badge_admin", "dispatch", telemetry.AttrShop.String(shop))
	defer span.End()

	res, err := s.dispatch(ctx, shop, req)
	if err != nil {
		telemetry.Fail(span, err)
		return nil, err
	}
	span.SetAttributes(telemetry.AttrAction.String(string(res.Action)), telemetry.AttrFound.Bool(res.Found))
	return res, nil
}

func (s *AdminService) dispatch(ctx context.Context, shop string, req AdminActionRequest) (*AdminActionResult, error) {
	log := s.logger.With(zap.String("shop", shop))

	switch {
	case strings.TrimSpace(req.DeleteID) != "":
		id, err := parseBadgeID(req.DeleteID)
		if err != nil {
			return nil, err
		}
		err = s.store.DeleteByID(ctx, shop, id)
		if errors.Is(err, shared.ErrNotFound) {
			log.Info("Badge to delete not found", zap.String("badge_id", id.String()))
			return &AdminActionResult{Action: ActionDelete}, nil
		}
		if err != nil {
			return nil, err
		}
		log.Info("Badge deleted", zap.String("badge_id", id.String()))
		return &AdminActionResult{Action: ActionDelete, Found: true, DeletedID: &id}, nil

	case strings.TrimSpace(req.EditingID) != "":
		id, err := parseBadgeID(req.EditingID)
		if err != nil {
			return nil, err
		}
		in := appearanceInput{Name: strings.TrimSpace(req.Name), Color: normalizeColor(req.Color)}
		if err := s.validate.Struct(in); err != nil {
			return nil, validationError(err)
		}
		updated, err := s.store.UpdateByID(ctx, shop, id, in.Name, in.Color)
		if errors.Is(err, shared.ErrNotFound) {
			log.Info("Badge to edit not found", zap.String("badge_id", id.String()))
			return &AdminActionResult{Action: ActionEdit}, nil
		}
		if err != nil {
			return nil, err
		}
		log.Info("Badge updated", zap.String("badge_id", id.String()))
		return &AdminActionResult{Action: ActionEdit, Found: true, UpdatedRecord: updated}, nil
	}

	productIDs, err := req.productIDs()
	if err != nil {
		return nil, err
	}
	in := createInput{
		ProductIDs: productIDs,
		Name:       strings.TrimSpace(req.Name),
		Color:      normalizeColor(req.Color),
	}
	if err := s.validate.Struct(in); err != nil {
		return nil, validationError(err)
	}

	created, err := s.store.CreateMany(ctx, shop, in.ProductIDs, in.Name, in.Color)
	if err != nil {
		return nil, err
	}
	log.Info("Badges created", zap.Int("count", len(created)))

	return &AdminActionResult{Action: ActionCreate, Found: true, CreatedRecords: created}, nil
}

// List returns the shop's badges newest first with the total count.
func (s *AdminService) List(ctx context.Context, shop string) (*AdminListResult, error) {
	badges, err := s.store.ListByShop(ctx, shop)
	if err != nil {
		return nil, err
	}
	total, err := s.store.CountByShop(ctx, shop)
	if err != nil {
		return nil, err
	}
	return &AdminListResult{Badges: badges, Total: total}, nil
}

func normalizeColor(c string) string {
	return strings.ToLower(strings.TrimSpace(c))
}
