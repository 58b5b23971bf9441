// Package badge implements the admin and storefront use cases for badges.
package badge

import (
	"encoding/json"
	"strings"

	"github.com/badgekit/backend/internal/domain/badge"
	"github.com/badgekit/backend/internal/domain/shared"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// AdminActionRequest is one submission of the admin form. At most one of
// delete, edit or create runs; see AdminService.Dispatch.
type AdminActionRequest struct {
	DeleteID  string
	EditingID string

	// ProductIDsJSON is the JSON array string the embedded form posts. When
	// set it takes precedence over ProductIDs.
	ProductIDsJSON string
	ProductIDs     []string

	Name  string
	Color string
}

// ActionKind names the branch Dispatch took.
type ActionKind string

const (
	ActionDelete ActionKind = "delete"
	ActionEdit   ActionKind = "edit"
	ActionCreate ActionKind = "create"
)

// AdminActionResult is the outcome of Dispatch. Found is false when a delete
// or edit targeted a badge the shop does not own.
type AdminActionResult struct {
	Action         ActionKind
	Found          bool
	DeletedID      *uuid.UUID
	UpdatedRecord  *badge.Badge
	CreatedRecords []badge.Badge
}

// AdminListResult is the admin page listing.
type AdminListResult struct {
	Badges []badge.Badge
	Total  int64
}

// createInput is the validated create branch.
type createInput struct {
	ProductIDs []string `validate:"required,min=1,dive,required"`
	Name       string   `validate:"required,max=100"`
	Color      string   `validate:"required,hexcolor"`
}

// appearanceInput is the validated edit branch.
type appearanceInput struct {
	Name  string `validate:"required,max=100"`
	Color string `validate:"required,hexcolor"`
}

var (
	ErrInvalidProductIDs = shared.NewValidationError("productIds must be a non-empty JSON array of product ids")
	ErrInvalidBadgeID    = shared.NewValidationError("badge id must be a UUID")
	ErrInvalidColor      = shared.NewValidationError("color must be a hex color such as #ef4444")
	ErrInvalidName       = shared.NewValidationError("name must be 1 to 100 characters")
)

// parseBadgeID parses a delete or edit target.
func parseBadgeID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, ErrInvalidBadgeID
	}
	return id, nil
}

// productIDs decodes and canonicalizes the create branch's product list.
func (r AdminActionRequest) productIDs() ([]string, error) {
	raw := r.ProductIDs
	if strings.TrimSpace(r.ProductIDsJSON) != "" {
		if err := json.Unmarshal([]byte(r.ProductIDsJSON), &raw); err != nil {
			return nil, ErrInvalidProductIDs
		}
	}
	if len(raw) == 0 {
		return nil, ErrInvalidProductIDs
	}

	ids := make([]string, 0, len(raw))
	for _, ref := range raw {
		gid, ok := badge.NormalizeProductID(ref)
		if !ok {
			return nil, shared.NewValidationError("invalid product id: " + ref)
		}
		ids = append(ids, gid)
	}
	return ids, nil
}

// validationError maps the first validator failure to a domain error.
func validationError(err error) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return shared.NewValidationError(err.Error())
	}
	switch verrs[0].Field() {
	case "Color":
		return ErrInvalidColor
	case "Name":
		return ErrInvalidName
	default:
		return ErrInvalidProductIDs
	}
}
