package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"time"

	"github.com/badgekit/backend/internal/domain/badge"
)

// BadgeResponse is a badge as the admin page sees it.
// @Description Badge attached to a catalog product
type BadgeResponse struct {
	ID        string    `json:"id" example:"0f8fad5b-d9cb-469f-a165-70867728950e"`
	Shop      string    `json:"shop" example:"demo.myshopify.com"`
	ProductID string    `json:"productId" example:"gid://shopify/Product/1234567890"`
	Name      string    `json:"name" example:"Sale"`
	Color     string    `json:"color" example:"#ef4444"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ToBadgeResponse converts a domain badge.
func ToBadgeResponse(b badge.Badge) BadgeResponse {
	return BadgeResponse{
		ID:        b.ID.String(),
		Shop:      b.Shop,
		ProductID: b.ProductID,
		Name:      b.Name,
		Color:     b.Color,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// ToBadgeResponses converts a list, keeping its order.
func ToBadgeResponses(badges []badge.Badge) []BadgeResponse {
	out := make([]BadgeResponse, 0, len(badges))
	for _, b := range badges {
		out = append(out, ToBadgeResponse(b))
	}
	return out
}

// BadgeMutationRequest is the single admin form submission. Exactly one
// operation runs: deleteId wins over editingId, which wins over create.
// productIds is accepted as a JSON array or as the JSON-encoded string the
// embedded form posts.
type BadgeMutationRequest struct {
	DeleteID   string   `json:"deleteId" form:"deleteId"`
	EditingID  string   `json:"editingId" form:"editingId"`
	ProductIDs []string `json:"-" form:"-"`
	// ProductIDsRaw holds productIds when it arrives as a string.
	ProductIDsRaw string `json:"-" form:"productIds"`
	Name          string `json:"name" form:"name" example:"Sale"`
	Color         string `json:"color" form:"color" example:"#ef4444"`
	// BadgeName and BadgeColor are the field names the embedded admin form
	// posts. Name and Color win when both are present.
	BadgeName  string `json:"badgeName,omitempty" form:"badgeName"`
	BadgeColor string `json:"badgeColor,omitempty" form:"badgeColor"`
}

// Appearance returns the submitted name and color, falling back to the
// badgeName and badgeColor fields.
func (r *BadgeMutationRequest) Appearance() (name, color string) {
	name, color = r.Name, r.Color
	if name == "" {
		name = r.BadgeName
	}
	if color == "" {
		color = r.BadgeColor
	}
	return name, color
}

// ErrProductIDsType is returned when productIds is neither an array nor a string.
var ErrProductIDsType = errors.New("productIds must be an array of strings or a JSON-encoded string")

// UnmarshalJSON accepts productIds in both shapes.
func (r *BadgeMutationRequest) UnmarshalJSON(data []byte) error {
	type plain BadgeMutationRequest
	aux := struct {
		*plain
		ProductIDs json.RawMessage `json:"productIds"`
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	raw := bytes.TrimSpace(aux.ProductIDs)
	switch {
	case len(raw) == 0 || bytes.Equal(raw, []byte("null")):
	case raw[0] == '"':
		return json.Unmarshal(raw, &r.ProductIDsRaw)
	case raw[0] == '[':
		return json.Unmarshal(raw, &r.ProductIDs)
	default:
		return ErrProductIDsType
	}
	return nil
}

// DeletedResponse answers a delete. DeletedID is null when no badge of the
// shop had that id.
type DeletedResponse struct {
	DeletedID *string `json:"deletedId"`
}

// UpdatedResponse answers an edit. UpdatedRecord is null when no badge of
// the shop had that id.
type UpdatedResponse struct {
	UpdatedRecord *BadgeResponse `json:"updatedRecord"`
}

// CreatedResponse answers a create. Records follow the submitted order.
type CreatedResponse struct {
	CreatedRecords []BadgeResponse `json:"createdRecords"`
}

// PublicBadge is the storefront projection.
type PublicBadge struct {
	Name  string `json:"name" example:"Sale"`
	Color string `json:"color" example:"#ef4444"`
}

// PublicBadgeResponse is the storefront lookup body. Badge is null when
// nothing matched.
type PublicBadgeResponse struct {
	Badge *PublicBadge `json:"badge"`
}

// ProductResponse is one catalog product offered by the picker.
type ProductResponse struct {
	ID       string `json:"id" example:"gid://shopify/Product/1234567890"`
	Title    string `json:"title" example:"Classic Tee"`
	Handle   string `json:"handle" example:"classic-tee"`
	ImageURL string `json:"imageUrl,omitempty"`
}
