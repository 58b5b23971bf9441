package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/badgekit/backend/internal/domain/badge"
	"github.com/badgekit/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBadgeMutationRequest_UnmarshalJSON(t *testing.T) {
	t.Run("array", func(t *testing.T) {
		var req BadgeMutationRequest
		require.NoError(t, json.Unmarshal([]byte(`{"productIds":["1","2"],"name":"Sale","color":"#ef4444"}`), &req))
		assert.Equal(t, []string{"1", "2"}, req.ProductIDs)
		assert.Empty(t, req.ProductIDsRaw)
		assert.Equal(t, "Sale", req.Name)
		assert.Equal(t, "#ef4444", req.Color)
	})

	t.Run("json encoded string", func(t *testing.T) {
		var req BadgeMutationRequest
		require.NoError(t, json.Unmarshal([]byte(`{"productIds":"[\"gid://shopify/Product/1\"]","name":"Sale"}`), &req))
		assert.Nil(t, req.ProductIDs)
		assert.Equal(t, `["gid://shopify/Product/1"]`, req.ProductIDsRaw)
	})

	t.Run("delete only", func(t *testing.T) {
		var req BadgeMutationRequest
		require.NoError(t, json.Unmarshal([]byte(`{"deleteId":"abc","productIds":null}`), &req))
		assert.Equal(t, "abc", req.DeleteID)
		assert.Nil(t, req.ProductIDs)
	})

	t.Run("wrong type", func(t *testing.T) {
		var req BadgeMutationRequest
		err := json.Unmarshal([]byte(`{"productIds":42}`), &req)
		assert.ErrorIs(t, err, ErrProductIDsType)
	})
}

func TestBadgeMutationRequest_Appearance(t *testing.T) {
	var req BadgeMutationRequest
	require.NoError(t, json.Unmarshal([]byte(`{"badgeName":"Sale","badgeColor":"#ef4444"}`), &req))
	name, color := req.Appearance()
	assert.Equal(t, "Sale", name)
	assert.Equal(t, "#ef4444", color)

	req = BadgeMutationRequest{Name: "Hot", Color: "#000", BadgeName: "Sale", BadgeColor: "#fff"}
	name, color = req.Appearance()
	assert.Equal(t, "Hot", name, "name wins over badgeName")
	assert.Equal(t, "#000", color)
}

func TestMutationResponses_NullShapes(t *testing.T) {
	b, err := json.Marshal(DeletedResponse{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"deletedId":null}`, string(b))

	b, err = json.Marshal(UpdatedResponse{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"updatedRecord":null}`, string(b))

	b, err = json.Marshal(PublicBadgeResponse{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"badge":null}`, string(b))
}

func TestToBadgeResponses(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	id := uuid.New()
	out := ToBadgeResponses([]badge.Badge{{
		BaseEntity: shared.BaseEntity{ID: id, CreatedAt: now, UpdatedAt: now},
		Shop:       "s1.example",
		ProductID:  "gid://shopify/Product/1",
		Name:       "Sale",
		Color:      "#ef4444",
	}})

	require.Len(t, out, 1)
	assert.Equal(t, id.String(), out[0].ID)
	assert.Equal(t, "gid://shopify/Product/1", out[0].ProductID)

	assert.NotNil(t, ToBadgeResponses(nil))
}
