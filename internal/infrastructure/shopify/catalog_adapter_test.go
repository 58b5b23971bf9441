package shopify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/badgekit/backend/internal/application/catalog"
	"github.com/badgekit/backend/internal/domain/session"
	"github.com/badgekit/backend/internal/domain/shared"
	"github.com/badgekit/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testShop = "demo.myshopify.com"

type fakeSessions map[string]*session.Session

func (f fakeSessions) FindOffline(_ context.Context, shop string) (*session.Session, error) {
	if s, ok := f[shop]; ok {
		return s, nil
	}
	return nil, shared.ErrNotFound
}

// redirectTransport sends every request to target regardless of host.
type redirectTransport struct {
	target *url.URL
}

func (rt redirectTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.URL.Scheme = rt.target.Scheme
	req.URL.Host = rt.target.Host
	return http.DefaultTransport.RoundTrip(req)
}

func newTestAdapter(t *testing.T, handler http.HandlerFunc, sessions fakeSessions) *CatalogAdapter {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	target, err := url.Parse(srv.URL)
	require.NoError(t, err)

	cfg := config.ShopifyConfig{APIKey: "key", APISecret: "secret", APIVersion: "2024-10"}
	return NewCatalogAdapter(cfg, sessions,
		WithHTTPClient(&http.Client{Transport: redirectTransport{target: target}, Timeout: 5 * time.Second}))
}

func TestCatalogAdapter_ListProducts(t *testing.T) {
	sessions := fakeSessions{testShop: {ID: session.OfflineID(testShop), Shop: testShop, AccessToken: "shpat_abc"}}

	var gotToken, gotPath, gotLimit string
	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("X-Shopify-Access-Token")
		gotPath = r.URL.Path
		gotLimit = r.URL.Query().Get("limit")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"products":[
			{"id":1001,"title":"Shirt","handle":"shirt","admin_graphql_api_id":"gid://shopify/Product/1001","images":[{"src":"https://cdn.example/shirt.png"}]},
			{"id":1002,"title":"Hat","handle":"hat"}
		]}`))
	}, sessions)

	products, err := adapter.ListProducts(context.Background(), testShop, 5)
	require.NoError(t, err)

	assert.Equal(t, "shpat_abc", gotToken)
	assert.True(t, strings.HasSuffix(gotPath, "/products.json"), gotPath)
	assert.Equal(t, "5", gotLimit)
	assert.Equal(t, []catalog.Product{
		{ID: "gid://shopify/Product/1001", Title: "Shirt", Handle: "shirt", ImageURL: "https://cdn.example/shirt.png"},
		{ID: "gid://shopify/Product/1002", Title: "Hat", Handle: "hat"},
	}, products)
}

func TestCatalogAdapter_ListProducts_Errors(t *testing.T) {
	unreachable := func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request to %s", r.URL)
	}

	t.Run("no session", func(t *testing.T) {
		adapter := newTestAdapter(t, unreachable, fakeSessions{})
		_, err := adapter.ListProducts(context.Background(), testShop, 5)
		assert.ErrorIs(t, err, ErrNotInstalled)
	})

	t.Run("expired session", func(t *testing.T) {
		past := time.Now().Add(-time.Hour)
		adapter := newTestAdapter(t, unreachable, fakeSessions{
			testShop: {Shop: testShop, AccessToken: "shpat_abc", Expires: &past},
		})
		_, err := adapter.ListProducts(context.Background(), testShop, 5)
		assert.ErrorIs(t, err, ErrNotInstalled)
	})

	t.Run("platform rejects the token", func(t *testing.T) {
		adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"errors":"[API] Invalid API key or access token"}`))
		}, fakeSessions{testShop: {Shop: testShop, AccessToken: "revoked"}})

		_, err := adapter.ListProducts(context.Background(), testShop, 5)
		assert.ErrorIs(t, err, shared.ErrUnavailable)
	})
}
