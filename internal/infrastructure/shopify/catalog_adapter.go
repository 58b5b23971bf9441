package shopify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/badgekit/backend/internal/application/catalog"
	"github.com/badgekit/backend/internal/domain/badge"
	"github.com/badgekit/backend/internal/domain/session"
	"github.com/badgekit/backend/internal/domain/shared"
	"github.com/badgekit/backend/internal/infrastructure/config"
	"github.com/badgekit/backend/internal/infrastructure/telemetry"
	goshopify "github.com/bold-commerce/go-shopify/v4"
	"go.uber.org/zap"
)

// maxRetries is how often go-shopify retries throttled or failed calls.
const maxRetries = 3

var (
	// ErrNotInstalled means the shop has no usable offline session.
	ErrNotInstalled = shared.NewDomainError(shared.ErrUnauthorized.Code, "shop has no active installation")
)

// OfflineSessions finds the offline session holding a shop's Admin API token.
type OfflineSessions interface {
	FindOffline(ctx context.Context, shop string) (*session.Session, error)
}

// CatalogAdapter reads products through the Admin REST API. It implements
// catalog.ProductSource and never writes to the platform.
type CatalogAdapter struct {
	app        goshopify.App
	apiVersion string
	sessions   OfflineSessions
	httpClient *http.Client
	now        func() time.Time
	logger     *zap.Logger
}

// CatalogOption configures a CatalogAdapter
type CatalogOption func(*CatalogAdapter)

// WithHTTPClient replaces the HTTP client used for Admin API calls.
func WithHTTPClient(c *http.Client) CatalogOption {
	return func(a *CatalogAdapter) { a.httpClient = c }
}

// WithCatalogLogger sets the adapter's logger.
func WithCatalogLogger(l *zap.Logger) CatalogOption {
	return func(a *CatalogAdapter) { a.logger = l }
}

// NewCatalogAdapter creates a new CatalogAdapter
func NewCatalogAdapter(cfg config.ShopifyConfig, sessions OfflineSessions, opts ...CatalogOption) *CatalogAdapter {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	a := &CatalogAdapter{
		app:        NewApp(cfg),
		apiVersion: cfg.APIVersion,
		sessions:   sessions,
		httpClient: &http.Client{Timeout: timeout},
		now:        time.Now,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

var _ catalog.ProductSource = (*CatalogAdapter)(nil)

// ListProducts returns the first limit products of the shop's catalog.
func (a *CatalogAdapter) ListProducts(ctx context.Context, shop string, limit int) ([]catalog.Product, error) {
	sess, err := a.sessions.FindOffline(ctx, shop)
	if errors.Is(err, shared.ErrNotFound) {
		return nil, ErrNotInstalled
	}
	if err != nil {
		return nil, err
	}
	if sess.Expired(a.now()) || sess.AccessToken == "" {
		return nil, ErrNotInstalled
	}

	opts := []goshopify.Option{
		goshopify.WithHTTPClient(a.httpClient),
		goshopify.WithRetry(maxRetries),
	}
	if a.apiVersion != "" {
		opts = append(opts, goshopify.WithVersion(a.apiVersion))
	}
	client, err := goshopify.NewClient(a.app, shop, sess.AccessToken, opts...)
	if err != nil {
		return nil, fmt.Errorf("create shopify client: %w", err)
	}

	ctx, span := telemetry.StartClientSpan(ctx, "shopify.products.list", telemetry.AttrShop.String(shop))
	defer span.End()

	products, err := client.Product.List(ctx, goshopify.ListOptions{Limit: limit})
	if err != nil {
		telemetry.Fail(span, err)
		a.logger.Warn("Shopify product list failed", zap.String("shop", shop), zap.Error(err))
		return nil, fmt.Errorf("%w: list products: %v", shared.ErrUnavailable, err)
	}

	out := make([]catalog.Product, 0, len(products))
	for _, p := range products {
		out = append(out, toCatalogProduct(p))
	}
	return out, nil
}

func toCatalogProduct(p goshopify.Product) catalog.Product {
	id := p.AdminGraphqlApiId
	if id == "" {
		id = badge.ProductGIDPrefix + strconv.FormatUint(p.Id, 10)
	}
	out := catalog.Product{ID: id, Title: p.Title, Handle: p.Handle}
	if len(p.Images) > 0 {
		out.ImageURL = p.Images[0].Src
	}
	return out
}
