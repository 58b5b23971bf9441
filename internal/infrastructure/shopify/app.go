// Package shopify adapts the Shopify Admin API and webhook signing to the
// badge service, using go-shopify.
package shopify

import (
	"strings"

	"github.com/badgekit/backend/internal/infrastructure/config"
	goshopify "github.com/bold-commerce/go-shopify/v4"
)

// NewApp builds the go-shopify app credentials from configuration.
func NewApp(cfg config.ShopifyConfig) goshopify.App {
	return goshopify.App{
		ApiKey:      cfg.APIKey,
		ApiSecret:   cfg.APISecret,
		RedirectUrl: strings.TrimRight(cfg.AppURL, "/") + "/auth/callback",
		Scope:       strings.Join(cfg.Scopes, ","),
	}
}
