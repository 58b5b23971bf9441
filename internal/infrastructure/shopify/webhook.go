package shopify

import (
	"net/http"
	"strings"

	"github.com/badgekit/backend/internal/infrastructure/config"
	goshopify "github.com/bold-commerce/go-shopify/v4"
)

// HeaderHmac carries the base64 HMAC-SHA256 of the delivery body.
const HeaderHmac = "X-Shopify-Hmac-Sha256"

// WebhookVerifier checks the HMAC signature of webhook deliveries.
type WebhookVerifier struct {
	app goshopify.App
}

// NewWebhookVerifier creates a verifier keyed by the app secret.
func NewWebhookVerifier(cfg config.ShopifyConfig) *WebhookVerifier {
	return &WebhookVerifier{app: NewApp(cfg)}
}

// Verify reports whether r carries a valid signature for its body. The body
// stays readable afterwards.
func (v *WebhookVerifier) Verify(r *http.Request) bool {
	if v.app.ApiSecret == "" || strings.TrimSpace(r.Header.Get(HeaderHmac)) == "" {
		return false
	}
	return v.app.VerifyWebhookRequest(r)
}
