package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/badgekit/backend/internal/application/teardown"
	"github.com/badgekit/backend/internal/domain/badge"
	"github.com/badgekit/backend/internal/domain/shared"
	"github.com/badgekit/backend/internal/infrastructure/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Webhook delivery headers.
const (
	WebhookTopicHeader = "X-Shopify-Topic"
	WebhookIDHeader    = "X-Shopify-Webhook-Id"
)

const defaultIdempotencyTTL = 24 * time.Hour

// Teardown runs the uninstall use case.
type Teardown interface {
	Handle(ctx context.Context, ev teardown.UninstalledEvent) teardown.Result
}

// SessionPresence reports whether a shop still has a stored session.
type SessionPresence interface {
	ExistsForShop(ctx context.Context, shop string) (bool, error)
}

// UninstallWebhookHandler receives app/uninstalled. The signature is checked
// by middleware before the handler runs.
type UninstallWebhookHandler struct {
	teardown    Teardown
	sessions    SessionPresence
	idempotency shared.IdempotencyStore
	ttl         time.Duration
}

// NewUninstallWebhookHandler creates a new UninstallWebhookHandler.
// idempotency may be nil, in which case redeliveries are processed again.
func NewUninstallWebhookHandler(td Teardown, sessions SessionPresence, idempotency shared.IdempotencyStore, ttl time.Duration) *UninstallWebhookHandler {
	if ttl <= 0 {
		ttl = defaultIdempotencyTTL
	}
	return &UninstallWebhookHandler{
		teardown:    td,
		sessions:    sessions,
		idempotency: idempotency,
		ttl:         ttl,
	}
}

type uninstallPayload struct {
	Domain          string `json:"domain"`
	MyshopifyDomain string `json:"myshopify_domain"`
}

// Handle godoc
// @ID           appUninstalled
// @Summary      app/uninstalled webhook
// @Description  Deletes the shop's sessions, then purges its badges on a best-effort basis.
// @Description  Responds 500 only when the sessions could not be deleted, so the delivery is retried.
// @Tags         webhooks
// @Accept       json
// @Param        X-Shopify-Hmac-Sha256 header string true "Base64 HMAC-SHA256 of the body"
// @Param        X-Shopify-Shop-Domain header string true "Shop domain"
// @Param        X-Shopify-Webhook-Id header string false "Delivery id"
// @Success      200
// @Failure      400
// @Failure      401
// @Failure      413
// @Failure      500
// @Router       /webhooks/app/uninstalled [post]
func (h *UninstallWebhookHandler) Handle(c *gin.Context) {
	ctx := c.Request.Context()

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}
		c.Status(http.StatusBadRequest)
		return
	}

	shop, ok := badge.NormalizeShop(c.GetHeader(ShopDomainHeader))
	if !ok {
		shop, ok = shopFromPayload(body)
	}
	if !ok {
		logger.L(ctx).Warn("Uninstall webhook without a shop")
		c.Status(http.StatusBadRequest)
		return
	}

	ctx, log := logger.WithShop(ctx, logger.L(ctx), shop)

	ev := teardown.UninstalledEvent{
		Shop:      shop,
		Topic:     c.GetHeader(WebhookTopicHeader),
		WebhookID: strings.TrimSpace(c.GetHeader(WebhookIDHeader)),
	}

	key := ""
	if ev.WebhookID != "" && h.idempotency != nil {
		key = "app/uninstalled:" + ev.WebhookID
		first, err := h.idempotency.MarkProcessed(ctx, key, h.ttl)
		switch {
		case err != nil:
			log.Warn("Idempotency check failed, processing delivery", zap.Error(err))
			key = ""
		case !first:
			log.Info("Duplicate uninstall delivery ignored", zap.String("webhook_id", ev.WebhookID))
			c.Status(http.StatusOK)
			return
		}
	}

	present, err := h.sessions.ExistsForShop(ctx, shop)
	if err != nil {
		log.Error("Session lookup failed", zap.Error(err))
		h.forget(ctx, key)
		c.Status(http.StatusInternalServerError)
		return
	}
	ev.SessionPresent = present

	res := h.teardown.Handle(ctx, ev)
	if err := res.Err(); err != nil {
		h.forget(ctx, key)
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Status(http.StatusOK)
}

func (h *UninstallWebhookHandler) forget(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := h.idempotency.Forget(ctx, key); err != nil {
		logger.L(ctx).Warn("Failed to release idempotency key", zap.String("key", key), zap.Error(err))
	}
}

func shopFromPayload(body []byte) (string, bool) {
	var p uninstallPayload
	if len(body) == 0 || json.Unmarshal(body, &p) != nil {
		return "", false
	}
	if shop, ok := badge.NormalizeShop(p.MyshopifyDomain); ok {
		return shop, true
	}
	return badge.NormalizeShop(p.Domain)
}
