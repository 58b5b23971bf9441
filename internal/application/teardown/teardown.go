// Package teardown removes a shop's data when the app is uninstalled.
//
// Deleting the shop's sessions is mandatory: its failure is reported so the
// platform redelivers the webhook. Purging the shop's badges is best effort:
// its failure is logged and left for the orphan sweeper.
package teardown

import (
	"context"
	"fmt"

	"github.com/badgekit/backend/internal/domain/badge"
	"github.com/badgekit/backend/internal/domain/session"
	"github.com/badgekit/backend/internal/infrastructure/telemetry"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// UninstalledEvent is a verified app/uninstalled delivery.
type UninstalledEvent struct {
	Shop           string
	SessionPresent bool
	Topic          string
	WebhookID      string
}

// CleanupError reports a failed best-effort purge.
type CleanupError struct {
	Shop string
	Err  error
}

func (e *CleanupError) Error() string {
	return fmt.Sprintf("badge cleanup for %s failed: %v", e.Shop, e.Err)
}

func (e *CleanupError) Unwrap() error { return e.Err }

// Result describes what Handle did.
type Result struct {
	Skipped         bool
	SessionsDeleted int64
	BadgesDeleted   int64

	// Mandatory is the session deletion failure, if any.
	Mandatory error
	// Advisory is the badge purge failure. It never fails the delivery.
	Advisory *CleanupError
}

// Err returns the error that must fail the delivery.
func (r Result) Err() error {
	return r.Mandatory
}

// Service handles app/uninstalled deliveries.
type Service struct {
	sessions session.Store
	badges   badge.Writer
	logger   *zap.Logger
}

// NewService creates a new teardown Service
func NewService(sessions session.Store, badges badge.Writer, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{sessions: sessions, badges: badges, logger: logger}
}

// Handle tears the shop down. Without a stored session there is nothing to
// do: the shop was already torn down or never completed installation.
func (s *Service) Handle(ctx context.Context, ev UninstalledEvent) Result {
	log := s.logger.With(
		zap.String("shop", ev.Shop),
		zap.String("topic", ev.Topic),
		zap.String("webhook_id", ev.WebhookID),
	)

	ctx, span := telemetry.StartSpan(ctx, "teardown", "handle",
		telemetry.AttrShop.String(ev.Shop),
		telemetry.AttrWebhookID.String(ev.WebhookID))
	defer span.End()

	if !ev.SessionPresent {
		telemetry.Event(span, "teardown_skipped")
		log.Info("No session for shop, skipping teardown")
		return Result{Skipped: true}
	}

	var res Result
	n, err := s.sessions.DeleteByShop(ctx, ev.Shop)
	if err != nil {
		log.Error("Failed to delete sessions", zap.Error(err))
		res.Mandatory = fmt.Errorf("delete sessions: %w", err)
		telemetry.Fail(span, res.Mandatory)
		return res
	}
	res.SessionsDeleted = n

	purged, err := s.badges.DeleteAllForShop(ctx, ev.Shop)
	if err != nil {
		res.Advisory = &CleanupError{Shop: ev.Shop, Err: err}
		telemetry.Event(span, "badge_cleanup_failed", attribute.String("error", err.Error()))
		log.Warn("Badge cleanup failed, leaving it to the orphan sweeper", zap.Error(err))
	} else {
		res.BadgesDeleted = purged
	}

	span.SetAttributes(
		attribute.Int64("sessions_deleted", res.SessionsDeleted),
		attribute.Int64("badges_deleted", res.BadgesDeleted))
	log.Info("Shop torn down",
		zap.Int64("sessions_deleted", res.SessionsDeleted),
		zap.Int64("badges_deleted", res.BadgesDeleted))
	return res
}
