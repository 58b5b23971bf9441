package teardown

import (
	"context"
	"fmt"

	"github.com/badgekit/backend/internal/domain/badge"
	"github.com/badgekit/backend/internal/domain/session"
	"go.uber.org/zap"
)

// OrphanStore is what the sweeper needs from the badge store.
type OrphanStore interface {
	badge.ShopLister
	DeleteAllForShop(ctx context.Context, shop string) (int64, error)
}

// SweepReport counts one sweep.
type SweepReport struct {
	ShopsScanned  int
	ShopsPurged   int
	BadgesDeleted int64
	Failures      int
}

// SweepService deletes badges of shops that no longer have a session.
type SweepService struct {
	badges   OrphanStore
	sessions session.Store
	logger   *zap.Logger
}

// NewSweepService creates a new SweepService
func NewSweepService(badges OrphanStore, sessions session.Store, logger *zap.Logger) *SweepService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SweepService{badges: badges, sessions: sessions, logger: logger}
}

// Sweep purges every orphaned shop. A failure on one shop is logged and the
// sweep moves on; only failing to list shops is returned.
func (s *SweepService) Sweep(ctx context.Context) (SweepReport, error) {
	var report SweepReport

	shops, err := s.badges.ListShops(ctx)
	if err != nil {
		return report, fmt.Errorf("list badge shops: %w", err)
	}

	for _, shop := range shops {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		report.ShopsScanned++

		installed, err := s.sessions.ExistsForShop(ctx, shop)
		if err != nil {
			report.Failures++
			s.logger.Warn("Session check failed during sweep", zap.String("shop", shop), zap.Error(err))
			continue
		}
		if installed {
			continue
		}

		n, err := s.badges.DeleteAllForShop(ctx, shop)
		if err != nil {
			report.Failures++
			s.logger.Warn("Orphan purge failed", zap.String("shop", shop), zap.Error(err))
			continue
		}
		report.ShopsPurged++
		report.BadgesDeleted += n
		s.logger.Info("Purged orphaned badges", zap.String("shop", shop), zap.Int64("badges_deleted", n))
	}

	return report, nil
}
