// Package persistence implements the badge and session stores on GORM.
package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/badgekit/backend/internal/infrastructure/config"
	"github.com/badgekit/backend/internal/infrastructure/persistence/models"
	"github.com/badgekit/backend/internal/infrastructure/persistence/shopscope"
	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Database holds the database connection
type Database struct {
	DB *gorm.DB
}

type connectOptions struct {
	gormLogger      gormlogger.Interface
	initialInterval time.Duration
	logger          *zap.Logger
}

// ConnectOption configures Connect
type ConnectOption func(*connectOptions)

// WithGormLogger routes SQL logging through l.
func WithGormLogger(l gormlogger.Interface) ConnectOption {
	return func(o *connectOptions) { o.gormLogger = l }
}

// WithLogger sets the logger that reports connection retries.
func WithLogger(l *zap.Logger) ConnectOption {
	return func(o *connectOptions) { o.logger = l }
}

// WithRetryInterval sets the first backoff interval between ping attempts.
func WithRetryInterval(d time.Duration) ConnectOption {
	return func(o *connectOptions) { o.initialInterval = d }
}

// NewDatabase connects to PostgreSQL using cfg.
func NewDatabase(ctx context.Context, cfg *config.DatabaseConfig, opts ...ConnectOption) (*Database, error) {
	return Connect(ctx, postgres.Open(cfg.DSN()), cfg, opts...)
}

// Connect opens dialector, applies pool settings, installs the shop guard
// and pings until the database answers or cfg.ConnectRetries is exhausted.
func Connect(ctx context.Context, dialector gorm.Dialector, cfg *config.DatabaseConfig, opts ...ConnectOption) (*Database, error) {
	o := connectOptions{
		gormLogger:      gormlogger.Default.LogMode(gormlogger.Silent),
		initialInterval: 500 * time.Millisecond,
		logger:          zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 o.gormLogger,
		SkipDefaultTransaction: true,
		DisableAutomaticPing:   true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := RegisterShopGuard(db); err != nil {
		return nil, fmt.Errorf("failed to register shop guard: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = o.initialInterval
	attempt := 0
	err = backoff.RetryNotify(
		func() error {
			attempt++
			return sqlDB.PingContext(ctx)
		},
		backoff.WithContext(backoff.WithMaxRetries(policy, uint64(cfg.ConnectRetries)), ctx),
		func(err error, wait time.Duration) {
			o.logger.Warn("Database not reachable, retrying",
				zap.Int("attempt", attempt),
				zap.Duration("backoff", wait),
				zap.Error(err))
		},
	)
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database after %d attempts: %w", attempt, err)
	}

	return &Database{DB: db}, nil
}

// RegisterShopGuard refuses unscoped statements on shop-owned tables.
func RegisterShopGuard(db *gorm.DB) error {
	return shopscope.NewGuard(models.BadgeModel{}.TableName(), models.SessionModel{}.TableName()).Register(db)
}

// Close closes the database connection
func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Close()
}

// Ping checks if the database connection is alive
func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// PoolStats is the connection pool snapshot reported by the health endpoint.
type PoolStats struct {
	MaxOpenConnections int           `json:"max_open_connections"`
	OpenConnections    int           `json:"open_connections"`
	InUse              int           `json:"in_use"`
	Idle               int           `json:"idle"`
	WaitCount          int64         `json:"wait_count"`
	WaitDuration       time.Duration `json:"wait_duration"`
}

// Stats returns connection pool statistics.
func (d *Database) Stats() (PoolStats, error) {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return PoolStats{}, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	s := sqlDB.Stats()
	return PoolStats{
		MaxOpenConnections: s.MaxOpenConnections,
		OpenConnections:    s.OpenConnections,
		InUse:              s.InUse,
		Idle:               s.Idle,
		WaitCount:          s.WaitCount,
		WaitDuration:       s.WaitDuration,
	}, nil
}
