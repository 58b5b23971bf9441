package telemetry

import (
	"context"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBTracingConfig holds configuration for database tracing.
type DBTracingConfig struct {
	Enabled         bool
	LogFullSQL      bool          // include bind variables in db.statement; never in production
	SlowQueryThresh time.Duration // spans above it get db.slow_query=true
	DBName          string
}

// DefaultDBTracingConfig returns default configuration for database tracing.
func DefaultDBTracingConfig() DBTracingConfig {
	return DBTracingConfig{
		SlowQueryThresh: 200 * time.Millisecond,
		DBName:          "badges",
	}
}

// DBTracingPlugin installs otelgorm and marks slow statements on its spans.
type DBTracingPlugin struct {
	config DBTracingConfig
	logger *zap.Logger
	opts   []otelgorm.Option
}

// NewDBTracingPlugin creates a new database tracing plugin. Extra otelgorm
// options are appended after the ones derived from cfg.
func NewDBTracingPlugin(cfg DBTracingConfig, logger *zap.Logger, opts ...otelgorm.Option) *DBTracingPlugin {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.SlowQueryThresh <= 0 {
		cfg.SlowQueryThresh = DefaultDBTracingConfig().SlowQueryThresh
	}
	return &DBTracingPlugin{config: cfg, logger: logger, opts: opts}
}

// Register installs the plugin on db. It is a no-op when disabled.
func (p *DBTracingPlugin) Register(db *gorm.DB) error {
	if !p.config.Enabled {
		p.logger.Debug("Database tracing disabled, skipping otelgorm registration")
		return nil
	}

	opts := []otelgorm.Option{
		otelgorm.WithDBName(p.config.DBName),
		otelgorm.WithoutMetrics(),
	}
	if !p.config.LogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	opts = append(opts, p.opts...)

	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}
	if err := p.registerCallbacks(db); err != nil {
		return err
	}

	p.logger.Info("Database tracing enabled",
		zap.Bool("log_full_sql", p.config.LogFullSQL),
		zap.Duration("slow_query_threshold", p.config.SlowQueryThresh),
	)
	return nil
}

// registerCallbacks hooks timing around every gorm operation. The after hook
// runs before otelgorm ends its span.
func (p *DBTracingPlugin) registerCallbacks(db *gorm.DB) error {
	cb := db.Callback()
	register := []func() error{
		func() error { return cb.Create().Before("gorm:create").Register("badge_timing:before_create", p.before) },
		func() error { return cb.Query().Before("gorm:query").Register("badge_timing:before_query", p.before) },
		func() error { return cb.Update().Before("gorm:update").Register("badge_timing:before_update", p.before) },
		func() error { return cb.Delete().Before("gorm:delete").Register("badge_timing:before_delete", p.before) },
		func() error { return cb.Row().Before("gorm:row").Register("badge_timing:before_row", p.before) },
		func() error { return cb.Raw().Before("gorm:raw").Register("badge_timing:before_raw", p.before) },
		func() error {
			return cb.Create().After("gorm:create").Before("otel:after:create").Register("badge_timing:after_create", p.after)
		},
		func() error {
			return cb.Query().After("gorm:query").Before("otel:after:select").Register("badge_timing:after_query", p.after)
		},
		func() error {
			return cb.Update().After("gorm:update").Before("otel:after:update").Register("badge_timing:after_update", p.after)
		},
		func() error {
			return cb.Delete().After("gorm:delete").Before("otel:after:delete").Register("badge_timing:after_delete", p.after)
		},
		func() error {
			return cb.Row().After("gorm:row").Before("otel:after:row").Register("badge_timing:after_row", p.after)
		},
		func() error {
			return cb.Raw().After("gorm:raw").Before("otel:after:raw").Register("badge_timing:after_raw", p.after)
		},
	}
	for _, fn := range register {
		if err := fn(); err != nil {
			return err
		}
	}
	return nil
}

type queryStartKey struct{}

func (p *DBTracingPlugin) before(db *gorm.DB) {
	if db.Statement.Context != nil {
		db.Statement.Context = context.WithValue(db.Statement.Context, queryStartKey{}, time.Now())
	}
}

func (p *DBTracingPlugin) after(db *gorm.DB) {
	ctx := db.Statement.Context
	if ctx == nil {
		return
	}
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}

	if start, ok := ctx.Value(queryStartKey{}).(time.Time); ok {
		elapsed := time.Since(start)
		if elapsed > p.config.SlowQueryThresh {
			span.SetAttributes(
				attribute.Bool("db.slow_query", true),
				attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
			)
			p.logger.Warn("Slow query",
				zap.String("table", db.Statement.Table),
				zap.Duration("elapsed", elapsed),
			)
		}
	}
}
