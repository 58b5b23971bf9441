package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type tracedBadge struct {
	ID        uint   `gorm:"primaryKey"`
	Shop      string `gorm:"size:255"`
	CreatedAt time.Time
}

func setupTracedDB(t *testing.T, cfg DBTracingConfig, log *zap.Logger) (*gorm.DB, *tracetest.SpanRecorder) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&tracedBadge{}))

	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	plugin := NewDBTracingPlugin(cfg, log, otelgorm.WithTracerProvider(tp))
	require.NoError(t, plugin.Register(db))
	return db, sr
}

func TestDefaultDBTracingConfig(t *testing.T) {
	cfg := DefaultDBTracingConfig()
	assert.False(t, cfg.Enabled)
	assert.False(t, cfg.LogFullSQL)
	assert.Equal(t, 200*time.Millisecond, cfg.SlowQueryThresh)
}

func TestDBTracingPlugin_Disabled(t *testing.T) {
	db, sr := setupTracedDB(t, DefaultDBTracingConfig(), zap.NewNop())

	require.NoError(t, db.Create(&tracedBadge{Shop: "s1.example"}).Error)
	assert.Empty(t, sr.Ended())
}

func TestDBTracingPlugin_RecordsSpans(t *testing.T) {
	cfg := DefaultDBTracingConfig()
	cfg.Enabled = true
	db, sr := setupTracedDB(t, cfg, zap.NewNop())

	require.NoError(t, db.Create(&tracedBadge{Shop: "s1.example"}).Error)
	var rows []tracedBadge
	require.NoError(t, db.Where("shop = ?", "s1.example").Find(&rows).Error)

	names := make([]string, 0)
	for _, s := range sr.Ended() {
		names = append(names, s.Name())
	}
	assert.Contains(t, names, "gorm.Create")
	assert.Contains(t, names, "gorm.Query")

	for _, s := range sr.Ended() {
		for _, kv := range s.Attributes() {
			if kv.Key == "db.statement" {
				assert.NotContains(t, kv.Value.AsString(), "s1.example", "bind variables must be masked")
			}
		}
	}
}

func TestDBTracingPlugin_MarksSlowQueries(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	cfg := DefaultDBTracingConfig()
	cfg.Enabled = true
	cfg.SlowQueryThresh = time.Nanosecond
	db, sr := setupTracedDB(t, cfg, zap.New(core))

	var rows []tracedBadge
	require.NoError(t, db.Find(&rows).Error)

	var slow bool
	for _, s := range sr.Ended() {
		for _, kv := range s.Attributes() {
			if kv.Key == "db.slow_query" && kv.Value.AsBool() {
				slow = true
			}
		}
	}
	assert.True(t, slow)
	assert.NotZero(t, logs.FilterMessage("Slow query").Len())
}

func TestDBTracingPlugin_MarksErrors(t *testing.T) {
	cfg := DefaultDBTracingConfig()
	cfg.Enabled = true
	db, sr := setupTracedDB(t, cfg, zap.NewNop())

	err := db.Exec("SELECT * FROM no_such_table").Error
	require.Error(t, err)

	var failed bool
	for _, s := range sr.Ended() {
		if s.Status().Code == codes.Error {
			failed = true
		}
	}
	assert.True(t, failed)
}
