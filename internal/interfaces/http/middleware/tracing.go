package middleware

import (
	"net/http"

	"github.com/badgekit/backend/internal/infrastructure/telemetry"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TraceIDHeader echoes the request's trace id so a client report can be
// matched to its trace.
const TraceIDHeader = "X-Trace-ID"

// TracingConfig holds configuration for the tracing middleware.
type TracingConfig struct {
	ServiceName string
	Enabled     bool
}

// DefaultTracingConfig returns default tracing configuration.
func DefaultTracingConfig() TracingConfig {
	return TracingConfig{
		ServiceName: "badgekit-backend",
		Enabled:     true,
	}
}

// TracingWithConfig returns the otelgin middleware followed by a span
// enricher. Spans are named after the route pattern, carry request_id and,
// on admin routes, shop. The trace id is echoed in X-Trace-ID. 5xx responses mark the span as failed.
func TracingWithConfig(cfg TracingConfig) []gin.HandlerFunc {
	if !cfg.Enabled {
		return []gin.HandlerFunc{func(c *gin.Context) { c.Next() }}
	}
	return []gin.HandlerFunc{
		otelgin.Middleware(cfg.ServiceName),
		enrichSpan,
	}
}

func enrichSpan(c *gin.Context) {
	span := trace.SpanFromContext(c.Request.Context())
	if traceID := telemetry.TraceID(c.Request.Context()); traceID != "" {
		c.Header(TraceIDHeader, traceID)
	}
	if requestID := GetRequestID(c); requestID != "" && span.IsRecording() {
		span.SetAttributes(attribute.String("request_id", requestID))
	}

	c.Next()

	if !span.IsRecording() {
		return
	}
	if shop := GetShop(c); shop != "" {
		span.SetAttributes(attribute.String("shop", shop))
	}
	if status := c.Writer.Status(); status >= http.StatusInternalServerError {
		span.SetStatus(codes.Error, http.StatusText(status))
	}
}
