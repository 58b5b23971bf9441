package handler

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/badgekit/backend/internal/infrastructure/persistence"
	"github.com/gin-gonic/gin"
)

// HealthDatabase is the part of the database the health check needs.
type HealthDatabase interface {
	Ping(ctx context.Context) error
	Stats() (persistence.PoolStats, error)
}

// HealthHandler reports liveness and database reachability.
type HealthHandler struct {
	db        HealthDatabase
	version   string
	startTime time.Time
	timeout   time.Duration
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(db HealthDatabase, version string) *HealthHandler {
	return &HealthHandler{
		db:        db,
		version:   version,
		startTime: time.Now(),
		timeout:   2 * time.Second,
	}
}

// HealthResponse is the /health body.
// @name HandlerHealthResponse
type HealthResponse struct {
	Status    string                 `json:"status" example:"ok"`
	Version   string                 `json:"version" example:"1.0.0"`
	GoVersion string                 `json:"go_version" example:"go1.25.5"`
	Uptime    string                 `json:"uptime" example:"1h30m45s"`
	Database  string                 `json:"database" example:"ok"`
	Pool      *persistence.PoolStats `json:"pool,omitempty"`
}

// Check godoc
// @ID           healthCheck
// @Summary      Health check
// @Description  Liveness plus a database ping. Answers 503 when the database is unreachable.
// @Tags         system
// @Produce      json
// @Success      200 {object} HealthResponse
// @Failure      503 {object} HealthResponse
// @Router       /health [get]
func (h *HealthHandler) Check(c *gin.Context) {
	resp := HealthResponse{
		Status:    "ok",
		Version:   h.version,
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
		Database:  "ok",
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		_ = c.Error(err)
		resp.Status = "degraded"
		resp.Database = "unreachable"
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}
	if stats, err := h.db.Stats(); err == nil {
		resp.Pool = &stats
	}
	c.JSON(http.StatusOK, resp)
}
