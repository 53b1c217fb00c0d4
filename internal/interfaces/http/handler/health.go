package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/Graviton17/TrustChain-sub001/internal/infrastructure/logger"
	"github.com/Graviton17/TrustChain-sub001/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Pinger checks that the database answers
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthStatus is the body of a health response
type HealthStatus struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Setup    string `json:"setup"`
	Version  string `json:"version,omitempty"`
	Uptime   string `json:"uptime"`
}

// HealthHandler reports liveness of the service and its database.
type HealthHandler struct {
	db        Pinger
	setupDone func() bool
	version   string
	started   time.Time
	timeout   time.Duration
}

// NewHealthHandler creates a HealthHandler. setupDone may be nil.
func NewHealthHandler(db Pinger, setupDone func() bool, version string) *HealthHandler {
	return &HealthHandler{
		db:        db,
		setupDone: setupDone,
		version:   version,
		started:   time.Now(),
		timeout:   2 * time.Second,
	}
}

// Health handles GET /health: 200 when the database answers and setup has
// finished, 503 otherwise.
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	status := HealthStatus{
		Status:   "ok",
		Database: "up",
		Setup:    "done",
		Version:  h.version,
		Uptime:   time.Since(h.started).Round(time.Second).String(),
	}

	if err := h.db.Ping(ctx); err != nil {
		logger.L(ctx).Warn("Health check database ping failed", zap.Error(err))
		status.Status, status.Database = "unavailable", "down"
	}
	if h.setupDone != nil && !h.setupDone() {
		status.Status, status.Setup = "unavailable", "pending"
	}

	if status.Status != "ok" {
		c.JSON(http.StatusServiceUnavailable, dto.Response{
			Success: false,
			Data:    status,
			Error:   "service unavailable",
			Code:    dto.ErrCodeServiceUnavailable,
		})
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(status, ""))
}
