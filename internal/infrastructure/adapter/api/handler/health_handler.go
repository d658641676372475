package handler

import (
	"context"
	"net/http"

	coreport "github.com/amirhossein-jamali/qr-rewards/internal/domain/port/core"
	"github.com/amirhossein-jamali/qr-rewards/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// Pinger reports whether a backing store is reachable
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves the liveness endpoint
type HealthHandler struct {
	db     Pinger
	logger coreport.Logger
}

// NewHealthHandler creates a new health handler instance
func NewHealthHandler(db Pinger, logger coreport.Logger) *HealthHandler {
	return &HealthHandler{db: db, logger: logger}
}

// Health handles GET /health
func (h *HealthHandler) Health(c *gin.Context) {
	if err := h.db.Ping(c.Request.Context()); err != nil {
		h.logger.Warn("Health check failed", map[string]any{"error": err.Error()})
		c.JSON(http.StatusServiceUnavailable, dto.HealthResponse{Status: "degraded", Database: "down"})
		return
	}
	c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok", Database: "up"})
}
