package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/maximiza-sistemas/edu-backend/internal/dto"
	"github.com/maximiza-sistemas/edu-backend/pkg/response"
)

const healthPingTimeout = 2 * time.Second

// PingFunc probes the database.
type PingFunc func(ctx context.Context) error

// HealthHandler liveness probe.
type HealthHandler struct {
	ping PingFunc
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(ping PingFunc) *HealthHandler {
	return &HealthHandler{ping: ping}
}

// Check always answers 200; the database field reports connectivity.
// GET /health, GET /api/health
func (h *HealthHandler) Check(c *gin.Context) {
	status := "connected"
	if h.ping == nil {
		status = "disconnected"
	} else {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthPingTimeout)
		defer cancel()
		if err := h.ping(ctx); err != nil {
			status = "disconnected"
		}
	}

	response.OK(c, dto.HealthResponse{
		Status:    "ok",
		Database:  status,
		Timestamp: time.Now().UTC().Format("2006-01-02T15:04:05.000Z"),
	})
}
