package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ovnstore/backend/internal/infrastructure/logger"
)

// HealthCheck probes one backing dependency
type HealthCheck struct {
	Name  string
	Probe func(ctx context.Context) error
}

// HealthHandler reports liveness of the service and its backing stores
type HealthHandler struct {
	checks    []HealthCheck
	startTime time.Time
}

// NewHealthHandler creates a new HealthHandler
func NewHealthHandler(checks ...HealthCheck) *HealthHandler {
	return &HealthHandler{checks: checks, startTime: time.Now()}
}

// Health runs every registered probe and replies 503 when any fails
func (h *HealthHandler) Health(c *gin.Context) {
	reqLog := logger.GetGinLogger(c)
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	healthy := true
	results := make(map[string]string, len(h.checks))
	for _, check := range h.checks {
		if err := check.Probe(ctx); err != nil {
			reqLog.Warn("Health check failed",
				zap.String("check", check.Name), zap.Error(err))
			results[check.Name] = "error"
			healthy = false
			continue
		}
		results[check.Name] = "ok"
	}

	status := http.StatusOK
	state := "healthy"
	if !healthy {
		status = http.StatusServiceUnavailable
		state = "unhealthy"
	}

	c.JSON(status, gin.H{
		"status": state,
		"time":   time.Now().Format(time.RFC3339),
		"uptime": time.Since(h.startTime).Round(time.Second).String(),
		"checks": results,
	})
}
