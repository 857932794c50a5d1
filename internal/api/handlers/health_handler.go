package handlers

import (
	"context"
	"net/http"
	"time"

	"filmorate/internal/config"
	interfaces "filmorate/internal/interfaces/infrastructure"

	"github.com/gin-gonic/gin"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	cache        interfaces.CacheService
	cacheEnabled bool
}

// NewHealthHandler creates a new health handler. cache may be nil when caching is disabled.
func NewHealthHandler(cache interfaces.CacheService, cacheEnabled bool) *HealthHandler {
	return &HealthHandler{
		cache:        cache,
		cacheEnabled: cacheEnabled && cache != nil,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Version   string            `json:"version"`
	Services  map[string]string `json:"services"`
}

// HealthCheck handles GET /health
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	cfg := config.Get()

	services := map[string]string{
		"storage": "in-memory",
		"cache":   h.cacheStatus(c.Request.Context()),
	}

	status := "healthy"
	if services["cache"] == "unhealthy" {
		status = "degraded"
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:    status,
		Timestamp: time.Now(),
		Version:   cfg.App.Version,
		Services:  services,
	})
}

// ReadinessCheck handles GET /ready
func (h *HealthHandler) ReadinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, map[string]interface{}{
		"ready":     true,
		"timestamp": time.Now(),
	})
}

// LivenessCheck handles GET /live
func (h *HealthHandler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, map[string]interface{}{
		"alive":     true,
		"timestamp": time.Now(),
	})
}

func (h *HealthHandler) cacheStatus(ctx context.Context) string {
	if !h.cacheEnabled {
		return "disabled"
	}
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := h.cache.Health(ctx); err != nil {
		return "unhealthy"
	}
	return "healthy"
}
