package handlers

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"

	"flowmarine/internal/caching"
)

// HealthHandlers handles health check and monitoring endpoints
type HealthHandlers struct {
	db       *pgxpool.Pool
	cacheSvc caching.CacheService
}

func NewHealthHandlers(db *pgxpool.Pool, cacheSvc caching.CacheService) *HealthHandlers {
	return &HealthHandlers{db: db, cacheSvc: cacheSvc}
}

// HealthStatus represents the overall health status
type HealthStatus struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Services  map[string]string `json:"services"`
	Version   string            `json:"version"`
}

// HealthCheck reports dependency health
func (h *HealthHandlers) HealthCheck(c echo.Context) error {
	ctx := c.Request().Context()
	health := &HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Services:  make(map[string]string),
		Version:   "1.0.0",
	}

	if err := h.checkDatabase(ctx); err != nil {
		health.Services["database"] = "unhealthy"
		health.Status = "degraded"
	} else {
		health.Services["database"] = "healthy"
	}

	if err := h.cacheSvc.Ping(ctx); err != nil {
		health.Services["redis"] = "unhealthy"
		health.Status = "degraded"
	} else {
		health.Services["redis"] = "healthy"
	}

	statusCode := http.StatusOK
	if health.Status == "degraded" {
		statusCode = http.StatusPartialContent
	}
	return c.JSON(statusCode, health)
}

func (h *HealthHandlers) checkDatabase(ctx context.Context) error {
	_, err := h.db.Exec(ctx, "SELECT 1")
	return err
}

// ReadinessCheck determines if the application is ready to serve traffic
func (h *HealthHandlers) ReadinessCheck(c echo.Context) error {
	ctx := c.Request().Context()
	if err := h.checkDatabase(ctx); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status":  "not_ready",
			"message": "Database unavailable",
		})
	}
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ready",
		"message": "All systems operational",
	})
}

// LivenessCheck is the basic liveness probe
func (h *HealthHandlers) LivenessCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":    "alive",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// GetMetrics provides lightweight process metrics
func (h *HealthHandlers) GetMetrics(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"timestamp":  time.Now().UTC(),
		"version":    "1.0.0",
		"goroutines": runtime.NumGoroutine(),
		"database_connections": map[string]interface{}{
			"max":   h.db.Config().MaxConns,
			"total": h.db.Stat().TotalConns(),
			"idle":  h.db.Stat().IdleConns(),
		},
	})
}
