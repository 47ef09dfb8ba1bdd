package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger checks a dependency.
type Pinger func(ctx context.Context) error

// HealthController handles health check endpoints.
type HealthController struct {
	database Pinger
	redis    Pinger
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Redis     string `json:"redis"`
	Timestamp string `json:"timestamp"`
}

// NewHealthController creates a new health controller instance. A nil redis
// pinger reports the cache as disabled.
func NewHealthController(database, redis Pinger) *HealthController {
	return &HealthController{database: database, redis: redis}
}

// Check handles GET /health requests. The API answers 200 while the database is
// reachable and 503 otherwise.
func (h *HealthController) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	resp := HealthResponse{
		Status:    "ok",
		Database:  pingStatus(ctx, h.database),
		Redis:     pingStatus(ctx, h.redis),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	status := http.StatusOK
	if resp.Database != "connected" {
		resp.Status = "degraded"
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, resp)
}

func pingStatus(ctx context.Context, p Pinger) string {
	if p == nil {
		return "disabled"
	}
	if err := p(ctx); err != nil {
		return "disconnected"
	}
	return "connected"
}
