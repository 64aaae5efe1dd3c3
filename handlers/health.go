package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-redis/redis/v8"

	"quote-generator-api/models"
	"quote-generator-api/utils"
)

type HealthHandler struct {
	startTime time.Time
	redis     *redis.Client
}

// NewHealthHandler reports Redis connectivity only when a client is given.
func NewHealthHandler(client *redis.Client) *HealthHandler {
	return &HealthHandler{startTime: time.Now(), redis: client}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	health := models.HealthResponse{
		Status:  "ok",
		Message: "Quote Generator API is running",
		Time:    time.Now().Format(time.RFC3339),
		Uptime:  time.Since(h.startTime).Round(time.Second).String(),
	}

	if h.redis != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer cancel()

		health.Redis = "connected"
		if err := h.redis.Ping(ctx).Err(); err != nil {
			health.Status = "degraded"
			health.Redis = "error"
		}
	}

	utils.SendJSON(w, http.StatusOK, health)
}
