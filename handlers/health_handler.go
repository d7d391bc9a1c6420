package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/core"
	"github.com/redis/go-redis/v9"

	"game-with-you/store"
	"game-with-you/utils"
)

// HealthHandler reports whether the store, and Redis when configured, answer.
type HealthHandler struct {
	store store.Store
	redis *redis.Client
}

func NewHealthHandler(s store.Store, redisClient *redis.Client) *HealthHandler {
	return &HealthHandler{store: s, redis: redisClient}
}

func (h *HealthHandler) Check(e *core.RequestEvent) error {
	checks := map[string]string{"store": "ok"}
	healthy := true

	if _, err := h.store.ListEvents(e.Request.Context()); err != nil {
		checks["store"] = err.Error()
		healthy = false
	}
	if h.redis != nil {
		checks["redis"] = "ok"
		if err := utils.RedisHealthCheck(h.redis); err != nil {
			checks["redis"] = err.Error()
			healthy = false
		}
	}

	if !healthy {
		return e.JSON(http.StatusServiceUnavailable, map[string]any{
			"status": "unhealthy",
			"checks": checks,
		})
	}
	return e.JSON(http.StatusOK, map[string]any{
		"status": "healthy",
		"checks": checks,
	})
}
