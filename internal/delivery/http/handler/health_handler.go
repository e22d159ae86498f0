package handler

import (
	"context"
	"time"

	"screenhub/internal/database"
	"screenhub/internal/infrastructure/cache"
	"screenhub/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type HealthHandler struct {
	db    database.DB
	cache *cache.Redis
}

func NewHealthHandler(db database.DB, c *cache.Redis) *HealthHandler {
	return &HealthHandler{db: db, cache: c}
}

func (h *HealthHandler) RegisterRoutes(app *fiber.App) {
	if app == nil {
		return
	}

	app.Get("/health", h.Health)
}

func (h *HealthHandler) Health(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	dbStatus := "ok"
	status := fiber.StatusOK
	if h.db == nil || h.db.Ping(ctx) != nil {
		dbStatus = "down"
		status = fiber.StatusServiceUnavailable
	}

	// Redis is an optional dependency; its state is reported but never
	// fails the check.
	cacheStatus := "ok"
	if h.cache == nil || h.cache.Ping(ctx) != nil {
		cacheStatus = "bypassed"
	}

	data := map[string]string{
		"database": dbStatus,
		"cache":    cacheStatus,
	}
	if status != fiber.StatusOK {
		return response.Error(c, status, "unhealthy", data)
	}
	return response.Success(c, status, response.MessageOK, data)
}
