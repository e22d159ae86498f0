package routes

import (
	"screenhub/internal/delivery/http/handler"
	v1 "screenhub/internal/delivery/http/routes/v1"
	"screenhub/internal/infrastructure/cache"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	deps   v1.Deps
	health *handler.HealthHandler
}

func NewRegistry(deps v1.Deps, cacheConn *cache.Redis) *Registry {
	return &Registry{
		deps:   deps,
		health: handler.NewHealthHandler(deps.DB, cacheConn),
	}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	r.health.RegisterRoutes(app)
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	RegisterV1(api.Group("/v1"), r.deps)
}
