package routes

import (
	"farm-policy/internal/delivery/http/handler"
	v1 "farm-policy/internal/delivery/http/routes/v1"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	Health  *handler.HealthHandler
	Metrics fiber.Handler
	// Policies serves the policies_updated websocket stream.
	Policies fiber.Handler
	V1       v1.Handlers
	Auth     fiber.Handler
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerOps(app)
	r.registerAPI(app)
}

func (r *Registry) registerOps(app *fiber.App) {
	if r.Health != nil {
		r.Health.RegisterRoutes(app)
	}
	if r.Metrics != nil {
		app.Get("/metrics", r.Metrics)
	}
	if r.Policies != nil {
		app.Get("/ws/policies", r.Policies)
	}
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	RegisterV1(api.Group("/v1"), r.V1, r.Auth)
}
