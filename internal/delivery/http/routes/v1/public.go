package v1

import (
	"farm-policy/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
)

// RegisterPublic mounts the open data proxy, reachable from any origin.
func RegisterPublic(r fiber.Router, publicHandler *handler.PublicHandler) {
	if r == nil || publicHandler == nil {
		return
	}

	g := r.Group("/public", cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{fiber.MethodGet, fiber.MethodOptions},
		AllowHeaders: []string{fiber.HeaderContentType},
	}))
	publicHandler.RegisterRoutes(g)
}

func RegisterCatalog(r fiber.Router, policyHandler *handler.PolicyHandler) {
	if r == nil || policyHandler == nil {
		return
	}

	policyHandler.RegisterRoutes(r)
}
