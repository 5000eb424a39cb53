package v1

import (
	"farm-policy/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

type Handlers struct {
	Auth        *handler.AuthHandler
	User        *handler.UserHandler
	Policy      *handler.PolicyHandler
	Public      *handler.PublicHandler
	Profile     *handler.ProfileHandler
	Match       *handler.MatchHandler
	Application *handler.ApplicationHandler
	Document    *handler.DocumentHandler
}

// Register mounts the v1 API. Public routes go first: the protected group
// has no prefix, so its auth middleware runs for every path registered
// after it.
func Register(r fiber.Router, h Handlers, auth fiber.Handler) {
	if r == nil {
		return
	}

	if h.Auth != nil {
		h.Auth.RegisterRoutes(r.Group("/auth"))
	}
	RegisterPublic(r, h.Public)
	RegisterCatalog(r, h.Policy)

	if auth == nil {
		return
	}
	RegisterFarmer(r.Group("", auth), h)
}
