package v1

import (
	"github.com/gofiber/fiber/v3"
)

// RegisterFarmer mounts the routes that act on the caller's own data.
func RegisterFarmer(r fiber.Router, h Handlers) {
	if r == nil {
		return
	}

	if h.User != nil {
		h.User.RegisterRoutes(r)
	}
	if h.Profile != nil {
		h.Profile.RegisterRoutes(r)
	}
	if h.Match != nil {
		h.Match.RegisterRoutes(r)
	}
	if h.Application != nil {
		h.Application.RegisterRoutes(r)
	}
	if h.Document != nil {
		h.Document.RegisterRoutes(r)
	}
}
