package handler

import (
	"context"
	"time"

	"farm-policy/internal/infrastructure/publicdata"
	"farm-policy/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db  Pinger
	now func() time.Time
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db, now: time.Now}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/health", h.Health)
	r.Get("/api/health", h.Health)
}

// Health reports liveness, database reachability and the public data proxy
// endpoints.
func (h *HealthHandler) Health(c fiber.Ctx) error {
	dbStatus := "ok"
	if h.db != nil {
		ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			dbStatus = "unavailable"
		}
	}

	apis := make(map[string]string, len(publicdata.Sources))
	for _, name := range publicdata.SourceNames() {
		apis[name] = "/api/v1/public/" + name + " - " + publicdata.Sources[name].Label
	}

	return response.OK(c, map[string]any{
		"status":    "ok",
		"database":  dbStatus,
		"timestamp": h.now().UTC().Format(time.RFC3339),
		"apis":      apis,
	})
}
