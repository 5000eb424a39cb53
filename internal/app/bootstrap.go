package app

import (
	"context"
	"fmt"
	"strings"

	"farm-policy/internal/config"
	"farm-policy/internal/delivery/http/handler"
	"farm-policy/internal/delivery/http/middleware"
	"farm-policy/internal/delivery/http/routes"
	v1 "farm-policy/internal/delivery/http/routes/v1"
	"farm-policy/internal/ws"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// New builds the HTTP application on top of an initialised container.
func New(c *Container) *App {
	f := fiber.New(fiber.Config{AppName: c.Config.App.AppName})

	registerGlobalMiddleware(f, c.Logger)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

// Bootstrap connects every dependency, prepares the schema and returns the
// app together with its cleanup.
func Bootstrap(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, func() error, error) {
	c, err := NewContainer(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	if err := c.Prepare(ctx); err != nil {
		_ = c.Close()
		return nil, nil, err
	}
	return New(c), c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, logger *zap.Logger) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(logger).Middleware())
	app.Use(middleware.NewErrorMiddleware(logger).Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	reg := &routes.Registry{
		Health:   handler.NewHealthHandler(c.DB),
		Metrics:  c.Metrics.Handler(),
		Policies: ws.NewHandler(c.Hub, c.Logger.Named("ws")).HandlePolicies,
		Auth:     middleware.NewAuthMiddleware(c.JWT).Middleware(),
		V1: v1.Handlers{
			Auth:        handler.NewAuthHandler(c.Auth),
			User:        handler.NewUserHandler(c.Account),
			Policy:      handler.NewPolicyHandler(c.Policies),
			Public:      handler.NewPublicHandler(c.PublicData),
			Profile:     handler.NewProfileHandler(c.Profiles),
			Match:       handler.NewMatchHandler(c.Matches, c.Documents),
			Application: handler.NewApplicationHandler(c.Applications),
			Document:    handler.NewDocumentHandler(c.Documents),
		},
	}
	reg.Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
