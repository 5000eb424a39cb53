package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"farm-policy/internal/config"
	"farm-policy/internal/database/migration"
	dbpostgres "farm-policy/internal/database/postgres"
	"farm-policy/internal/database/seeder"
	"farm-policy/internal/infrastructure/cache"
	"farm-policy/internal/infrastructure/pdf"
	"farm-policy/internal/infrastructure/publicdata"
	"farm-policy/internal/metrics"
	"farm-policy/internal/pkg/jwt"
	"farm-policy/internal/repository"
	ucapplication "farm-policy/internal/usecase/application"
	ucauth "farm-policy/internal/usecase/auth"
	ucdocument "farm-policy/internal/usecase/document"
	ucmatching "farm-policy/internal/usecase/matching"
	ucpolicy "farm-policy/internal/usecase/policy"
	ucprofile "farm-policy/internal/usecase/profile"
	ucpublic "farm-policy/internal/usecase/publicdata"
	ucuser "farm-policy/internal/usecase/user"
	"farm-policy/internal/ws"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

// Container owns every long-lived dependency of the service.
type Container struct {
	Config config.Config
	Logger *zap.Logger

	DB      *dbpostgres.Pool
	Cache   *cache.Redis
	Metrics *metrics.Metrics
	Hub     *ws.Hub
	JWT     jwt.Service

	Auth         *ucauth.Service
	Account      *ucuser.Service
	Policies     *ucpolicy.Service
	Profiles     *ucprofile.Service
	Matches      *ucmatching.Service
	Applications *ucapplication.Service
	Documents    *ucdocument.Service
	PublicData   *ucpublic.Service
}

func NewContainer(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Container, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(connectCtx, cfg.Database, logger.Named("db"))
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	rc := cache.NewRedis(ctx, cfg.Redis, logger.Named("cache"))
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)
	hub := ws.NewHub(logger.Named("ws"))
	jwtSvc := jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)

	users := repository.NewPostgresUserRepository(db)
	policies := repository.NewPostgresPolicyRepository(db)
	profiles := repository.NewPostgresProfileRepository(db)
	apps := repository.NewPostgresApplicationRepository(db)
	docs := repository.NewPostgresDocumentRepository(db)

	fetcher := publicdata.NewClient(cfg.PublicData, logger.Named("publicdata"))
	renderer := pdf.NewRenderer(cfg.PDF, logger.Named("pdf"))

	c := &Container{
		Config:  cfg,
		Logger:  logger,
		DB:      db,
		Cache:   rc,
		Metrics: m,
		Hub:     hub,
		JWT:     jwtSvc,

		Auth:         ucauth.NewService(users, jwtSvc),
		Account:      ucuser.NewService(users),
		Policies:     ucpolicy.NewService(policies, rc, logger.Named("policy")),
		Profiles:     ucprofile.NewService(profiles, rc, logger.Named("profile")),
		Matches:      ucmatching.NewService(profiles, policies, rc, m, logger.Named("matching")),
		Applications: ucapplication.NewService(apps, policies, profiles, renderer, logger.Named("application")),
		Documents:    ucdocument.NewService(docs, policies, logger.Named("document")),
		PublicData: ucpublic.NewService(fetcher, policies, rc, hub, m, ucpublic.SyncOptions{
			Workers: cfg.PublicData.SyncWorkers,
			RPS:     cfg.PublicData.SyncRPS,
			PerPage: cfg.PublicData.SyncPerPage,
		}, logger.Named("sync")),
	}
	c.Policies.SetCacheTTL(cfg.Redis.TTL)
	c.Matches.SetCacheTTL(cfg.Redis.MatchTTL)
	return c, nil
}

// Migrate applies pending schema migrations.
func (c *Container) Migrate(ctx context.Context) (int, error) {
	return migration.NewRunner(c.Logger.Named("migration")).Run(ctx, c.DB.SQLDB())
}

// Seed loads the reference categories and policies.
func (c *Container) Seed(ctx context.Context) error {
	r := seeder.Runner{Seeders: seeder.Defaults(), Logger: c.Logger.Named("seeder")}
	return r.Run(ctx, c.DB)
}

// Prepare runs migrations and seeders as configured.
func (c *Container) Prepare(ctx context.Context) error {
	if c.Config.Database.RunMigrations {
		n, err := c.Migrate(ctx)
		if err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		c.Logger.Info("migrations applied", zap.Int("count", n))
	}
	if c.Config.Database.RunSeeders {
		if err := c.Seed(ctx); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
	}
	return nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	var errs []error
	if c.Cache != nil {
		errs = append(errs, c.Cache.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}
