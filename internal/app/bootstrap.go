package app

import (
	"context"
	"fmt"
	"log"
	"strings"

	"shutterbid/internal/config"
	"shutterbid/internal/database/migration"
	"shutterbid/internal/delivery/http/middleware"
	"shutterbid/internal/delivery/http/routes"
	v1 "shutterbid/internal/delivery/http/routes/v1"
	"shutterbid/internal/pkg/jwt"
	"shutterbid/internal/repository"
	"shutterbid/internal/scheduler"
	"shutterbid/internal/usecase"
	ucauth "shutterbid/internal/usecase/auth"
	"shutterbid/migrations"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
)

type App struct {
	Fiber   *fiber.App
	Sweeper *scheduler.Sweeper
}

// Bootstrap is the composition root: it connects the infrastructure,
// applies migrations, builds every service, and assembles the HTTP app.
func Bootstrap(ctx context.Context, cfg config.Config, logger *log.Logger) (*App, func() error, error) {
	c, err := NewContainer(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	runner := migration.Runner{FS: migrations.Files}
	if err := runner.Run(ctx, c.DB.SQLDB()); err != nil {
		_ = c.Close()
		return nil, nil, fmt.Errorf("migrations: %w", err)
	}

	store := repository.NewPostgresRecordStore(c.DB)
	users := repository.NewPostgresUserRepository(c.DB)

	jwtSvc := jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)

	jobUC := usecase.NewJobService(store, c.Cache, c.Metrics, logger, cfg.Redis.ListTTL)
	bidUC := usecase.NewBidService(store, c.Metrics, logger, cfg.Marketplace.RequireOpenJob)
	resolutionUC := usecase.NewResolutionService(store, c.Cache, c.Metrics, logger)
	viewsUC := usecase.NewViewsService(store, logger)
	profileUC := usecase.NewProfileService(store)
	authUC := ucauth.NewService(users, store, jwtSvc, logger)

	f := fiber.New(fiber.Config{AppName: cfg.App.AppName})
	f.Use(middleware.NewAccessLogMiddleware(logger, c.Metrics).Middleware())
	f.Use(middleware.NewErrorMiddleware(logger).Middleware())
	f.Get("/metrics", adaptor.HTTPHandler(c.Metrics.Handler()))

	routes.Register(f, c.DB, v1.Deps{
		JWT:        jwtSvc,
		Auth:       authUC,
		Jobs:       jobUC,
		Bids:       bidUC,
		Resolution: resolutionUC,
		Views:      viewsUC,
		Profiles:   profileUC,
	})

	app := &App{
		Fiber:   f,
		Sweeper: scheduler.NewSweeper(jobUC, logger, cfg.Scheduler.ExpirySweepInterval),
	}

	return app, c.Close, nil
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
