package app

import (
	"context"
	"log"
	"time"

	"shutterbid/internal/config"
	"shutterbid/internal/database"
	dbpostgres "shutterbid/internal/database/postgres"
	"shutterbid/internal/infrastructure/cache"
	"shutterbid/internal/metrics"
)

type Container struct {
	Config  config.Config
	DB      database.DB
	Cache   *cache.Redis
	Metrics *metrics.Collector
	Logger  *log.Logger
}

func NewContainer(cfg config.Config, logger *log.Logger) (*Container, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	return &Container{
		Config:  cfg,
		DB:      db,
		Cache:   cache.NewRedis(cfg.Redis, logger),
		Metrics: metrics.NewCollector(),
		Logger:  logger,
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
