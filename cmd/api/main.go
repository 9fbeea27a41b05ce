package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/worklabs/emarket-backend/api/routes"
	"github.com/worklabs/emarket-backend/internal/basket"
	"github.com/worklabs/emarket-backend/internal/catalog"
	"github.com/worklabs/emarket-backend/internal/checkout"
	"github.com/worklabs/emarket-backend/internal/storefront"
	"github.com/worklabs/emarket-backend/pkg/config"
	"github.com/worklabs/emarket-backend/pkg/db"
	"github.com/worklabs/emarket-backend/pkg/logger"
	"github.com/worklabs/emarket-backend/pkg/metrics"
	"github.com/worklabs/emarket-backend/pkg/migrate"
	"github.com/worklabs/emarket-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	var redisP redis.Pinger
	var idempotencyStore redis.IdempotencyStore
	if cfg.Redis.Enabled() {
		redisClient, err := redis.New(context.Background(), cfg.Redis)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
		redisP = redisClient
		idempotencyStore = redisClient
	} else {
		logg.Warn(context.Background(), "redis url not set, order idempotency guard disabled")
	}

	catalogClient, err := catalog.NewClient(
		cfg.Upstream.BaseURL,
		catalog.WithTimeout(cfg.Upstream.Timeout),
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog client", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	submissionMetrics := metrics.NewSubmissionMetrics(registry)

	basketService := basket.NewService(basket.NewRepository(dbClient.DB()), logg)
	storefrontService := storefront.NewService(catalogClient, logg)
	orderCoordinator := checkout.NewCoordinator(basketService, basketService, catalogClient, logg, submissionMetrics)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg,
			logg,
			dbClient,
			redisP,
			idempotencyStore,
			basketService,
			storefrontService,
			orderCoordinator,
			registry,
		),
		ReadHeaderTimeout: 10 * time.Second,
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
