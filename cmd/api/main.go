package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/bebifresh/bebifresh-backend/api/routes"
	authsvc "github.com/bebifresh/bebifresh-backend/internal/auth"
	"github.com/bebifresh/bebifresh-backend/internal/cart"
	"github.com/bebifresh/bebifresh-backend/internal/catalog"
	"github.com/bebifresh/bebifresh-backend/internal/dashboard"
	"github.com/bebifresh/bebifresh-backend/internal/purchaseorders"
	"github.com/bebifresh/bebifresh-backend/internal/suppliers"
	"github.com/bebifresh/bebifresh-backend/internal/users"
	"github.com/bebifresh/bebifresh-backend/pkg/auth/session"
	"github.com/bebifresh/bebifresh-backend/pkg/config"
	"github.com/bebifresh/bebifresh-backend/pkg/db"
	"github.com/bebifresh/bebifresh-backend/pkg/env"
	"github.com/bebifresh/bebifresh-backend/pkg/logger"
	"github.com/bebifresh/bebifresh-backend/pkg/metrics"
	"github.com/bebifresh/bebifresh-backend/pkg/migrate"
	"github.com/bebifresh/bebifresh-backend/pkg/redis"
)

const shutdownGrace = 15 * time.Second

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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		logg.Error(ctx, "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(ctx, cfg.Redis, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(ctx, "failed to create session manager", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)
	refreshMetrics := metrics.NewRefreshMetrics(registry)

	usersRepo := users.NewRepository(dbClient.DB())
	catalogRepo := catalog.NewRepository(dbClient.DB())
	suppliersRepo := suppliers.NewRepository(dbClient.DB())

	usersService, err := users.NewService(usersRepo, cfg.Password)
	if err != nil {
		logg.Error(ctx, "failed to create users service", err)
		os.Exit(1)
	}

	authService, err := authsvc.NewService(usersRepo, sessionManager, cfg.JWT)
	if err != nil {
		logg.Error(ctx, "failed to create auth service", err)
		os.Exit(1)
	}

	catalogService, err := catalog.NewService(catalogRepo)
	if err != nil {
		logg.Error(ctx, "failed to create catalog service", err)
		os.Exit(1)
	}

	cartService, err := cart.NewService(cart.NewRepository(dbClient.DB()), catalogRepo)
	if err != nil {
		logg.Error(ctx, "failed to create cart service", err)
		os.Exit(1)
	}

	suppliersService, err := suppliers.NewService(suppliersRepo)
	if err != nil {
		logg.Error(ctx, "failed to create suppliers service", err)
		os.Exit(1)
	}

	draftSessions := purchaseorders.NewSessionRegistry(cfg.Drafts.TTL)
	draftSessions.StartSweeper(ctx, cfg.Drafts.SweepInterval, logg)

	poService, err := purchaseorders.NewService(
		purchaseorders.NewRepository(dbClient.DB()),
		dbClient,
		draftSessions,
		redisClient,
		catalogRepo,
		suppliersService,
		catalogRepo,
		cfg.Drafts,
	)
	if err != nil {
		logg.Error(ctx, "failed to create purchase-order service", err)
		os.Exit(1)
	}

	dashboardService, err := dashboard.NewService(dashboard.NewRepository(dbClient.DB()), cfg.Dashboard, logg, refreshMetrics)
	if err != nil {
		logg.Error(ctx, "failed to create dashboard service", err)
		os.Exit(1)
	}
	defer dashboardService.Close()

	addr := ":" + env.Get("PORT", cfg.App.Port)
	id := env.Get("DYNO", "local")
	logCtx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": id,
	})
	logg.Info(logCtx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:         cfg,
			Logger:         logg,
			DB:             dbClient,
			Redis:          redisClient,
			SessionChecker: sessionManager,
			HTTPMetrics:    httpMetrics,
			MetricsHandler: registry,

			Auth:           authService,
			Catalog:        catalogService,
			Cart:           cartService,
			PurchaseOrders: poService,
			Suppliers:      suppliersService,
			Users:          usersService,
			Dashboard:      dashboardService,
		}),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(logCtx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case <-ctx.Done():
		logg.Info(logCtx, "shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logg.Error(logCtx, "graceful shutdown failed", err)
		}
	}
}
