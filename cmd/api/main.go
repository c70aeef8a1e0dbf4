package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"laser-compare/internal/calculator"
	"laser-compare/internal/catalog"
	"laser-compare/internal/config"
	"laser-compare/internal/db"
	"laser-compare/internal/migrations"
	"laser-compare/internal/observability"
	"laser-compare/internal/server"
)

func main() {

	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	// Logger
	if err := observability.InitLogger(cfg.LogFormat); err != nil {
		panic(err)
	}
	defer observability.SyncLogger()

	// Tracing, metrics, log export
	telemetryShutdown, err := initTelemetry(ctx, cfg)
	if err != nil {
		observability.Logger.Fatal("starting telemetry", zap.Error(err))
	}
	defer func() {
		if err := telemetryShutdown(context.Background()); err != nil {
			observability.Logger.Warn("telemetry shutdown", zap.Error(err))
		}
	}()

	// Catalog storage
	database, err := db.Open(ctx, cfg.DBPath)
	if err != nil {
		observability.Logger.Fatal("opening database", zap.String("path", cfg.DBPath), zap.Error(err))
	}
	defer database.Close()

	if err := migrations.Up(ctx, database, observability.Logger); err != nil {
		observability.Logger.Fatal("running migrations", zap.Error(err))
	}

	store := catalog.NewStore(database)
	catalogMetrics, err := catalog.NewMetrics(prometheus.DefaultRegisterer, store)
	if err != nil {
		observability.Logger.Fatal("registering catalog metrics", zap.Error(err))
	}

	if !cfg.AdminEnabled() {
		observability.Logger.Warn("ADMIN_TOKEN is empty, admin API is locked")
	}

	// Router
	router := server.NewRouter(server.Deps{
		Calculators: calculator.NewHandler(cfg.PublicBaseURL),
		Catalog:     catalog.NewHandler(store, catalogMetrics),
		AdminToken:  cfg.AdminToken,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		observability.Logger.Info("server started",
			zap.String("addr", srv.Addr),
			zap.Bool("telemetry", cfg.TelemetryEnabled()),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			observability.Logger.Fatal("server failed", zap.Error(err))
		}
	}()

	waitForShutdown(srv, cfg.ShutdownTimeout)
}

func waitForShutdown(srv *http.Server, timeout time.Duration) {

	stop := make(chan os.Signal, 1)

	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		observability.Logger.Warn("graceful shutdown", zap.Error(err))
	}
	observability.Logger.Info("server stopped")
}
