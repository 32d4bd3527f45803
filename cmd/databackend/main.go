package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	"github.com/mehtaportfolio/data-backend/internal/adapter/driven/redislock"
	"github.com/mehtaportfolio/data-backend/internal/adapter/driven/render"
	"github.com/mehtaportfolio/data-backend/internal/adapter/driven/sqlstore"
	httphandler "github.com/mehtaportfolio/data-backend/internal/adapter/driving/http"
	"github.com/mehtaportfolio/data-backend/internal/application"
	"github.com/mehtaportfolio/data-backend/internal/config"
	"github.com/mehtaportfolio/data-backend/internal/domain/port/driven"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration (fail fast on invalid env vars).
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel})))
	slog.Info("config loaded",
		"listen_addr", cfg.ListenAddr(),
		"postgres", cfg.DatabaseURL != "",
		"heartbeat_schedule", cfg.HeartbeatSchedule,
		"auth_required", cfg.AuthRequired,
		"render_configured", cfg.HasRenderCredentials(),
	)

	// 2. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Open database (Postgres when DATABASE_URL is set, SQLite otherwise).
	db, err := sqlstore.Open(ctx, cfg.DatabaseURL, cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()
	slog.Info("database opened", "dialect", db.Dialect)

	// 4. Run migrations on the writer connection.
	if err := sqlstore.RunMigrations(db); err != nil {
		return err
	}
	slog.Info("migrations complete")

	// 5. Wire adapters.
	tables := sqlstore.NewTables(db)
	deployClient := render.NewClient(cfg.RenderAPIURL, cfg.RenderAPIKey, cfg.RenderServiceID)
	if !cfg.HasRenderCredentials() {
		slog.Warn("render credentials not configured, service status routes will fail")
	}

	// 6. Start the heartbeat scheduler.
	if cfg.HeartbeatEnabled() {
		var lock driven.RunLock
		if cfg.RedisAddr != "" {
			rdb, err := redislock.NewClient(ctx, cfg.RedisAddr)
			if err != nil {
				return err
			}
			defer func() { _ = rdb.Close() }()
			lock = redislock.New(rdb)
			slog.Info("heartbeat lock enabled", "redis_addr", cfg.RedisAddr)
		}

		heartbeatSvc, err := application.NewHeartbeatService(tables.Dummy, lock, cfg.HeartbeatSchedule)
		if err != nil {
			return err
		}
		go heartbeatSvc.Start(ctx)
	} else {
		slog.Info("heartbeat scheduler disabled")
	}

	// 7. Create HTTP handler.
	stores := httphandler.Stores{
		BankAccounts:      tables.BankAccounts,
		CreditCards:       tables.CreditCards,
		GeneralDocuments:  tables.GeneralDocuments,
		InsurancePolicies: tables.InsurancePolicies,
		Deposits:          tables.Deposits,
		Websites:          tables.Websites,
	}
	if cfg.MountDummyTable {
		stores.Dummy = tables.Dummy
	}

	dashboardSvc := application.NewDashboardService(
		tables.BankAccounts,
		tables.CreditCards,
		tables.GeneralDocuments,
		tables.InsurancePolicies,
		tables.Websites,
	)
	statusSvc := application.NewServiceStatusService(deployClient)

	apiHandler := httphandler.NewHandler(stores, dashboardSvc, statusSvc, slog.Default())
	handler := httphandler.NewServeMux(apiHandler, httphandler.Options{
		CORSOrigin:   cfg.CORSOrigin,
		AuthRequired: cfg.AuthRequired,
	})

	srv := &http.Server{
		Addr:              cfg.ListenAddr(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	srvErr := make(chan error, 1)
	go func() {
		slog.Info("http server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			srvErr <- err
		}
	}()

	// 8. Wait for shutdown signal or a listener failure.
	select {
	case <-ctx.Done():
		slog.Info("shutting down")
	case err := <-srvErr:
		stop()
		return err
	}

	// 9. Graceful shutdown with 10s timeout for in-flight requests.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("http server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
	return nil
}
