package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ratewallet/internal/api"
	"ratewallet/internal/auth"
	"ratewallet/internal/config"
	"ratewallet/internal/db"
	"ratewallet/internal/logger"
	"ratewallet/internal/metrics"
	"ratewallet/internal/middleware"
	"ratewallet/internal/rates"
	"ratewallet/internal/repository/postgres"
	"ratewallet/internal/services"
	"ratewallet/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config", "err", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if cfg.Migrate {
		if err := db.RunMigrations(ctx, pool); err != nil {
			log.Error("migrations", "err", err)
			os.Exit(1)
		}
	}

	metrics.Init()

	repos := postgres.NewRepositories(pool)
	wp := worker.NewPool(4)
	defer wp.Stop()

	tm := auth.NewTokenManager(cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.JWTIssuer, cfg.AccessTTL, cfg.RefreshTTL)
	rateClient := rates.NewClient(cfg.RateAPIURL, cfg.RateAPIKey, cfg.RateQuoteCurrency, cfg.RateTimeout, log)

	userSvc := services.NewUserService(repos.Users, tm, cfg)
	balanceSvc := services.NewBalanceService(repos.Balances)
	exchangeSvc := services.NewExchangeService(repos.Balances, repos.Exchanges, repos.AuditLogs, rateClient, wp, log)

	r := api.NewRouter(api.RouterDeps{
		Cfg:         cfg,
		Auth:        middleware.NewAuthMiddleware(tm),
		UserSvc:     userSvc,
		BalanceSvc:  balanceSvc,
		ExchangeSvc: exchangeSvc,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server", "err", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
