package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/storelane/customer-accounts/internal/api"
	"github.com/storelane/customer-accounts/internal/infrastructure/config"
	"github.com/storelane/customer-accounts/internal/infrastructure/db/postgres"
	"github.com/storelane/customer-accounts/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: !cfg.IsProduction(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.Connect(ctx, postgres.Config{DSN: cfg.Postgres.DSN})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to configure postgres pool")
	}
	defer pool.Close()

	// The pool is lazy: an unreachable store at startup is logged, not
	// fatal. Requests will reconnect once the store comes back.
	if err := postgres.Ping(ctx, pool, 0); err != nil {
		log.Error().Err(err).Msg("postgres unreachable at startup")
	}

	e, err := api.NewRouter(pool, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build router")
	}

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("customer account service started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		_ = e.Close()
	}
}
