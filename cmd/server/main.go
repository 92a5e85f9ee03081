// Command server runs the campaign HTTP API.
//
// Startup order: environment (.env) → config → logging → tracing → database
// (with retry) → migrations → model client → router → HTTP server. SIGINT or
// SIGTERM drains in-flight requests for up to 30s before the model client and
// the database are closed.
package main

import (
	"context"
	"errors"
	"flag"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/mhd0331/JinanCampaign/internal/config"
	httpapi "github.com/mhd0331/JinanCampaign/internal/http"
	"github.com/mhd0331/JinanCampaign/internal/http/middleware"
	"github.com/mhd0331/JinanCampaign/internal/llm"
	"github.com/mhd0331/JinanCampaign/internal/observability"
	"github.com/mhd0331/JinanCampaign/internal/repo"
	"github.com/mhd0331/JinanCampaign/internal/sysutil"
)

const shutdownGrace = 30 * time.Second

func main() {
	migrateOnly := flag.Bool("migrate", false, "apply database migrations and exit")
	flag.Parse()

	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	logs := sysutil.SetupLogging(sysutil.LogOptions{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty,
		File:    cfg.LogFile,
		Service: "jinan-campaign-api",
		Version: cfg.Version,
	})
	defer logs.Close()

	for _, w := range cfg.Warnings() {
		log.Warn().Msg(w)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.Setup(ctx, cfg.OTEL, cfg.Version, cfg.Env)
	if err != nil {
		log.Error().Err(err).Msg("tracing disabled")
		shutdownTracing = func(context.Context) error { return nil }
	}

	db, err := repo.OpenWithRetry(ctx, cfg.DB, log.Logger)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		os.Exit(1)
	}
	defer func() {
		if err := repo.Close(db); err != nil {
			log.Warn().Err(err).Msg("close database")
		}
	}()

	if err := repo.AutoMigrate(db); err != nil {
		log.Error().Err(err).Msg("migration failed")
		os.Exit(1)
	}
	if *migrateOnly {
		log.Info().Msg("migrations applied")
		return
	}

	deps := httpapi.Deps{DB: db}
	if cfg.LLM.APIKey != "" {
		model, err := llm.NewGeminiClient(ctx, cfg.LLM)
		if err != nil {
			log.Error().Err(err).Msg("model client unavailable; chat will use fallback replies")
		} else {
			deps.Model = model
			defer model.Close()
		}
	} else {
		log.Warn().Msg("no model API key configured; chat will use fallback replies")
	}

	if cfg.RedisURL != "" {
		rdb := middleware.NewRedisClient(cfg.RedisURL)
		defer rdb.Close()
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			log.Warn().Err(err).Msg("redis unreachable; rate limits fail open until it recovers")
		}
		cancel()
		deps.Limits = middleware.NewRedisStore(rdb, "")
	}

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	cache := httpapi.RegisterRoutes(r, deps, cfg)

	// Warm the prompt context so the first question does not pay for it.
	if _, err := cache.Get(ctx); err != nil {
		log.Warn().Err(err).Msg("training context warm-up failed")
	}

	srv := &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	errc := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Str("env", cfg.Env).Msg("http server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case err := <-errc:
		log.Error().Err(err).Msg("http server failed")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Warn().Err(err).Msg("flush traces")
	}
	log.Info().Msg("server stopped")
}
