package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"

	"github.com/firesense/firesense/internal/config"
	"github.com/firesense/firesense/internal/database"
	"github.com/firesense/firesense/internal/hub"
	"github.com/firesense/firesense/internal/logging"
	"github.com/firesense/firesense/internal/redis"
	"github.com/firesense/firesense/internal/server"
)

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func setupDB(cfg *config.Config) *pgxpool.Pool {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := database.RunMigrations(ctx, pool); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	return pool
}

func setupRedis(cfg *config.Config) *redis.Client {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		slog.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	return client
}

func runGracefulShutdown(srv *server.Server, registry *hub.Registry) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("shutdown signal received, cleaning up")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "error", err)
		}

		registry.CloseAll()

		close(done)
	}()

	return done
}

func main() {
	clock := clockwork.NewRealClock()

	cfg := setupConfig()

	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	slog.Info("application starting", "env", cfg.AppEnv, "port", cfg.Port)

	pool := setupDB(cfg)
	defer pool.Close()

	registry := hub.NewRegistry()
	dispatcher := hub.NewDispatcher(registry, clock)

	readingRepo := database.NewReadingRepo(pool)

	// Redis is optional; without it the latest-reading path always hits
	// Postgres. Pass nils explicitly to avoid typed-nil interfaces.
	var srv *server.Server
	if cfg.RedisURL != "" {
		redisClient := setupRedis(cfg)
		defer func() { _ = redisClient.Close() }()

		cache := redis.NewLatestCache(redisClient)
		srv = server.NewServer(cfg, readingRepo, cache, registry, dispatcher, pool, redisClient, clock)
	} else {
		srv = server.NewServer(cfg, readingRepo, nil, registry, dispatcher, pool, nil, clock)
	}

	done := runGracefulShutdown(srv, registry)

	slog.Info("server starting", "port", cfg.Port)
	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	<-done
}
