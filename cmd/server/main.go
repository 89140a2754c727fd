// Package main provides the entry point for the HTTP server.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/cockroachdb/errors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/clubdesk/matchday/internal/config"
	"github.com/clubdesk/matchday/internal/database"
	dbConfig "github.com/clubdesk/matchday/internal/database/config"
	"github.com/clubdesk/matchday/internal/health"
	"github.com/clubdesk/matchday/internal/live"
	"github.com/clubdesk/matchday/internal/seed"
	"github.com/clubdesk/matchday/internal/server"
	"github.com/clubdesk/matchday/internal/session"
	userRepository "github.com/clubdesk/matchday/internal/user/repository"
	userService "github.com/clubdesk/matchday/internal/user/service"
	"github.com/clubdesk/matchday/pkg/logger"
)

func main() {
	// A missing .env is fine, the environment may already be populated.
	_ = godotenv.Load()

	cfg := config.LoadFromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	sugar, err := logger.NewWithConfig(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer func() { _ = sugar.Sync() }()

	if err := run(cfg, sugar); err != nil {
		sugar.Errorw("server stopped with error", "error", err)
		os.Exit(1)
	}
}

// pinger is a session store that can report its own health.
type pinger interface {
	Ping(ctx context.Context) error
}

func run(cfg config.Config, logger *zap.SugaredLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	gin.SetMode(cfg.GinMode)

	db, err := database.Open(ctx, dbConfig.LoadConfigFromEnv(), logger)
	if err != nil {
		return errors.Wrap(err, "open database")
	}
	defer func() {
		if err := database.Close(db); err != nil {
			logger.Warnw("failed to close database", "error", err)
		}
	}()

	checks := []health.Check{health.Database(db)}
	store, closeStore, err := openSessionStore(ctx, cfg.Session, db, logger)
	if err != nil {
		return err
	}
	defer closeStore()
	if probe, ok := store.(pinger); ok {
		checks = append(checks, health.Check{Name: "sessions", Probe: probe.Ping})
	}

	manager := session.NewManager(store, cfg.Session.TTL, nil, logger)
	users := userService.New(userRepository.New(db, logger), manager, logger)

	if err := seed.New(db, users, nil, logger).Run(ctx, cfg.Seed); err != nil {
		return errors.Wrap(err, "seed")
	}

	hubCfg := live.DefaultConfig()
	hubCfg.AllowedOrigins = cfg.CORS.AllowedOrigins
	hub := live.NewHub(hubCfg, logger)
	defer hub.Close()

	srv := server.New(cfg, server.Deps{
		DB:       db,
		Sessions: manager,
		Users:    users,
		Hub:      hub,
		Checks:   checks,
		Logger:   logger,
	})

	errCh := make(chan error, 1)
	go func() {
		logger.Infow("http server listening", "addr", srv.Addr, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return errors.Wrap(err, "listen")
		}
		return nil
	case <-ctx.Done():
	}

	logger.Infow("shutting down", "timeout", cfg.Server.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// Live feeds are hijacked connections that Shutdown does not wait for.
	hub.Close()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "graceful shutdown failed")
	}
	logger.Infow("http server stopped")
	return nil
}

// openSessionStore returns the configured session store and its release func.
func openSessionStore(ctx context.Context, cfg config.SessionConfig, db *gorm.DB, logger *zap.SugaredLogger) (session.Store, func(), error) {
	if cfg.Store == config.SessionStoreRedis {
		client, err := session.NewRedisClient(ctx, cfg, logger)
		if err != nil {
			return nil, nil, err
		}
		release := func() {
			if err := client.Close(); err != nil {
				logger.Warnw("failed to close redis", "error", err)
			}
		}
		return session.NewRedisStore(client, cfg.RedisPrefix), release, nil
	}

	store := session.NewDBStore(db, nil)
	purged, err := store.PurgeExpired(ctx)
	if err != nil {
		return nil, nil, errors.Wrap(err, "purge expired sessions")
	}
	if purged > 0 {
		logger.Infow("purged expired sessions", "count", purged)
	}
	return store, func() {}, nil
}
