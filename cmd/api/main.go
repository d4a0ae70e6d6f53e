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

	_ "github.com/taskforge/task-api/docs"
	"github.com/taskforge/task-api/internal/api"
	"github.com/taskforge/task-api/internal/core/hash"
	"github.com/taskforge/task-api/internal/core/token"
	"github.com/taskforge/task-api/internal/infrastructure/config"
	"github.com/taskforge/task-api/internal/infrastructure/db/postgres"
	"github.com/taskforge/task-api/internal/infrastructure/db/redis"
	"github.com/taskforge/task-api/internal/infrastructure/workpool"
	"github.com/taskforge/task-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title        TaskForge API
// @version      1.0
// @description  Task management REST API with JWT authentication.
// @BasePath     /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.
func main() {
	// .env is optional; real deployments inject the environment directly.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Init(logger.Options{})
		lg := logger.Get()
		lg.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	pool, err := postgres.Connect(ctx, postgres.Config{URL: cfg.Postgres.URL})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()

	if err := postgres.Migrate(cfg.Postgres.URL); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	rdb, err := redis.Connect(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer rdb.Close()

	hashPool := workpool.NewHashPool(
		hash.NewHasher(cfg.Auth.BcryptCost),
		cfg.Auth.HashWorkers,
		logger.Named("hashpool"),
	)
	hashPool.Start(ctx)

	tokens := token.NewManager(
		cfg.Auth.AccessSecret,
		cfg.Auth.RefreshSecret,
		cfg.Auth.AccessTTL,
		cfg.Auth.RefreshTTL,
	)

	e := api.NewRouter(api.Deps{
		Pool:   pool,
		Redis:  rdb,
		Tokens: tokens,
		Hasher: hashPool,
		Config: cfg,
		Log:    log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
