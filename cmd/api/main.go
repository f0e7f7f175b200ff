package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/agroplan/backoffice/internal/api"
	mongodb "github.com/agroplan/backoffice/internal/infrastructure/db/mongo"
	redisdb "github.com/agroplan/backoffice/internal/infrastructure/db/redis"
	"github.com/agroplan/backoffice/internal/pkg/config"
	"github.com/agroplan/backoffice/pkg/logger"
)

// @title           AgroPlan Back Office API
// @version         1.0
// @description     Project management back office: projects, resource ledgers and role-based access.

// @BasePath  /v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("mongodb disconnect failed")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	ensureIndexes(ctx, db)

	e := api.NewRouter(cfg, db, rdb)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server start failed")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// ensureIndexes creates the collection indexes at startup. Failures are
// logged but not fatal: the service can run without them, just slower.
func ensureIndexes(ctx context.Context, db *mongo.Database) {
	log := logger.Get()

	indexed := map[string]interface{ EnsureIndexes(context.Context) error }{
		"projects": mongodb.NewProjectRepository(db),
		"users":    mongodb.NewUserRepository(db),
		"ledgers":  mongodb.NewLedgerRepository(db),
		"audit":    mongodb.NewAuditRepository(db),
	}
	for name, repo := range indexed {
		if err := repo.EnsureIndexes(ctx); err != nil {
			log.Warn().Err(err).Str("collection", name).Msg("index creation failed")
		}
	}
}
