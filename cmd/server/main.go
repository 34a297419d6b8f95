package main

import (
	"context"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/spendwise/expense-ledger/internal/api"
	"github.com/spendwise/expense-ledger/internal/infrastructure/config"
	redisdb "github.com/spendwise/expense-ledger/internal/infrastructure/db/redis"
	sqlitedb "github.com/spendwise/expense-ledger/internal/infrastructure/db/sqlite"
	"github.com/spendwise/expense-ledger/pkg/logger"
)

func main() {
	// .env is a development convenience; absence is fine.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx := context.Background()

	db, err := sqlitedb.Connect(ctx, sqlitedb.Config{Path: cfg.SQLite.Path})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()

	if err := sqlitedb.RunMigrations(cfg.SQLite.Path); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	gw := sqlitedb.NewGateway(db, cfg.SQLite.MaxAttempts, log)

	if err := sqlitedb.SeedSharedCategories(ctx, gw); err != nil {
		log.Fatal().Err(err).Msg("failed to seed shared categories")
	}

	// Redis backs the logout denylist; the service degrades gracefully
	// without it (tokens then die by expiry alone).
	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb, err = redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, logout revocation disabled")
			rdb = nil
		} else {
			defer rdb.Close()
		}
	}

	e := api.NewRouter(db, gw, rdb, cfg, log)

	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting expense ledger API")
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
