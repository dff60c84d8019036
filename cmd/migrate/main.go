package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"os"
	"time"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/pageza/pantrymatch/backend/config"
	"github.com/pageza/pantrymatch/backend/internal/database"
	"github.com/pageza/pantrymatch/backend/internal/logging"
	"github.com/pageza/pantrymatch/backend/migrations"
)

func main() {
	timeout := flag.Duration("timeout", 5*time.Minute, "Maximum time to spend applying migrations")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := logging.New(cfg.Environment, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	// DATABASE_URL takes precedence over the individual DB_* settings
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = cfg.DSN()
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		logger.Fatal("failed to reach database", zap.Error(err))
	}

	applied, err := database.RunMigrations(ctx, db, migrations.FS, logger)
	if err != nil {
		logger.Fatal("migration failed", zap.Strings("applied", applied), zap.Error(err))
	}

	if len(applied) == 0 {
		logger.Info("database is up to date")
		return
	}
	logger.Info("all migrations applied successfully", zap.Strings("applied", applied))
}
