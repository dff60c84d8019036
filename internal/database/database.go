package database

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pageza/pantrymatch/backend/config"
)

// New opens the gorm connection for the configured driver
func New(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "sqlite":
		log.Info("opening sqlite database", zap.String("path", cfg.DBPath))
		dialector = sqlite.Open(cfg.DBPath)
	default:
		log.Info("connecting to database",
			zap.String("host", cfg.DBHost),
			zap.String("port", cfg.DBPort),
			zap.String("user", cfg.DBUser),
		)
		dialector = postgres.Open(cfg.DSN())
	}

	gormLogger := logger.Default.LogMode(logger.Warn)
	if cfg.Environment.IsProduction() {
		gormLogger = logger.Default.LogMode(logger.Error)
	}

	db, err := Open(dialector, gormLogger)
	if err != nil {
		return nil, err
	}

	if cfg.DBDriver != "sqlite" {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("error getting database handle: %w", err)
		}
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(25)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := HealthCheck(ctx, db); err != nil {
		return nil, fmt.Errorf("error connecting to the database: %w", err)
	}

	log.Info("successfully connected to database", zap.String("driver", db.Dialector.Name()))
	return db, nil
}

// Open opens a gorm connection with the settings every caller needs.
// Driver errors are translated so unique violations surface as gorm.ErrDuplicatedKey.
func Open(dialector gorm.Dialector, gormLogger logger.Interface) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}
	return db, nil
}

// HealthCheck checks if the database is accessible
func HealthCheck(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
