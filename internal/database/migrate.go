package database

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/pantrymatch/backend/internal/models"
)

// AutoMigrate creates or updates the schema from the gorm models
func AutoMigrate(db *gorm.DB) error {
	if db.Dialector.Name() == "postgres" {
		if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector").Error; err != nil {
			return fmt.Errorf("failed to install pgvector extension: %w", err)
		}
	}

	if err := db.AutoMigrate(
		&models.Ingredient{},
		&models.Substitution{},
		&models.Recipe{},
		&models.RecipeIngredient{},
		&models.UserPreference{},
		&models.RecipeRating{},
	); err != nil {
		return fmt.Errorf("failed to auto-migrate schema: %w", err)
	}
	return nil
}

// RunMigrations applies every *.sql file in fsys, in name order, that has not
// been recorded in the migrations table yet. Each file runs in its own transaction.
func RunMigrations(ctx context.Context, db *sql.DB, fsys fs.FS, log *zap.Logger) ([]string, error) {
	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS migrations (
			id SERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL UNIQUE,
			applied_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		return nil, fmt.Errorf("failed to create migrations table: %w", err)
	}

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	var applied []string
	for _, name := range files {
		var count int
		if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM migrations WHERE name = $1", name).Scan(&count); err != nil {
			return applied, fmt.Errorf("failed to check migration status: %w", err)
		}
		if count > 0 {
			log.Debug("skipping migration, already applied", zap.String("migration", name))
			continue
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return applied, fmt.Errorf("failed to read migration file %s: %w", name, err)
		}

		if err := applyMigration(ctx, db, name, string(content)); err != nil {
			return applied, err
		}
		log.Info("applied migration", zap.String("migration", name))
		applied = append(applied, name)
	}

	return applied, nil
}

func applyMigration(ctx context.Context, db *sql.DB, name, content string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}

	if _, err := tx.ExecContext(ctx, content); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to execute migration %s: %w", name, err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO migrations (name) VALUES ($1)", name); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to record migration %s: %w", name, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration %s: %w", name, err)
	}
	return nil
}
