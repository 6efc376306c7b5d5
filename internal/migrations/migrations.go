// Package migrations brings the database schema up to date. PostgreSQL runs
// the versioned SQL files embedded in the binary through goose; SQLite, used
// for local runs and tests, is migrated from the GORM models.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"

	"github.com/simp-lee/modify/internal/domain"
)

//go:embed sql/*.sql
var FS embed.FS

const dir = "sql"

// gooseUp is a seam for tests.
var gooseUp = func(ctx context.Context, db *sql.DB, dir string) error {
	return goose.UpContext(ctx, db, dir)
}

// Models lists the GORM models owned by this service.
func Models() []any {
	return []any{&domain.User{}, &domain.Module{}}
}

// Up migrates db for the given driver ("sqlite" or "postgres").
func Up(ctx context.Context, db *gorm.DB, driver string, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	switch driver {
	case "sqlite":
		if err := db.WithContext(ctx).AutoMigrate(Models()...); err != nil {
			return fmt.Errorf("auto-migrate: %w", err)
		}
	case "postgres":
		sqlDB, err := db.DB()
		if err != nil {
			return fmt.Errorf("get sql.DB: %w", err)
		}
		goose.SetBaseFS(FS)
		if err := goose.SetDialect("postgres"); err != nil {
			return fmt.Errorf("set goose dialect: %w", err)
		}
		if err := gooseUp(ctx, sqlDB, dir); err != nil {
			return fmt.Errorf("goose up: %w", err)
		}
	default:
		return fmt.Errorf("unsupported database driver: %s", driver)
	}

	logger.InfoContext(ctx, "database migrated", slog.String("driver", driver))
	return nil
}
