package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

//go:embed migrations/sqlite/*.sql migrations/postgres/*.sql
var migrationsFS embed.FS

// Migrate applies all pending schema migrations for the database's driver.
func Migrate(ctx context.Context, db *sqlx.DB, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	var (
		dialect goose.Dialect
		dir     string
	)
	switch db.DriverName() {
	case "sqlite":
		dialect, dir = goose.DialectSQLite3, "migrations/sqlite"
	case "postgres":
		dialect, dir = goose.DialectPostgres, "migrations/postgres"
	default:
		return fmt.Errorf("no migrations for driver %q", db.DriverName())
	}

	sub, err := fs.Sub(migrationsFS, dir)
	if err != nil {
		return fmt.Errorf("open migrations: %w", err)
	}
	provider, err := goose.NewProvider(dialect, db.DB, sub)
	if err != nil {
		return fmt.Errorf("init migrations: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	for _, res := range results {
		logger.Info("migration applied",
			zap.Int64("version", res.Source.Version),
			zap.String("file", res.Source.Path),
			zap.Duration("duration", res.Duration),
		)
	}
	return nil
}
