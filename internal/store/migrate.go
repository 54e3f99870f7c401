package store

import (
	"context"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrations embed.FS

const migrationsDir = "migrations"

// gooseLogger routes goose output through zap instead of the std logger.
type gooseLogger struct {
	s *zap.SugaredLogger
}

func (l gooseLogger) Printf(format string, v ...interface{}) { l.s.Infof(format, v...) }
func (l gooseLogger) Fatalf(format string, v ...interface{}) { l.s.Fatalf(format, v...) }

func (d *DB) prepareGoose(logger *zap.Logger) error {
	goose.SetBaseFS(migrations)
	goose.SetLogger(gooseLogger{s: logger.Named("migrate").Sugar()})
	return goose.SetDialect(d.Dialect())
}

// Migrate applies every pending migration. The first migration creates the
// books table only if it is absent, so databases created before migrations
// were tracked keep their data.
func (d *DB) Migrate(ctx context.Context, logger *zap.Logger) error {
	if err := d.prepareGoose(logger); err != nil {
		return fmt.Errorf("prepare migrations: %w", err)
	}
	if err := goose.UpContext(ctx, d.SQL, migrationsDir); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// Rollback reverts the most recent migration.
func (d *DB) Rollback(ctx context.Context, logger *zap.Logger) error {
	if err := d.prepareGoose(logger); err != nil {
		return fmt.Errorf("prepare migrations: %w", err)
	}
	if err := goose.DownContext(ctx, d.SQL, migrationsDir); err != nil {
		return fmt.Errorf("rollback migration: %w", err)
	}
	return nil
}

// MigrationStatus logs the applied state of every migration.
func (d *DB) MigrationStatus(ctx context.Context, logger *zap.Logger) error {
	if err := d.prepareGoose(logger); err != nil {
		return fmt.Errorf("prepare migrations: %w", err)
	}
	if err := goose.StatusContext(ctx, d.SQL, migrationsDir); err != nil {
		return fmt.Errorf("migration status: %w", err)
	}
	return nil
}

// SchemaVersion reports the current migration version.
func (d *DB) SchemaVersion(ctx context.Context, logger *zap.Logger) (int64, error) {
	if err := d.prepareGoose(logger); err != nil {
		return 0, fmt.Errorf("prepare migrations: %w", err)
	}
	return goose.GetDBVersionContext(ctx, d.SQL)
}
