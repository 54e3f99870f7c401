package main

import (
	"context"
	"fmt"
	"os"

	"bookstore/internal/book"
	"bookstore/internal/config"
	"bookstore/internal/console"
	"bookstore/internal/platform/logging"
	"bookstore/internal/store"

	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "bookstore: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	config.LoadEnvFiles()
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	db, err := store.Open(ctx, cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return err
	}
	defer db.Close()
	logger.Info("database connection OK", zap.String("driver", cfg.DBDriver), zap.String("dsn", store.RedactDSN(cfg.DBDSN)))

	if err := db.Migrate(ctx, logger); err != nil {
		return err
	}

	svc := book.NewService(db.BookRepository(cfg.DBTimeout), cfg.BaseID)
	if err := svc.Seed(ctx); err != nil {
		return err
	}

	return console.New(svc, os.Stdin, os.Stdout, logger).Run(ctx)
}
