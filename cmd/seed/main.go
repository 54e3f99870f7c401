package main

import (
	"context"
	"fmt"
	"os"

	"bookstore/internal/book"
	"bookstore/internal/config"
	"bookstore/internal/platform/logging"
	"bookstore/internal/store"

	"go.uber.org/zap"
)

func main() {
	config.LoadEnvFiles()
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "seed: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New("info", cfg.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "seed: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	total, err := seed(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("seeding failed", zap.Error(err))
		os.Exit(1)
	}
	fmt.Printf("Total books in database: %d\n", total)
}

// seed migrates the configured database, inserts the seed books with
// insert-or-ignore and returns how many books are stored.
func seed(ctx context.Context, cfg config.Config, logger *zap.Logger) (int, error) {
	db, err := store.Open(ctx, cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		return 0, err
	}
	defer db.Close()

	if err := db.Migrate(ctx, logger); err != nil {
		return 0, err
	}

	svc := book.NewService(db.BookRepository(cfg.DBTimeout), cfg.BaseID)
	logger.Info("seeding books", zap.Int("count", len(book.SeedBooks)))
	if err := svc.Seed(ctx); err != nil {
		return 0, err
	}

	books, err := svc.ListAll(ctx)
	if err != nil {
		return 0, err
	}
	return len(books), nil
}
