package testutil

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"bookstore/internal/book"
	"bookstore/internal/store"

	"go.uber.org/zap"
)

// TestTimeout is the per-statement timeout used by test repositories.
const TestTimeout = 2 * time.Second

// TestBook is a book that is not part of the seed data.
var TestBook = book.Book{
	Title:    "Dune",
	Author:   "Frank Herbert",
	Quantity: 10,
}

// NewTestDB opens a migrated SQLite database in a temp dir. It is closed
// when the test ends.
func NewTestDB(t *testing.T) *store.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "Data", "bookstore_test.db")
	db, err := store.Open(context.Background(), store.DriverSQLite, path)
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := db.Migrate(context.Background(), zap.NewNop()); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return db
}

// NewSeededService returns a book service over a fresh, seeded test database.
func NewSeededService(t *testing.T) (*book.Service, *store.DB) {
	t.Helper()

	db := NewTestDB(t)
	svc := book.NewService(db.BookRepository(TestTimeout), book.DefaultBaseID)
	if err := svc.Seed(context.Background()); err != nil {
		t.Fatalf("seed test database: %v", err)
	}
	return svc, db
}

// IDs returns the ids of books in order.
func IDs(books []book.Book) []int {
	ids := make([]int, 0, len(books))
	for _, b := range books {
		ids = append(ids, b.ID)
	}
	return ids
}
