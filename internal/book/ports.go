package book

import (
	"context"
)

//go:generate mockgen -source=ports.go -destination=mock_ports.go -package=book

// Repository defines the contract for book data storage.
// Every mutating call is a single statement committed before it returns.
type Repository interface {
	List(ctx context.Context) ([]Book, error)
	GetByTitle(ctx context.Context, title string) (Book, error)
	Insert(ctx context.Context, b Book) error
	InsertIgnore(ctx context.Context, books []Book) error
	UpdateField(ctx context.Context, id int, field Field, value any) error
	Delete(ctx context.Context, id int) error
}
