package book

import (
	"context"
	"fmt"
)

// DefaultBaseID is the id handed to the first book of an empty store.
const DefaultBaseID = 3001

// Service provides book-related business logic.
//
// It keeps an id and title index of the stored books so existence checks do
// not rescan the table. The index is rebuilt from one scan after every
// mutation; if that scan fails the index is dropped and reloaded on next use.
type Service struct {
	repo   Repository
	baseID int

	loaded  bool
	byID    map[int]Book
	byTitle map[string]int
	maxID   int
}

// NewService creates a new book service. A baseID below 1 selects DefaultBaseID.
func NewService(repo Repository, baseID int) *Service {
	if baseID < 1 {
		baseID = DefaultBaseID
	}
	return &Service{repo: repo, baseID: baseID}
}

// Seed inserts SeedBooks, leaving any book whose id already exists untouched.
func (s *Service) Seed(ctx context.Context) error {
	if err := s.repo.InsertIgnore(ctx, SeedBooks); err != nil {
		return fmt.Errorf("seed books: %w", err)
	}
	s.reindex(ctx)
	return nil
}

// ListAll returns every stored book in storage order.
func (s *Service) ListAll(ctx context.Context) ([]Book, error) {
	books, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	s.build(books)
	return books, nil
}

// NextID returns the id the next added book will receive.
func (s *Service) NextID(ctx context.Context) (int, error) {
	if err := s.ensureIndex(ctx); err != nil {
		return 0, err
	}
	if len(s.byID) == 0 {
		return s.baseID, nil
	}
	return s.maxID + 1, nil
}

// Add stores a new book with the next free id and returns it.
func (s *Service) Add(ctx context.Context, title, author string, quantity int) (Book, error) {
	id, err := s.NextID(ctx)
	if err != nil {
		return Book{}, err
	}
	b := Book{ID: id, Title: title, Author: author, Quantity: quantity}
	if err := s.repo.Insert(ctx, b); err != nil {
		return Book{}, fmt.Errorf("add book: %w", err)
	}
	s.reindex(ctx)
	return b, nil
}

// Get returns the book with the given id.
func (s *Service) Get(ctx context.Context, id int) (Book, error) {
	if err := s.ensureIndex(ctx); err != nil {
		return Book{}, err
	}
	b, ok := s.byID[id]
	if !ok {
		return Book{}, ErrNotFound
	}
	return b, nil
}

// UpdateField sets one field of the book with the given id. Quantity values
// must parse as integers.
func (s *Service) UpdateField(ctx context.Context, id int, field Field, value string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	var v any
	switch field {
	case FieldTitle, FieldAuthor:
		v = value
	case FieldQuantity:
		n, err := ParseInt(value)
		if err != nil {
			return err
		}
		v = n
	default:
		return fmt.Errorf("%w: %q", ErrInvalidField, field)
	}

	if err := s.repo.UpdateField(ctx, id, field, v); err != nil {
		return fmt.Errorf("update book %d %s: %w", id, field, err)
	}
	s.reindex(ctx)
	return nil
}

// Delete removes the book with the given id.
func (s *Service) Delete(ctx context.Context, id int) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete book %d: %w", id, err)
	}
	s.reindex(ctx)
	return nil
}

// SearchTitle returns the book whose title equals title exactly.
// Case and whitespace are significant.
func (s *Service) SearchTitle(ctx context.Context, title string) (Book, error) {
	if err := s.ensureIndex(ctx); err != nil {
		return Book{}, err
	}
	if _, ok := s.byTitle[title]; !ok {
		return Book{}, ErrNotFound
	}
	b, err := s.repo.GetByTitle(ctx, title)
	if err != nil {
		return Book{}, fmt.Errorf("search %q: %w", title, err)
	}
	return b, nil
}

func (s *Service) ensureIndex(ctx context.Context) error {
	if s.loaded {
		return nil
	}
	_, err := s.ListAll(ctx)
	return err
}

// reindex follows a committed mutation, so a failed scan must not be
// reported as a failed operation.
func (s *Service) reindex(ctx context.Context) {
	if _, err := s.ListAll(ctx); err != nil {
		s.loaded = false
	}
}

func (s *Service) build(books []Book) {
	s.byID = make(map[int]Book, len(books))
	s.byTitle = make(map[string]int, len(books))
	s.maxID = 0
	for _, b := range books {
		s.byID[b.ID] = b
		if _, dup := s.byTitle[b.Title]; !dup {
			s.byTitle[b.Title] = b.ID
		}
		if b.ID > s.maxID {
			s.maxID = b.ID
		}
	}
	s.loaded = true
}
