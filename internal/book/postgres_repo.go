package book

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var pgUpdateQueries = map[Field]string{
	FieldTitle:    `UPDATE books SET title = $1 WHERE id = $2`,
	FieldAuthor:   `UPDATE books SET author = $1 WHERE id = $2`,
	FieldQuantity: `UPDATE books SET quantity = $1 WHERE id = $2`,
}

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *PostgresRepo) List(ctx context.Context) ([]Book, error) {
	const query = `
		SELECT id, title, author, quantity
		FROM books
		ORDER BY id
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(timeoutCtx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Book
	for rows.Next() {
		var b Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Quantity); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) GetByTitle(ctx context.Context, title string) (Book, error) {
	const query = `
		SELECT id, title, author, quantity
		FROM books
		WHERE title = $1
		ORDER BY id
		LIMIT 1
	`
	var b Book
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRow(timeoutCtx, query, title).Scan(&b.ID, &b.Title, &b.Author, &b.Quantity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		return Book{}, err
	}
	return b, nil
}

func (r *PostgresRepo) Insert(ctx context.Context, b Book) error {
	const query = `INSERT INTO books (id, title, author, quantity) VALUES ($1, $2, $3, $4)`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	_, err := r.db.Exec(timeoutCtx, query, b.ID, b.Title, b.Author, b.Quantity)
	return err
}

func (r *PostgresRepo) InsertIgnore(ctx context.Context, books []Book) error {
	const query = `
		INSERT INTO books (id, title, author, quantity)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO NOTHING`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	tx, err := r.db.Begin(timeoutCtx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(timeoutCtx) }()

	for _, b := range books {
		if _, err := tx.Exec(timeoutCtx, query, b.ID, b.Title, b.Author, b.Quantity); err != nil {
			return fmt.Errorf("insert book %d: %w", b.ID, err)
		}
	}
	return tx.Commit(timeoutCtx)
}

func (r *PostgresRepo) UpdateField(ctx context.Context, id int, field Field, value any) error {
	query, ok := pgUpdateQueries[field]
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidField, field)
	}
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := r.db.Exec(timeoutCtx, query, value, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepo) Delete(ctx context.Context, id int) error {
	const query = `DELETE FROM books WHERE id = $1`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	tag, err := r.db.Exec(timeoutCtx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
