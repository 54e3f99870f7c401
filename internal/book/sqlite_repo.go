package book

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

var sqliteUpdateQueries = map[Field]string{
	FieldTitle:    `UPDATE books SET title = ? WHERE id = ?`,
	FieldAuthor:   `UPDATE books SET author = ? WHERE id = ?`,
	FieldQuantity: `UPDATE books SET quantity = ? WHERE id = ?`,
}

// SQLiteRepo stores books in a local SQLite file through database/sql.
type SQLiteRepo struct {
	db      *sql.DB
	timeout time.Duration
}

func NewSQLiteRepo(db *sql.DB, timeout time.Duration) *SQLiteRepo {
	return &SQLiteRepo{db: db, timeout: timeout}
}

func (r *SQLiteRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

func (r *SQLiteRepo) List(ctx context.Context) ([]Book, error) {
	const query = `
		SELECT id, title, author, quantity
		FROM books
		ORDER BY id
	`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.QueryContext(timeoutCtx, query)
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

func (r *SQLiteRepo) GetByTitle(ctx context.Context, title string) (Book, error) {
	const query = `
		SELECT id, title, author, quantity
		FROM books
		WHERE title = ?
		ORDER BY id
		LIMIT 1
	`
	var b Book
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	err := r.db.QueryRowContext(timeoutCtx, query, title).Scan(&b.ID, &b.Title, &b.Author, &b.Quantity)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Book{}, ErrNotFound
		}
		return Book{}, err
	}
	return b, nil
}

func (r *SQLiteRepo) Insert(ctx context.Context, b Book) error {
	const query = `INSERT INTO books (id, title, author, quantity) VALUES (?, ?, ?, ?)`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	_, err := r.db.ExecContext(timeoutCtx, query, b.ID, b.Title, b.Author, b.Quantity)
	return err
}

func (r *SQLiteRepo) InsertIgnore(ctx context.Context, books []Book) error {
	const query = `INSERT OR IGNORE INTO books (id, title, author, quantity) VALUES (?, ?, ?, ?)`

	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	tx, err := r.db.BeginTx(timeoutCtx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(timeoutCtx, query)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, b := range books {
		if _, err := stmt.ExecContext(timeoutCtx, b.ID, b.Title, b.Author, b.Quantity); err != nil {
			return fmt.Errorf("insert book %d: %w", b.ID, err)
		}
	}
	return tx.Commit()
}

func (r *SQLiteRepo) UpdateField(ctx context.Context, id int, field Field, value any) error {
	query, ok := sqliteUpdateQueries[field]
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidField, field)
	}
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	res, err := r.db.ExecContext(timeoutCtx, query, value, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func (r *SQLiteRepo) Delete(ctx context.Context, id int) error {
	const query = `DELETE FROM books WHERE id = ?`
	timeoutCtx, cancel := r.withTimeout(ctx)
	defer cancel()
	res, err := r.db.ExecContext(timeoutCtx, query, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
