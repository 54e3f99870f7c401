package book

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrNotFound is returned when no book matches the given id or title.
	ErrNotFound = errors.New("book not found")
	// ErrInvalidField is returned for an unrecognised update field code.
	ErrInvalidField = errors.New("invalid field choice")
	// ErrInvalidInput is returned when text that must be an integer is not one.
	ErrInvalidInput = errors.New("invalid numeric input")
)

// Book represents a book entity.
type Book struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Author   string `json:"author"`
	Quantity int    `json:"quantity"`
}

func (b Book) String() string {
	return fmt.Sprintf("%d, %s, %s, %d", b.ID, b.Title, b.Author, b.Quantity)
}

// Field names a single updatable column of a book.
type Field string

const (
	FieldTitle    Field = "title"
	FieldAuthor   Field = "author"
	FieldQuantity Field = "quantity"
)

// ParseField maps a menu code (T, A, Q) or a field name to a Field.
// Matching is case-insensitive.
func ParseField(s string) (Field, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "t", "title":
		return FieldTitle, nil
	case "a", "author":
		return FieldAuthor, nil
	case "q", "quantity", "qty":
		return FieldQuantity, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidField, s)
	}
}

// ParseInt parses user-typed text as an integer, ignoring surrounding blanks.
func ParseInt(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidInput, s)
	}
	return n, nil
}

// SeedBooks is the fixed inventory loaded on startup with insert-or-ignore.
var SeedBooks = []Book{
	{ID: 3001, Title: "A Tale of Two Cities", Author: "Charles Dickens", Quantity: 30},
	{ID: 3002, Title: "Harry Potter and the Philosopher's Stone", Author: "J.K.Rowling", Quantity: 40},
	{ID: 3003, Title: "The Lion the Witch and the Wardrobe", Author: "C.S. Lewis", Quantity: 25},
	{ID: 3004, Title: "The Lord of the Rings", Author: "J.R.R Tolkien", Quantity: 37},
	{ID: 3005, Title: "Alice in Wonderland", Author: "Lewis Carroll", Quantity: 12},
}
