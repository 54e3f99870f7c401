package console

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"bookstore/internal/book"
	"bookstore/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// run feeds the given input lines to a console over a seeded database and
// returns what it printed along with the service for inspection.
func run(t *testing.T, lines ...string) (string, *book.Service) {
	t.Helper()
	svc, _ := testutil.NewSeededService(t)
	var out bytes.Buffer
	c := New(svc, strings.NewReader(strings.Join(lines, "\n")+"\n"), &out, zaptest.NewLogger(t))

	require.NoError(t, c.Run(context.Background()))
	return out.String(), svc
}

func TestRun_Exit(t *testing.T) {
	out, _ := run(t, "0")

	assert.Contains(t, out, "1 - Enter Book")
	assert.Contains(t, out, "0 - Exit")
	assert.Contains(t, out, "Thanks for using the eBookStore!")
}

func TestRun_EndOfInputExits(t *testing.T) {
	svc, _ := testutil.NewSeededService(t)
	var out bytes.Buffer
	c := New(svc, strings.NewReader(""), &out, zaptest.NewLogger(t))

	assert.NoError(t, c.Run(context.Background()))
}

func TestRun_InvalidSelections(t *testing.T) {
	out, _ := run(t, "abc", "", "9", "-1", "0")

	assert.Equal(t, 2, strings.Count(out, "That was not a valid number"))
	assert.Equal(t, 2, strings.Count(out, "Please enter a valid option."))
	assert.Equal(t, 5, strings.Count(out, "5 - View All Books"))
}

func TestRun_ViewAll(t *testing.T) {
	out, _ := run(t, "5", "0")

	for _, b := range book.SeedBooks {
		assert.Contains(t, out, b.Title)
	}
	assert.Contains(t, out, "qty")
}

func TestRun_AddBook(t *testing.T) {
	out, svc := run(t, "1", "Dune", "Frank Herbert", "ten", "10", "0")

	assert.Contains(t, out, "That was not a valid number")
	assert.Contains(t, out, "Dune has been added to the Database.")

	b, err := svc.Get(context.Background(), 3006)
	require.NoError(t, err)
	assert.Equal(t, book.Book{ID: 3006, Title: "Dune", Author: "Frank Herbert", Quantity: 10}, b)
}

func TestRun_AddKeepsTitleWhitespace(t *testing.T) {
	_, svc := run(t, "1", "  Spaced Out ", "Anon", "1", "0")

	b, err := svc.Get(context.Background(), 3006)
	require.NoError(t, err)
	assert.Equal(t, "  Spaced Out ", b.Title)
}

func TestRun_UpdateTitle(t *testing.T) {
	out, svc := run(t, "2", "x", "9999", "3001", "Z", "t", "Great Expectations", "0")

	assert.Contains(t, out, "That was not a valid id number")
	assert.Contains(t, out, "This book is not in the database.")
	assert.Contains(t, out, "Please enter a valid option.")
	assert.Contains(t, out, "The book Title has been updated.")

	b, err := svc.Get(context.Background(), 3001)
	require.NoError(t, err)
	assert.Equal(t, "Great Expectations", b.Title)
	assert.Equal(t, "Charles Dickens", b.Author)
}

func TestRun_UpdateQuantityRepromptsValue(t *testing.T) {
	out, svc := run(t, "2", "3004", "Q", "many", "5", "0")

	assert.Contains(t, out, "That was not a valid number")
	assert.Contains(t, out, "The book quantity has been updated.")

	books, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	for i, b := range books {
		want := book.SeedBooks[i]
		if b.ID == 3004 {
			want.Quantity = 5
		}
		assert.Equal(t, want, b)
	}
}

func TestRun_UpdateAuthor(t *testing.T) {
	_, svc := run(t, "2", "3003", "a", "Clive Staples Lewis", "0")

	b, err := svc.Get(context.Background(), 3003)
	require.NoError(t, err)
	assert.Equal(t, "Clive Staples Lewis", b.Author)
}

func TestRun_DeleteBook(t *testing.T) {
	out, svc := run(t, "3", "1234", "3002", "0")

	assert.Contains(t, out, "This book is not in the database.")
	assert.Contains(t, out, "This book has been deleted from the database.")

	books, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{3001, 3003, 3004, 3005}, testutil.IDs(books))
}

func TestRun_SearchBook(t *testing.T) {
	out, _ := run(t, "4", "alice in wonderland", "Alice in Wonderland", "0")

	assert.Equal(t, 1, strings.Count(out, "doesn't exist in the database"))
	assert.Contains(t, out, "3005")
	assert.Contains(t, out, "Lewis Carroll")
	assert.NotContains(t, out, "Charles Dickens")
}

func TestRun_EndOfInputMidOperation(t *testing.T) {
	out, _ := run(t, "4", "nope")

	assert.Contains(t, out, "doesn't exist in the database")
}

func TestRun_Scenario(t *testing.T) {
	_, svc := run(t, "1", "Dune", "Frank Herbert", "10", "3", "3006", "0")

	books, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, book.SeedBooks, books)
}

type failingInventory struct {
	Inventory
}

func (failingInventory) ListAll(context.Context) ([]book.Book, error) {
	return nil, errors.New("database is locked")
}

func TestRun_StorageErrorReturnsToMenu(t *testing.T) {
	var out bytes.Buffer
	c := New(failingInventory{}, strings.NewReader("5\n0\n"), &out, zaptest.NewLogger(t))

	require.NoError(t, c.Run(context.Background()))
	assert.Contains(t, out.String(), "Something went wrong: database is locked")
	assert.Contains(t, out.String(), "Thanks for using the eBookStore!")
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := New(failingInventory{}, strings.NewReader("5\n"), &bytes.Buffer{}, zaptest.NewLogger(t))
	assert.ErrorIs(t, c.Run(ctx), context.Canceled)
}
