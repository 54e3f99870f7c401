package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"bookstore/internal/book"
	"bookstore/internal/render"

	"go.uber.org/zap"
)

const menuText = `
Book DataBase Menu, please enter the number of the option you'd like:
    1 - Enter Book
    2 - Update Book
    3 - Delete Book
    4 - Search Book
    5 - View All Books
    0 - Exit
    : `

const fieldMenuText = `
What do you want to update?
Please select one of the following options:
    T - The book Title
    A - The book's Author
    Q - The Quantity of the book
    : `

const (
	msgInvalidNumber = "\nOops! That was not a valid number, try again!"
	msgInvalidID     = "\nOops! That was not a valid id number, try again!"
	msgInvalidOption = "\nPlease enter a valid option.\n"
	msgIDNotFound    = "\nThis book is not in the database. please try again."
	msgTitleNotFound = "This book doesn't exist in the database, please try again."
	msgFarewell      = "\nThanks for using the eBookStore! Have a great one!"
)

// Menu choices.
const (
	choiceExit = iota
	choiceAdd
	choiceUpdate
	choiceDelete
	choiceSearch
	choiceView
)

// Inventory is the set of book operations the menu dispatches to.
type Inventory interface {
	ListAll(ctx context.Context) ([]book.Book, error)
	Add(ctx context.Context, title, author string, quantity int) (book.Book, error)
	Get(ctx context.Context, id int) (book.Book, error)
	UpdateField(ctx context.Context, id int, field book.Field, value string) error
	Delete(ctx context.Context, id int) error
	SearchTitle(ctx context.Context, title string) (book.Book, error)
}

// Console runs the interactive text menu over an Inventory.
type Console struct {
	inv    Inventory
	in     *bufio.Reader
	out    io.Writer
	logger *zap.Logger
}

func New(inv Inventory, in io.Reader, out io.Writer, logger *zap.Logger) *Console {
	return &Console{
		inv:    inv,
		in:     bufio.NewReader(in),
		out:    out,
		logger: logger,
	}
}

// Run shows the menu and dispatches selections until the user exits or
// input ends. Both return nil. Operation failures are reported and the
// menu is shown again.
func (c *Console) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		line, err := c.prompt(menuText)
		if err != nil {
			return c.endOfInput(err)
		}
		choice, err := book.ParseInt(line)
		if err != nil {
			c.println(msgInvalidNumber)
			continue
		}
		c.logger.Debug("menu selection", zap.Int("choice", choice))

		switch choice {
		case choiceAdd:
			err = c.addBook(ctx)
		case choiceUpdate:
			err = c.updateBook(ctx)
		case choiceDelete:
			err = c.deleteBook(ctx)
		case choiceSearch:
			err = c.searchBook(ctx)
		case choiceView:
			err = c.viewAll(ctx)
		case choiceExit:
			c.println(msgFarewell)
			return nil
		default:
			c.println(msgInvalidOption)
			continue
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				return c.endOfInput(err)
			}
			c.logger.Error("operation failed", zap.Int("choice", choice), zap.Error(err))
			c.printf("\nSomething went wrong: %v\n", err)
		}
	}
}

func (c *Console) addBook(ctx context.Context) error {
	title, err := c.prompt("What is the Book Title? ")
	if err != nil {
		return err
	}
	author, err := c.prompt("Who is the Author of this book? ")
	if err != nil {
		return err
	}
	qty, err := c.promptInt("How many copies of the book do you have? ", msgInvalidNumber)
	if err != nil {
		return err
	}

	b, err := c.inv.Add(ctx, title, author, qty)
	if err != nil {
		return err
	}
	c.logger.Info("book added", zap.Int("id", b.ID), zap.String("title", b.Title))
	c.printf("\n%s has been added to the Database.\n", b.Title)
	return nil
}

func (c *Console) updateBook(ctx context.Context) error {
	if err := c.viewAll(ctx); err != nil {
		return err
	}
	id, err := c.promptExistingID(ctx, "\nWhat is the id of the book would you like to update? ")
	if err != nil {
		return err
	}

	var field book.Field
	for {
		code, err := c.prompt(fieldMenuText)
		if err != nil {
			return err
		}
		if field, err = book.ParseField(code); err == nil {
			break
		}
		c.println(msgInvalidOption)
	}

	var value string
	if field == book.FieldQuantity {
		n, err := c.promptInt("\nWhat is the book's updated Quantity? ", msgInvalidNumber)
		if err != nil {
			return err
		}
		value = strconv.Itoa(n)
	} else {
		label := fieldLabel(field)
		if value, err = c.prompt(fmt.Sprintf("\nWhat is the book's updated %s? ", label)); err != nil {
			return err
		}
	}

	if err := c.inv.UpdateField(ctx, id, field, value); err != nil {
		return err
	}
	c.logger.Info("book updated", zap.Int("id", id), zap.String("field", string(field)))
	c.printf("\nThe book %s has been updated.\n\n", fieldLabel(field))
	return nil
}

func (c *Console) deleteBook(ctx context.Context) error {
	if err := c.viewAll(ctx); err != nil {
		return err
	}
	id, err := c.promptExistingID(ctx, "\nWhat is the id of the book would you like to delete? ")
	if err != nil {
		return err
	}
	if err := c.inv.Delete(ctx, id); err != nil {
		return err
	}
	c.logger.Info("book deleted", zap.Int("id", id))
	c.println("\nThis book has been deleted from the database.")
	return nil
}

func (c *Console) searchBook(ctx context.Context) error {
	for {
		title, err := c.prompt("What is the title of the book you would like to find? (This is Case & Space Sensitive): ")
		if err != nil {
			return err
		}
		b, err := c.inv.SearchTitle(ctx, title)
		if errors.Is(err, book.ErrNotFound) {
			c.println(msgTitleNotFound)
			continue
		}
		if err != nil {
			return err
		}
		c.println(render.Books([]book.Book{b}))
		return nil
	}
}

func (c *Console) viewAll(ctx context.Context) error {
	books, err := c.inv.ListAll(ctx)
	if err != nil {
		return err
	}
	c.println(render.Books(books))
	return nil
}

// promptExistingID asks for an id until it parses and names a stored book.
func (c *Console) promptExistingID(ctx context.Context, text string) (int, error) {
	for {
		id, err := c.promptInt(text, msgInvalidID)
		if err != nil {
			return 0, err
		}
		_, err = c.inv.Get(ctx, id)
		if errors.Is(err, book.ErrNotFound) {
			c.println(msgIDNotFound)
			continue
		}
		if err != nil {
			return 0, err
		}
		return id, nil
	}
}

// promptInt asks until the answer parses as an integer.
func (c *Console) promptInt(text, invalid string) (int, error) {
	for {
		line, err := c.prompt(text)
		if err != nil {
			return 0, err
		}
		n, err := book.ParseInt(line)
		if err == nil {
			return n, nil
		}
		c.println(invalid)
	}
}

// prompt writes text and returns the next input line without its line
// ending. Other whitespace is kept because title search is exact.
func (c *Console) prompt(text string) (string, error) {
	c.printf("%s", text)
	line, err := c.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (c *Console) endOfInput(err error) error {
	if errors.Is(err, io.EOF) {
		c.logger.Debug("input closed")
		c.println("")
		return nil
	}
	return err
}

func (c *Console) printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

func (c *Console) println(s string) {
	fmt.Fprintln(c.out, s)
}

func fieldLabel(f book.Field) string {
	switch f {
	case book.FieldTitle:
		return "Title"
	case book.FieldAuthor:
		return "Author"
	default:
		return "quantity"
	}
}
