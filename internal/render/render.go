package render

import (
	"strconv"

	"bookstore/internal/book"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// BookHeaders are the column titles for book listings.
var BookHeaders = []string{"id", "Title", "Author", "qty"}

var (
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	numericStyle = cellStyle.Align(lipgloss.Right)
)

// Table draws rows as a rounded grid with a rule between every row.
// Columns listed in numeric are right aligned.
func Table(headers []string, rows [][]string, numeric ...int) string {
	right := make(map[int]bool, len(numeric))
	for _, c := range numeric {
		right[c] = true
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderRow(true).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if right[col] {
				return numericStyle
			}
			return cellStyle
		})
	return t.String()
}

// Books renders books under BookHeaders.
func Books(books []book.Book) string {
	rows := make([][]string, 0, len(books))
	for _, b := range books {
		rows = append(rows, []string{strconv.Itoa(b.ID), b.Title, b.Author, strconv.Itoa(b.Quantity)})
	}
	return Table(BookHeaders, rows, 0, 3)
}
