package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/shelf/internal/models"
	"github.com/desertthunder/shelf/internal/tasks"
)

var (
	_ list.Item = headerItem{}
	_ list.Item = bookItem{}
)

// headerItem is a category heading in the book list.
type headerItem struct {
	name  string
	count int
}

func (i headerItem) FilterValue() string { return i.name }
func (i headerItem) Title() string       { return styles.header.Render(i.name) }
func (i headerItem) Description() string { return fmt.Sprintf("%d books", i.count) }

// bookItem wraps [models.Book] to implement [list.Item].
type bookItem struct {
	book models.Book
}

func (i bookItem) FilterValue() string { return i.book.Title }
func (i bookItem) Title() string       { return "  " + i.book.Title }
func (i bookItem) Description() string {
	parts := []string{i.book.Author, i.book.ReadingStatus.Label()}
	if i.book.Review != nil {
		parts = append(parts, i.book.Review.Stars())
	}
	return "  " + strings.Join(parts, " • ")
}

// groupedItems lays out grouped books as headers followed by their books.
func groupedItems(grouped tasks.Grouped) []list.Item {
	items := make([]list.Item, 0, grouped.Count()+len(grouped))
	for _, name := range tasks.CategoryNames(grouped) {
		books := grouped[name]
		items = append(items, headerItem{name: name, count: len(books)})
		for _, b := range books {
			items = append(items, bookItem{book: b})
		}
	}
	return items
}
