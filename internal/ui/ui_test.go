package ui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/shelf/internal/models"
	"github.com/desertthunder/shelf/internal/services"
	"github.com/desertthunder/shelf/internal/session"
	"github.com/desertthunder/shelf/internal/shared"
	"github.com/desertthunder/shelf/internal/tasks"
	tu "github.com/desertthunder/shelf/internal/testing"
)

var fiction = &models.Category{ID: 1, Name: "Fiction"}

func seedBooks() []models.Book {
	return []models.Book{
		{ID: 1, Title: "Dune", Author: "Herbert", ReadingStatus: models.StatusCompleted, CategoryID: 1, Category: fiction},
		{ID: 2, Title: "Emma", Author: "Austen", ReadingStatus: models.StatusNotStarted},
	}
}

func keyPress(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// run executes cmd synchronously and feeds its message back into the model.
func run(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	m.Update(cmd())
}

func newTestModel(t *testing.T, store *tu.FakeStore) (*Model, *tasks.Collection) {
	t.Helper()
	sess := &session.Session{UserID: 7, Email: "a@x.com"}
	c := tasks.NewCollection(store, sess, tasks.CollectionOpts{})
	m := NewModel(context.Background(), c, nil)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 40})
	run(t, m, m.load(false))
	return m, c
}

// selectTitle moves the cursor onto the book with the given title.
func selectTitle(t *testing.T, m *Model, title string) {
	t.Helper()
	for i, item := range m.books.Items() {
		if b, ok := item.(bookItem); ok && b.book.Title == title {
			m.books.Select(i)
			return
		}
	}
	t.Fatalf("no list item for %q", title)
}

func TestModel(t *testing.T) {
	t.Run("Initial Load", func(t *testing.T) {
		m, _ := newTestModel(t, tu.NewFakeStore(seedBooks()...))

		if m.busy {
			t.Error("expected load to finish")
		}
		if m.err != nil {
			t.Fatalf("unexpected error: %v", m.err)
		}

		items := m.books.Items()
		if len(items) != 4 {
			t.Fatalf("expected 2 headers and 2 books, got %d items", len(items))
		}
		if h, ok := items[0].(headerItem); !ok || h.name != "Fiction" || h.count != 1 {
			t.Errorf("expected Fiction header first, got %+v", items[0])
		}
		if h, ok := items[2].(headerItem); !ok || h.name != models.UncategorizedLabel {
			t.Errorf("expected %s header last, got %+v", models.UncategorizedLabel, items[2])
		}
		if !strings.Contains(m.View(), "My Books") {
			t.Error("expected list title in view")
		}
	})

	t.Run("Load Failure", func(t *testing.T) {
		store := tu.NewFakeStore(seedBooks()...)
		store.ListErr = &services.RemoteError{Op: "list books", Err: errors.New("refused")}
		m, _ := newTestModel(t, store)

		if !errors.Is(m.err, shared.ErrNetwork) {
			t.Fatalf("expected network error, got %v", m.err)
		}
		if !strings.Contains(m.View(), "Error:") {
			t.Error("expected error in view")
		}
	})

	t.Run("Cycle Sort Key", func(t *testing.T) {
		store := tu.NewFakeStore(seedBooks()...)
		m, c := newTestModel(t, store)

		_, cmd := m.Update(keyPress("f"))
		run(t, m, cmd)

		if got := c.Filter().SortBy; got != models.SortByAuthor {
			t.Errorf("expected sort by author, got %s", got)
		}
		if store.CallCount("FilterBooks") != 1 {
			t.Errorf("expected one filter request, got %v", store.Calls())
		}
		if !strings.Contains(m.status, "author asc") {
			t.Errorf("expected status to name the sort, got %q", m.status)
		}
	})

	t.Run("Toggle Order", func(t *testing.T) {
		m, c := newTestModel(t, tu.NewFakeStore(seedBooks()...))

		_, cmd := m.Update(keyPress("o"))
		run(t, m, cmd)

		if got := c.Filter().Order; got != models.OrderDesc {
			t.Errorf("expected descending order, got %s", got)
		}
	})

	t.Run("Reload After Sorting Uses Filter", func(t *testing.T) {
		store := tu.NewFakeStore(seedBooks()...)
		m, _ := newTestModel(t, store)

		_, cmd := m.Update(keyPress("r"))
		run(t, m, cmd)
		if store.CallCount("BooksForUser") != 2 {
			t.Errorf("expected plain reload, got %v", store.Calls())
		}

		_, cmd = m.Update(keyPress("o"))
		run(t, m, cmd)
		_, cmd = m.Update(keyPress("r"))
		run(t, m, cmd)
		if store.CallCount("FilterBooks") != 2 {
			t.Errorf("expected filtered reloads, got %v", store.Calls())
		}
	})

	t.Run("Suggest Category", func(t *testing.T) {
		store := tu.NewFakeStore(seedBooks()...)
		store.Suggestion = "Classics"
		m, c := newTestModel(t, store)
		selectTitle(t, m, "Emma")
		before := c.Books()

		_, cmd := m.Update(keyPress("s"))
		run(t, m, cmd)

		if !strings.Contains(m.status, "Classics") {
			t.Errorf("expected suggestion in status, got %q", m.status)
		}
		if got := c.Books(); len(got) != len(before) || got[1].Category != nil {
			t.Error("suggestion must not change the collection")
		}
	})

	t.Run("Header Selected", func(t *testing.T) {
		m, _ := newTestModel(t, tu.NewFakeStore(seedBooks()...))
		m.books.Select(0)

		_, cmd := m.Update(keyPress("d"))
		if cmd != nil {
			t.Error("expected no command for a header")
		}
		if m.view != BrowseView {
			t.Error("delete dialog must not open on a header")
		}
	})
}

func TestDeleteDialog(t *testing.T) {
	t.Run("Cancel", func(t *testing.T) {
		store := tu.NewFakeStore(seedBooks()...)
		m, _ := newTestModel(t, store)
		selectTitle(t, m, "Dune")

		m.Update(keyPress("d"))
		if m.view != ConfirmDeleteView {
			t.Fatal("expected confirmation view")
		}
		if !strings.Contains(m.View(), "Dune") {
			t.Error("expected book title in dialog")
		}

		m.Update(keyPress("n"))
		if m.view != BrowseView || m.pending != nil {
			t.Error("expected dialog to close")
		}
		if store.CallCount("DeleteBook") != 0 {
			t.Error("cancel must not delete")
		}
	})

	t.Run("Failure Keeps Dialog Open", func(t *testing.T) {
		store := tu.NewFakeStore(seedBooks()...)
		store.DeleteErr = &services.RemoteError{Op: "delete book", Status: 500, Message: "boom"}
		m, c := newTestModel(t, store)
		selectTitle(t, m, "Dune")

		m.Update(keyPress("d"))
		_, cmd := m.Update(keyPress("y"))
		run(t, m, cmd)

		if m.view != ConfirmDeleteView {
			t.Fatal("expected dialog to stay open")
		}
		if !errors.Is(m.confirmErr, shared.ErrServerRejected) {
			t.Errorf("expected server error in dialog, got %v", m.confirmErr)
		}
		if !strings.Contains(m.View(), "Delete failed") {
			t.Error("expected failure message in dialog")
		}
		if len(c.Books()) != 2 {
			t.Error("collection must be unchanged after a failed delete")
		}
	})

	t.Run("Success Closes Dialog", func(t *testing.T) {
		store := tu.NewFakeStore(seedBooks()...)
		m, c := newTestModel(t, store)
		selectTitle(t, m, "Dune")

		m.Update(keyPress("d"))
		_, cmd := m.Update(keyPress("y"))
		run(t, m, cmd)

		if m.view != BrowseView {
			t.Fatal("expected dialog to close")
		}
		if books := c.Books(); len(books) != 1 || books[0].ID != 2 {
			t.Errorf("expected only Emma left, got %+v", books)
		}
		for _, item := range m.books.Items() {
			if b, ok := item.(bookItem); ok && b.book.ID == 1 {
				t.Error("deleted book still listed")
			}
		}
		if !strings.Contains(m.status, "Dune") {
			t.Errorf("expected status to name the deleted book, got %q", m.status)
		}
	})

	t.Run("Keys Ignored While Deleting", func(t *testing.T) {
		m, _ := newTestModel(t, tu.NewFakeStore(seedBooks()...))
		selectTitle(t, m, "Dune")

		m.Update(keyPress("d"))
		m.Update(keyPress("y"))
		m.Update(keyPress("n"))
		if m.view != ConfirmDeleteView {
			t.Error("dialog must stay open while the delete is in flight")
		}
	})
}

func TestQuit(t *testing.T) {
	m, c := newTestModel(t, tu.NewFakeStore(seedBooks()...))

	_, cmd := m.Update(keyPress("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
	if !c.Closed() {
		t.Error("expected collection to be closed on quit")
	}
	if m.View() != "" {
		t.Error("expected empty view after quit")
	}
}

func TestGroupedItems(t *testing.T) {
	grouped := tasks.GroupByCategory(seedBooks())
	items := groupedItems(grouped)

	var titles []string
	for _, item := range items {
		if b, ok := item.(bookItem); ok {
			titles = append(titles, b.book.Title)
		}
	}
	if strings.Join(titles, ",") != "Dune,Emma" {
		t.Errorf("unexpected order %v", titles)
	}

	reviewed := bookItem{book: models.Book{Title: "X", Author: "Y", ReadingStatus: models.StatusCompleted, Review: &models.Review{Rating: 3}}}
	if !strings.Contains(reviewed.Description(), "★★★☆☆") {
		t.Errorf("expected stars in description, got %q", reviewed.Description())
	}
}
