package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/shelf/internal/models"
	"github.com/desertthunder/shelf/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	BrowseView ViewState = iota
	ConfirmDeleteView
)

// Model represents the TUI application state.
type Model struct {
	ctx        context.Context
	view       ViewState
	collection *tasks.Collection
	progressCh <-chan tasks.ProgressUpdate
	progress   tasks.ProgressUpdate
	width      int
	height     int
	books      list.Model
	filtered   bool // reload through the filter endpoint once sorting has changed
	busy       bool
	status     string
	err        error
	pending    *models.Book // book awaiting delete confirmation
	confirmErr error
	quitting   bool
	help       help.Model
	keys       keyMap
}

// NewModel creates a browser over collection. progress may be nil; when set it should be the
// channel the collection reports to.
func NewModel(ctx context.Context, collection *tasks.Collection, progress <-chan tasks.ProgressUpdate) *Model {
	books := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	books.Title = "My Books"
	books.SetFilteringEnabled(false)
	books.SetShowHelp(false)
	books.DisableQuitKeybindings()

	return &Model{
		ctx:        ctx,
		view:       BrowseView,
		collection: collection,
		progressCh: progress,
		books:      books,
		busy:       true,
		help:       help.New(),
		keys:       newKeyMap(),
	}
}

// Init loads the user's books and starts listening for progress.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.load(false), m.waitForProgress())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.books.SetSize(max(msg.Width-4, 0), max(msg.Height-8, 0))
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case ConfirmDeleteView:
			return m.handleConfirmKeys(msg)
		default:
			return m.handleBrowseKeys(msg)
		}

	case Msg:
		return m.handleMsg(msg)
	}

	var cmd tea.Cmd
	m.books, cmd = m.books.Update(msg)
	return m, cmd
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgBooksLoaded:
		res := msg.data.(loadResult)
		m.busy = false
		if res.err != nil {
			m.err = res.err
			return m, nil
		}
		m.err = nil
		m.status = fmt.Sprintf("Sorted by %s", m.collection.Filter())
		return m, m.refreshList()

	case MsgBookDeleted:
		res := msg.data.(deleteResult)
		m.busy = false
		if res.err != nil {
			m.confirmErr = res.err
			return m, nil
		}
		if m.pending != nil {
			m.status = fmt.Sprintf("Deleted %q", m.pending.Title)
		}
		m.closeConfirm()
		return m, m.refreshList()

	case MsgCategorySuggested:
		res := msg.data.(suggestResult)
		m.busy = false
		if res.err != nil {
			m.err = res.err
			return m, nil
		}
		m.err = nil
		m.status = fmt.Sprintf("Suggested category for %q: %s", res.title, res.category)
		return m, nil

	case MsgProgressUpdate:
		m.progress = msg.data.(tasks.ProgressUpdate)
		return m, m.waitForProgress()
	}
	return m, nil
}

func (m *Model) handleBrowseKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		m.quitting = true
		m.collection.Close()
		return m, tea.Quit

	case key.Matches(msg, m.keys.reload):
		m.busy = true
		return m, m.load(m.filtered)

	case key.Matches(msg, m.keys.sortBy):
		f := m.collection.Filter()
		f.SortBy = f.SortBy.Next()
		return m, m.applyFilter(f)

	case key.Matches(msg, m.keys.order):
		f := m.collection.Filter()
		f.Order = f.Order.Toggle()
		return m, m.applyFilter(f)

	case key.Matches(msg, m.keys.suggest):
		book, ok := m.selectedBook()
		if !ok {
			m.status = "Select a book to suggest a category"
			return m, nil
		}
		m.busy = true
		return m, m.suggest(book.Title)

	case key.Matches(msg, m.keys.remove):
		book, ok := m.selectedBook()
		if !ok {
			m.status = "Select a book to delete"
			return m, nil
		}
		m.pending = &book
		m.confirmErr = nil
		m.view = ConfirmDeleteView
		return m, nil
	}

	var cmd tea.Cmd
	m.books, cmd = m.books.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.yes):
		m.busy = true
		m.confirmErr = nil
		return m, m.remove(m.pending.ID)
	case key.Matches(msg, m.keys.no), key.Matches(msg, m.keys.back):
		m.closeConfirm()
		return m, nil
	case key.Matches(msg, m.keys.quit):
		m.quitting = true
		m.collection.Close()
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) applyFilter(f models.FilterSpec) tea.Cmd {
	if err := m.collection.SetFilter(f); err != nil {
		m.err = err
		return nil
	}
	m.filtered = true
	m.busy = true
	return m.load(true)
}

func (m *Model) closeConfirm() {
	m.view = BrowseView
	m.pending = nil
	m.confirmErr = nil
}

func (m *Model) selectedBook() (models.Book, bool) {
	item, ok := m.books.SelectedItem().(bookItem)
	if !ok {
		return models.Book{}, false
	}
	return item.book, true
}

func (m *Model) refreshList() tea.Cmd {
	return m.books.SetItems(groupedItems(m.collection.Grouped()))
}

func (m *Model) load(useFilters bool) tea.Cmd {
	return func() tea.Msg {
		return booksLoadedMsg(m.collection.Load(m.ctx, useFilters))
	}
}

func (m *Model) remove(id int64) tea.Cmd {
	return func() tea.Msg {
		return bookDeletedMsg(id, m.collection.Delete(m.ctx, id))
	}
}

func (m *Model) suggest(title string) tea.Cmd {
	return func() tea.Msg {
		category, err := m.collection.SuggestCategory(m.ctx, title)
		return categorySuggestedMsg(title, category, err)
	}
}

func (m *Model) waitForProgress() tea.Cmd {
	if m.progressCh == nil {
		return nil
	}
	return func() tea.Msg {
		update, ok := <-m.progressCh
		if !ok {
			return nil
		}
		return progressUpdateMsg(update)
	}
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	switch m.view {
	case ConfirmDeleteView:
		return m.renderConfirm()
	default:
		return m.renderBrowse()
	}
}

func (m *Model) renderBrowse() string {
	var b strings.Builder
	b.WriteString(m.books.View())
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n\n")
	b.WriteString(m.help.ShortHelpView(m.keys.ShortHelp()))
	return b.String()
}

func (m *Model) renderStatus() string {
	switch {
	case m.err != nil:
		return styles.err.Render(fmt.Sprintf("Error: %v", m.err))
	case m.busy && m.progress.Message != "":
		return styles.warn.Render(m.progress.Message)
	case m.busy:
		return styles.warn.Render("Working...")
	default:
		return styles.ok.Render(m.status)
	}
}

func (m *Model) renderConfirm() string {
	if m.pending == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(styles.title.Render(fmt.Sprintf("Delete %q?", m.pending.Title)))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("by %s\n", m.pending.Author))
	switch {
	case m.busy:
		b.WriteString("\n" + styles.warn.Render("Deleting..."))
	case m.confirmErr != nil:
		b.WriteString("\n" + styles.err.Render(fmt.Sprintf("Delete failed: %v", m.confirmErr)))
	}
	b.WriteString("\n\n")
	b.WriteString(m.help.ShortHelpView([]key.Binding{m.keys.yes, m.keys.no}))
	return styles.dialog.Render(b.String())
}
