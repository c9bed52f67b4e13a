package tasks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/shelf/internal/models"
	"github.com/desertthunder/shelf/internal/services"
	"github.com/desertthunder/shelf/internal/session"
	"github.com/desertthunder/shelf/internal/shared"
)

// ErrClosed is returned by operations started after [Collection.Close].
var ErrClosed = errors.New("collection closed")

// Store is the part of the remote API a [Collection] needs.
type Store interface {
	services.BookStore
	services.CategoryStore
}

// CollectionOpts configures a [Collection].
type CollectionOpts struct {
	Concurrency int                   // Review lookup limit passed to [EnrichReviews]
	Logger      *log.Logger           // nil discards
	Progress    chan<- ProgressUpdate // Optional, never blocks
}

// Snapshot is a consistent copy of a collection's state.
type Snapshot struct {
	Books   []models.Book
	Grouped Grouped
	Filter  models.FilterSpec
}

// Collection keeps an in-memory copy of the user's books consistent with the remote store.
//
// Operations are serialized, so two mutations never start from the same stale snapshot.
// Every change to the books replaces the list and regroups it in one step under the write
// lock; on failure nothing changes. Readers always receive copies.
type Collection struct {
	store    Store
	sess     *session.Session
	logger   *log.Logger
	limit    int
	progress chan<- ProgressUpdate

	opMu sync.Mutex

	mu      sync.RWMutex
	books   []models.Book
	grouped Grouped
	filter  models.FilterSpec

	closed atomic.Bool
}

// NewCollection creates an empty collection bound to a session.
func NewCollection(store Store, sess *session.Session, opts CollectionOpts) *Collection {
	logger := opts.Logger
	if logger == nil {
		logger = shared.NewLogger(io.Discard)
	}
	return &Collection{
		store:    store,
		sess:     sess,
		logger:   logger.With("component", "collection"),
		limit:    opts.Concurrency,
		progress: opts.Progress,
		grouped:  Grouped{},
		filter:   models.DefaultFilter(),
	}
}

// Session returns the session the collection acts for.
func (c *Collection) Session() *session.Session {
	return c.sess
}

// Close detaches the consumer. Operations still in flight finish their requests but drop their
// results, and new operations return [ErrClosed].
func (c *Collection) Close() {
	c.closed.Store(true)
}

// Closed reports whether [Collection.Close] was called.
func (c *Collection) Closed() bool {
	return c.closed.Load()
}

// Load fetches the user's books, or the books matching the current filter when useFilters is
// set, looks up their reviews and replaces the collection. On failure the collection is untouched.
func (c *Collection) Load(ctx context.Context, useFilters bool) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()
	if c.Closed() {
		return ErrClosed
	}

	sendProgress(c.progress, fetchBooksUpdate(useFilters))

	var (
		books []models.Book
		err   error
	)
	if useFilters {
		books, err = c.store.FilterBooks(ctx, c.Filter())
	} else {
		if !c.sess.Valid() {
			return fmt.Errorf("%w: cannot load books", shared.ErrNoSession)
		}
		books, err = c.store.BooksForUser(ctx, c.sess.Email)
	}
	if err != nil {
		return c.dropIfClosed("load", err)
	}
	sendProgress(c.progress, fetchedBooksUpdate(len(books)))

	results := EnrichReviews(ctx, c.store, books, c.sess, EnrichOpts{
		Concurrency: c.limit,
		Logger:      c.logger,
		Progress:    c.progress,
	})
	merged := MergeReviews(books, results)

	c.commit("load", func([]models.Book) []models.Book { return merged })
	return nil
}

// Refilter reloads the collection through the filter endpoint.
func (c *Collection) Refilter(ctx context.Context) error {
	return c.Load(ctx, true)
}

// Add creates a book and, when the draft asks for one, its review.
//
// If the book cannot be created nothing changes. If the book is created but the review is not,
// the book is still added without a review and the returned error wraps [shared.ErrPartialFailure]
// alongside the remote error; the returned book is non-nil in that case.
func (c *Collection) Add(ctx context.Context, draft models.NewBookDraft) (*models.Book, error) {
	c.opMu.Lock()
	defer c.opMu.Unlock()
	if c.Closed() {
		return nil, ErrClosed
	}
	if !c.sess.Valid() {
		return nil, fmt.Errorf("%w: cannot add books", shared.ErrNoSession)
	}

	sendProgress(c.progress, createBookUpdate(draft.Title))
	created, err := c.store.CreateBook(ctx, draft.Request(c.sess.UserID))
	if err != nil {
		return nil, c.dropIfClosed("add", err)
	}
	book := created.Clone()

	var partial error
	if draft.WantsReview() {
		sendProgress(c.progress, createReviewUpdate(&book))
		review, err := c.store.CreateReview(ctx, draft.ReviewRequest(book.ID, c.sess.UserID))
		if err != nil {
			c.logger.Warn("book created without review", "book_id", book.ID, "reason", err)
			partial = fmt.Errorf("%w: book %d was created but its review was not: %w", shared.ErrPartialFailure, book.ID, err)
		} else if review != nil {
			r := *review
			book.Review = &r
		}
	}

	if !c.commit("add", func(cur []models.Book) []models.Book { return append(cur, book.Clone()) }) {
		return &book, nil
	}
	return &book, partial
}

// Edit sends the full book to the store and replaces the local entry with the server's answer.
// A review the server does not echo back is kept from the submitted book.
func (c *Collection) Edit(ctx context.Context, book models.Book) (*models.Book, error) {
	c.opMu.Lock()
	defer c.opMu.Unlock()
	if c.Closed() {
		return nil, ErrClosed
	}

	sendProgress(c.progress, updateBookUpdate(book))
	updated, err := c.store.UpdateBook(ctx, book)
	if err != nil {
		return nil, c.dropIfClosed("edit", err)
	}

	result := updated.Clone()
	if result.Review == nil && book.Review != nil {
		r := *book.Review
		result.Review = &r
	}

	c.commit("edit", func(cur []models.Book) []models.Book {
		i := slices.IndexFunc(cur, func(b models.Book) bool { return b.ID == result.ID })
		if i < 0 {
			return append(cur, result.Clone())
		}
		cur[i] = result.Clone()
		return cur
	})
	return &result, nil
}

// Delete removes a book from the store and then from the collection.
func (c *Collection) Delete(ctx context.Context, id int64) error {
	c.opMu.Lock()
	defer c.opMu.Unlock()
	if c.Closed() {
		return ErrClosed
	}

	sendProgress(c.progress, deleteBookUpdate(id))
	if err := c.store.DeleteBook(ctx, id); err != nil {
		return c.dropIfClosed("delete", err)
	}

	c.commit("delete", func(cur []models.Book) []models.Book {
		return slices.DeleteFunc(cur, func(b models.Book) bool { return b.ID == id })
	})
	return nil
}

// SuggestCategory asks the store for a category name for title. The collection is never changed.
func (c *Collection) SuggestCategory(ctx context.Context, title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", fmt.Errorf("%w: title is required for a suggestion", shared.ErrValidation)
	}
	sendProgress(c.progress, suggestCategoryUpdate(title))
	return c.store.SuggestCategory(ctx, title)
}

// SetFilter validates and stores the filter used by [Collection.Refilter]. Empty sort settings
// fall back to title ascending.
func (c *Collection) SetFilter(f models.FilterSpec) error {
	if err := f.Validate(); err != nil {
		return err
	}
	if f.SortBy == "" {
		f.SortBy = models.SortByTitle
	}
	if f.Order == "" {
		f.Order = models.OrderAsc
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.filter = f
	return nil
}

// Filter returns the current filter.
func (c *Collection) Filter() models.FilterSpec {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.filter
}

// Books returns a copy of the collection in order.
func (c *Collection) Books() []models.Book {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return models.CloneBooks(c.books)
}

// Grouped returns a copy of the grouped view.
func (c *Collection) Grouped() Grouped {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.grouped.Clone()
}

// Snapshot returns the books, grouped view and filter as one consistent copy.
func (c *Collection) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Snapshot{Books: models.CloneBooks(c.books), Grouped: c.grouped.Clone(), Filter: c.filter}
}

// commit replaces the books with next(current copy) and regroups, unless the collection was
// closed, in which case it reports false and changes nothing.
func (c *Collection) commit(op string, next func([]models.Book) []models.Book) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.Closed() {
		c.logger.Debug("dropping result after close", "op", op)
		return false
	}
	c.books = next(models.CloneBooks(c.books))
	c.grouped = GroupByCategory(c.books)
	return true
}

// dropIfClosed swallows errors from operations whose consumer has gone away.
func (c *Collection) dropIfClosed(op string, err error) error {
	if c.Closed() {
		c.logger.Debug("dropping failure after close", "op", op, "err", err)
		return nil
	}
	return err
}
