package tasks

import (
	"context"
	"errors"
	"io"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/shelf/internal/models"
	"github.com/desertthunder/shelf/internal/services"
	"github.com/desertthunder/shelf/internal/session"
	"github.com/desertthunder/shelf/internal/shared"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds concurrent review lookups when no limit is configured.
const DefaultConcurrency = 4

// errNoReview marks a lookup that succeeded but found nothing.
var errNoReview = errors.New("no review")

// ReviewFetcher fetches a single user's review of a book.
type ReviewFetcher interface {
	Review(ctx context.Context, bookID, userID int64) (*models.Review, error)
}

// ReviewResult is the outcome of one review lookup.
type ReviewResult struct {
	Book   models.Book    // Book the lookup was for
	Review *models.Review // Review found (nil when the lookup failed or found none)
	Err    error          // Err is set when the lookup failed
}

// Ok reports whether a review was found.
func (r ReviewResult) Ok() bool {
	return r.Err == nil && r.Review != nil
}

// Reason describes why the result is not Ok. It is empty for Ok results.
func (r ReviewResult) Reason() string {
	switch {
	case r.Err != nil:
		return r.Err.Error()
	case r.Review == nil:
		return errNoReview.Error()
	default:
		return ""
	}
}

// EnrichOpts configures [EnrichReviews].
type EnrichOpts struct {
	Concurrency int                   // Maximum in-flight lookups; zero or less uses [DefaultConcurrency]
	Logger      *log.Logger           // Logger for per-book failures; nil discards
	Progress    chan<- ProgressUpdate // Optional, never blocks
}

// EnrichReviews looks up the session user's review of every book concurrently.
//
// result[i] always corresponds to books[i]. A failed lookup never cancels the others; it is
// logged and recorded in its result. Without a valid session no requests are made and nil is
// returned, which [MergeReviews] treats as "leave the books unchanged".
func EnrichReviews(ctx context.Context, store ReviewFetcher, books []models.Book, sess *session.Session, opts EnrichOpts) []ReviewResult {
	logger := opts.Logger
	if logger == nil {
		logger = shared.NewLogger(io.Discard)
	}

	if !sess.Valid() {
		logger.Warn("skipping review lookup", "reason", shared.ErrNoSession, "books", len(books))
		return nil
	}

	limit := opts.Concurrency
	if limit <= 0 {
		limit = DefaultConcurrency
	}

	results := make([]ReviewResult, len(books))
	total := len(books)
	var done atomic.Int32

	var g errgroup.Group
	g.SetLimit(limit)
	for i, book := range books {
		g.Go(func() error {
			review, err := store.Review(ctx, book.ID, sess.UserID)
			var remote *services.RemoteError
			if errors.As(err, &remote) && remote.NotFound() {
				review, err = nil, nil
			}
			results[i] = ReviewResult{Book: book.Clone(), Review: review, Err: err}

			switch {
			case err != nil:
				logger.Warn("review lookup failed", "book_id", book.ID, "reason", err)
			case review == nil:
				logger.Debug("book has no review", "book_id", book.ID)
			}

			sendProgress(opts.Progress, reviewUpdate(int(done.Add(1)), total, book, err))
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// MergeReviews returns copies of books with each Ok result's review attached.
// Books whose lookup failed get no review. When results do not line up with books
// (including a nil result from a skipped lookup) the books are returned unchanged.
func MergeReviews(books []models.Book, results []ReviewResult) []models.Book {
	out := models.CloneBooks(books)
	if len(results) != len(books) {
		return out
	}

	for i, r := range results {
		if r.Ok() {
			review := *r.Review
			out[i].Review = &review
		} else {
			out[i].Review = nil
		}
	}
	return out
}
