// package services defines the client for the remote book tracking HTTP API
package services

import (
	"context"

	"github.com/desertthunder/shelf/internal/models"
)

// BookStore covers the book, review and report endpoints.
type BookStore interface {
	// BooksForUser lists every book owned by the user with the given email.
	BooksForUser(ctx context.Context, email string) ([]models.Book, error)

	// FilterBooks lists books matching the filter, sorted as it requests.
	FilterBooks(ctx context.Context, filter models.FilterSpec) ([]models.Book, error)

	// CreateBook creates a book and returns the server's representation with its assigned id.
	CreateBook(ctx context.Context, req models.CreateBookRequest) (*models.Book, error)

	// UpdateBook sends the full book and returns the server's representation.
	UpdateBook(ctx context.Context, book models.Book) (*models.Book, error)

	// DeleteBook removes a book by id.
	DeleteBook(ctx context.Context, id int64) error

	// Review fetches the user's review of a book.
	Review(ctx context.Context, bookID, userID int64) (*models.Review, error)

	// CreateReview attaches a review to a book for a user.
	CreateReview(ctx context.Context, req models.CreateReviewRequest) (*models.Review, error)

	// Report returns category/status counts for the user with the given email.
	Report(ctx context.Context, email string) ([]models.ReportRow, error)
}

// CategoryStore covers the category endpoints.
type CategoryStore interface {
	Categories(ctx context.Context) ([]models.Category, error)

	// SuggestCategory asks the server for a category name for a title. The result is advisory.
	SuggestCategory(ctx context.Context, title string) (string, error)
}

// UserFinder looks up users by email.
type UserFinder interface {
	UsersByEmail(ctx context.Context, email string) ([]models.User, error)
}

// Store is the full remote API surface used by the client.
type Store interface {
	BookStore
	CategoryStore
	UserFinder
}

var _ Store = (*Client)(nil)
