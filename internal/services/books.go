package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/desertthunder/shelf/internal/models"
)

// BooksForUser calls GET /books/user?email=E.
func (c *Client) BooksForUser(ctx context.Context, email string) ([]models.Book, error) {
	q := url.Values{"email": {email}}
	return fetchJSON[[]models.Book](ctx, c, "list books", http.MethodGet, "/books/user", q, nil)
}

// FilterBooks calls GET /books/filter with the filter's non-empty fields.
func (c *Client) FilterBooks(ctx context.Context, filter models.FilterSpec) ([]models.Book, error) {
	return fetchJSON[[]models.Book](ctx, c, "filter books", http.MethodGet, "/books/filter", filter.Query(), nil)
}

// CreateBook calls POST /books.
func (c *Client) CreateBook(ctx context.Context, req models.CreateBookRequest) (*models.Book, error) {
	book, err := fetchJSON[*models.Book](ctx, c, "create book", http.MethodPost, "/books", nil, req)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, networkError("create book", fmt.Errorf("failed to decode response: %w", errEmptyBody))
	}
	return book, nil
}

// UpdateBook calls PUT /books/{id} with the full book, nested category and review included.
func (c *Client) UpdateBook(ctx context.Context, book models.Book) (*models.Book, error) {
	endpoint := "/books/" + strconv.FormatInt(book.ID, 10)
	updated, err := fetchJSON[*models.Book](ctx, c, "update book", http.MethodPut, endpoint, nil, book)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, networkError("update book", fmt.Errorf("failed to decode response: %w", errEmptyBody))
	}
	return updated, nil
}

// DeleteBook calls DELETE /books/{id}. Any 2xx response, with or without a body, is success.
func (c *Client) DeleteBook(ctx context.Context, id int64) error {
	endpoint := "/books/" + strconv.FormatInt(id, 10)
	_, err := c.doRequest(ctx, "delete book", http.MethodDelete, endpoint, nil, nil)
	return err
}

// Review calls GET /user-books/review?bookId=&userId=.
// An empty or null body means the book has no review and returns (nil, nil).
func (c *Client) Review(ctx context.Context, bookID, userID int64) (*models.Review, error) {
	const op = "get review"
	q := url.Values{
		"bookId": {strconv.FormatInt(bookID, 10)},
		"userId": {strconv.FormatInt(userID, 10)},
	}
	data, err := c.doRequest(ctx, op, http.MethodGet, "/user-books/review", q, nil)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var review *models.Review
	if err := json.Unmarshal(data, &review); err != nil {
		return nil, networkError(op, fmt.Errorf("failed to decode response: %w", err))
	}
	return review, nil
}

// CreateReview calls POST /user-books.
func (c *Client) CreateReview(ctx context.Context, req models.CreateReviewRequest) (*models.Review, error) {
	const op = "create review"
	data, err := c.doRequest(ctx, op, http.MethodPost, "/user-books", nil, req)
	if err != nil {
		return nil, err
	}

	review := &models.Review{Content: req.Content, Rating: req.Rating}
	if len(bytes.TrimSpace(data)) == 0 {
		return review, nil
	}

	var created models.Review
	if err := json.Unmarshal(data, &created); err != nil {
		return nil, networkError(op, fmt.Errorf("failed to decode response: %w", err))
	}
	if created.ID != 0 {
		review.ID = created.ID
	}
	if strings.TrimSpace(created.Content) != "" {
		review.Content = created.Content
	}
	if created.Rating != 0 {
		review.Rating = created.Rating
	}
	return review, nil
}

// Report calls GET /books/report?email=E.
func (c *Client) Report(ctx context.Context, email string) ([]models.ReportRow, error) {
	q := url.Values{"email": {email}}
	return fetchJSON[[]models.ReportRow](ctx, c, "get report", http.MethodGet, "/books/report", q, nil)
}
