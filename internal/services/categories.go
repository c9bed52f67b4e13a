package services

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/desertthunder/shelf/internal/models"
)

// Categories calls GET /categories.
func (c *Client) Categories(ctx context.Context) ([]models.Category, error) {
	return fetchJSON[[]models.Category](ctx, c, "list categories", http.MethodGet, "/categories", nil, nil)
}

// SuggestCategory calls GET /categories/suggest?title=T. The body is plain text; surrounding
// whitespace and quotes are trimmed.
func (c *Client) SuggestCategory(ctx context.Context, title string) (string, error) {
	q := url.Values{"title": {title}}
	data, err := c.doRequest(ctx, "suggest category", http.MethodGet, "/categories/suggest", q, nil)
	if err != nil {
		return "", err
	}
	return strings.Trim(strings.TrimSpace(string(data)), `"`), nil
}

// UsersByEmail calls GET /users?email=E. The server may return loose matches.
func (c *Client) UsersByEmail(ctx context.Context, email string) ([]models.User, error) {
	q := url.Values{"email": {email}}
	return fetchJSON[[]models.User](ctx, c, "find users", http.MethodGet, "/users", q, nil)
}
