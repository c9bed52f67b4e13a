package models

import (
	"fmt"
	"strings"

	"github.com/desertthunder/shelf/internal/shared"
)

// Validator is implemented by form state that must be checked before it is submitted.
type Validator interface {
	Validate() error // Validate returns an error wrapping [shared.ErrValidation] when the value cannot be submitted
}

// UncategorizedLabel is the category name used for books with no category.
const UncategorizedLabel = "Uncategorized"

// ReadingStatus is the progress of a reader through a book.
type ReadingStatus string

const (
	StatusNotStarted ReadingStatus = "NOT_STARTED"
	StatusInProgress ReadingStatus = "IN_PROGRESS"
	StatusCompleted  ReadingStatus = "COMPLETED"
)

// ReadingStatuses lists every valid status in display order.
var ReadingStatuses = []ReadingStatus{StatusNotStarted, StatusInProgress, StatusCompleted}

// Valid reports whether s is a known status.
func (s ReadingStatus) Valid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Label returns the human readable form of the status.
func (s ReadingStatus) Label() string {
	switch s {
	case StatusNotStarted:
		return "Not Started"
	case StatusInProgress:
		return "In Progress"
	case StatusCompleted:
		return "Completed"
	default:
		return string(s)
	}
}

// ParseReadingStatus accepts either the wire value ("IN_PROGRESS") or the label ("in progress"), ignoring case.
func ParseReadingStatus(v string) (ReadingStatus, error) {
	norm := strings.ToUpper(strings.TrimSpace(v))
	norm = strings.NewReplacer(" ", "_", "-", "_").Replace(norm)
	s := ReadingStatus(norm)
	if !s.Valid() {
		return "", fmt.Errorf("%w: unknown reading status %q", shared.ErrValidation, v)
	}
	return s, nil
}

// Category is a classification label for books.
type Category struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name"`
}

// Review is a user's rating and notes for a book. A Rating of 0 means no rating yet.
type Review struct {
	ID      int64  `json:"id,omitempty"`
	Content string `json:"content"`
	Rating  int    `json:"rating"`
}

// MaxRating is the highest rating a review can carry.
const MaxRating = 5

// Stars renders the rating as filled and empty stars.
func (r Review) Stars() string {
	n := min(max(r.Rating, 0), MaxRating)
	return strings.Repeat("★", n) + strings.Repeat("☆", MaxRating-n)
}

// Book is a tracked reading item. Category and Review are optional.
type Book struct {
	ID            int64         `json:"id"`
	Title         string        `json:"title"`
	Author        string        `json:"author"`
	ReadingStatus ReadingStatus `json:"readingStatus"`
	CategoryID    int64         `json:"categoryId,omitempty"`
	Category      *Category     `json:"category,omitempty"`
	Review        *Review       `json:"review,omitempty"`
}

// CategoryName returns the trimmed category name, or [UncategorizedLabel] when there is none.
func (b Book) CategoryName() string {
	if b.Category == nil {
		return UncategorizedLabel
	}
	if name := strings.TrimSpace(b.Category.Name); name != "" {
		return name
	}
	return UncategorizedLabel
}

// Clone returns a deep copy of the book.
func (b Book) Clone() Book {
	c := b
	if b.Category != nil {
		cat := *b.Category
		c.Category = &cat
	}
	if b.Review != nil {
		rev := *b.Review
		c.Review = &rev
	}
	return c
}

// CloneBooks deep copies a slice of books. A nil slice stays nil.
func CloneBooks(books []Book) []Book {
	if books == nil {
		return nil
	}
	out := make([]Book, len(books))
	for i, b := range books {
		out[i] = b.Clone()
	}
	return out
}

// User is an account on the remote service.
type User struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// ReportRow is one aggregate count of a user's books by category and status.
type ReportRow struct {
	Category string `json:"category"`
	Status   string `json:"status"`
	Count    int    `json:"count"`
}

// CreateBookRequest is the body of a book creation request.
type CreateBookRequest struct {
	Title         string        `json:"title"`
	Author        string        `json:"author"`
	CategoryName  string        `json:"categoryName"`
	ReadingStatus ReadingStatus `json:"readingStatus"`
	UserID        int64         `json:"userId"`
}

// CreateReviewRequest is the body of a review creation request.
type CreateReviewRequest struct {
	Content string `json:"content"`
	Rating  int    `json:"rating"`
	UserID  int64  `json:"userId"`
	BookID  int64  `json:"bookId"`
}
