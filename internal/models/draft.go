package models

import (
	"fmt"
	"strings"

	"github.com/desertthunder/shelf/internal/shared"
)

// NewBookDraft is the form state for creating a book.
// Title, Author and ReadingStatus are required. The review fields are optional
// and only produce a review when both content and a positive rating are given.
type NewBookDraft struct {
	Title         string
	Author        string
	ReadingStatus ReadingStatus
	CategoryName  string
	ReviewContent string
	ReviewRating  int
}

// Validate checks required fields, the status and the rating range.
func (d NewBookDraft) Validate() error {
	var missing []string
	if strings.TrimSpace(d.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(d.Author) == "" {
		missing = append(missing, "author")
	}
	if d.ReadingStatus == "" {
		missing = append(missing, "reading status")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", shared.ErrValidation, strings.Join(missing, ", "))
	}
	if !d.ReadingStatus.Valid() {
		return fmt.Errorf("%w: unknown reading status %q", shared.ErrValidation, d.ReadingStatus)
	}
	return validateRating(d.ReviewRating)
}

// WantsReview reports whether a review should be created alongside the book.
func (d NewBookDraft) WantsReview() bool {
	return strings.TrimSpace(d.ReviewContent) != "" && d.ReviewRating > 0
}

// Request builds the creation body for the given user.
func (d NewBookDraft) Request(userID int64) CreateBookRequest {
	return CreateBookRequest{
		Title:         strings.TrimSpace(d.Title),
		Author:        strings.TrimSpace(d.Author),
		CategoryName:  strings.TrimSpace(d.CategoryName),
		ReadingStatus: d.ReadingStatus,
		UserID:        userID,
	}
}

// ReviewRequest builds the review body linked to a created book.
func (d NewBookDraft) ReviewRequest(bookID, userID int64) CreateReviewRequest {
	return CreateReviewRequest{
		Content: strings.TrimSpace(d.ReviewContent),
		Rating:  d.ReviewRating,
		UserID:  userID,
		BookID:  bookID,
	}
}

// BookEdit describes changes to an existing book. Nil fields are left as they are.
type BookEdit struct {
	ID            int64
	Title         *string
	Author        *string
	ReadingStatus *ReadingStatus
	CategoryName  *string
	ReviewContent *string
	ReviewRating  *int
}

// IsEmpty reports whether the edit changes nothing.
func (e BookEdit) IsEmpty() bool {
	return e.Title == nil && e.Author == nil && e.ReadingStatus == nil &&
		e.CategoryName == nil && e.ReviewContent == nil && e.ReviewRating == nil
}

// Validate enforces an id, non-empty title and author when set, a known status and a rating in 0..5.
func (e BookEdit) Validate() error {
	if e.ID <= 0 {
		return fmt.Errorf("%w: book id is required", shared.ErrValidation)
	}
	if e.Title != nil && strings.TrimSpace(*e.Title) == "" {
		return fmt.Errorf("%w: title cannot be empty", shared.ErrValidation)
	}
	if e.Author != nil && strings.TrimSpace(*e.Author) == "" {
		return fmt.Errorf("%w: author cannot be empty", shared.ErrValidation)
	}
	if e.ReadingStatus != nil && !e.ReadingStatus.Valid() {
		return fmt.Errorf("%w: unknown reading status %q", shared.ErrValidation, *e.ReadingStatus)
	}
	if e.ReviewRating != nil {
		return validateRating(*e.ReviewRating)
	}
	return nil
}

// Apply returns a copy of b with the edit's changes. The original book is not modified.
// Setting a review field on a book without a review creates one on the copy.
func (e BookEdit) Apply(b Book) Book {
	out := b.Clone()
	if e.Title != nil {
		out.Title = strings.TrimSpace(*e.Title)
	}
	if e.Author != nil {
		out.Author = strings.TrimSpace(*e.Author)
	}
	if e.ReadingStatus != nil {
		out.ReadingStatus = *e.ReadingStatus
	}
	if e.CategoryName != nil {
		name := strings.TrimSpace(*e.CategoryName)
		switch {
		case name == "":
			out.Category, out.CategoryID = nil, 0
		case out.Category == nil || out.Category.Name != name:
			out.Category, out.CategoryID = &Category{Name: name}, 0
		}
	}
	if e.ReviewContent != nil || e.ReviewRating != nil {
		if out.Review == nil {
			out.Review = &Review{}
		}
		if e.ReviewContent != nil {
			out.Review.Content = strings.TrimSpace(*e.ReviewContent)
		}
		if e.ReviewRating != nil {
			out.Review.Rating = *e.ReviewRating
		}
	}
	return out
}

func validateRating(r int) error {
	if r < 0 || r > MaxRating {
		return fmt.Errorf("%w: rating must be between 0 and %d, got %d", shared.ErrValidation, MaxRating, r)
	}
	return nil
}
