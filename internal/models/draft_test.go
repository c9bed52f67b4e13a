package models

import (
	"errors"
	"testing"

	"github.com/desertthunder/shelf/internal/shared"
	"github.com/google/go-cmp/cmp"
)

func ptr[T any](v T) *T { return &v }

func TestNewBookDraft(t *testing.T) {
	valid := NewBookDraft{Title: "Dune", Author: "Herbert", ReadingStatus: StatusNotStarted}

	t.Run("Validate", func(t *testing.T) {
		tests := []struct {
			name    string
			mutate  func(*NewBookDraft)
			wantErr bool
		}{
			{"Valid", func(*NewBookDraft) {}, false},
			{"Missing Title", func(d *NewBookDraft) { d.Title = " " }, true},
			{"Missing Author", func(d *NewBookDraft) { d.Author = "" }, true},
			{"Missing Status", func(d *NewBookDraft) { d.ReadingStatus = "" }, true},
			{"Unknown Status", func(d *NewBookDraft) { d.ReadingStatus = "DONE" }, true},
			{"Rating Too High", func(d *NewBookDraft) { d.ReviewRating = 6 }, true},
			{"Negative Rating", func(d *NewBookDraft) { d.ReviewRating = -1 }, true},
			{"Zero Rating With Content", func(d *NewBookDraft) { d.ReviewContent = "x" }, false},
		}
		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				d := valid
				tc.mutate(&d)
				err := d.Validate()
				if tc.wantErr && !errors.Is(err, shared.ErrValidation) {
					t.Errorf("expected ErrValidation, got %v", err)
				}
				if !tc.wantErr && err != nil {
					t.Errorf("unexpected error: %v", err)
				}
			})
		}
	})

	t.Run("WantsReview", func(t *testing.T) {
		tests := []struct {
			content string
			rating  int
			want    bool
		}{
			{"great", 4, true},
			{"x", 0, false},
			{"", 3, false},
			{"   ", 3, false},
		}
		for _, tc := range tests {
			d := valid
			d.ReviewContent, d.ReviewRating = tc.content, tc.rating
			if got := d.WantsReview(); got != tc.want {
				t.Errorf("WantsReview(%q, %d) = %v, want %v", tc.content, tc.rating, got, tc.want)
			}
		}
	})

	t.Run("Request", func(t *testing.T) {
		d := NewBookDraft{Title: " Dune ", Author: "Herbert", ReadingStatus: StatusCompleted, CategoryName: " SciFi"}
		want := CreateBookRequest{Title: "Dune", Author: "Herbert", CategoryName: "SciFi", ReadingStatus: StatusCompleted, UserID: 7}
		if diff := cmp.Diff(want, d.Request(7)); diff != "" {
			t.Errorf("request mismatch (-want +got):\n%s", diff)
		}

		d.ReviewContent, d.ReviewRating = " loved it ", 5
		wantReview := CreateReviewRequest{Content: "loved it", Rating: 5, UserID: 7, BookID: 3}
		if diff := cmp.Diff(wantReview, d.ReviewRequest(3, 7)); diff != "" {
			t.Errorf("review request mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestBookEdit(t *testing.T) {
	base := Book{
		ID: 1, Title: "Dune", Author: "Herbert", ReadingStatus: StatusNotStarted,
		CategoryID: 2, Category: &Category{ID: 2, Name: "SciFi"},
	}

	t.Run("Apply Leaves Original Untouched", func(t *testing.T) {
		edit := BookEdit{ID: 1, Title: ptr("Dune Messiah"), ReadingStatus: ptr(StatusCompleted)}
		got := edit.Apply(base)

		if got.Title != "Dune Messiah" || got.ReadingStatus != StatusCompleted {
			t.Errorf("edit not applied: %+v", got)
		}
		if base.Title != "Dune" {
			t.Errorf("original modified: %+v", base)
		}
	})

	t.Run("Apply Creates Review", func(t *testing.T) {
		got := BookEdit{ID: 1, ReviewRating: ptr(0), ReviewContent: ptr("meh")}.Apply(base)
		if diff := cmp.Diff(&Review{Content: "meh"}, got.Review); diff != "" {
			t.Errorf("review mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("Apply Category Changes", func(t *testing.T) {
		renamed := BookEdit{ID: 1, CategoryName: ptr("Classics")}.Apply(base)
		if renamed.Category.Name != "Classics" || renamed.CategoryID != 0 {
			t.Errorf("expected new category reference, got %+v id=%d", renamed.Category, renamed.CategoryID)
		}

		same := BookEdit{ID: 1, CategoryName: ptr("SciFi")}.Apply(base)
		if same.CategoryID != 2 || same.Category.ID != 2 {
			t.Errorf("unchanged category should keep its id, got %+v", same.Category)
		}

		cleared := BookEdit{ID: 1, CategoryName: ptr("")}.Apply(base)
		if cleared.Category != nil {
			t.Errorf("expected category cleared, got %+v", cleared.Category)
		}
	})

	t.Run("Validate", func(t *testing.T) {
		tests := []struct {
			name    string
			edit    BookEdit
			wantErr bool
		}{
			{"Valid", BookEdit{ID: 1, ReviewRating: ptr(0)}, false},
			{"Missing ID", BookEdit{Title: ptr("x")}, true},
			{"Blank Title", BookEdit{ID: 1, Title: ptr(" ")}, true},
			{"Blank Author", BookEdit{ID: 1, Author: ptr("")}, true},
			{"Bad Status", BookEdit{ID: 1, ReadingStatus: ptr(ReadingStatus("X"))}, true},
			{"Bad Rating", BookEdit{ID: 1, ReviewRating: ptr(6)}, true},
		}
		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				err := tc.edit.Validate()
				if tc.wantErr && !errors.Is(err, shared.ErrValidation) {
					t.Errorf("expected ErrValidation, got %v", err)
				}
				if !tc.wantErr && err != nil {
					t.Errorf("unexpected error: %v", err)
				}
			})
		}
	})

	t.Run("IsEmpty", func(t *testing.T) {
		if !(BookEdit{ID: 1}).IsEmpty() {
			t.Error("edit with only an id should be empty")
		}
		if (BookEdit{ID: 1, Author: ptr("x")}).IsEmpty() {
			t.Error("edit with an author should not be empty")
		}
	})
}
