package tasks

import (
	"fmt"

	"github.com/desertthunder/shelf/internal/models"
)

// ProgressUpdate represents a progress event during a collection operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	FetchBooks Phase = iota
	FetchReviews
	CreateBook
	CreateReview
	UpdateBook
	DeleteBook
	SuggestCategory
)

func (p Phase) String() string {
	switch p {
	case FetchBooks:
		return "fetch_books"
	case FetchReviews:
		return "fetch_reviews"
	case CreateBook:
		return "create_book"
	case CreateReview:
		return "create_review"
	case UpdateBook:
		return "update_book"
	case DeleteBook:
		return "delete_book"
	case SuggestCategory:
		return "suggest_category"
	default:
		return ""
	}
}

// sendProgress sends a progress update through the channel without blocking.
func sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

func fetchBooksUpdate(filtered bool) ProgressUpdate {
	msg := "Fetching books..."
	if filtered {
		msg = "Fetching filtered books..."
	}
	return ProgressUpdate{Phase: FetchBooks, Step: 1, Total: 1, Message: msg}
}

func fetchedBooksUpdate(n int) ProgressUpdate {
	return ProgressUpdate{Phase: FetchBooks, Step: 1, Total: 1, Message: fmt.Sprintf("Found %d books", n)}
}

func reviewUpdate(step, total int, book models.Book, err error) ProgressUpdate {
	msg := fmt.Sprintf("[%d/%d] ✓ %s", step, total, book.Title)
	if err != nil {
		msg = fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, book.Title, err)
	}
	return ProgressUpdate{Phase: FetchReviews, Step: step, Total: total, Message: msg}
}

func createBookUpdate(title string) ProgressUpdate {
	return ProgressUpdate{Phase: CreateBook, Step: 1, Total: 2, Message: fmt.Sprintf("Creating %q...", title)}
}

func createReviewUpdate(book *models.Book) ProgressUpdate {
	return ProgressUpdate{
		Phase:   CreateReview,
		Step:    2,
		Total:   2,
		Message: fmt.Sprintf("Adding review for %q (ID: %d)...", book.Title, book.ID),
		Data:    book,
	}
}

func updateBookUpdate(book models.Book) ProgressUpdate {
	return ProgressUpdate{Phase: UpdateBook, Step: 1, Total: 1, Message: fmt.Sprintf("Saving %q...", book.Title)}
}

func deleteBookUpdate(id int64) ProgressUpdate {
	return ProgressUpdate{Phase: DeleteBook, Step: 1, Total: 1, Message: fmt.Sprintf("Deleting book %d...", id)}
}

func suggestCategoryUpdate(title string) ProgressUpdate {
	return ProgressUpdate{Phase: SuggestCategory, Step: 1, Total: 1, Message: fmt.Sprintf("Suggesting a category for %q...", title)}
}
