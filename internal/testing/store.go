package testing

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/desertthunder/shelf/internal/models"
)

// FakeStore is an in-memory stand-in for the remote book service.
//
// Set the Err fields to make the matching call fail; ReviewErrs fails review lookups per book id.
// Calls are recorded by method name so tests can assert which requests were made.
type FakeStore struct {
	mu sync.Mutex

	Books   []models.Book
	Reviews map[int64]*models.Review
	Users   []models.User
	Cats    []models.Category
	Rows    []models.ReportRow

	Suggestion string

	ListErr         error
	FilterErr       error
	CreateErr       error
	UpdateErr       error
	DeleteErr       error
	CreateReviewErr error
	SuggestErr      error
	UsersErr        error
	ReportErr       error
	ReviewErrs      map[int64]error

	// UpdateDropsReview makes UpdateBook answer without the review, like servers that do not echo it.
	UpdateDropsReview bool

	// OnCall runs at the start of every call with the method name.
	OnCall func(method string)

	nextID int64
	calls  []string
}

// NewFakeStore returns a store seeded with books. Reviews attached to the seed books become
// the store's review records and are stripped from the book list, as the service does.
func NewFakeStore(books ...models.Book) *FakeStore {
	f := &FakeStore{Reviews: map[int64]*models.Review{}, ReviewErrs: map[int64]error{}}
	for _, b := range books {
		if b.Review != nil {
			r := *b.Review
			f.Reviews[b.ID] = &r
		}
		b = b.Clone()
		b.Review = nil
		f.Books = append(f.Books, b)
		f.nextID = max(f.nextID, b.ID)
	}
	return f
}

func (f *FakeStore) record(method string) {
	f.mu.Lock()
	f.calls = append(f.calls, method)
	hook := f.OnCall
	f.mu.Unlock()
	if hook != nil {
		hook(method)
	}
}

// Calls returns the recorded method names in call order.
func (f *FakeStore) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.calls)
}

// CallCount returns how many times method was called.
func (f *FakeStore) CallCount(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == method {
			n++
		}
	}
	return n
}

func (f *FakeStore) BooksForUser(ctx context.Context, email string) ([]models.Book, error) {
	f.record("BooksForUser")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	return models.CloneBooks(f.Books), nil
}

func (f *FakeStore) FilterBooks(ctx context.Context, filter models.FilterSpec) ([]models.Book, error) {
	f.record("FilterBooks")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FilterErr != nil {
		return nil, f.FilterErr
	}

	var out []models.Book
	for _, b := range f.Books {
		if !contains(b.Title, filter.Title) || !contains(b.Author, filter.Author) {
			continue
		}
		if filter.ReadingStatus != "" && b.ReadingStatus != filter.ReadingStatus {
			continue
		}
		if filter.Category != "" && (b.Category == nil || !contains(b.Category.Name, filter.Category)) {
			continue
		}
		out = append(out, b.Clone())
	}

	slices.SortStableFunc(out, func(a, b models.Book) int {
		c := strings.Compare(sortValue(a, filter.SortBy), sortValue(b, filter.SortBy))
		if filter.Order == models.OrderDesc {
			return -c
		}
		return c
	})
	return out, nil
}

func (f *FakeStore) CreateBook(ctx context.Context, req models.CreateBookRequest) (*models.Book, error) {
	f.record("CreateBook")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.CreateErr != nil {
		return nil, f.CreateErr
	}

	f.nextID++
	b := models.Book{ID: f.nextID, Title: req.Title, Author: req.Author, ReadingStatus: req.ReadingStatus}
	if req.CategoryName != "" {
		b.Category = f.category(req.CategoryName)
		b.CategoryID = b.Category.ID
	}
	f.Books = append(f.Books, b)
	out := b.Clone()
	return &out, nil
}

func (f *FakeStore) UpdateBook(ctx context.Context, book models.Book) (*models.Book, error) {
	f.record("UpdateBook")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.UpdateErr != nil {
		return nil, f.UpdateErr
	}

	i := slices.IndexFunc(f.Books, func(b models.Book) bool { return b.ID == book.ID })
	if i < 0 {
		return nil, fmt.Errorf("fake store: book %d not found", book.ID)
	}
	stored := book.Clone()
	if stored.Category != nil && stored.Category.ID == 0 && stored.Category.Name != "" {
		stored.Category = f.category(stored.Category.Name)
		stored.CategoryID = stored.Category.ID
	}
	if stored.Review != nil {
		r := *stored.Review
		f.Reviews[book.ID] = &r
	}
	resp := stored.Clone()
	stored.Review = nil
	f.Books[i] = stored
	if f.UpdateDropsReview {
		resp.Review = nil
	}
	return &resp, nil
}

func (f *FakeStore) DeleteBook(ctx context.Context, id int64) error {
	f.record("DeleteBook")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	f.Books = slices.DeleteFunc(f.Books, func(b models.Book) bool { return b.ID == id })
	delete(f.Reviews, id)
	return nil
}

func (f *FakeStore) Review(ctx context.Context, bookID, userID int64) (*models.Review, error) {
	f.record("Review")
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.ReviewErrs[bookID]; err != nil {
		return nil, err
	}
	r, ok := f.Reviews[bookID]
	if !ok {
		return nil, nil
	}
	out := *r
	return &out, nil
}

func (f *FakeStore) CreateReview(ctx context.Context, req models.CreateReviewRequest) (*models.Review, error) {
	f.record("CreateReview")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.CreateReviewErr != nil {
		return nil, f.CreateReviewErr
	}
	r := &models.Review{ID: int64(len(f.Reviews) + 1), Content: req.Content, Rating: req.Rating}
	f.Reviews[req.BookID] = r
	out := *r
	return &out, nil
}

func (f *FakeStore) Report(ctx context.Context, email string) ([]models.ReportRow, error) {
	f.record("Report")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ReportErr != nil {
		return nil, f.ReportErr
	}
	return slices.Clone(f.Rows), nil
}

func (f *FakeStore) Categories(ctx context.Context) ([]models.Category, error) {
	f.record("Categories")
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.Cats), nil
}

func (f *FakeStore) SuggestCategory(ctx context.Context, title string) (string, error) {
	f.record("SuggestCategory")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.SuggestErr != nil {
		return "", f.SuggestErr
	}
	return f.Suggestion, nil
}

func (f *FakeStore) UsersByEmail(ctx context.Context, email string) ([]models.User, error) {
	f.record("UsersByEmail")
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.UsersErr != nil {
		return nil, f.UsersErr
	}
	var out []models.User
	for _, u := range f.Users {
		if contains(u.Email, email) {
			out = append(out, u)
		}
	}
	return out, nil
}

// category finds or creates a category by name. Callers hold f.mu.
func (f *FakeStore) category(name string) *models.Category {
	for _, c := range f.Cats {
		if strings.EqualFold(c.Name, name) {
			out := c
			return &out
		}
	}
	c := models.Category{ID: int64(len(f.Cats) + 1), Name: name}
	f.Cats = append(f.Cats, c)
	return &c
}

func contains(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func sortValue(b models.Book, key models.SortKey) string {
	switch key {
	case models.SortByAuthor:
		return strings.ToLower(b.Author)
	case models.SortByReadingStatus:
		return string(b.ReadingStatus)
	case models.SortByCategory:
		return strings.ToLower(b.CategoryName())
	default:
		return strings.ToLower(b.Title)
	}
}
