package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/desertthunder/shelf/internal/formatter"
	"github.com/desertthunder/shelf/internal/models"
	"github.com/desertthunder/shelf/internal/shared"
	"github.com/desertthunder/shelf/internal/tasks"
	"github.com/urfave/cli/v3"
)

// BooksList loads the user's books, through the filter endpoint when any filter or sort flag is
// set, and prints them grouped by category.
func (r *Runner) BooksList(ctx context.Context, cmd *cli.Command) error {
	filter, err := filterFromFlags(cmd)
	if err != nil {
		return err
	}
	useFilters := !filter.IsZero() || cmd.IsSet("sort") || cmd.IsSet("order")

	sess, err := r.currentSession(ctx)
	if err != nil && !(useFilters && errors.Is(err, shared.ErrNoSession)) {
		return err
	}

	c := r.newCollection(sess, nil)
	defer c.Close()
	if err := c.SetFilter(filter); err != nil {
		return err
	}

	r.logger.Debug("loading books", "filtered", useFilters, "sort", filter)
	if err := c.Load(ctx, useFilters); err != nil {
		return fmt.Errorf("failed to load books: %w", err)
	}

	if cmd.Bool("json") {
		data, err := formatter.GroupedToJSON(c.Grouped(), cmd.Bool("pretty"))
		if err != nil {
			return err
		}
		return r.emit(append(data, '\n'), "")
	}

	data, err := formatter.GroupedToText(c.Grouped())
	if err != nil {
		return err
	}
	return r.emit(data, "")
}

// BooksAdd validates the flags as a new book draft and adds it, with its review when given.
// A review that fails after the book was created is reported as a warning.
func (r *Runner) BooksAdd(ctx context.Context, cmd *cli.Command) error {
	status, err := models.ParseReadingStatus(cmd.String("status"))
	if err != nil {
		return err
	}
	draft := models.NewBookDraft{
		Title:         cmd.String("title"),
		Author:        cmd.String("author"),
		ReadingStatus: status,
		CategoryName:  cmd.String("category"),
		ReviewContent: cmd.String("review"),
		ReviewRating:  cmd.Int("rating"),
	}
	if err := draft.Validate(); err != nil {
		return err
	}

	sess, err := r.currentSession(ctx)
	if err != nil {
		return err
	}
	c := r.newCollection(sess, nil)
	defer c.Close()

	if cmd.Bool("suggest") && strings.TrimSpace(draft.CategoryName) == "" {
		name, err := c.SuggestCategory(ctx, draft.Title)
		switch {
		case err != nil:
			r.logger.Warn("category suggestion failed", "title", draft.Title, "error", err)
		case name != "":
			r.logger.Info("using suggested category", "category", name)
			draft.CategoryName = name
		}
	}

	book, err := c.Add(ctx, draft)
	partial := errors.Is(err, shared.ErrPartialFailure)
	if err != nil && !partial {
		return fmt.Errorf("failed to add book: %w", err)
	}
	if partial {
		r.logger.Warn("book added without its review", "book_id", book.ID, "error", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(book, cmd.Bool("pretty"))
	}
	r.writePlain("✓ Added [%d] %s by %s (%s, %s)\n", book.ID, book.Title, book.Author, book.ReadingStatus.Label(), book.CategoryName())
	if partial {
		r.writePlain("! The review was not saved: %v\n", err)
	}
	return nil
}

// BooksEdit applies the set flags to an existing book.
func (r *Runner) BooksEdit(ctx context.Context, cmd *cli.Command) error {
	edit, err := editFromFlags(cmd)
	if err != nil {
		return err
	}
	if edit.IsEmpty() {
		return fmt.Errorf("%w: nothing to change; pass at least one field flag", shared.ErrMissingArgument)
	}
	if err := edit.Validate(); err != nil {
		return err
	}

	c, book, err := r.loadBook(ctx, edit.ID)
	if err != nil {
		return err
	}
	defer c.Close()

	updated, err := c.Edit(ctx, edit.Apply(book))
	if err != nil {
		return fmt.Errorf("failed to update book: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(updated, cmd.Bool("pretty"))
	}
	r.writePlain("✓ Updated [%d] %s by %s (%s, %s)\n", updated.ID, updated.Title, updated.Author, updated.ReadingStatus.Label(), updated.CategoryName())
	if updated.Review != nil {
		r.writePlain("  Review: %s %s\n", updated.Review.Stars(), updated.Review.Content)
	}
	return nil
}

// BooksDelete removes a book after confirmation.
func (r *Runner) BooksDelete(ctx context.Context, cmd *cli.Command) error {
	id := cmd.Int64("id")
	if id <= 0 {
		return fmt.Errorf("%w: book id must be positive", shared.ErrInvalidArgument)
	}

	c, book, err := r.loadBook(ctx, id)
	if err != nil {
		return err
	}
	defer c.Close()

	if !cmd.Bool("yes") {
		ok, err := r.confirm(fmt.Sprintf("Delete %q by %s?", book.Title, book.Author))
		if err != nil {
			return err
		}
		if !ok {
			return r.writePlain("Aborted.\n")
		}
	}

	if err := c.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}
	return r.writePlain("✓ Deleted [%d] %s\n", book.ID, book.Title)
}

// loadBook loads the collection for the current user and finds the book with id.
func (r *Runner) loadBook(ctx context.Context, id int64) (*tasks.Collection, models.Book, error) {
	sess, err := r.currentSession(ctx)
	if err != nil {
		return nil, models.Book{}, err
	}

	c := r.newCollection(sess, nil)
	if err := c.Load(ctx, false); err != nil {
		c.Close()
		return nil, models.Book{}, fmt.Errorf("failed to load books: %w", err)
	}
	for _, b := range c.Books() {
		if b.ID == id {
			return c, b, nil
		}
	}
	c.Close()
	return nil, models.Book{}, fmt.Errorf("%w: id %d", shared.ErrBookNotFound, id)
}

func filterFromFlags(cmd *cli.Command) (models.FilterSpec, error) {
	filter := models.FilterSpec{
		Title:    strings.TrimSpace(cmd.String("title")),
		Author:   strings.TrimSpace(cmd.String("author")),
		Category: strings.TrimSpace(cmd.String("category")),
		SortBy:   models.SortKey(cmd.String("sort")),
		Order:    models.SortOrder(strings.ToLower(cmd.String("order"))),
	}
	if s := cmd.String("status"); s != "" {
		status, err := models.ParseReadingStatus(s)
		if err != nil {
			return filter, err
		}
		filter.ReadingStatus = status
	}
	return filter, filter.Validate()
}

func editFromFlags(cmd *cli.Command) (models.BookEdit, error) {
	edit := models.BookEdit{ID: cmd.Int64("id")}
	if cmd.IsSet("title") {
		v := cmd.String("title")
		edit.Title = &v
	}
	if cmd.IsSet("author") {
		v := cmd.String("author")
		edit.Author = &v
	}
	if cmd.IsSet("status") {
		status, err := models.ParseReadingStatus(cmd.String("status"))
		if err != nil {
			return edit, err
		}
		edit.ReadingStatus = &status
	}
	if cmd.IsSet("category") {
		v := cmd.String("category")
		edit.CategoryName = &v
	}
	if cmd.IsSet("review") {
		v := cmd.String("review")
		edit.ReviewContent = &v
	}
	if cmd.IsSet("rating") {
		v := cmd.Int("rating")
		edit.ReviewRating = &v
	}
	return edit, nil
}
