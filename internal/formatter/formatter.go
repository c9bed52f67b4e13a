// package formatter renders books and reports as text, Markdown, CSV or JSON and writes export files
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/desertthunder/shelf/internal/models"
	"github.com/desertthunder/shelf/internal/shared"
	"github.com/desertthunder/shelf/internal/tasks"
)

// Format is an output format name.
type Format string

const (
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatCSV      Format = "csv"
	FormatJSON     Format = "json"
)

// ParseFormat accepts a format name or a common alias ("md", "txt").
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "txt":
		return FormatText, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "csv":
		return FormatCSV, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: unknown format %q (want text, markdown, csv or json)", shared.ErrInvalidArgument, s)
	}
}

// Extension returns the file extension for the format, including the dot.
func (f Format) Extension() string {
	switch f {
	case FormatMarkdown:
		return ".md"
	case FormatCSV:
		return ".csv"
	case FormatJSON:
		return ".json"
	default:
		return ".txt"
	}
}

// RenderGrouped renders the grouped view in the given format.
func RenderGrouped(f Format, grouped tasks.Grouped) ([]byte, error) {
	switch f {
	case FormatMarkdown:
		return GroupedToMarkdown(grouped)
	case FormatCSV:
		return BooksToCSV(tasks.Flatten(grouped))
	case FormatJSON:
		return GroupedToJSON(grouped, true)
	default:
		return GroupedToText(grouped)
	}
}

// GroupedToText renders each category followed by its books, one per line.
func GroupedToText(grouped tasks.Grouped) ([]byte, error) {
	var buf bytes.Buffer

	if len(grouped) == 0 {
		buf.WriteString("No books yet.\n")
		return buf.Bytes(), nil
	}

	for i, name := range tasks.CategoryNames(grouped) {
		if i > 0 {
			buf.WriteString("\n")
		}
		books := grouped[name]
		fmt.Fprintf(&buf, "%s (%d)\n", name, len(books))
		for _, b := range books {
			fmt.Fprintf(&buf, "  [%d] %s by %s - %s", b.ID, b.Title, b.Author, b.ReadingStatus.Label())
			if b.Review != nil {
				fmt.Fprintf(&buf, " %s", b.Review.Stars())
			}
			buf.WriteString("\n")
		}
	}

	return buf.Bytes(), nil
}

// GroupedToMarkdown renders a heading and table per category.
func GroupedToMarkdown(grouped tasks.Grouped) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# My Books\n\n")
	fmt.Fprintf(&buf, "**Books**: %d\n", grouped.Count())
	fmt.Fprintf(&buf, "**Categories**: %d\n", len(grouped))

	for _, name := range tasks.CategoryNames(grouped) {
		fmt.Fprintf(&buf, "\n## %s\n\n", name)
		buf.WriteString("| Title | Author | Status | Rating | Review |\n")
		buf.WriteString("|---|---|---|---|---|\n")
		for _, b := range grouped[name] {
			rating, review := "", ""
			if b.Review != nil {
				rating = b.Review.Stars()
				review = b.Review.Content
			}
			fmt.Fprintf(&buf, "| %s | %s | %s | %s | %s |\n",
				mdCell(b.Title), mdCell(b.Author), b.ReadingStatus.Label(), rating, mdCell(review))
		}
	}

	return buf.Bytes(), nil
}

// BooksToCSV converts books to CSV with columns: ID, Title, Author, Status, Category, Rating, Review
func BooksToCSV(books []models.Book) ([]byte, error) {
	rows := make([][]string, 0, len(books))
	for _, b := range books {
		category := ""
		if b.Category != nil {
			category = strings.TrimSpace(b.Category.Name)
		}
		rating, review := "", ""
		if b.Review != nil {
			rating = strconv.Itoa(b.Review.Rating)
			review = b.Review.Content
		}
		rows = append(rows, []string{
			strconv.FormatInt(b.ID, 10), b.Title, b.Author, string(b.ReadingStatus), category, rating, review,
		})
	}
	return writeCSV([]string{"ID", "Title", "Author", "Status", "Category", "Rating", "Review"}, rows)
}

type groupJSON struct {
	Category string        `json:"category"`
	Books    []models.Book `json:"books"`
}

// GroupedToJSON renders the grouped view as an ordered array of {category, books}.
func GroupedToJSON(grouped tasks.Grouped, pretty bool) ([]byte, error) {
	out := make([]groupJSON, 0, len(grouped))
	for _, name := range tasks.CategoryNames(grouped) {
		out = append(out, groupJSON{Category: name, Books: grouped[name]})
	}
	return shared.MarshalJSON(out, pretty)
}

// WriteExport writes data to path, creating parent directories as needed.
func WriteExport(path string, data []byte) error {
	if path == "" {
		return fmt.Errorf("%w: output path is required", shared.ErrMissingArgument)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	return nil
}

func writeCSV(headers []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}
	for _, row := range rows {
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}
	return buf.Bytes(), nil
}

func mdCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
