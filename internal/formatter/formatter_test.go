package formatter

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/shelf/internal/models"
	"github.com/desertthunder/shelf/internal/shared"
	"github.com/desertthunder/shelf/internal/tasks"
	th "github.com/desertthunder/shelf/internal/testing"
	"github.com/google/go-cmp/cmp"
)

func sampleGrouped() tasks.Grouped {
	return tasks.GroupByCategory([]models.Book{
		{ID: 5, Title: "Dune", Author: "Frank Herbert", ReadingStatus: models.StatusCompleted,
			Category: &models.Category{ID: 1, Name: "SciFi"}, Review: &models.Review{Content: "Spice, sand | worms", Rating: 4}},
		{ID: 6, Title: "Emma", Author: "Jane Austen", ReadingStatus: models.StatusInProgress},
		{ID: 7, Title: "Hyperion", Author: "Dan Simmons", ReadingStatus: models.StatusNotStarted,
			Category: &models.Category{ID: 1, Name: "SciFi"}},
	})
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatText, false},
		{"txt", FormatText, false},
		{"MD", FormatMarkdown, false},
		{"csv", FormatCSV, false},
		{"json", FormatJSON, false},
		{"xml", "", true},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseFormat(tc.in)
			if tc.wantErr {
				if !errors.Is(err, shared.ErrInvalidArgument) {
					t.Errorf("expected ErrInvalidArgument, got %v", err)
				}
				return
			}
			if err != nil || got != tc.want {
				t.Errorf("ParseFormat(%q) = %s, %v; want %s", tc.in, got, err, tc.want)
			}
		})
	}

	if FormatMarkdown.Extension() != ".md" || FormatText.Extension() != ".txt" {
		t.Error("unexpected extensions")
	}
}

func TestGroupedExporters(t *testing.T) {
	t.Run("GroupedToText", func(t *testing.T) {
		data, err := GroupedToText(sampleGrouped())
		if err != nil {
			t.Fatalf("GroupedToText failed: %v", err)
		}
		output := string(data)

		sciFi := strings.Index(output, "SciFi (2)")
		uncategorized := strings.Index(output, "Uncategorized (1)")
		if sciFi < 0 || uncategorized < 0 || sciFi > uncategorized {
			t.Errorf("expected SciFi before Uncategorized, got:\n%s", output)
		}
		if !strings.Contains(output, "[5] Dune by Frank Herbert - Completed ★★★★☆") {
			t.Errorf("missing reviewed book line, got:\n%s", output)
		}
		if !strings.Contains(output, "[6] Emma by Jane Austen - In Progress\n") {
			t.Errorf("missing unreviewed book line, got:\n%s", output)
		}
	})

	t.Run("GroupedToText Empty", func(t *testing.T) {
		data, _ := GroupedToText(tasks.Grouped{})
		if string(data) != "No books yet.\n" {
			t.Errorf("unexpected output %q", data)
		}
	})

	t.Run("GroupedToMarkdown", func(t *testing.T) {
		data, err := GroupedToMarkdown(sampleGrouped())
		if err != nil {
			t.Fatalf("GroupedToMarkdown failed: %v", err)
		}
		output := string(data)

		for _, want := range []string{
			"# My Books",
			"**Books**: 3",
			"**Categories**: 2",
			"## SciFi",
			"## Uncategorized",
			`| Dune | Frank Herbert | Completed | ★★★★☆ | Spice, sand \| worms |`,
		} {
			if !strings.Contains(output, want) {
				t.Errorf("Markdown missing %q, got:\n%s", want, output)
			}
		}
	})

	t.Run("BooksToCSV", func(t *testing.T) {
		data, err := BooksToCSV(tasks.Flatten(sampleGrouped()))
		if err != nil {
			t.Fatalf("BooksToCSV failed: %v", err)
		}

		records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
		if err != nil {
			t.Fatalf("output is not valid CSV: %v", err)
		}
		want := [][]string{
			{"ID", "Title", "Author", "Status", "Category", "Rating", "Review"},
			{"5", "Dune", "Frank Herbert", "COMPLETED", "SciFi", "4", "Spice, sand | worms"},
			{"7", "Hyperion", "Dan Simmons", "NOT_STARTED", "SciFi", "", ""},
			{"6", "Emma", "Jane Austen", "IN_PROGRESS", "", "", ""},
		}
		if diff := cmp.Diff(want, records); diff != "" {
			t.Errorf("CSV mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("GroupedToJSON", func(t *testing.T) {
		data, err := GroupedToJSON(sampleGrouped(), false)
		if err != nil {
			t.Fatalf("GroupedToJSON failed: %v", err)
		}

		var decoded []struct {
			Category string        `json:"category"`
			Books    []models.Book `json:"books"`
		}
		if err := json.Unmarshal(data, &decoded); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if len(decoded) != 2 || decoded[0].Category != "SciFi" || decoded[1].Category != "Uncategorized" {
			t.Errorf("unexpected groups %+v", decoded)
		}
	})

	t.Run("RenderGrouped Dispatch", func(t *testing.T) {
		for _, f := range []Format{FormatText, FormatMarkdown, FormatCSV, FormatJSON} {
			data, err := RenderGrouped(f, sampleGrouped())
			if err != nil || len(data) == 0 {
				t.Errorf("%s: expected output, got %v", f, err)
			}
		}
	})
}

func TestWriteExport(t *testing.T) {
	t.Run("Creates Parent Directories", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "exports", "2025", "books.md")
		if err := WriteExport(path, []byte("# My Books\n")); err != nil {
			t.Fatalf("WriteExport failed: %v", err)
		}
		th.AssertFileExists(t, path)
		if got := th.MustReadFile(t, path); got != "# My Books\n" {
			t.Errorf("unexpected content %q", got)
		}
	})

	t.Run("Empty Path", func(t *testing.T) {
		if err := WriteExport("", nil); !errors.Is(err, shared.ErrMissingArgument) {
			t.Errorf("expected ErrMissingArgument, got %v", err)
		}
	})

	t.Run("Unwritable Path", func(t *testing.T) {
		dir := t.TempDir()
		blocker := filepath.Join(dir, "file")
		if err := WriteExport(blocker, []byte("x")); err != nil {
			t.Fatalf("setup failed: %v", err)
		}
		if err := WriteExport(filepath.Join(blocker, "nested.txt"), []byte("x")); err == nil {
			t.Error("expected error writing beneath a regular file")
		}
	})
}
