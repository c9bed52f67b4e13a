package tasks

import (
	"sort"

	"github.com/desertthunder/shelf/internal/models"
)

// Grouped maps a category name to its books in collection order.
type Grouped map[string][]models.Book

// GroupByCategory partitions books by trimmed category name. Books without a category,
// or with a blank name, go under [models.UncategorizedLabel].
func GroupByCategory(books []models.Book) Grouped {
	grouped := make(Grouped)
	for _, b := range books {
		name := b.CategoryName()
		grouped[name] = append(grouped[name], b.Clone())
	}
	return grouped
}

// CategoryNames returns the group keys sorted alphabetically with Uncategorized last.
func CategoryNames(grouped Grouped) []string {
	names := make([]string, 0, len(grouped))
	uncategorized := false
	for name := range grouped {
		if name == models.UncategorizedLabel {
			uncategorized = true
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	if uncategorized {
		names = append(names, models.UncategorizedLabel)
	}
	return names
}

// Flatten concatenates the buckets in [CategoryNames] order.
func Flatten(grouped Grouped) []models.Book {
	var out []models.Book
	for _, name := range CategoryNames(grouped) {
		for _, b := range grouped[name] {
			out = append(out, b.Clone())
		}
	}
	return out
}

// Count returns the total number of books across all groups.
func (g Grouped) Count() int {
	n := 0
	for _, books := range g {
		n += len(books)
	}
	return n
}

// Clone deep copies the grouped view.
func (g Grouped) Clone() Grouped {
	if g == nil {
		return nil
	}
	out := make(Grouped, len(g))
	for k, v := range g {
		out[k] = models.CloneBooks(v)
	}
	return out
}
