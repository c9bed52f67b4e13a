package tasks

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/desertthunder/shelf/internal/models"
	"github.com/google/go-cmp/cmp"
)

func book(id int64, title, category string) models.Book {
	b := models.Book{ID: id, Title: title, Author: "A", ReadingStatus: models.StatusNotStarted}
	if category != "" {
		b.Category = &models.Category{ID: id, Name: category}
	}
	return b
}

func TestGroupByCategory(t *testing.T) {
	t.Run("Default Bucket", func(t *testing.T) {
		books := []models.Book{
			{ID: 1, Title: "nil category"},
			{ID: 2, Title: "empty name", Category: &models.Category{ID: 9, Name: ""}},
			{ID: 3, Title: "blank name", Category: &models.Category{ID: 9, Name: "   "}},
		}
		grouped := GroupByCategory(books)

		if len(grouped) != 1 {
			t.Fatalf("expected a single bucket, got %v", CategoryNames(grouped))
		}
		if got := len(grouped[models.UncategorizedLabel]); got != 3 {
			t.Errorf("expected 3 uncategorized books, got %d", got)
		}
	})

	t.Run("Preserves Order Within Category", func(t *testing.T) {
		books := []models.Book{
			book(3, "c", "SciFi"), book(1, "a", "History"), book(2, "b", "SciFi"), book(4, "d", " SciFi "),
		}
		grouped := GroupByCategory(books)

		var ids []int64
		for _, b := range grouped["SciFi"] {
			ids = append(ids, b.ID)
		}
		if diff := cmp.Diff([]int64{3, 2, 4}, ids); diff != "" {
			t.Errorf("order mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("Empty Input", func(t *testing.T) {
		if grouped := GroupByCategory(nil); len(grouped) != 0 {
			t.Errorf("expected empty grouping, got %v", grouped)
		}
	})

	t.Run("Copies Books", func(t *testing.T) {
		books := []models.Book{book(1, "a", "SciFi")}
		grouped := GroupByCategory(books)
		grouped["SciFi"][0].Category.Name = "changed"

		if books[0].Category.Name != "SciFi" {
			t.Error("grouping should not share category pointers with its input")
		}
	})
}

func TestGroupingIdempotence(t *testing.T) {
	categories := []string{"", " ", "SciFi", "History", "Poetry", " SciFi"}
	rng := rand.New(rand.NewSource(42))

	for run := range 50 {
		t.Run(fmt.Sprintf("Run %d", run), func(t *testing.T) {
			n := rng.Intn(20)
			books := make([]models.Book, n)
			for i := range books {
				books[i] = book(int64(i+1), fmt.Sprintf("t%d", i), categories[rng.Intn(len(categories))])
			}

			once := GroupByCategory(books)
			twice := GroupByCategory(Flatten(once))
			if diff := cmp.Diff(once, twice); diff != "" {
				t.Errorf("regrouping changed the view (-once +twice):\n%s", diff)
			}
			if once.Count() != n {
				t.Errorf("expected %d books across groups, got %d", n, once.Count())
			}
		})
	}
}

func TestCategoryNames(t *testing.T) {
	grouped := GroupByCategory([]models.Book{
		book(1, "a", ""), book(2, "b", "Zen"), book(3, "c", "Art"), book(4, "d", "Mystery"),
	})

	want := []string{"Art", "Mystery", "Zen", models.UncategorizedLabel}
	if diff := cmp.Diff(want, CategoryNames(grouped)); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}

	var ids []int64
	for _, b := range Flatten(grouped) {
		ids = append(ids, b.ID)
	}
	if diff := cmp.Diff([]int64{3, 4, 2, 1}, ids); diff != "" {
		t.Errorf("flatten order mismatch (-want +got):\n%s", diff)
	}
}
