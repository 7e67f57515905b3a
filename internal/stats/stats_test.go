package stats

import (
	"math"
	"testing"
	"time"

	"github.com/shelftrack/shelftrack/internal/models"
)

func completedBook(title string, pages int, rating float64, updated time.Time, genres ...string) *models.Book {
	return &models.Book{
		Title:     title,
		PageCount: pages,
		Rating:    rating,
		Status:    models.ReadingStatusCompleted,
		UpdatedAt: updated,
		Genres:    genres,
	}
}

func sampleBooks() []models.Media {
	return []models.Media{
		&models.Book{Title: "A", Status: models.ReadingStatusReading, PageCount: 300, Rating: 3, Genres: []string{"Fantasy"}},
		completedBook("B", 100, 4, time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC), "Fantasy", "Adventure"),
		completedBook("C", 150, 0, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), "Horror"),
	}
}

func TestCountByStatusIncludesZeroEntries(t *testing.T) {
	got := CountByStatus(sampleBooks(), models.MediaTypeBook)
	want := map[string]int{
		"reading":    1,
		"paused":     0,
		"planning":   0,
		"completed":  2,
		"re-reading": 0,
	}
	if len(got) != len(want) {
		t.Fatalf("got %d entries, want %d", len(got), len(want))
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("status %q: got %d, want %d", k, got[k], v)
		}
	}
}

func TestCountByGenreCountsEachGenre(t *testing.T) {
	got := CountByGenre(sampleBooks())
	want := map[string]int{"Fantasy": 2, "Adventure": 1, "Horror": 1}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("genre %q: got %d, want %d", k, got[k], v)
		}
	}
}

func TestCountByRatingRounds(t *testing.T) {
	items := []models.Media{
		&models.Book{Rating: 3.4},
		&models.Book{Rating: 3.5},
		&models.Book{Rating: 0},
	}
	got := CountByRating(items)
	if got[3] != 1 || got[4] != 1 || got[0] != 1 {
		t.Errorf("got %v, want map[0:1 3:1 4:1]", got)
	}
}

func TestCountByCompletionYear(t *testing.T) {
	got := CountByCompletionYear(sampleBooks())
	if len(got) != 2 || got[2023] != 1 || got[2024] != 1 {
		t.Errorf("got %v, want map[2023:1 2024:1]", got)
	}
}

func TestCountByCompletionYearDropsZeroTimes(t *testing.T) {
	items := []models.Media{
		&models.Book{Status: models.ReadingStatusCompleted}, // zero UpdatedAt
	}
	if got := CountByCompletionYear(items); len(got) != 0 {
		t.Errorf("got %v, want empty", got)
	}
}

func TestPercentageDistribution(t *testing.T) {
	got := PercentageDistribution(map[string]int{"a": 1, "b": 3})
	if got["a"] != 25 || got["b"] != 75 {
		t.Errorf("got %v, want a=25 b=75", got)
	}
}

func TestPercentageDistributionZeroTotal(t *testing.T) {
	got := PercentageDistribution(map[string]int{"a": 0, "b": 0})
	for k, v := range got {
		if math.IsNaN(v) || math.IsInf(v, 0) || v != 0 {
			t.Errorf("key %q: got %v, want 0", k, v)
		}
	}
}

func TestAverageIgnoresZeroValues(t *testing.T) {
	completed := CompletedOnly(sampleBooks())
	avgPages := Average(completed, func(m models.Media) float64 {
		return float64(m.(*models.Book).PageCount)
	})
	if avgPages != 125 {
		t.Errorf("average length: got %v, want 125", avgPages)
	}

	// Book C is unrated (0) so only B's rating counts.
	avgRating := Average(completed, models.Rating)
	if avgRating != 4 {
		t.Errorf("average rating: got %v, want 4", avgRating)
	}
}

func TestAverageEmptyInput(t *testing.T) {
	if got := Average(nil, models.Rating); got != 0 {
		t.Errorf("got %v, want 0", got)
	}
}

func TestSum(t *testing.T) {
	pages := Sum(sampleBooks(), func(m models.Media) float64 {
		return float64(m.(*models.Book).PageCount)
	})
	if pages != 550 {
		t.Errorf("got %v, want 550", pages)
	}
	if got := Sum(nil, models.Rating); got != 0 {
		t.Errorf("empty input: got %v, want 0", got)
	}
}

func TestCompletedOnly(t *testing.T) {
	got := CompletedOnly(sampleBooks())
	if len(got) != 2 {
		t.Fatalf("got %d items, want 2", len(got))
	}
	for _, m := range got {
		if models.StatusOf(m) != "completed" {
			t.Errorf("unexpected status %q", models.StatusOf(m))
		}
	}
}
