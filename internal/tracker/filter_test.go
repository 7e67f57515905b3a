package tracker

import (
	"testing"

	"github.com/shelftrack/shelftrack/internal/models"
)

func book(title, author, date string, status models.ReadingStatus, rating float64, genres ...string) *models.Book {
	return &models.Book{
		Title:         title,
		Author:        author,
		PublishedDate: date,
		Status:        status,
		Rating:        rating,
		Genres:        genres,
	}
}

func titles(items []models.Media) []string {
	out := make([]string, len(items))
	for i, m := range items {
		out[i] = models.Title(m)
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestYear(t *testing.T) {
	tests := []struct {
		date string
		want int
		ok   bool
	}{
		{"1999", 1999, true},
		{"1999-10-12", 1999, true},
		{"  2005 ", 2005, true},
		{"January 2, 1984", 1984, true},
		{"not-a-date", 0, false},
		{"", 0, false},
		{"abc-10-12", 0, false},
	}
	for _, tt := range tests {
		got, ok := Year(tt.date)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Year(%q) = %d, %v; want %d, %v", tt.date, got, ok, tt.want, tt.ok)
		}
	}
}

func TestFilterEmptySetsMatchEverything(t *testing.T) {
	items := []models.Media{
		book("A", "x", "2000", models.ReadingStatusReading, 3),
		book("B", "y", "2001", models.ReadingStatusCompleted, 4),
	}
	got := Filter(items, Config{})
	if len(got) != len(items) {
		t.Fatalf("empty config filtered to %d items, want %d", len(got), len(items))
	}
}

func TestFilterByStatus(t *testing.T) {
	items := []models.Media{
		book("A", "x", "2000", models.ReadingStatusReading, 0),
		book("B", "y", "2001", models.ReadingStatusCompleted, 0),
		book("C", "z", "2002", models.ReadingStatusPlanning, 0),
	}
	got := Filter(items, Config{Statuses: []string{"reading", "planning"}})
	if want := []string{"A", "C"}; !equalStrings(titles(got), want) {
		t.Errorf("got %v, want %v", titles(got), want)
	}
}

func TestFilterByGenreIntersection(t *testing.T) {
	items := []models.Media{
		book("A", "x", "2000", models.ReadingStatusReading, 0, "Fantasy", "Adventure"),
		book("B", "y", "2001", models.ReadingStatusReading, 0, "Horror"),
		book("C", "z", "2002", models.ReadingStatusReading, 0),
	}
	got := Filter(items, Config{Genres: []string{"Adventure", "Sci-Fi"}})
	if want := []string{"A"}; !equalStrings(titles(got), want) {
		t.Errorf("got %v, want %v", titles(got), want)
	}
}

func TestFilterQueryMatchesTitleContributorsGenres(t *testing.T) {
	items := []models.Media{
		book("Dune", "Frank Herbert", "1965", models.ReadingStatusReading, 0, "Sci-Fi"),
		book("Emma", "Jane Austen", "1815", models.ReadingStatusReading, 0, "Romance"),
		book("Hyperion", "Dan Simmons", "1989", models.ReadingStatusReading, 0, "Science Fiction"),
	}
	tests := []struct {
		query string
		want  []string
	}{
		{"HERBERT", []string{"Dune"}},
		{"austen", []string{"Emma"}},
		{"fi", []string{"Dune", "Hyperion"}},
		{"zzz", []string{}},
	}
	for _, tt := range tests {
		got := titles(Filter(items, Config{Query: tt.query}))
		if !equalStrings(got, tt.want) {
			t.Errorf("query %q: got %v, want %v", tt.query, got, tt.want)
		}
	}
}

func TestFilterYearRangeExcludesUnparseable(t *testing.T) {
	items := []models.Media{
		book("A", "x", "1995", models.ReadingStatusReading, 0),
		book("B", "y", "2005-06-01", models.ReadingStatusReading, 0),
		book("C", "z", "not-a-date", models.ReadingStatusReading, 0),
		book("D", "w", "", models.ReadingStatusReading, 0),
	}
	got := Filter(items, Config{Years: &YearRange{Min: 1990, Max: 2010}})
	if want := []string{"A", "B"}; !equalStrings(titles(got), want) {
		t.Errorf("got %v, want %v", titles(got), want)
	}

	// Without the range set, unparseable dates pass through.
	got = Filter(items, Config{})
	if len(got) != 4 {
		t.Errorf("nil range filtered to %d items, want 4", len(got))
	}
}

func TestSortTitleCaseInsensitive(t *testing.T) {
	items := []models.Media{
		book("Beta", "", "", models.ReadingStatusReading, 0),
		book("alpha", "", "", models.ReadingStatusReading, 0),
		book("Gamma", "", "", models.ReadingStatusReading, 0),
		book("delta", "", "", models.ReadingStatusReading, 0),
	}
	got := titles(Sort(items, Config{SortBy: SortByTitle, Order: SortAsc}))
	if want := []string{"alpha", "Beta", "delta", "Gamma"}; !equalStrings(got, want) {
		t.Errorf("asc: got %v, want %v", got, want)
	}
	got = titles(Sort(items, Config{SortBy: SortByTitle, Order: SortDesc}))
	if want := []string{"Gamma", "delta", "Beta", "alpha"}; !equalStrings(got, want) {
		t.Errorf("desc: got %v, want %v", got, want)
	}
}

func TestSortYearMissingDatesLast(t *testing.T) {
	items := []models.Media{
		book("A", "", "2010", models.ReadingStatusReading, 0),
		book("B", "", "", models.ReadingStatusReading, 0),
		book("C", "", "1990", models.ReadingStatusReading, 0),
	}
	got := titles(Sort(items, Config{SortBy: SortByYear, Order: SortAsc}))
	if want := []string{"B", "C", "A"}; !equalStrings(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestSortIsStable(t *testing.T) {
	items := []models.Media{
		book("Same", "first", "", models.ReadingStatusReading, 3),
		book("Same", "second", "", models.ReadingStatusReading, 3),
		book("Same", "third", "", models.ReadingStatusReading, 3),
	}
	got := Sort(items, Config{SortBy: SortByRating, Order: SortAsc})
	for i, want := range []string{"first", "second", "third"} {
		if models.Contributors(got[i])[0] != want {
			t.Fatalf("position %d: got %q, want %q", i, models.Contributors(got[i])[0], want)
		}
	}
}

func TestGroupedCanonicalOrderWithEmptyGroups(t *testing.T) {
	items := []models.Media{
		book("A", "", "", models.ReadingStatusCompleted, 0),
		book("B", "", "", models.ReadingStatusReading, 0),
		book("C", "", "", models.ReadingStatusCompleted, 0),
	}
	groups := Grouped(items, models.MediaTypeBook, Config{SortBy: SortByTitle, Order: SortAsc})

	wantOrder := []string{"reading", "paused", "planning", "completed", "re-reading"}
	if len(groups) != len(wantOrder) {
		t.Fatalf("got %d groups, want %d", len(groups), len(wantOrder))
	}
	for i, g := range groups {
		if g.Status != wantOrder[i] {
			t.Errorf("group %d: got status %q, want %q", i, g.Status, wantOrder[i])
		}
		if g.Items == nil {
			t.Errorf("group %q: items slice is nil", g.Status)
		}
	}
	if want := []string{"A", "C"}; !equalStrings(titles(groups[3].Items), want) {
		t.Errorf("completed group: got %v, want %v", titles(groups[3].Items), want)
	}
	if len(groups[1].Items) != 0 || len(groups[4].Items) != 0 {
		t.Error("expected empty paused and re-reading groups")
	}
}

func TestPipelineIsIdempotentAndNonMutating(t *testing.T) {
	items := []models.Media{
		book("Gamma", "x", "2001", models.ReadingStatusCompleted, 4, "Fantasy"),
		book("alpha", "y", "1999", models.ReadingStatusReading, 2, "Horror"),
		book("Beta", "z", "not-a-date", models.ReadingStatusReading, 5, "Fantasy"),
	}
	snapshot := titles(items)
	cfg := Config{Genres: []string{"Fantasy"}, SortBy: SortByTitle, Order: SortAsc}

	first := Grouped(items, models.MediaTypeBook, cfg)
	second := Grouped(items, models.MediaTypeBook, cfg)

	if len(first) != len(second) {
		t.Fatalf("group counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Status != second[i].Status {
			t.Errorf("group %d: %q vs %q", i, first[i].Status, second[i].Status)
		}
		if !equalStrings(titles(first[i].Items), titles(second[i].Items)) {
			t.Errorf("group %q: %v vs %v", first[i].Status, titles(first[i].Items), titles(second[i].Items))
		}
	}

	if !equalStrings(titles(items), snapshot) {
		t.Errorf("input slice mutated: got %v, want %v", titles(items), snapshot)
	}
}

func TestGroupedUnionOfStatusFiltersEqualsUnfiltered(t *testing.T) {
	items := []models.Media{
		book("A", "", "", models.ReadingStatusReading, 0),
		book("B", "", "", models.ReadingStatusPaused, 0),
		book("C", "", "", models.ReadingStatusCompleted, 0),
		book("D", "", "", models.ReadingStatusPlanning, 0),
		book("E", "", "", models.ReadingStatusReReading, 0),
	}

	total := 0
	for _, s := range models.ReadingStatuses {
		groups := Grouped(items, models.MediaTypeBook, Config{Statuses: []string{string(s)}})
		for _, g := range groups {
			total += len(g.Items)
		}
	}
	if total != len(items) {
		t.Errorf("union of per-status views has %d items, want %d", total, len(items))
	}
}
