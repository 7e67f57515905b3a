package api

import (
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/time/rate"

	"github.com/shelftrack/shelftrack/internal/models"
	"github.com/shelftrack/shelftrack/internal/tracker"
)

func TestTrackerConfigDefaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/v1/books", nil)
	cfg := trackerConfig(r)

	if cfg.SortBy != tracker.SortByTitle || cfg.Order != tracker.SortAsc {
		t.Errorf("defaults: got sort=%q order=%q", cfg.SortBy, cfg.Order)
	}
	if cfg.Statuses != nil || cfg.Genres != nil || cfg.Years != nil {
		t.Errorf("defaults: expected no filter constraints, got %+v", cfg)
	}
}

func TestTrackerConfigParsesParams(t *testing.T) {
	r := httptest.NewRequest("GET",
		"/api/v1/books?status=reading,completed&genre=Fantasy&q=dune&year_min=1960&year_max=1970&sort=year&order=desc", nil)
	cfg := trackerConfig(r)

	if len(cfg.Statuses) != 2 || cfg.Statuses[0] != "reading" || cfg.Statuses[1] != "completed" {
		t.Errorf("statuses: %v", cfg.Statuses)
	}
	if len(cfg.Genres) != 1 || cfg.Genres[0] != "Fantasy" {
		t.Errorf("genres: %v", cfg.Genres)
	}
	if cfg.Query != "dune" {
		t.Errorf("query: %q", cfg.Query)
	}
	if cfg.Years == nil || cfg.Years.Min != 1960 || cfg.Years.Max != 1970 {
		t.Errorf("years: %+v", cfg.Years)
	}
	if cfg.SortBy != tracker.SortByYear || cfg.Order != tracker.SortDesc {
		t.Errorf("sort: %q %q", cfg.SortBy, cfg.Order)
	}
}

func TestTrackerConfigOpenEndedYearRange(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/v1/books?year_min=2000", nil)
	cfg := trackerConfig(r)
	if cfg.Years == nil || cfg.Years.Min != 2000 || cfg.Years.Max != 9999 {
		t.Errorf("got %+v, want min=2000 max=9999", cfg.Years)
	}
}

func TestSplitParam(t *testing.T) {
	tests := []struct {
		raw  string
		want []string
	}{
		{"", nil},
		{"a", []string{"a"}},
		{"a, b ,c", []string{"a", "b", "c"}},
		{" , ,", nil},
	}
	for _, tt := range tests {
		got := splitParam(tt.raw)
		if len(got) != len(tt.want) {
			t.Errorf("splitParam(%q) = %v, want %v", tt.raw, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("splitParam(%q) = %v, want %v", tt.raw, got, tt.want)
				break
			}
		}
	}
}

func TestLimiterEvictsStaleEntries(t *testing.T) {
	s := &Server{limiters: make(map[string]*limiterEntry)}
	stale := time.Now().Add(-time.Hour)
	for i := 0; i < limiterMaxEntries; i++ {
		ip := fmt.Sprintf("10.0.%d.%d", i/256, i%256)
		s.limiters[ip] = &limiterEntry{
			lim:      rate.NewLimiter(rate.Every(2*time.Second), 5),
			lastSeen: stale,
		}
	}

	s.limiterFor("198.51.100.7")
	if len(s.limiters) != 1 {
		t.Errorf("got %d entries after sweep, want 1", len(s.limiters))
	}
	if _, ok := s.limiters["198.51.100.7"]; !ok {
		t.Error("new client missing from limiter map")
	}
}

func TestLimiterReusesEntryPerIP(t *testing.T) {
	s := &Server{limiters: make(map[string]*limiterEntry)}
	a := s.limiterFor("203.0.113.9")
	b := s.limiterFor("203.0.113.9")
	if a != b {
		t.Error("same IP got two different limiters")
	}
	if len(s.limiters) != 1 {
		t.Errorf("got %d entries, want 1", len(s.limiters))
	}
}

func TestParseMediaType(t *testing.T) {
	tests := []struct {
		raw  string
		want models.MediaType
		ok   bool
	}{
		{"book", models.MediaTypeBook, true},
		{"books", models.MediaTypeBook, true},
		{"movies", models.MediaTypeMovie, true},
		{"tvshow", models.MediaTypeTVShow, true},
		{"podcast", "", false},
	}
	for _, tt := range tests {
		got, ok := parseMediaType(tt.raw)
		if got != tt.want || ok != tt.ok {
			t.Errorf("parseMediaType(%q) = %q, %v; want %q, %v", tt.raw, got, ok, tt.want, tt.ok)
		}
	}
}
