package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/shelftrack/shelftrack/internal/models"
	"github.com/shelftrack/shelftrack/internal/tracker"
)

// trackerConfig builds a tracker view config from list query parameters.
// status and genre accept comma-separated values; year_min/year_max form an
// inclusive range and either side may be omitted.
func trackerConfig(r *http.Request) tracker.Config {
	q := r.URL.Query()

	cfg := tracker.Config{
		Statuses: splitParam(q.Get("status")),
		Genres:   splitParam(q.Get("genre")),
		Query:    q.Get("q"),
		SortBy:   tracker.SortField(q.Get("sort")),
		Order:    tracker.SortOrder(q.Get("order")),
	}
	if cfg.SortBy == "" {
		cfg.SortBy = tracker.SortByTitle
	}
	if cfg.Order == "" {
		cfg.Order = tracker.SortAsc
	}

	minRaw, maxRaw := q.Get("year_min"), q.Get("year_max")
	if minRaw != "" || maxRaw != "" {
		years := &tracker.YearRange{Min: 0, Max: 9999}
		if y, err := strconv.Atoi(minRaw); err == nil {
			years.Min = y
		}
		if y, err := strconv.Atoi(maxRaw); err == nil {
			years.Max = y
		}
		cfg.Years = years
	}
	return cfg
}

func splitParam(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Ratings are a 0-5 scale; 0 means unrated.
func validRating(r float64) bool { return r >= 0 && r <= 5 }

func booksAsMedia(books []*models.Book) []models.Media {
	out := make([]models.Media, len(books))
	for i, b := range books {
		out[i] = b
	}
	return out
}

func moviesAsMedia(movies []*models.Movie) []models.Media {
	out := make([]models.Media, len(movies))
	for i, m := range movies {
		out[i] = m
	}
	return out
}

func tvshowsAsMedia(shows []*models.TVShow) []models.Media {
	out := make([]models.Media, len(shows))
	for i, s := range shows {
		out[i] = s
	}
	return out
}
