// Package tracker implements the pure filtering, sorting and grouping layer
// behind the per-type tracker views. All functions operate on in-memory
// snapshots and never mutate their input.
package tracker

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/shelftrack/shelftrack/internal/models"
)

type SortField string

const (
	SortByTitle       SortField = "title"
	SortByContributor SortField = "contributor" // author / director / creator
	SortByYear        SortField = "year"
	SortByRating      SortField = "rating"
)

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// YearRange is an inclusive [Min, Max] bound on the item's primary date year.
type YearRange struct {
	Min int
	Max int
}

// Config holds one tracker view's filter and sort settings. All filter
// predicates are combined with logical AND. An empty status set and an empty
// genre set both mean "no constraint"; a nil Years means no year constraint.
// When Years is set, items without a parseable year are excluded.
type Config struct {
	Statuses []string
	Genres   []string
	Query    string
	Years    *YearRange
	SortBy   SortField
	Order    SortOrder
}

// yearSortFloor sorts items with no parseable date below every real year.
const yearSortFloor = -1 << 30

// Year extracts the calendar year from a metadata date string. Providers
// return anything from bare years ("1999") to full dates ("1999-10-12") to
// long-form dates, so parsing is lenient. ok is false when nothing usable
// is found.
func Year(date string) (year int, ok bool) {
	date = strings.TrimSpace(date)
	if len(date) >= 4 {
		if y, err := strconv.Atoi(date[:4]); err == nil && y > 0 {
			return y, true
		}
	}
	for _, layout := range []string{"2006-01-02", "January 2, 2006", "Jan 2, 2006", "2 January 2006"} {
		if t, err := time.Parse(layout, date); err == nil {
			return t.Year(), true
		}
	}
	return 0, false
}

// Filter returns the subset of items passing every predicate in cfg.
func Filter(items []models.Media, cfg Config) []models.Media {
	out := make([]models.Media, 0, len(items))
	for _, m := range items {
		if matches(m, cfg) {
			out = append(out, m)
		}
	}
	return out
}

func matches(m models.Media, cfg Config) bool {
	if len(cfg.Statuses) > 0 && !containsString(cfg.Statuses, models.StatusOf(m)) {
		return false
	}
	if len(cfg.Genres) > 0 && !intersects(models.Genres(m), cfg.Genres) {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(cfg.Query)); q != "" && !matchesQuery(m, q) {
		return false
	}
	if cfg.Years != nil {
		y, ok := Year(models.PrimaryDate(m))
		if !ok || y < cfg.Years.Min || y > cfg.Years.Max {
			return false
		}
	}
	return true
}

func matchesQuery(m models.Media, q string) bool {
	if strings.Contains(strings.ToLower(models.Title(m)), q) {
		return true
	}
	for _, c := range models.Contributors(m) {
		if strings.Contains(strings.ToLower(c), q) {
			return true
		}
	}
	for _, g := range models.Genres(m) {
		if strings.Contains(strings.ToLower(g), q) {
			return true
		}
	}
	return false
}

func containsString(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func intersects(have, want []string) bool {
	for _, g := range have {
		if containsString(want, g) {
			return true
		}
	}
	return false
}

// Sort orders items by cfg.SortBy / cfg.Order and returns a new slice.
// String fields use locale-aware, case-insensitive collation; year and
// rating compare numerically with missing values sorting lowest. The sort
// is stable, so equal keys keep their input order.
func Sort(items []models.Media, cfg Config) []models.Media {
	out := make([]models.Media, len(items))
	copy(out, items)

	col := collate.New(language.Und, collate.IgnoreCase)
	cmp := func(a, b models.Media) int {
		switch cfg.SortBy {
		case SortByContributor:
			return col.CompareString(firstContributor(a), firstContributor(b))
		case SortByYear:
			return yearOf(a) - yearOf(b)
		case SortByRating:
			d := models.Rating(a) - models.Rating(b)
			switch {
			case d < 0:
				return -1
			case d > 0:
				return 1
			default:
				return 0
			}
		default: // SortByTitle and anything unrecognized
			return col.CompareString(models.Title(a), models.Title(b))
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		c := cmp(out[i], out[j])
		if cfg.Order == SortDesc {
			return c > 0
		}
		return c < 0
	})
	return out
}

func firstContributor(m models.Media) string {
	if cs := models.Contributors(m); len(cs) > 0 {
		return cs[0]
	}
	return ""
}

func yearOf(m models.Media) int {
	if y, ok := Year(models.PrimaryDate(m)); ok {
		return y
	}
	return yearSortFloor
}

// ──────────────────── Grouping ────────────────────

// Group is one status bucket of a tracker view.
type Group struct {
	Status string         `json:"status"`
	Items  []models.Media `json:"items"`
}

// Grouped runs the full pipeline: filter, sort, then partition by status in
// the canonical display order for the media type. Statuses with no items
// still get an (empty) group so the view renders every section.
func Grouped(items []models.Media, mediaType models.MediaType, cfg Config) []Group {
	filtered := Sort(Filter(items, cfg), cfg)

	order := models.StatusOrder(mediaType)
	buckets := make(map[string][]models.Media, len(order))
	for _, m := range filtered {
		s := models.StatusOf(m)
		buckets[s] = append(buckets[s], m)
	}

	groups := make([]Group, 0, len(order))
	for _, s := range order {
		items := buckets[s]
		if items == nil {
			items = []models.Media{}
		}
		groups = append(groups, Group{Status: s, Items: items})
	}
	return groups
}
