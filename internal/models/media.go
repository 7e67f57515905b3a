package models

import "time"

// Accessors over the Media union. Each is an exhaustive switch over the
// three variants; the default arms return zero values so malformed input
// degrades instead of panicking.

func Title(m Media) string {
	switch v := m.(type) {
	case *Book:
		return v.Title
	case *Movie:
		return v.Title
	case *TVShow:
		return v.Title
	default:
		return ""
	}
}

// Contributors returns the people a search query should match besides the
// title: author for books, director for movies, creators for TV shows.
func Contributors(m Media) []string {
	switch v := m.(type) {
	case *Book:
		if v.Author == "" {
			return nil
		}
		return []string{v.Author}
	case *Movie:
		if v.Director == "" {
			return nil
		}
		return []string{v.Director}
	case *TVShow:
		return v.CreatedBy
	default:
		return nil
	}
}

func Genres(m Media) []string {
	switch v := m.(type) {
	case *Book:
		return v.Genres
	case *Movie:
		return v.Genres
	case *TVShow:
		return v.Genres
	default:
		return nil
	}
}

// PrimaryDate returns the item's main date string: published date for books,
// release date for movies, first air date for TV shows.
func PrimaryDate(m Media) string {
	switch v := m.(type) {
	case *Book:
		return v.PublishedDate
	case *Movie:
		return v.ReleaseDate
	case *TVShow:
		return v.FirstAirDate
	default:
		return ""
	}
}

func Rating(m Media) float64 {
	switch v := m.(type) {
	case *Book:
		return v.Rating
	case *Movie:
		return v.Rating
	case *TVShow:
		return v.Rating
	default:
		return 0
	}
}

// StatusOf returns the status as a plain string so the filter and
// aggregation engines can treat the two enums uniformly.
func StatusOf(m Media) string {
	switch v := m.(type) {
	case *Book:
		return string(v.Status)
	case *Movie:
		return string(v.Status)
	case *TVShow:
		return string(v.Status)
	default:
		return ""
	}
}

func UpdatedAtOf(m Media) time.Time {
	switch v := m.(type) {
	case *Book:
		return v.UpdatedAt
	case *Movie:
		return v.UpdatedAt
	case *TVShow:
		return v.UpdatedAt
	default:
		return time.Time{}
	}
}

func CreatedAtOf(m Media) time.Time {
	switch v := m.(type) {
	case *Book:
		return v.CreatedAt
	case *Movie:
		return v.CreatedAt
	case *TVShow:
		return v.CreatedAt
	default:
		return time.Time{}
	}
}

// StatusOrder returns the canonical display order of status groups for the
// given media type. The order is fixed, not configurable.
func StatusOrder(t MediaType) []string {
	if t == MediaTypeBook {
		out := make([]string, len(ReadingStatuses))
		for i, s := range ReadingStatuses {
			out[i] = string(s)
		}
		return out
	}
	out := make([]string, len(WatchStatuses))
	for i, s := range WatchStatuses {
		out[i] = string(s)
	}
	return out
}
