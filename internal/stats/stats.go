// Package stats computes the derived dashboard figures: counts by genre,
// rating, status and completion year, plus distributions and averages.
// Everything here is a pure function over an in-memory item list; callers
// decide which subset (e.g. completed items only) to pass in.
package stats

import (
	"math"

	"github.com/shelftrack/shelftrack/internal/models"
)

// CountByGenre buckets items by genre. An item with N genres contributes to
// N buckets. Callers wanting "completed by genre" restrict the input first;
// no status filtering happens here.
func CountByGenre(items []models.Media) map[string]int {
	counts := make(map[string]int)
	for _, m := range items {
		for _, g := range models.Genres(m) {
			counts[g]++
		}
	}
	return counts
}

// CountByRating buckets items by rating rounded to the nearest integer.
// Unrated items (rating 0) land in the 0 bucket.
func CountByRating(items []models.Media) map[int]int {
	counts := make(map[int]int)
	for _, m := range items {
		counts[int(math.Round(models.Rating(m)))]++
	}
	return counts
}

// CountByStatus counts items per status value. The result always carries one
// entry for every status in the media type's enum, including zeros, so chart
// axes stay stable.
func CountByStatus(items []models.Media, mediaType models.MediaType) map[string]int {
	counts := make(map[string]int, 5)
	for _, s := range models.StatusOrder(mediaType) {
		counts[s] = 0
	}
	for _, m := range items {
		counts[models.StatusOf(m)]++
	}
	return counts
}

// CountByCompletionYear buckets completed items by the year of their last
// update. No dedicated completed-at timestamp exists, so the update time is
// the best available proxy; items with a zero update time are dropped.
func CountByCompletionYear(items []models.Media) map[int]int {
	counts := make(map[int]int)
	for _, m := range items {
		if models.StatusOf(m) != string(models.ReadingStatusCompleted) {
			continue
		}
		t := models.UpdatedAtOf(m)
		if t.IsZero() {
			continue
		}
		counts[t.Year()]++
	}
	return counts
}

// PercentageDistribution converts a count mapping into percentages of the
// total. A zero total yields all-zero percentages, never NaN or Inf.
func PercentageDistribution(counts map[string]int) map[string]float64 {
	total := 0
	for _, c := range counts {
		total += c
	}
	out := make(map[string]float64, len(counts))
	for k, c := range counts {
		if total == 0 {
			out[k] = 0
			continue
		}
		out[k] = float64(c) / float64(total) * 100
	}
	return out
}

// Average returns the arithmetic mean of field over items where the value is
// non-zero. Zero is how "absent" numerics are encoded upstream, so it never
// drags an average down. An empty qualifying set averages to 0.
func Average(items []models.Media, field func(models.Media) float64) float64 {
	sum, n := 0.0, 0
	for _, m := range items {
		v := field(m)
		if v == 0 {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

// Sum totals field over all items.
func Sum(items []models.Media, field func(models.Media) float64) float64 {
	total := 0.0
	for _, m := range items {
		total += field(m)
	}
	return total
}

// CompletedOnly returns the completed subset of items. Both status enums
// share the "completed" value.
func CompletedOnly(items []models.Media) []models.Media {
	out := make([]models.Media, 0, len(items))
	for _, m := range items {
		if models.StatusOf(m) == string(models.ReadingStatusCompleted) {
			out = append(out, m)
		}
	}
	return out
}
