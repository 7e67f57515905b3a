// Package progress normalizes the three progress representations
// (page/runtime/episode) into a single percentage and display string, and
// owns the status state machine shared by all media types.
package progress

import (
	"errors"
	"fmt"
	"time"

	"github.com/shelftrack/shelftrack/internal/models"
)

var (
	ErrInvalidStatus     = errors.New("invalid status value")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// Percentage returns completion in [0, 100]. The numerator/denominator pair
// is current page / page count for books, current time / runtime for movies
// and current episode / total episodes for shows. A zero denominator is
// floored to 1 so the result is degenerate but defined.
func Percentage(m models.Media) float64 {
	num, den := ratio(m)
	if den <= 0 {
		den = 1
	}
	pct := float64(num) / float64(den) * 100
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

func ratio(m models.Media) (num, den int) {
	switch v := m.(type) {
	case *models.Book:
		return v.CurrentPage, v.PageCount
	case *models.Movie:
		return v.CurrentTime, v.Runtime
	case *models.TVShow:
		return v.CurrentEpisode, v.NumberOfEpisodes
	default:
		return 0, 0
	}
}

// Text renders the type-specific human progress string.
func Text(m models.Media) string {
	switch v := m.(type) {
	case *models.Book:
		return fmt.Sprintf("Page %d of %d", v.CurrentPage, v.PageCount)
	case *models.Movie:
		return fmt.Sprintf("%dm / %dm", v.CurrentTime, v.Runtime)
	case *models.TVShow:
		return fmt.Sprintf("Episode %d of %d", v.CurrentEpisode, v.NumberOfEpisodes)
	default:
		return ""
	}
}

// StartDate resolves the item's explicit start date when one was recorded,
// falling back to its creation timestamp.
func StartDate(m models.Media) time.Time {
	if b, ok := m.(*models.Book); ok && b.StartDate != nil {
		return *b.StartDate
	}
	return models.CreatedAtOf(m)
}

// ──────────────────── Status state machine ────────────────────

// The five status values collapse onto a shared shape across media types:
// "reading"/"watching" are the in-progress state and "re-reading"/
// "re-watching" the re-consuming state.
const (
	phasePlanning    = "planning"
	phaseInProgress  = "in-progress"
	phasePaused      = "paused"
	phaseCompleted   = "completed"
	phaseReConsuming = "re-consuming"
)

var transitions = map[string][]string{
	phasePlanning:    {phaseInProgress, phaseCompleted},
	phaseInProgress:  {phasePaused, phaseCompleted, phaseReConsuming},
	phasePaused:      {phaseInProgress, phaseCompleted},
	phaseCompleted:   {phaseReConsuming},
	phaseReConsuming: {phaseCompleted, phasePaused},
}

func phase(status string) string {
	switch status {
	case "reading", "watching":
		return phaseInProgress
	case "re-reading", "re-watching":
		return phaseReConsuming
	default:
		return status
	}
}

// CanTransition reports whether moving from one status to another is legal.
// Staying on the same status is always allowed (a plain field edit).
func CanTransition(from, to string) bool {
	if from == to {
		return true
	}
	for _, next := range transitions[phase(from)] {
		if next == phase(to) {
			return true
		}
	}
	return false
}

// ApplyStatus validates and applies a status change. Moving to completed is
// the one transition with side effects: the progress numerator is forced to
// its maximum and the times-consumed counter is bumped: incremented when a
// re-consume finishes, otherwise raised to at least 1. These are app-level
// rules only; the storage layer accepts any field combination.
func ApplyStatus(m models.Media, newStatus string) error {
	switch v := m.(type) {
	case *models.Book:
		s := models.ReadingStatus(newStatus)
		if !models.ValidReadingStatus(s) {
			return ErrInvalidStatus
		}
		if !CanTransition(string(v.Status), newStatus) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, v.Status, newStatus)
		}
		wasRereading := v.Status == models.ReadingStatusReReading
		v.Status = s
		if s == models.ReadingStatusCompleted {
			v.CurrentPage = v.PageCount
			bumpCounter(&v.TimesRead, wasRereading)
			now := time.Now()
			v.CompletionDate = &now
		}
		return nil

	case *models.Movie:
		s := models.WatchStatus(newStatus)
		if !models.ValidWatchStatus(s) {
			return ErrInvalidStatus
		}
		if !CanTransition(string(v.Status), newStatus) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, v.Status, newStatus)
		}
		wasRewatching := v.Status == models.WatchStatusReWatching
		v.Status = s
		if s == models.WatchStatusCompleted {
			v.CurrentTime = v.Runtime
			bumpCounter(&v.TimesWatched, wasRewatching)
		}
		return nil

	case *models.TVShow:
		s := models.WatchStatus(newStatus)
		if !models.ValidWatchStatus(s) {
			return ErrInvalidStatus
		}
		if !CanTransition(string(v.Status), newStatus) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, v.Status, newStatus)
		}
		wasRewatching := v.Status == models.WatchStatusReWatching
		v.Status = s
		if s == models.WatchStatusCompleted {
			v.CurrentEpisode = v.NumberOfEpisodes
			v.CurrentSeason = v.NumberOfSeasons
			bumpCounter(&v.TimesWatched, wasRewatching)
		}
		return nil

	default:
		return ErrInvalidStatus
	}
}

// ForceComplete applies the completed side effects without a transition
// check, for items entered as completed in the first place.
func ForceComplete(m models.Media) {
	switch v := m.(type) {
	case *models.Book:
		v.Status = models.ReadingStatusCompleted
		v.CurrentPage = v.PageCount
		bumpCounter(&v.TimesRead, false)
		if v.CompletionDate == nil {
			now := time.Now()
			v.CompletionDate = &now
		}
	case *models.Movie:
		v.Status = models.WatchStatusCompleted
		v.CurrentTime = v.Runtime
		bumpCounter(&v.TimesWatched, false)
	case *models.TVShow:
		v.Status = models.WatchStatusCompleted
		v.CurrentEpisode = v.NumberOfEpisodes
		v.CurrentSeason = v.NumberOfSeasons
		bumpCounter(&v.TimesWatched, false)
	}
}

// IsActive reports whether a status counts as actively consuming, i.e. it
// belongs on the unified in-progress view.
func IsActive(status string) bool {
	p := phase(status)
	return p == phaseInProgress || p == phaseReConsuming
}

func bumpCounter(n *int, finishedReconsume bool) {
	if finishedReconsume {
		*n++
		return
	}
	if *n < 1 {
		*n = 1
	}
}
