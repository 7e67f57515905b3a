package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ──────────────────── Enums ────────────────────

type MediaType string

const (
	MediaTypeBook   MediaType = "book"
	MediaTypeMovie  MediaType = "movie"
	MediaTypeTVShow MediaType = "tvshow"
)

// ReadingStatus is the book status enum. There is no "unknown" value;
// anything outside this set is rejected at the API boundary.
type ReadingStatus string

const (
	ReadingStatusReading   ReadingStatus = "reading"
	ReadingStatusPlanning  ReadingStatus = "planning"
	ReadingStatusCompleted ReadingStatus = "completed"
	ReadingStatusReReading ReadingStatus = "re-reading"
	ReadingStatusPaused    ReadingStatus = "paused"
)

type WatchStatus string

const (
	WatchStatusWatching   WatchStatus = "watching"
	WatchStatusPaused     WatchStatus = "paused"
	WatchStatusPlanning   WatchStatus = "planning"
	WatchStatusCompleted  WatchStatus = "completed"
	WatchStatusReWatching WatchStatus = "re-watching"
)

// ReadingStatuses is the canonical display order for book groups:
// in-progress first, then paused, planning, completed, re-consuming.
var ReadingStatuses = []ReadingStatus{
	ReadingStatusReading,
	ReadingStatusPaused,
	ReadingStatusPlanning,
	ReadingStatusCompleted,
	ReadingStatusReReading,
}

// WatchStatuses is the canonical display order for movie and TV show groups.
var WatchStatuses = []WatchStatus{
	WatchStatusWatching,
	WatchStatusPaused,
	WatchStatusPlanning,
	WatchStatusCompleted,
	WatchStatusReWatching,
}

func ValidReadingStatus(s ReadingStatus) bool {
	for _, v := range ReadingStatuses {
		if s == v {
			return true
		}
	}
	return false
}

func ValidWatchStatus(s WatchStatus) bool {
	for _, v := range WatchStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// ──────────────────── User ────────────────────

type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	DisplayName  string    `json:"display_name" db:"display_name"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// ──────────────────── Media items ────────────────────

// Media is the tagged union over the three tracked entity types. Code that
// needs per-variant behavior type-switches on the concrete pointer types;
// the MediaType discriminator keeps switches greppable.
type Media interface {
	MediaType() MediaType
}

type Book struct {
	ID             uuid.UUID      `json:"id" db:"id"`
	UserID         uuid.UUID      `json:"user_id" db:"user_id"`
	Title          string         `json:"title" db:"title"`
	Author         string         `json:"author" db:"author"`
	CoverURL       string         `json:"cover_url" db:"cover_url"`
	Description    string         `json:"description" db:"description"`
	PublishedDate  string         `json:"published_date" db:"published_date"`
	PageCount      int            `json:"page_count" db:"page_count"`
	Genres         pq.StringArray `json:"genres" db:"genres"`
	ISBN           string         `json:"isbn,omitempty" db:"isbn"`
	Status         ReadingStatus  `json:"status" db:"status"`
	CurrentPage    int            `json:"current_page" db:"current_page"`
	TimesRead      int            `json:"times_read" db:"times_read"`
	Rating         float64        `json:"rating" db:"rating"`
	StartDate      *time.Time     `json:"start_date,omitempty" db:"start_date"`
	CompletionDate *time.Time     `json:"completion_date,omitempty" db:"completion_date"`
	Notes          string         `json:"notes,omitempty" db:"notes"`
	CreatedAt      time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at" db:"updated_at"`
}

type Movie struct {
	ID           uuid.UUID      `json:"id" db:"id"`
	UserID       uuid.UUID      `json:"user_id" db:"user_id"`
	Title        string         `json:"title" db:"title"`
	Director     string         `json:"director" db:"director"`
	PosterURL    string         `json:"poster_url" db:"poster_url"`
	BackdropURL  string         `json:"backdrop_url" db:"backdrop_url"`
	Description  string         `json:"description" db:"description"`
	ReleaseDate  string         `json:"release_date" db:"release_date"`
	Runtime      int            `json:"runtime" db:"runtime"` // minutes
	Genres       pq.StringArray `json:"genres" db:"genres"`
	Cast         pq.StringArray `json:"cast" db:"cast_names"`
	Status       WatchStatus    `json:"status" db:"status"`
	CurrentTime  int            `json:"current_time" db:"current_time_min"` // minutes
	TimesWatched int            `json:"times_watched" db:"times_watched"`
	Rating       float64        `json:"rating" db:"rating"`
	CreatedAt    time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at" db:"updated_at"`
}

type TVShow struct {
	ID               uuid.UUID      `json:"id" db:"id"`
	UserID           uuid.UUID      `json:"user_id" db:"user_id"`
	Title            string         `json:"title" db:"title"`
	PosterURL        string         `json:"poster_url" db:"poster_url"`
	BackdropURL      string         `json:"backdrop_url" db:"backdrop_url"`
	Description      string         `json:"description" db:"description"`
	FirstAirDate     string         `json:"first_air_date" db:"first_air_date"`
	LastAirDate      string         `json:"last_air_date,omitempty" db:"last_air_date"`
	NumberOfSeasons  int            `json:"number_of_seasons" db:"number_of_seasons"`
	NumberOfEpisodes int            `json:"number_of_episodes" db:"number_of_episodes"`
	Genres           pq.StringArray `json:"genres" db:"genres"`
	CreatedBy        pq.StringArray `json:"created_by" db:"created_by"`
	Networks         pq.StringArray `json:"networks" db:"networks"`
	Status           WatchStatus    `json:"status" db:"status"`
	CurrentSeason    int            `json:"current_season" db:"current_season"`
	CurrentEpisode   int            `json:"current_episode" db:"current_episode"`
	TimesWatched     int            `json:"times_watched" db:"times_watched"`
	Rating           float64        `json:"rating" db:"rating"`
	CreatedAt        time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at" db:"updated_at"`
}

func (b *Book) MediaType() MediaType   { return MediaTypeBook }
func (m *Movie) MediaType() MediaType  { return MediaTypeMovie }
func (s *TVShow) MediaType() MediaType { return MediaTypeTVShow }

// ──────────────────── Search results ────────────────────

// SearchResult is the normalized candidate record returned by the metadata
// providers. Which fields are populated depends on the media type searched.
type SearchResult struct {
	ExternalID       string   `json:"external_id"`
	Source           string   `json:"source"`
	Title            string   `json:"title"`
	Contributors     []string `json:"contributors,omitempty"` // authors / director / creators
	CoverURL         string   `json:"cover_url,omitempty"`
	BackdropURL      string   `json:"backdrop_url,omitempty"`
	Description      string   `json:"description,omitempty"`
	Date             string   `json:"date,omitempty"` // published / release / first air
	LastAirDate      string   `json:"last_air_date,omitempty"`
	PageCount        int      `json:"page_count,omitempty"`
	Runtime          int      `json:"runtime,omitempty"`
	NumberOfSeasons  int      `json:"number_of_seasons,omitempty"`
	NumberOfEpisodes int      `json:"number_of_episodes,omitempty"`
	Genres           []string `json:"genres,omitempty"`
	Cast             []string `json:"cast,omitempty"`
	Networks         []string `json:"networks,omitempty"`
	Rating           float64  `json:"rating,omitempty"`
	ISBN             string   `json:"isbn,omitempty"`
}
