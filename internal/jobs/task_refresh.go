package jobs

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"

	"github.com/shelftrack/shelftrack/internal/models"
	"github.com/shelftrack/shelftrack/internal/repository"
	"github.com/shelftrack/shelftrack/internal/search"
)

// RefreshPayload identifies one item to re-scrape.
type RefreshPayload struct {
	MediaType models.MediaType `json:"media_type"`
	UserID    uuid.UUID        `json:"user_id"`
	ItemID    uuid.UUID        `json:"item_id"`
}

// RefreshHandler re-queries the metadata providers by title and fills in
// missing artwork, description and genres. User-entered fields (status,
// progress, rating, notes) are never touched.
type RefreshHandler struct {
	books    *repository.BookRepository
	movies   *repository.MovieRepository
	tvshows  *repository.TVShowRepository
	searcher *search.Service
	log      *logrus.Logger
}

func NewRefreshHandler(
	books *repository.BookRepository,
	movies *repository.MovieRepository,
	tvshows *repository.TVShowRepository,
	searcher *search.Service,
	log *logrus.Logger,
) *RefreshHandler {
	return &RefreshHandler{books: books, movies: movies, tvshows: tvshows, searcher: searcher, log: log}
}

func (h *RefreshHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	var p RefreshPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("unmarshal refresh payload: %w", err)
	}

	switch p.MediaType {
	case models.MediaTypeBook:
		return h.refreshBook(ctx, p)
	case models.MediaTypeMovie:
		return h.refreshMovie(ctx, p)
	case models.MediaTypeTVShow:
		return h.refreshTVShow(ctx, p)
	default:
		return fmt.Errorf("unknown media type %q", p.MediaType)
	}
}

func (h *RefreshHandler) refreshBook(ctx context.Context, p RefreshPayload) error {
	book, err := h.books.GetByID(p.UserID, p.ItemID)
	if err != nil {
		// Deleted since enqueue; nothing to do.
		return nil
	}

	hit, ok := h.lookup(ctx, models.MediaTypeBook, book.Title)
	if !ok {
		return nil
	}

	changed := false
	if book.CoverURL == "" && hit.CoverURL != "" {
		book.CoverURL = hit.CoverURL
		changed = true
	}
	if book.Description == "" && hit.Description != "" {
		book.Description = hit.Description
		changed = true
	}
	if len(book.Genres) == 0 && len(hit.Genres) > 0 {
		book.Genres = hit.Genres
		changed = true
	}
	if !changed {
		return nil
	}
	h.log.WithField("book_id", book.ID).Info("refreshed book metadata")
	return h.books.Update(book)
}

func (h *RefreshHandler) refreshMovie(ctx context.Context, p RefreshPayload) error {
	movie, err := h.movies.GetByID(p.UserID, p.ItemID)
	if err != nil {
		return nil
	}

	hit, ok := h.lookup(ctx, models.MediaTypeMovie, movie.Title)
	if !ok {
		return nil
	}

	changed := false
	if movie.PosterURL == "" && hit.CoverURL != "" {
		movie.PosterURL = hit.CoverURL
		changed = true
	}
	if movie.BackdropURL == "" && hit.BackdropURL != "" {
		movie.BackdropURL = hit.BackdropURL
		changed = true
	}
	if len(movie.Genres) == 0 && len(hit.Genres) > 0 {
		movie.Genres = hit.Genres
		changed = true
	}
	if !changed {
		return nil
	}
	h.log.WithField("movie_id", movie.ID).Info("refreshed movie metadata")
	return h.movies.Update(movie)
}

func (h *RefreshHandler) refreshTVShow(ctx context.Context, p RefreshPayload) error {
	show, err := h.tvshows.GetByID(p.UserID, p.ItemID)
	if err != nil {
		return nil
	}

	hit, ok := h.lookup(ctx, models.MediaTypeTVShow, show.Title)
	if !ok {
		return nil
	}

	changed := false
	if show.PosterURL == "" && hit.CoverURL != "" {
		show.PosterURL = hit.CoverURL
		changed = true
	}
	if show.BackdropURL == "" && hit.BackdropURL != "" {
		show.BackdropURL = hit.BackdropURL
		changed = true
	}
	if len(show.Genres) == 0 && len(hit.Genres) > 0 {
		show.Genres = hit.Genres
		changed = true
	}
	if !changed {
		return nil
	}
	h.log.WithField("tvshow_id", show.ID).Info("refreshed tv show metadata")
	return h.tvshows.Update(show)
}

func (h *RefreshHandler) lookup(ctx context.Context, mediaType models.MediaType, title string) (models.SearchResult, bool) {
	results, err := h.searcher.Search(ctx, mediaType, title)
	if err != nil || len(results) == 0 {
		return models.SearchResult{}, false
	}
	return results[0], true
}
