package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/shelftrack/shelftrack/internal/auth"
	"github.com/shelftrack/shelftrack/internal/httputil"
	"github.com/shelftrack/shelftrack/internal/models"
	"github.com/shelftrack/shelftrack/internal/stats"
)

type typeStats struct {
	Total            int                `json:"total"`
	ByStatus         map[string]int     `json:"by_status"`
	ByRating         map[int]int        `json:"by_rating"`
	ByYear           map[int]int        `json:"by_year"`
	GenrePercentages map[string]float64 `json:"genre_percentages"`
	AverageRating    float64            `json:"average_rating"`
}

type bookStats struct {
	typeStats
	AverageLength  float64 `json:"average_length"`
	TotalPagesRead int     `json:"total_pages_read"`
	PagesPerDay    float64 `json:"pages_per_day"`
}

type overviewResponse struct {
	Books   bookStats `json:"books"`
	Movies  typeStats `json:"movies"`
	TVShows typeStats `json:"tvshows"`
}

func computeTypeStats(items []models.Media, mediaType models.MediaType) typeStats {
	completed := stats.CompletedOnly(items)
	genrePcts := stats.PercentageDistribution(stats.CountByGenre(completed))

	return typeStats{
		Total:            len(items),
		ByStatus:         stats.CountByStatus(items, mediaType),
		ByRating:         stats.CountByRating(items),
		ByYear:           stats.CountByCompletionYear(items),
		GenrePercentages: genrePcts,
		AverageRating:    stats.Average(items, models.Rating),
	}
}

func computeBookStats(books []*models.Book) bookStats {
	items := booksAsMedia(books)
	bs := bookStats{typeStats: computeTypeStats(items, models.MediaTypeBook)}

	completed := stats.CompletedOnly(items)
	bs.AverageLength = stats.Average(completed, func(m models.Media) float64 {
		return float64(m.(*models.Book).PageCount)
	})
	bs.TotalPagesRead = int(stats.Sum(items, func(m models.Media) float64 {
		b := m.(*models.Book)
		if b.Status == models.ReadingStatusCompleted {
			return float64(b.PageCount)
		}
		return float64(b.CurrentPage)
	}))

	pagesWithDates, days := 0, 0.0
	for _, b := range books {
		if b.Status == models.ReadingStatusCompleted && b.StartDate != nil && b.CompletionDate != nil {
			if d := b.CompletionDate.Sub(*b.StartDate).Hours() / 24; d > 0 {
				pagesWithDates += b.PageCount
				days += d
			}
		}
	}
	if days > 0 {
		bs.PagesPerDay = float64(pagesWithDates) / days
	}
	return bs
}

func (s *Server) handleStatsOverview(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	books, err := s.books.ListByUser(userID)
	if err != nil {
		s.statsError(w, err)
		return
	}
	movies, err := s.movies.ListByUser(userID)
	if err != nil {
		s.statsError(w, err)
		return
	}
	shows, err := s.tvshows.ListByUser(userID)
	if err != nil {
		s.statsError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, overviewResponse{
		Books:   computeBookStats(books),
		Movies:  computeTypeStats(moviesAsMedia(movies), models.MediaTypeMovie),
		TVShows: computeTypeStats(tvshowsAsMedia(shows), models.MediaTypeTVShow),
	})
}

func (s *Server) handleStatsByType(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	mediaType, ok := parseMediaType(chi.URLParam(r, "type"))
	if !ok {
		httputil.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "unknown media type")
		return
	}

	items, err := s.loadItems(userID, mediaType)
	if err != nil {
		s.statsError(w, err)
		return
	}

	if mediaType == models.MediaTypeBook {
		books := make([]*models.Book, len(items))
		for i, m := range items {
			books[i] = m.(*models.Book)
		}
		httputil.WriteJSON(w, http.StatusOK, computeBookStats(books))
		return
	}
	httputil.WriteJSON(w, http.StatusOK, computeTypeStats(items, mediaType))
}

func (s *Server) loadItems(userID uuid.UUID, mediaType models.MediaType) ([]models.Media, error) {
	switch mediaType {
	case models.MediaTypeBook:
		books, err := s.books.ListByUser(userID)
		if err != nil {
			return nil, err
		}
		return booksAsMedia(books), nil
	case models.MediaTypeMovie:
		movies, err := s.movies.ListByUser(userID)
		if err != nil {
			return nil, err
		}
		return moviesAsMedia(movies), nil
	default:
		shows, err := s.tvshows.ListByUser(userID)
		if err != nil {
			return nil, err
		}
		return tvshowsAsMedia(shows), nil
	}
}

func parseMediaType(raw string) (models.MediaType, bool) {
	switch raw {
	case "book", "books":
		return models.MediaTypeBook, true
	case "movie", "movies":
		return models.MediaTypeMovie, true
	case "tvshow", "tvshows":
		return models.MediaTypeTVShow, true
	default:
		return "", false
	}
}

func (s *Server) statsError(w http.ResponseWriter, err error) {
	s.log.WithError(err).Error("stats query failed")
	httputil.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to compute stats")
}
