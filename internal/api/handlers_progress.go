package api

import (
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/shelftrack/shelftrack/internal/auth"
	"github.com/shelftrack/shelftrack/internal/httputil"
	"github.com/shelftrack/shelftrack/internal/jobs"
	"github.com/shelftrack/shelftrack/internal/models"
	"github.com/shelftrack/shelftrack/internal/progress"
)

// inProgressEntry is one row of the unified "currently consuming" view,
// mixing all three media types.
type inProgressEntry struct {
	Type         models.MediaType `json:"type"`
	Item         models.Media     `json:"item"`
	Percentage   float64          `json:"percentage"`
	ProgressText string           `json:"progress_text"`
	StartDate    time.Time        `json:"start_date"`
}

func (s *Server) handleInProgress(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	entries := []inProgressEntry{}
	for _, mediaType := range []models.MediaType{models.MediaTypeBook, models.MediaTypeMovie, models.MediaTypeTVShow} {
		items, err := s.loadItems(userID, mediaType)
		if err != nil {
			s.log.WithError(err).Error("loading in-progress items failed")
			httputil.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to load items")
			return
		}
		for _, m := range items {
			if !progress.IsActive(models.StatusOf(m)) {
				continue
			}
			entries = append(entries, inProgressEntry{
				Type:         mediaType,
				Item:         m,
				Percentage:   progress.Percentage(m),
				ProgressText: progress.Text(m),
				StartDate:    progress.StartDate(m),
			})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].StartDate.After(entries[j].StartDate)
	})
	httputil.WriteJSON(w, http.StatusOK, entries)
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	mediaType, ok := parseMediaType(chi.URLParam(r, "type"))
	if !ok {
		httputil.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "unknown media type")
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid id")
		return
	}

	if err := s.itemExists(userID, mediaType, id); err != nil {
		httputil.WriteError(w, http.StatusNotFound, "NOT_FOUND", "item not found")
		return
	}

	payload := jobs.RefreshPayload{MediaType: mediaType, UserID: userID, ItemID: id}
	uniqueID := fmt.Sprintf("refresh:%s:%s", mediaType, id)
	if err := s.queue.EnqueueUnique(jobs.TaskMetadataRefresh, payload, uniqueID); err != nil {
		s.log.WithError(err).Error("refresh enqueue failed")
		httputil.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to queue refresh")
		return
	}
	httputil.WriteJSON(w, http.StatusAccepted, map[string]string{"status": "queued"})
}

func (s *Server) itemExists(userID uuid.UUID, mediaType models.MediaType, id uuid.UUID) error {
	switch mediaType {
	case models.MediaTypeBook:
		_, err := s.books.GetByID(userID, id)
		return err
	case models.MediaTypeMovie:
		_, err := s.movies.GetByID(userID, id)
		return err
	default:
		_, err := s.tvshows.GetByID(userID, id)
		return err
	}
}
