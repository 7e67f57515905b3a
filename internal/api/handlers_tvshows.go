package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/shelftrack/shelftrack/internal/auth"
	"github.com/shelftrack/shelftrack/internal/httputil"
	"github.com/shelftrack/shelftrack/internal/models"
	"github.com/shelftrack/shelftrack/internal/progress"
	"github.com/shelftrack/shelftrack/internal/repository"
	"github.com/shelftrack/shelftrack/internal/tracker"
)

func (s *Server) handleListTVShows(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	shows, err := s.tvshows.ListByUser(userID)
	if err != nil {
		s.log.WithError(err).Error("listing tv shows failed")
		httputil.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to list tv shows")
		return
	}
	groups := tracker.Grouped(tvshowsAsMedia(shows), models.MediaTypeTVShow, trackerConfig(r))
	httputil.WriteJSON(w, http.StatusOK, groups)
}

func (s *Server) handleCreateTVShow(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	var show models.TVShow
	if err := httputil.ReadJSON(r, &show); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}
	if show.Title == "" {
		httputil.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "title is required")
		return
	}
	if show.Status == "" {
		show.Status = models.WatchStatusPlanning
	}
	if !models.ValidWatchStatus(show.Status) {
		httputil.WriteError(w, http.StatusBadRequest, "INVALID_STATUS", "unknown tv show status")
		return
	}
	if !validRating(show.Rating) {
		httputil.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "rating must be between 0 and 5")
		return
	}
	if show.Status == models.WatchStatusCompleted {
		progress.ForceComplete(&show)
	}

	show.UserID = userID
	if err := s.tvshows.Create(&show); err != nil {
		s.log.WithError(err).Error("tv show create failed")
		httputil.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to create tv show")
		return
	}

	s.hub.Broadcast(userID, "tvshow:created", &show)
	httputil.WriteJSON(w, http.StatusCreated, &show)
}

func (s *Server) handleUpdateTVShow(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid id")
		return
	}

	show, err := s.tvshows.GetByID(userID, id)
	if err != nil {
		httputil.WriteError(w, http.StatusNotFound, "NOT_FOUND", "tv show not found")
		return
	}

	oldStatus := show.Status
	if err := httputil.ReadJSON(r, show); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}
	show.ID = id
	show.UserID = userID
	if !validRating(show.Rating) {
		httputil.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "rating must be between 0 and 5")
		return
	}

	if show.Status != oldStatus {
		newStatus := string(show.Status)
		show.Status = oldStatus
		if err := progress.ApplyStatus(show, newStatus); err != nil {
			code := "INVALID_TRANSITION"
			if errors.Is(err, progress.ErrInvalidStatus) {
				code = "INVALID_STATUS"
			}
			httputil.WriteError(w, http.StatusUnprocessableEntity, code, err.Error())
			return
		}
	}

	if err := s.tvshows.Update(show); err != nil {
		if err == repository.ErrNotFound {
			httputil.WriteError(w, http.StatusNotFound, "NOT_FOUND", "tv show not found")
			return
		}
		s.log.WithError(err).Error("tv show update failed")
		httputil.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to update tv show")
		return
	}

	s.hub.Broadcast(userID, "tvshow:updated", show)
	httputil.WriteJSON(w, http.StatusOK, show)
}

func (s *Server) handleDeleteTVShow(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid id")
		return
	}

	if err := s.tvshows.Delete(userID, id); err != nil {
		if err == repository.ErrNotFound {
			httputil.WriteError(w, http.StatusNotFound, "NOT_FOUND", "tv show not found")
			return
		}
		s.log.WithError(err).Error("tv show delete failed")
		httputil.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to delete tv show")
		return
	}

	s.hub.Broadcast(userID, "tvshow:deleted", map[string]string{"id": id.String()})
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"id": id.String()})
}
