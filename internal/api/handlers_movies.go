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

func (s *Server) handleListMovies(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	movies, err := s.movies.ListByUser(userID)
	if err != nil {
		s.log.WithError(err).Error("listing movies failed")
		httputil.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to list movies")
		return
	}
	groups := tracker.Grouped(moviesAsMedia(movies), models.MediaTypeMovie, trackerConfig(r))
	httputil.WriteJSON(w, http.StatusOK, groups)
}

func (s *Server) handleCreateMovie(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	var movie models.Movie
	if err := httputil.ReadJSON(r, &movie); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}
	if movie.Title == "" {
		httputil.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "title is required")
		return
	}
	if movie.Status == "" {
		movie.Status = models.WatchStatusPlanning
	}
	if !models.ValidWatchStatus(movie.Status) {
		httputil.WriteError(w, http.StatusBadRequest, "INVALID_STATUS", "unknown movie status")
		return
	}
	if !validRating(movie.Rating) {
		httputil.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "rating must be between 0 and 5")
		return
	}
	if movie.Status == models.WatchStatusCompleted {
		progress.ForceComplete(&movie)
	}

	movie.UserID = userID
	if err := s.movies.Create(&movie); err != nil {
		s.log.WithError(err).Error("movie create failed")
		httputil.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to create movie")
		return
	}

	s.hub.Broadcast(userID, "movie:created", &movie)
	httputil.WriteJSON(w, http.StatusCreated, &movie)
}

func (s *Server) handleUpdateMovie(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid id")
		return
	}

	movie, err := s.movies.GetByID(userID, id)
	if err != nil {
		httputil.WriteError(w, http.StatusNotFound, "NOT_FOUND", "movie not found")
		return
	}

	oldStatus := movie.Status
	if err := httputil.ReadJSON(r, movie); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}
	movie.ID = id
	movie.UserID = userID
	if !validRating(movie.Rating) {
		httputil.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "rating must be between 0 and 5")
		return
	}

	if movie.Status != oldStatus {
		newStatus := string(movie.Status)
		movie.Status = oldStatus
		if err := progress.ApplyStatus(movie, newStatus); err != nil {
			code := "INVALID_TRANSITION"
			if errors.Is(err, progress.ErrInvalidStatus) {
				code = "INVALID_STATUS"
			}
			httputil.WriteError(w, http.StatusUnprocessableEntity, code, err.Error())
			return
		}
	}

	if err := s.movies.Update(movie); err != nil {
		if err == repository.ErrNotFound {
			httputil.WriteError(w, http.StatusNotFound, "NOT_FOUND", "movie not found")
			return
		}
		s.log.WithError(err).Error("movie update failed")
		httputil.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to update movie")
		return
	}

	s.hub.Broadcast(userID, "movie:updated", movie)
	httputil.WriteJSON(w, http.StatusOK, movie)
}

func (s *Server) handleDeleteMovie(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid id")
		return
	}

	if err := s.movies.Delete(userID, id); err != nil {
		if err == repository.ErrNotFound {
			httputil.WriteError(w, http.StatusNotFound, "NOT_FOUND", "movie not found")
			return
		}
		s.log.WithError(err).Error("movie delete failed")
		httputil.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to delete movie")
		return
	}

	s.hub.Broadcast(userID, "movie:deleted", map[string]string{"id": id.String()})
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"id": id.String()})
}
