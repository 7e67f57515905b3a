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

func (s *Server) handleListBooks(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	books, err := s.books.ListByUser(userID)
	if err != nil {
		s.log.WithError(err).Error("listing books failed")
		httputil.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to list books")
		return
	}
	groups := tracker.Grouped(booksAsMedia(books), models.MediaTypeBook, trackerConfig(r))
	httputil.WriteJSON(w, http.StatusOK, groups)
}

func (s *Server) handleCreateBook(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	var book models.Book
	if err := httputil.ReadJSON(r, &book); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}
	if book.Title == "" {
		httputil.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "title is required")
		return
	}
	if book.Status == "" {
		book.Status = models.ReadingStatusPlanning
	}
	if !models.ValidReadingStatus(book.Status) {
		httputil.WriteError(w, http.StatusBadRequest, "INVALID_STATUS", "unknown book status")
		return
	}
	if !validRating(book.Rating) {
		httputil.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "rating must be between 0 and 5")
		return
	}
	if book.Status == models.ReadingStatusCompleted {
		progress.ForceComplete(&book)
	}

	book.UserID = userID
	if err := s.books.Create(&book); err != nil {
		s.log.WithError(err).Error("book create failed")
		httputil.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to create book")
		return
	}

	s.hub.Broadcast(userID, "book:created", &book)
	httputil.WriteJSON(w, http.StatusCreated, &book)
}

func (s *Server) handleUpdateBook(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid id")
		return
	}

	book, err := s.books.GetByID(userID, id)
	if err != nil {
		httputil.WriteError(w, http.StatusNotFound, "NOT_FOUND", "book not found")
		return
	}

	oldStatus := book.Status
	if err := httputil.ReadJSON(r, book); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}
	book.ID = id
	book.UserID = userID
	if !validRating(book.Rating) {
		httputil.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "rating must be between 0 and 5")
		return
	}

	if book.Status != oldStatus {
		newStatus := string(book.Status)
		book.Status = oldStatus
		if err := progress.ApplyStatus(book, newStatus); err != nil {
			code := "INVALID_TRANSITION"
			if errors.Is(err, progress.ErrInvalidStatus) {
				code = "INVALID_STATUS"
			}
			httputil.WriteError(w, http.StatusUnprocessableEntity, code, err.Error())
			return
		}
	}

	if err := s.books.Update(book); err != nil {
		if err == repository.ErrNotFound {
			httputil.WriteError(w, http.StatusNotFound, "NOT_FOUND", "book not found")
			return
		}
		s.log.WithError(err).Error("book update failed")
		httputil.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to update book")
		return
	}

	s.hub.Broadcast(userID, "book:updated", book)
	httputil.WriteJSON(w, http.StatusOK, book)
}

func (s *Server) handleDeleteBook(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid id")
		return
	}

	if err := s.books.Delete(userID, id); err != nil {
		if err == repository.ErrNotFound {
			httputil.WriteError(w, http.StatusNotFound, "NOT_FOUND", "book not found")
			return
		}
		s.log.WithError(err).Error("book delete failed")
		httputil.WriteError(w, http.StatusInternalServerError, "INTERNAL", "failed to delete book")
		return
	}

	s.hub.Broadcast(userID, "book:deleted", map[string]string{"id": id.String()})
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"id": id.String()})
}
