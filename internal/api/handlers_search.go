package api

import (
	"net/http"
	"strings"

	"github.com/shelftrack/shelftrack/internal/httputil"
	"github.com/shelftrack/shelftrack/internal/models"
)

func (s *Server) handleSearchBooks(w http.ResponseWriter, r *http.Request) {
	s.handleSearch(w, r, models.MediaTypeBook)
}

func (s *Server) handleSearchMovies(w http.ResponseWriter, r *http.Request) {
	s.handleSearch(w, r, models.MediaTypeMovie)
}

func (s *Server) handleSearchTVShows(w http.ResponseWriter, r *http.Request) {
	s.handleSearch(w, r, models.MediaTypeTVShow)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request, mediaType models.MediaType) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		httputil.WriteError(w, http.StatusBadRequest, "BAD_REQUEST", "query parameter q is required")
		return
	}

	results, err := s.searcher.Search(r.Context(), mediaType, query)
	if err != nil {
		s.log.WithError(err).WithField("type", mediaType).Warn("metadata search failed")
		httputil.WriteError(w, http.StatusBadGateway, "SEARCH_UNAVAILABLE", "metadata providers are unavailable")
		return
	}
	httputil.WriteJSON(w, http.StatusOK, results)
}
