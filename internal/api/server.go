package api

import (
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/shelftrack/shelftrack/internal/auth"
	"github.com/shelftrack/shelftrack/internal/db"
	"github.com/shelftrack/shelftrack/internal/httputil"
	"github.com/shelftrack/shelftrack/internal/jobs"
	"github.com/shelftrack/shelftrack/internal/repository"
	"github.com/shelftrack/shelftrack/internal/search"
	"github.com/shelftrack/shelftrack/internal/version"
)

type Server struct {
	auth     *auth.Service
	users    *repository.UserRepository
	books    *repository.BookRepository
	movies   *repository.MovieRepository
	tvshows  *repository.TVShowRepository
	searcher *search.Service
	queue    *jobs.Queue
	hub      *Hub
	log      *logrus.Logger
	router   chi.Router

	limiterMu sync.Mutex
	limiters  map[string]*limiterEntry
}

type limiterEntry struct {
	lim      *rate.Limiter
	lastSeen time.Time
}

// Stale limiter entries are evicted once the map fills up, so the per-IP
// state stays bounded on long-running instances.
const (
	limiterMaxEntries = 1024
	limiterTTL        = 10 * time.Minute
)

func NewServer(
	database *db.DB,
	authService *auth.Service,
	searcher *search.Service,
	queue *jobs.Queue,
	log *logrus.Logger,
) *Server {
	s := &Server{
		auth:     authService,
		users:    repository.NewUserRepository(database.DB),
		books:    repository.NewBookRepository(database.DB),
		movies:   repository.NewMovieRepository(database.DB),
		tvshows:  repository.NewTVShowRepository(database.DB),
		searcher: searcher,
		queue:    queue,
		hub:      NewHub(log),
		log:      log,
		limiters: make(map[string]*limiterEntry),
	}
	s.router = s.routes()
	return s
}

func (s *Server) Handler() http.Handler { return s.router }

// Repositories used by main to wire the background refresh handler.
func (s *Server) BookRepo() *repository.BookRepository     { return s.books }
func (s *Server) MovieRepo() *repository.MovieRepository   { return s.movies }
func (s *Server) TVShowRepo() *repository.TVShowRepository { return s.tvshows }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Post("/auth/register", s.rateLimited(s.handleRegister))
		r.Post("/auth/login", s.rateLimited(s.handleLogin))

		r.Group(func(r chi.Router) {
			r.Use(s.auth.RequireAuth)

			r.Get("/auth/me", s.handleMe)
			r.Get("/ws", s.handleWebSocket)

			r.Route("/books", func(r chi.Router) {
				r.Get("/", s.handleListBooks)
				r.Post("/", s.handleCreateBook)
				r.Put("/{id}", s.handleUpdateBook)
				r.Delete("/{id}", s.handleDeleteBook)
			})
			r.Route("/movies", func(r chi.Router) {
				r.Get("/", s.handleListMovies)
				r.Post("/", s.handleCreateMovie)
				r.Put("/{id}", s.handleUpdateMovie)
				r.Delete("/{id}", s.handleDeleteMovie)
			})
			r.Route("/tvshows", func(r chi.Router) {
				r.Get("/", s.handleListTVShows)
				r.Post("/", s.handleCreateTVShow)
				r.Put("/{id}", s.handleUpdateTVShow)
				r.Delete("/{id}", s.handleDeleteTVShow)
			})

			r.Get("/search/books", s.handleSearchBooks)
			r.Get("/search/movies", s.handleSearchMovies)
			r.Get("/search/tvshows", s.handleSearchTVShows)

			r.Get("/stats/overview", s.handleStatsOverview)
			r.Get("/stats/{type}", s.handleStatsByType)
			r.Get("/inprogress", s.handleInProgress)

			r.Post("/media/{type}/{id}/refresh", s.handleRefresh)
		})
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": version.Version,
	})
}

// ──────────────────── Middleware ────────────────────

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   ww.Status(),
			"duration": time.Since(start).String(),
		}).Debug("request")
	})
}

// rateLimited throttles credential endpoints per client IP.
func (s *Server) rateLimited(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}
		if !s.limiterFor(ip).Allow() {
			httputil.WriteError(w, http.StatusTooManyRequests, "RATE_LIMITED", "too many attempts, slow down")
			return
		}
		next(w, r)
	}
}

func (s *Server) limiterFor(ip string) *rate.Limiter {
	s.limiterMu.Lock()
	defer s.limiterMu.Unlock()

	now := time.Now()
	if e, ok := s.limiters[ip]; ok {
		e.lastSeen = now
		return e.lim
	}

	if len(s.limiters) >= limiterMaxEntries {
		for k, e := range s.limiters {
			if now.Sub(e.lastSeen) > limiterTTL {
				delete(s.limiters, k)
			}
		}
	}

	e := &limiterEntry{
		lim:      rate.NewLimiter(rate.Every(2*time.Second), 5),
		lastSeen: now,
	}
	s.limiters[ip] = e
	return e.lim
}
