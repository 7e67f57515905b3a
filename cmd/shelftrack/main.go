package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shelftrack/shelftrack/internal/api"
	"github.com/shelftrack/shelftrack/internal/auth"
	"github.com/shelftrack/shelftrack/internal/config"
	"github.com/shelftrack/shelftrack/internal/db"
	"github.com/shelftrack/shelftrack/internal/jobs"
	"github.com/shelftrack/shelftrack/internal/logger"
	"github.com/shelftrack/shelftrack/internal/models"
	"github.com/shelftrack/shelftrack/internal/scheduler"
	"github.com/shelftrack/shelftrack/internal/search"
	"github.com/shelftrack/shelftrack/internal/version"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New("info").Fatalf("configuration error: %v", err)
	}
	log := logger.New(cfg.LogLevel)
	log.WithField("version", version.Version).Info("shelftrack starting")

	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer database.Close()

	if err := db.Migrate(database, "migrations"); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	authService, err := auth.NewService(cfg.JWTSecret, time.Duration(cfg.TokenTTLHours)*time.Hour, cfg.BcryptCost)
	if err != nil {
		log.Fatalf("auth setup failed: %v", err)
	}

	cache := search.NewCache(cfg.RedisAddr, time.Duration(cfg.SearchCacheTTLMins)*time.Minute, log)
	searcher := search.NewService(cache, log)
	searcher.Register(models.MediaTypeBook, search.NewGoogleBooksProvider())
	searcher.Register(models.MediaTypeBook, search.NewOpenLibraryProvider())
	searcher.Register(models.MediaTypeMovie, search.NewTMDBMovieProvider(cfg.TMDBAPIKey))
	searcher.Register(models.MediaTypeTVShow, search.NewTMDBTVProvider(cfg.TMDBAPIKey))

	queue := jobs.NewQueue(cfg.RedisAddr, log)
	srv := api.NewServer(database, authService, searcher, queue, log)

	refresh := jobs.NewRefreshHandler(srv.BookRepo(), srv.MovieRepo(), srv.TVShowRepo(), searcher, log)
	queue.Handle(jobs.TaskMetadataRefresh, refresh)
	if err := queue.Start(); err != nil {
		log.Fatalf("job queue failed to start: %v", err)
	}
	defer queue.Stop()

	sched := scheduler.New(cfg.RefreshCron, queue, srv.BookRepo(), srv.MovieRepo(), srv.TVShowRepo(), log)
	if err := sched.Start(); err != nil {
		log.Fatalf("scheduler failed to start: %v", err)
	}
	defer sched.Stop()

	httpServer := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      srv.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // websocket connections stay open indefinitely
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infof("listening on :%s", cfg.ServerPort)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.WithError(err).Warn("shutdown was not clean")
	}
}
