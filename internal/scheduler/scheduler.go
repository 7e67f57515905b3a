// Package scheduler runs the periodic stale-metadata sweep: items saved
// without artwork (a provider hiccup at add time) get a refresh task
// enqueued on a cron schedule.
package scheduler

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/shelftrack/shelftrack/internal/jobs"
	"github.com/shelftrack/shelftrack/internal/models"
	"github.com/shelftrack/shelftrack/internal/repository"
)

const sweepBatchSize = 50

type Scheduler struct {
	cron    *cron.Cron
	spec    string
	queue   *jobs.Queue
	books   *repository.BookRepository
	movies  *repository.MovieRepository
	tvshows *repository.TVShowRepository
	log     *logrus.Logger
}

func New(
	spec string,
	queue *jobs.Queue,
	books *repository.BookRepository,
	movies *repository.MovieRepository,
	tvshows *repository.TVShowRepository,
	log *logrus.Logger,
) *Scheduler {
	return &Scheduler{
		cron:    cron.New(),
		spec:    spec,
		queue:   queue,
		books:   books,
		movies:  movies,
		tvshows: tvshows,
		log:     log,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.sweep); err != nil {
		return fmt.Errorf("invalid refresh cron spec %q: %w", s.spec, err)
	}
	s.cron.Start()
	return nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

func (s *Scheduler) sweep() {
	enqueued := 0

	if books, err := s.books.ListMissingArtwork(sweepBatchSize); err == nil {
		for _, b := range books {
			enqueued += s.enqueue(models.MediaTypeBook, jobs.RefreshPayload{
				MediaType: models.MediaTypeBook, UserID: b.UserID, ItemID: b.ID,
			})
		}
	} else {
		s.log.WithError(err).Warn("sweep: listing books failed")
	}

	if movies, err := s.movies.ListMissingArtwork(sweepBatchSize); err == nil {
		for _, m := range movies {
			enqueued += s.enqueue(models.MediaTypeMovie, jobs.RefreshPayload{
				MediaType: models.MediaTypeMovie, UserID: m.UserID, ItemID: m.ID,
			})
		}
	} else {
		s.log.WithError(err).Warn("sweep: listing movies failed")
	}

	if shows, err := s.tvshows.ListMissingArtwork(sweepBatchSize); err == nil {
		for _, sh := range shows {
			enqueued += s.enqueue(models.MediaTypeTVShow, jobs.RefreshPayload{
				MediaType: models.MediaTypeTVShow, UserID: sh.UserID, ItemID: sh.ID,
			})
		}
	} else {
		s.log.WithError(err).Warn("sweep: listing tv shows failed")
	}

	s.log.WithField("enqueued", enqueued).Info("metadata sweep finished")
}

func (s *Scheduler) enqueue(mediaType models.MediaType, payload jobs.RefreshPayload) int {
	uniqueID := fmt.Sprintf("refresh:%s:%s", mediaType, payload.ItemID)
	if err := s.queue.EnqueueUnique(jobs.TaskMetadataRefresh, payload, uniqueID); err != nil {
		s.log.WithError(err).Warn("sweep: enqueue failed")
		return 0
	}
	return 1
}
