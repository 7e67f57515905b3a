// Package jobs runs background work on an asynq queue. The only task today
// is metadata refresh: re-fetching artwork and genres for a stored item.
package jobs

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"
)

const TaskMetadataRefresh = "metadata:refresh"

type Queue struct {
	client *asynq.Client
	server *asynq.Server
	mux    *asynq.ServeMux
	log    *logrus.Logger
}

func NewQueue(redisAddr string, log *logrus.Logger) *Queue {
	redisOpt := asynq.RedisClientOpt{Addr: redisAddr}
	client := asynq.NewClient(redisOpt)
	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 2,
			Queues: map[string]int{
				"default": 5,
				"low":     1,
			},
		},
	)
	return &Queue{
		client: client,
		server: server,
		mux:    asynq.NewServeMux(),
		log:    log,
	}
}

// EnqueueUnique enqueues a task with a deterministic id so the same item is
// never queued for refresh twice. Conflicts are silently skipped.
func (q *Queue) EnqueueUnique(taskType string, payload interface{}, uniqueID string, opts ...asynq.Option) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	opts = append(opts, asynq.TaskID(uniqueID))
	_, err = q.client.Enqueue(asynq.NewTask(taskType, data, opts...))
	if err != nil {
		if errors.Is(err, asynq.ErrDuplicateTask) || errors.Is(err, asynq.ErrTaskIDConflict) {
			return nil
		}
		return fmt.Errorf("enqueue: %w", err)
	}
	return nil
}

func (q *Queue) Handle(taskType string, handler asynq.Handler) {
	q.mux.Handle(taskType, handler)
}

func (q *Queue) Start() error {
	return q.server.Start(q.mux)
}

func (q *Queue) Stop() {
	q.server.Shutdown()
	q.client.Close()
}
