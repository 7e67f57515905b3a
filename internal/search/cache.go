package search

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/shelftrack/shelftrack/internal/models"
)

// Cache keeps recent provider responses in Redis so repeated lookups of the
// same query don't hammer the upstream APIs. A nil *Cache is a no-op, so the
// service works without Redis.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
	log *logrus.Logger
}

func NewCache(addr string, ttl time.Duration, log *logrus.Logger) *Cache {
	return &Cache{
		rdb: redis.NewClient(&redis.Options{Addr: addr}),
		ttl: ttl,
		log: log,
	}
}

func cacheKey(mediaType models.MediaType, query string) string {
	return fmt.Sprintf("search:%s:%s", mediaType, query)
}

func (c *Cache) Get(ctx context.Context, mediaType models.MediaType, query string) ([]models.SearchResult, bool) {
	if c == nil {
		return nil, false
	}
	data, err := c.rdb.Get(ctx, cacheKey(mediaType, query)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.WithError(err).Debug("search cache read failed")
		}
		return nil, false
	}
	var results []models.SearchResult
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, false
	}
	return results, true
}

func (c *Cache) Set(ctx context.Context, mediaType models.MediaType, query string, results []models.SearchResult) {
	if c == nil {
		return
	}
	data, err := json.Marshal(results)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, cacheKey(mediaType, query), data, c.ttl).Err(); err != nil {
		c.log.WithError(err).Debug("search cache write failed")
	}
}
