// Package search wraps the third-party metadata providers behind one
// interface and merges their results. Provider failures degrade to fewer
// (or zero) results; they never propagate as faults to the rest of the app.
package search

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/shelftrack/shelftrack/internal/models"
)

// Provider is one upstream metadata source for one media type.
type Provider interface {
	Name() string
	Search(ctx context.Context, query string) ([]models.SearchResult, error)
}

// Service fans a query out to the providers registered for a media type.
// Provider order matters: the first provider is the designated primary, and
// its records win when de-duplication finds the same work twice.
type Service struct {
	providers map[models.MediaType][]Provider
	cache     *Cache
	log       *logrus.Logger
}

func NewService(cache *Cache, log *logrus.Logger) *Service {
	return &Service{
		providers: make(map[models.MediaType][]Provider),
		cache:     cache,
		log:       log,
	}
}

func (s *Service) Register(mediaType models.MediaType, p Provider) {
	s.providers[mediaType] = append(s.providers[mediaType], p)
}

// Search queries every provider for the media type and returns merged,
// de-duplicated candidates. An error is returned only when every provider
// failed and there is nothing to show.
func (s *Service) Search(ctx context.Context, mediaType models.MediaType, query string) ([]models.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.SearchResult{}, nil
	}

	if cached, ok := s.cache.Get(ctx, mediaType, query); ok {
		return cached, nil
	}

	providers := s.providers[mediaType]
	var merged []models.SearchResult
	var lastErr error
	failures := 0

	for _, p := range providers {
		results, err := p.Search(ctx, query)
		if err != nil {
			s.log.WithError(err).WithFields(logrus.Fields{
				"provider": p.Name(),
				"type":     mediaType,
			}).Warn("metadata provider failed")
			lastErr = err
			failures++
			continue
		}
		merged = append(merged, results...)
	}

	if len(merged) == 0 && failures == len(providers) && failures > 0 {
		return nil, lastErr
	}

	primary := ""
	if len(providers) > 0 {
		primary = providers[0].Name()
	}
	deduped := dedupe(merged, primary)

	s.cache.Set(ctx, mediaType, query, deduped)
	return deduped, nil
}

// dedupe collapses candidates describing the same work, keyed by normalized
// title plus contributor list. When both the primary provider and a
// secondary one return the work, the primary's record is kept.
func dedupe(results []models.SearchResult, primary string) []models.SearchResult {
	type slot struct {
		index  int
		result models.SearchResult
	}
	seen := make(map[string]slot, len(results))
	order := 0

	for _, r := range results {
		key := dedupeKey(r)
		existing, ok := seen[key]
		if !ok {
			seen[key] = slot{index: order, result: r}
			order++
			continue
		}
		if existing.result.Source != primary && r.Source == primary {
			seen[key] = slot{index: existing.index, result: r}
		}
	}

	out := make([]models.SearchResult, order)
	for _, s := range seen {
		out[s.index] = s.result
	}
	return out
}

func dedupeKey(r models.SearchResult) string {
	contributors := make([]string, len(r.Contributors))
	for i, c := range r.Contributors {
		contributors[i] = strings.ToLower(strings.TrimSpace(c))
	}
	return strings.ToLower(strings.TrimSpace(r.Title)) + "|" + strings.Join(contributors, ",")
}
