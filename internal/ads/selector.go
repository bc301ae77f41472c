package ads

import (
	"context"
	"errors"
	"log/slog"

	"chatads/internal/adcache"
	"chatads/internal/metrics"
	"chatads/internal/models"
)

// ErrNoAds is returned when the ad source yields no usable candidates for a
// query. Callers treat it as a distinct "no ads found" outcome, not a failure.
var ErrNoAds = errors.New("no ads found")

// maxSelectionSize caps the ads returned per selection: one winner plus up
// to four recommendations.
const maxSelectionSize = 5

// Source supplies candidate ads for a keyword set. publisherKey may be
// empty, in which case the source uses its configured default.
type Source interface {
	Fetch(ctx context.Context, kws []string, publisherKey string) ([]models.AdResult, error)
}

// Selector runs the cache-then-suppress selection protocol: a cached ad is
// reused only while fresh and not recently shown; otherwise candidates are
// fetched, scored, and the new winner is cached and marked shown.
type Selector struct {
	source Source
	cache  *adcache.Cache
	scorer *Scorer
}

// NewSelector creates a Selector.
func NewSelector(source Source, cache *adcache.Cache, scorer *Scorer) *Selector {
	return &Selector{source: source, cache: cache, scorer: scorer}
}

// Select returns the winning ad and recommendations for the query. A cached
// ad that was recently shown is treated as a miss, forcing a fresh fetch
// even inside the cache-freshness window.
func (s *Selector) Select(ctx context.Context, query string, kws []string) (*models.AdSelection, error) {
	if cached := s.cache.Get(query); cached != nil && !s.cache.WasRecentlyShown(cached.Title) {
		s.cache.MarkAsShown(cached.Title)
		metrics.RecordAdRequest(metrics.OutcomeCacheHit)
		return &models.AdSelection{Ad: *cached, TotalAds: 1, Cached: true}, nil
	}

	candidates, err := s.source.Fetch(ctx, kws, "")
	if err != nil {
		// Ad source failures degrade to "no ads"; the chat reply must
		// never fail because the ad network did.
		slog.Error("ad source fetch failed", "query", query, "error", err)
		metrics.RecordAdSourceError()
		candidates = nil
	}

	scored := s.scorer.Score(candidates, kws)
	if len(scored) == 0 {
		metrics.RecordAdRequest(metrics.OutcomeNoAds)
		return nil, ErrNoAds
	}

	top := scored
	if len(top) > maxSelectionSize {
		top = top[:maxSelectionSize]
	}
	winner := top[0]

	s.cache.Set(query, winner)
	s.cache.MarkAsShown(winner.Title)
	metrics.RecordAdRequest(metrics.OutcomeServed)

	return &models.AdSelection{
		Ad:              winner,
		Recommendations: top[1:],
		TotalAds:        len(scored),
	}, nil
}
