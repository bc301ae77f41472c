package jobs

import (
	"context"
	"log"
	"time"

	"chatads/internal/adcache"
)

// Sweeper periodically purges expired entries from the ad cache so memory
// stays bounded even when query traffic is too low to trigger lazy expiry.
type Sweeper struct {
	cache    *adcache.Cache
	interval time.Duration
}

// NewSweeper creates a new cache sweeper.
func NewSweeper(cache *adcache.Cache, interval time.Duration) *Sweeper {
	return &Sweeper{cache: cache, interval: interval}
}

// Start begins the sweep loop and blocks until ctx is cancelled.
func (s *Sweeper) Start(ctx context.Context) {
	log.Printf("Ad cache sweeper started (interval: %v)", s.interval)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Ad cache sweeper stopped")
			return
		case <-ticker.C:
			if removed := s.cache.Cleanup(); removed > 0 {
				log.Printf("Ad cache sweep removed %d expired entries", removed)
			}
		}
	}
}
