package ads

import "sync/atomic"

const (
	// DefaultAdFrequency shows an ad every Nth chat turn.
	DefaultAdFrequency = 3

	// DefaultIntentThreshold lets high commercial intent override the
	// cadence so purchase-ready moments are not throttled.
	DefaultIntentThreshold = 0.3
)

// Gate decides, per chat turn, whether an ad should be fetched at all.
// It holds the process-lifetime turn counter; construct one instance at
// startup and inject it rather than sharing a package-level singleton.
type Gate struct {
	count     atomic.Int64
	frequency int64
	threshold float64
}

// NewGate creates a Gate. Non-positive frequency and threshold fall back
// to the defaults.
func NewGate(frequency int, threshold float64) *Gate {
	if frequency <= 0 {
		frequency = DefaultAdFrequency
	}
	if threshold <= 0 {
		threshold = DefaultIntentThreshold
	}
	return &Gate{frequency: int64(frequency), threshold: threshold}
}

// ShouldShow increments the turn counter and reports whether this turn
// qualifies for an ad: every Nth turn, or any turn whose commercial intent
// exceeds the threshold. Callers still skip when the conversation yields no
// keywords, since there is nothing to target.
func (g *Gate) ShouldShow(commercialIntent float64) bool {
	n := g.count.Add(1)
	return n%g.frequency == 0 || commercialIntent > g.threshold
}

// Turns returns the number of chat turns seen so far.
func (g *Gate) Turns() int64 {
	return g.count.Load()
}
