// Package ads ranks candidate ads against conversation keywords and decides
// when an ad should be surfaced.
package ads

import (
	"math"
	"sort"
	"strings"

	"chatads/internal/models"
)

const (
	// DefaultRelevanceWeight and DefaultBidWeight blend topical relevance
	// with bid size. The 70/30 split favors relevance while letting bid
	// value break near-ties.
	DefaultRelevanceWeight = 0.7
	DefaultBidWeight       = 0.3

	// maxBidValue is the top of the assumed $0-$10 bid scale; bids above
	// it saturate at a normalized score of 1.0.
	maxBidValue = 10.0

	// fallbackKeyword stands in when no keywords are available, so
	// relevance is always computable.
	fallbackKeyword = "general"
)

// Scorer computes relevance and combined scores for candidate ads.
type Scorer struct {
	relevanceWeight float64
	bidWeight       float64
}

// NewScorer creates a Scorer with the given blend weights. Non-positive
// weights fall back to the 70/30 defaults.
func NewScorer(relevanceWeight, bidWeight float64) *Scorer {
	if relevanceWeight <= 0 || bidWeight <= 0 {
		relevanceWeight = DefaultRelevanceWeight
		bidWeight = DefaultBidWeight
	}
	return &Scorer{relevanceWeight: relevanceWeight, bidWeight: bidWeight}
}

// Score attaches relevance and combined scores to every candidate and
// returns them sorted by combined score, highest first. Ties keep their
// input order. Pure: inputs are never mutated, identical inputs yield
// identical output, and an empty candidate list yields an empty result.
func (s *Scorer) Score(candidates []models.AdResult, kws []string) []models.ScoredAd {
	unique := dedupeLower(kws)
	if len(unique) == 0 {
		unique = []string{fallbackKeyword}
	}

	scored := make([]models.ScoredAd, 0, len(candidates))
	for _, ad := range candidates {
		text := strings.ToLower(ad.Title + " " + ad.Snippet + " " + ad.Source)

		matches := 0
		for _, kw := range unique {
			if strings.Contains(text, kw) {
				matches++
			}
		}

		relevance := float64(matches) / float64(len(unique))

		bidNorm := ad.BidValue / maxBidValue
		if bidNorm > 1.0 {
			bidNorm = 1.0
		}
		if bidNorm < 0 {
			bidNorm = 0
		}

		scored = append(scored, models.ScoredAd{
			AdResult:         ad,
			RelevanceScore:   round3(relevance),
			CombinedScore:    round3(s.relevanceWeight*relevance + s.bidWeight*bidNorm),
			MatchingKeywords: matches,
		})
	}

	sort.SliceStable(scored, func(a, b int) bool {
		return scored[a].CombinedScore > scored[b].CombinedScore
	})

	return scored
}

// dedupeLower lowercases keywords and collapses duplicates, preserving
// first-occurrence order.
func dedupeLower(kws []string) []string {
	seen := make(map[string]struct{}, len(kws))
	var out []string
	for _, kw := range kws {
		kw = strings.ToLower(kw)
		if kw == "" {
			continue
		}
		if _, ok := seen[kw]; ok {
			continue
		}
		seen[kw] = struct{}{}
		out = append(out, kw)
	}
	return out
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
