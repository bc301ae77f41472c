package ads

import (
	"math"
	"reflect"
	"testing"

	"chatads/internal/models"
)

func sampleAds() []models.AdResult {
	return []models.AdResult{
		{Title: "Gaming Laptop Sale", Snippet: "Best price on gaming laptops", Source: "TechStore", BidValue: 5},
		{Title: "Trail Running Shoes", Snippet: "Lightweight shoes for every trail", Source: "RunFast", BidValue: 2.5},
		{Title: "Premium Coffee Beans", Snippet: "Single origin, freshly roasted", Source: "BeanCo", BidValue: 9},
	}
}

func TestScoreOrderingAndBounds(t *testing.T) {
	s := NewScorer(0, 0)
	kws := []string{"laptop", "gaming", "price"}

	scored := s.Score(sampleAds(), kws)

	if len(scored) != 3 {
		t.Fatalf("Score returned %d ads, want 3", len(scored))
	}
	for i, ad := range scored {
		if ad.RelevanceScore < 0 || ad.RelevanceScore > 1 {
			t.Errorf("ad %d relevance %v out of [0,1]", i, ad.RelevanceScore)
		}
		if ad.CombinedScore < 0 || ad.CombinedScore > 1 {
			t.Errorf("ad %d combined %v out of [0,1]", i, ad.CombinedScore)
		}
		if i > 0 && scored[i-1].CombinedScore < ad.CombinedScore {
			t.Errorf("output not sorted descending at %d: %v < %v", i, scored[i-1].CombinedScore, ad.CombinedScore)
		}
	}

	// All three keywords appear in the first ad's text: relevance 1.0,
	// combined 0.7*1.0 + 0.3*0.5 = 0.85.
	winner := scored[0]
	if winner.Title != "Gaming Laptop Sale" {
		t.Fatalf("winner = %q, want Gaming Laptop Sale", winner.Title)
	}
	if winner.MatchingKeywords != 3 {
		t.Errorf("winner matches = %d, want 3", winner.MatchingKeywords)
	}
	if math.Abs(winner.RelevanceScore-1.0) > 1e-9 {
		t.Errorf("winner relevance = %v, want 1.0", winner.RelevanceScore)
	}
	if math.Abs(winner.CombinedScore-0.85) > 1e-9 {
		t.Errorf("winner combined = %v, want 0.85", winner.CombinedScore)
	}
}

func TestScoreEmptyKeywordsFallback(t *testing.T) {
	s := NewScorer(0, 0)

	got := s.Score(sampleAds(), nil)
	want := s.Score(sampleAds(), []string{"general"})

	if !reflect.DeepEqual(got, want) {
		t.Errorf("Score with no keywords differs from the fallback keyword:\n got %v\nwant %v", got, want)
	}
}

func TestScoreEmptyCandidates(t *testing.T) {
	s := NewScorer(0, 0)
	if got := s.Score(nil, []string{"laptop"}); len(got) != 0 {
		t.Errorf("Score(nil, ...) = %v, want empty", got)
	}
}

func TestScoreRounding(t *testing.T) {
	s := NewScorer(0, 0)
	ads := []models.AdResult{
		{Title: "Laptop Deals", Snippet: "", Source: "", BidValue: 0},
	}
	// One of three keywords matches: 1/3 rounds to 0.333.
	scored := s.Score(ads, []string{"laptop", "camera", "bicycle"})
	if scored[0].RelevanceScore != 0.333 {
		t.Errorf("relevance = %v, want 0.333", scored[0].RelevanceScore)
	}
	if scored[0].CombinedScore != 0.233 {
		t.Errorf("combined = %v, want 0.233", scored[0].CombinedScore)
	}
}

func TestScoreBidSaturation(t *testing.T) {
	s := NewScorer(0, 0)
	ads := []models.AdResult{
		{Title: "Nothing Relevant", BidValue: 25},
	}
	scored := s.Score(ads, []string{"laptop"})
	// Relevance 0; bid saturates at 1.0, contributing exactly the bid weight.
	if math.Abs(scored[0].CombinedScore-0.3) > 1e-9 {
		t.Errorf("combined = %v, want 0.3", scored[0].CombinedScore)
	}
}

func TestScoreStableTies(t *testing.T) {
	s := NewScorer(0, 0)
	ads := []models.AdResult{
		{Title: "laptop alpha", BidValue: 1},
		{Title: "laptop beta", BidValue: 1},
		{Title: "laptop gamma", BidValue: 1},
	}
	scored := s.Score(ads, []string{"laptop"})
	want := []string{"laptop alpha", "laptop beta", "laptop gamma"}
	for i, ad := range scored {
		if ad.Title != want[i] {
			t.Errorf("tie order broken at %d: got %q, want %q", i, ad.Title, want[i])
		}
	}
}

func TestScoreIdempotent(t *testing.T) {
	s := NewScorer(0, 0)
	kws := []string{"laptop", "shoes"}
	candidates := sampleAds()

	first := s.Score(candidates, kws)
	second := s.Score(candidates, kws)
	if !reflect.DeepEqual(first, second) {
		t.Error("Score is not deterministic for identical inputs")
	}

	// Inputs must not be mutated.
	if !reflect.DeepEqual(candidates, sampleAds()) {
		t.Error("Score mutated its input slice")
	}
}

func TestScoreKeywordDeduplication(t *testing.T) {
	s := NewScorer(0, 0)
	ads := []models.AdResult{{Title: "Laptop Store", BidValue: 0}}

	// Duplicate keywords must not inflate the denominator or the matches.
	got := s.Score(ads, []string{"laptop", "Laptop", "LAPTOP"})
	if got[0].RelevanceScore != 1.0 {
		t.Errorf("relevance with duplicate keywords = %v, want 1.0", got[0].RelevanceScore)
	}
	if got[0].MatchingKeywords != 1 {
		t.Errorf("matches = %d, want 1", got[0].MatchingKeywords)
	}
}
