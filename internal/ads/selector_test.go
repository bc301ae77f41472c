package ads

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"chatads/internal/adcache"
	"chatads/internal/models"
)

// fakeSource returns a fixed candidate list and counts calls.
type fakeSource struct {
	ads   []models.AdResult
	err   error
	calls int
}

func (f *fakeSource) Fetch(ctx context.Context, kws []string, publisherKey string) ([]models.AdResult, error) {
	f.calls++
	return f.ads, f.err
}

func newTestSelector(source Source) (*Selector, *adcache.Cache) {
	cache := adcache.New(50, 30*time.Minute, 10)
	return NewSelector(source, cache, NewScorer(0, 0)), cache
}

func TestSelectFreshFetch(t *testing.T) {
	source := &fakeSource{ads: []models.AdResult{
		{Title: "Laptop World", Snippet: "laptop deals", BidValue: 4},
		{Title: "Shoe Palace", Snippet: "running shoes", BidValue: 8},
		{Title: "Coffee Hut", Snippet: "fresh beans", BidValue: 1},
	}}
	sel, _ := newTestSelector(source)

	got, err := sel.Select(context.Background(), "laptop deals", []string{"laptop"})
	if err != nil {
		t.Fatalf("Select returned error: %v", err)
	}
	if got.Ad.Title != "Laptop World" {
		t.Errorf("winner = %q, want Laptop World", got.Ad.Title)
	}
	if len(got.Recommendations) != 2 {
		t.Errorf("recommendations = %d, want 2", len(got.Recommendations))
	}
	if got.TotalAds != 3 {
		t.Errorf("TotalAds = %d, want 3", got.TotalAds)
	}
	if got.Cached {
		t.Error("fresh selection reported as cached")
	}
}

func TestSelectSuppressesRecentlyShownCacheEntry(t *testing.T) {
	source := &fakeSource{ads: []models.AdResult{
		{Title: "Laptop World", Snippet: "laptop deals", BidValue: 4},
	}}
	sel, _ := newTestSelector(source)

	if _, err := sel.Select(context.Background(), "laptop deals", []string{"laptop"}); err != nil {
		t.Fatalf("first Select: %v", err)
	}

	// The winner is now cached AND recently shown, so the cached entry is
	// treated as a miss and a fresh fetch happens.
	if _, err := sel.Select(context.Background(), "laptop deals", []string{"laptop"}); err != nil {
		t.Fatalf("second Select: %v", err)
	}
	if source.calls != 2 {
		t.Errorf("source calls = %d, want 2 (recently shown entry must force a refetch)", source.calls)
	}
}

func TestSelectCacheHitAfterShownWindowRollsOver(t *testing.T) {
	source := &fakeSource{ads: []models.AdResult{
		{Title: "Laptop World", Snippet: "laptop deals", BidValue: 4},
	}}
	sel, cache := newTestSelector(source)

	if _, err := sel.Select(context.Background(), "laptop deals", []string{"laptop"}); err != nil {
		t.Fatalf("first Select: %v", err)
	}

	// Push the winner's title out of the recently-shown window.
	for i := 0; i < 10; i++ {
		cache.MarkAsShown(fmt.Sprintf("other ad %d", i))
	}

	got, err := sel.Select(context.Background(), "laptop deals", []string{"laptop"})
	if err != nil {
		t.Fatalf("second Select: %v", err)
	}
	if source.calls != 1 {
		t.Errorf("source calls = %d, want 1 (cache entry should be reused)", source.calls)
	}
	if !got.Cached {
		t.Error("cache hit not reported as cached")
	}
	if got.Ad.Title != "Laptop World" {
		t.Errorf("cached winner = %q, want Laptop World", got.Ad.Title)
	}
}

func TestSelectNoAds(t *testing.T) {
	source := &fakeSource{}
	sel, _ := newTestSelector(source)

	_, err := sel.Select(context.Background(), "obscure query", []string{"obscure"})
	if !errors.Is(err, ErrNoAds) {
		t.Errorf("Select with empty candidates = %v, want ErrNoAds", err)
	}
}

func TestSelectSourceErrorDegradesToNoAds(t *testing.T) {
	source := &fakeSource{err: errors.New("network down")}
	sel, _ := newTestSelector(source)

	_, err := sel.Select(context.Background(), "laptop", []string{"laptop"})
	if !errors.Is(err, ErrNoAds) {
		t.Errorf("Select with failing source = %v, want ErrNoAds", err)
	}
}

func TestSelectCapsRecommendations(t *testing.T) {
	var many []models.AdResult
	for i := 0; i < 8; i++ {
		many = append(many, models.AdResult{
			Title:    fmt.Sprintf("Laptop Shop %d", i),
			Snippet:  "laptop",
			BidValue: float64(8 - i),
		})
	}
	source := &fakeSource{ads: many}
	sel, _ := newTestSelector(source)

	got, err := sel.Select(context.Background(), "laptop", []string{"laptop"})
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if len(got.Recommendations) != 4 {
		t.Errorf("recommendations = %d, want 4", len(got.Recommendations))
	}
	if got.TotalAds != 8 {
		t.Errorf("TotalAds = %d, want 8", got.TotalAds)
	}
}
