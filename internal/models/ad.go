package models

// AdResult is a candidate ad as returned by the ad network. The pipeline
// never mutates the source fields, it only attaches derived scores.
type AdResult struct {
	Title         string  `json:"title"`
	Link          string  `json:"link"`
	Snippet       string  `json:"snippet"`
	Thumbnail     string  `json:"thumbnail,omitempty"`
	Source        string  `json:"source,omitempty"`
	BidValue      float64 `json:"bid_value"`
	AdCreativeID  string  `json:"ad_creative_id,omitempty"`
	ImpressionURL string  `json:"impression_url,omitempty"`
	ClickURL      string  `json:"click_url,omitempty"`
}

// ScoredAd is a candidate ad plus the scores computed during ranking.
// Scores are recomputed on every scoring call and never treated as
// authoritative state.
type ScoredAd struct {
	AdResult
	RelevanceScore   float64 `json:"relevance_score"`
	CombinedScore    float64 `json:"combined_score"`
	MatchingKeywords int     `json:"matching_keywords"`
}

// AdSelection is a ranked outcome: the winning ad plus up to four
// recommendations. Callers treat the winner as the ad to surface.
type AdSelection struct {
	Ad              ScoredAd   `json:"ad"`
	Recommendations []ScoredAd `json:"recommendations,omitempty"`
	TotalAds        int        `json:"total_ads"`
	Cached          bool       `json:"cached,omitempty"`
}
