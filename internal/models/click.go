package models

import (
	"time"

	"github.com/google/uuid"
)

// ClickEvent records a single ad click for in-memory analytics.
// Events live only for the process lifetime.
type ClickEvent struct {
	ID             uuid.UUID `json:"id"`
	AdID           string    `json:"ad_id,omitempty"`
	Advertiser     string    `json:"advertiser"`
	Link           string    `json:"link"`
	BidValue       float64   `json:"bid_value,omitempty"`
	RelevanceScore float64   `json:"relevance_score,omitempty"`
	SessionID      string    `json:"session_id,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}

// ClickSummary is the aggregate view returned by the analytics endpoint.
type ClickSummary struct {
	TotalClicks        int            `json:"total_clicks"`
	ClicksByAdvertiser map[string]int `json:"clicks_by_advertiser"`
	RecentClicks       []ClickEvent   `json:"recent_clicks"`
}
