package handlers

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"chatads/internal/analytics"
	"chatads/internal/metrics"
	"chatads/internal/models"
	"chatads/internal/tracking"
)

// TrackHandler records ad clicks and serves the in-memory analytics view.
type TrackHandler struct {
	log    *analytics.ClickLog
	pinger *tracking.Pinger
}

// NewTrackHandler creates a new tracking handler.
func NewTrackHandler(log *analytics.ClickLog, pinger *tracking.Pinger) *TrackHandler {
	return &TrackHandler{log: log, pinger: pinger}
}

// clickRequest is the body of POST /api/track/click.
type clickRequest struct {
	AdID           string  `json:"ad_id"`
	Advertiser     string  `json:"advertiser"`
	Link           string  `json:"link"`
	BidValue       float64 `json:"bid_value"`
	RelevanceScore float64 `json:"relevance_score"`
	ClickURL       string  `json:"click_url"`
}

// Click handles POST /api/track/click.
func (h *TrackHandler) Click(c fiber.Ctx) error {
	var req clickRequest
	if err := c.Bind().Body(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if req.Link == "" || req.Advertiser == "" {
		return jsonError(c, fiber.StatusBadRequest, "link and advertiser are required")
	}

	h.log.Record(models.ClickEvent{
		ID:             uuid.New(),
		AdID:           req.AdID,
		Advertiser:     req.Advertiser,
		Link:           req.Link,
		BidValue:       req.BidValue,
		RelevanceScore: req.RelevanceScore,
		SessionID:      sessionID(c),
		Timestamp:      time.Now().UTC(),
	})

	metrics.RecordClick(req.Advertiser)

	// Relay the click to the ad network, best effort.
	h.pinger.Ping(req.ClickURL)

	return c.JSON(fiber.Map{
		"status":  "success",
		"message": "Click tracked successfully",
	})
}

// Analytics handles GET /api/track/click.
func (h *TrackHandler) Analytics(c fiber.Ctx) error {
	return jsonSuccess(c, h.log.Summary())
}
