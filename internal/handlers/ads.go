package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v3"

	"chatads/internal/ads"
	"chatads/internal/config"
	"chatads/internal/metrics"
	"chatads/internal/models"
	"chatads/internal/tracking"
	"chatads/internal/validation"
)

// AdsHandler serves ad selections: the cached/gated pipeline for the chat
// client and a direct lookup for external publishers.
type AdsHandler struct {
	selector *ads.Selector
	source   ads.Source
	scorer   *ads.Scorer
	pinger   *tracking.Pinger
	cfg      *config.Config
}

// NewAdsHandler creates a new ads handler.
func NewAdsHandler(selector *ads.Selector, source ads.Source, scorer *ads.Scorer, pinger *tracking.Pinger, cfg *config.Config) *AdsHandler {
	return &AdsHandler{
		selector: selector,
		source:   source,
		scorer:   scorer,
		pinger:   pinger,
		cfg:      cfg,
	}
}

// adsRequest is the body of POST /api/ads.
type adsRequest struct {
	Query    string   `json:"query"`
	Keywords []string `json:"keywords"`
}

// Select handles POST /api/ads: the chat-side path through cache and
// scoring. Keywords default to the significant tokens of the query.
func (h *AdsHandler) Select(c fiber.Ctx) error {
	var req adsRequest
	if err := c.Bind().Body(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if req.Query == "" {
		return jsonError(c, fiber.StatusBadRequest, "query is required")
	}

	kws := req.Keywords
	if len(kws) == 0 {
		kws = significantTokens(req.Query)
	}

	sel, err := h.selector.Select(c.Context(), req.Query, kws)
	if err != nil {
		if errors.Is(err, ads.ErrNoAds) {
			return jsonError(c, fiber.StatusNotFound, "no ads found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch ads")
	}

	h.pinger.Ping(sel.Ad.ImpressionURL)
	metrics.RecordImpression(sel.Ad.Title)

	return jsonSuccess(c, sel)
}

// Lookup handles GET /api/ads: the publisher-facing path. It bypasses the
// cache and the display gate; each call fetches and ranks fresh candidates.
func (h *AdsHandler) Lookup(c fiber.Ctx) error {
	context := c.Query("context")
	if context == "" {
		return jsonError(c, fiber.StatusBadRequest, "context is required")
	}

	publisherKey := c.Query("publisher_key")
	if publisherKey != "" && !validation.ValidatePublisherKey(publisherKey) {
		return jsonError(c, fiber.StatusBadRequest, "invalid publisher key")
	}

	kws := significantTokens(context)

	candidates, err := h.source.Fetch(c.Context(), kws, publisherKey)
	if err != nil {
		metrics.RecordAdSourceError()
		return jsonError(c, fiber.StatusBadGateway, "ad network unavailable")
	}

	scored := h.scorer.Score(candidates, kws)
	if len(scored) == 0 {
		metrics.RecordAdRequest(metrics.OutcomeNoAds)
		return jsonError(c, fiber.StatusNotFound, "no ads found")
	}

	top := scored
	if len(top) > 5 {
		top = top[:5]
	}
	winner := top[0]

	metrics.RecordAdRequest(metrics.OutcomeServed)
	metrics.RecordImpression(winner.Title)
	h.pinger.Ping(winner.ImpressionURL)

	return jsonSuccess(c, models.AdSelection{
		Ad:              winner,
		Recommendations: top[1:],
		TotalAds:        len(scored),
	})
}

// significantTokens lowercases text and keeps whitespace-separated tokens
// longer than two characters. Used when a caller supplies raw context
// instead of extracted keywords.
func significantTokens(text string) []string {
	var out []string
	for _, w := range strings.Fields(strings.ToLower(text)) {
		if len(w) > 2 {
			out = append(out, w)
		}
	}
	return out
}
