package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"chatads/internal/ads"
	"chatads/internal/config"
	"chatads/internal/keywords"
	"chatads/internal/llm"
	"chatads/internal/metrics"
	"chatads/internal/models"
	"chatads/internal/tracking"
)

// fallbackReply is used when the provider returns an empty completion.
const fallbackReply = "I apologize, but I could not generate a response."

// ChatHandler handles chat turns: it gets the assistant reply from the LLM
// and runs the ad pipeline to decide whether an ad rides along.
type ChatHandler struct {
	llm       *llm.Client
	extractor *keywords.Extractor
	gate      *ads.Gate
	selector  *ads.Selector
	pinger    *tracking.Pinger
	cfg       *config.Config
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(client *llm.Client, extractor *keywords.Extractor, gate *ads.Gate, selector *ads.Selector, pinger *tracking.Pinger, cfg *config.Config) *ChatHandler {
	return &ChatHandler{
		llm:       client,
		extractor: extractor,
		gate:      gate,
		selector:  selector,
		pinger:    pinger,
		cfg:       cfg,
	}
}

// Chat handles POST /api/chat.
func (h *ChatHandler) Chat(c fiber.Ctx) error {
	var req models.ChatRequest
	if err := c.Bind().Body(&req); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if req.CurrentMessage == "" {
		return jsonError(c, fiber.StatusBadRequest, "message is required")
	}
	if h.cfg.LLMAPIKey == "" {
		return jsonError(c, fiber.StatusInternalServerError, "LLM API key not configured")
	}

	reply, err := h.llm.ChatCompletion(c.Context(), req.Messages)
	if err != nil {
		if errors.Is(err, llm.ErrInvalidAPIKey) {
			return jsonError(c, fiber.StatusUnauthorized, "invalid LLM API key")
		}
		slog.Error("chat completion failed", "error", err)
		return jsonError(c, fiber.StatusInternalServerError, "failed to generate a response")
	}
	if reply == "" {
		reply = fallbackReply
	}

	metrics.RecordChatTurn()

	resp := models.ChatResponse{Response: reply}
	if sel := h.maybeSelectAd(c, &req); sel != nil {
		resp.Ad = sel
	}

	return c.JSON(resp)
}

// maybeSelectAd runs the display gate and, when the turn qualifies, the
// selection pipeline. Ad failures never fail the chat turn.
func (h *ChatHandler) maybeSelectAd(c fiber.Ctx, req *models.ChatRequest) *models.AdSelection {
	convoKeywords := h.extractor.FromConversation(req.Messages, keywords.DefaultMaxTurns)
	intent := h.extractor.CommercialIntent(req.CurrentMessage)

	if !h.gate.ShouldShow(intent) {
		return nil
	}
	if len(convoKeywords) == 0 {
		// Gated to show, but nothing to target.
		metrics.RecordAdRequest(metrics.OutcomeSkipped)
		return nil
	}

	query := h.extractor.BuildQuery(req.CurrentMessage, convoKeywords)

	sel, err := h.selector.Select(c.Context(), query, convoKeywords)
	if err != nil {
		if !errors.Is(err, ads.ErrNoAds) {
			slog.Error("ad selection failed", "query", query, "error", err)
		}
		return nil
	}

	h.pinger.Ping(sel.Ad.ImpressionURL)
	metrics.RecordImpression(sel.Ad.Title)
	return sel
}
