package handlers

import (
	"github.com/gofiber/fiber/v3"

	"chatads/internal/config"
)

// PageHandler renders the HTML chat page. Thin glue; all decision logic
// lives behind the JSON API.
type PageHandler struct {
	cfg *config.Config
}

// NewPageHandler creates a new page handler.
func NewPageHandler(cfg *config.Config) *PageHandler {
	return &PageHandler{cfg: cfg}
}

// Index renders the chat page.
func (h *PageHandler) Index(c fiber.Ctx) error {
	return c.Render("chat", fiber.Map{
		"Title":     h.cfg.SiteTitle,
		"SiteTitle": h.cfg.SiteTitle,
	})
}
