package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"

	"chatads/internal/analytics"
	"chatads/internal/models"
	"chatads/internal/tracking"
)

func newTrackApp(log *analytics.ClickLog) *fiber.App {
	h := NewTrackHandler(log, tracking.NewPinger())

	app := fiber.New()
	app.Post("/api/track/click", h.Click)
	app.Get("/api/track/click", h.Analytics)
	return app
}

func TestTrackClick(t *testing.T) {
	log := analytics.NewClickLog(0)
	app := newTrackApp(log)

	body := `{"ad_id":"ad-1","advertiser":"Laptop World","link":"https://laptop.example.com","bid_value":3.5,"relevance_score":0.8}`
	req := httptest.NewRequest("POST", "/api/track/click", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	s := log.Summary()
	if s.TotalClicks != 1 {
		t.Fatalf("TotalClicks = %d, want 1", s.TotalClicks)
	}
	ev := s.RecentClicks[0]
	if ev.Advertiser != "Laptop World" || ev.Link != "https://laptop.example.com" {
		t.Errorf("recorded event wrong: %+v", ev)
	}
	if ev.BidValue != 3.5 || ev.RelevanceScore != 0.8 || ev.AdID != "ad-1" {
		t.Errorf("recorded scores wrong: %+v", ev)
	}
	if ev.Timestamp.IsZero() {
		t.Error("event timestamp not set")
	}
}

func TestTrackClickMissingFields(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing link", `{"advertiser":"Laptop World"}`},
		{"missing advertiser", `{"link":"https://laptop.example.com"}`},
		{"empty body", `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := analytics.NewClickLog(0)
			app := newTrackApp(log)

			req := httptest.NewRequest("POST", "/api/track/click", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("request failed: %v", err)
			}
			if resp.StatusCode != fiber.StatusBadRequest {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
			if log.Summary().TotalClicks != 0 {
				t.Error("invalid click was recorded")
			}
		})
	}
}

func TestTrackAnalytics(t *testing.T) {
	log := analytics.NewClickLog(0)
	log.Record(models.ClickEvent{Advertiser: "Laptop World", Link: "https://laptop.example.com"})
	log.Record(models.ClickEvent{Advertiser: "Laptop World", Link: "https://laptop.example.com"})
	app := newTrackApp(log)

	req := httptest.NewRequest("GET", "/api/track/click", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var env struct {
		Status string              `json:"status"`
		Data   models.ClickSummary `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if env.Data.TotalClicks != 2 {
		t.Errorf("TotalClicks = %d, want 2", env.Data.TotalClicks)
	}
	if env.Data.ClicksByAdvertiser["Laptop World"] != 2 {
		t.Errorf("ClicksByAdvertiser = %v", env.Data.ClicksByAdvertiser)
	}
}
