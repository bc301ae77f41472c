package server

import (
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"chatads/internal/adcache"
	"chatads/internal/ads"
	"chatads/internal/adsource"
	"chatads/internal/analytics"
	"chatads/internal/config"
	"chatads/internal/handlers"
	"chatads/internal/keywords"
	"chatads/internal/llm"
	"chatads/internal/tracking"
)

// Deps are the long-lived collaborators behind the HTTP handlers. Built
// once at startup and injected; nothing here is a package-level singleton.
type Deps struct {
	Extractor *keywords.Extractor
	Scorer    *ads.Scorer
	Gate      *ads.Gate
	Cache     *adcache.Cache
	Source    *adsource.Client
	LLM       *llm.Client
	Clicks    *analytics.ClickLog
	Pinger    *tracking.Pinger
}

// NewDeps wires the default dependency graph from configuration.
func NewDeps(cfg *config.Config, targeting *config.TargetingConfig) *Deps {
	extractor := keywords.New(
		keywords.WithStopWords(targeting.StopWords()),
		keywords.WithCommercialTerms(targeting.CommercialTerms()),
		keywords.WithProductCategories(targeting.Categories()),
	)
	relevanceWeight, bidWeight := targeting.Weights()

	return &Deps{
		Extractor: extractor,
		Scorer:    ads.NewScorer(relevanceWeight, bidWeight),
		Gate:      ads.NewGate(cfg.AdFrequency, cfg.IntentThreshold),
		Cache:     adcache.New(cfg.CacheMaxEntries, cfg.CacheTTL, cfg.ShownWindow),
		Source:    adsource.New(cfg.AdNetworkURL, cfg.PublisherKey),
		LLM:       llm.NewClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel),
		Clicks:    analytics.NewClickLog(cfg.ClickLogSize),
		Pinger:    tracking.NewPinger(),
	}
}

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(deps *Deps) {
	selector := ads.NewSelector(deps.Source, deps.Cache, deps.Scorer)

	chatHandler := handlers.NewChatHandler(deps.LLM, deps.Extractor, deps.Gate, selector, deps.Pinger, s.Cfg)
	adsHandler := handlers.NewAdsHandler(selector, deps.Source, deps.Scorer, deps.Pinger, s.Cfg)
	trackHandler := handlers.NewTrackHandler(deps.Clicks, deps.Pinger)
	pageHandler := handlers.NewPageHandler(s.Cfg)

	// Chat page
	s.App.Get("/", pageHandler.Index)

	// Chat API
	s.App.Post("/api/chat", chatHandler.Chat)

	// Ads API - POST is the chat-side path, GET the publisher-side path
	s.App.Post("/api/ads", adsHandler.Select)
	s.App.Get("/api/ads", adsHandler.Lookup)

	// Click tracking and analytics
	s.App.Post("/api/track/click", trackHandler.Click)
	s.App.Get("/api/track/click", trackHandler.Analytics)

	// Operational endpoints
	s.App.Get("/healthz", handlers.Healthz)
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}
