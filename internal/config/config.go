package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Server
	ServerAddr string
	BaseURL    string

	// CORS
	CORSOrigins string // Comma-separated allowed origins

	// LLM provider (OpenAI-compatible)
	LLMBaseURL string
	LLMAPIKey  string
	LLMModel   string

	// Ad network
	AdNetworkURL string
	PublisherKey string

	// Ad display gating
	AdFrequency     int     // show an ad every Nth chat turn
	IntentThreshold float64 // commercial intent override

	// Ad cache
	CacheMaxEntries int
	CacheTTL        time.Duration
	ShownWindow     int
	SweepInterval   time.Duration

	// Analytics
	ClickLogSize int

	// Site branding
	SiteTitle string // env: SITE_TITLE, default: "ChatAds"
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Env:         getEnv("ENV", "development"),
		ServerAddr:  getEnv("SERVER_ADDR", ":3000"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:3000"),
		CORSOrigins: getEnv("CORS_ORIGINS", ""),

		LLMBaseURL: getEnv("LLM_BASE_URL", "https://api.openai.com"),
		LLMAPIKey:  getEnv("OPENAI_API_KEY", ""),
		LLMModel:   getEnv("LLM_MODEL", "gpt-3.5-turbo"),

		AdNetworkURL: getEnv("AD_NETWORK_URL", "https://vivos-ad-network.vercel.app/api/ads"),
		PublisherKey: getEnv("VIVOS_PUBLISHER_KEY", ""),

		AdFrequency:     getEnvInt("AD_FREQUENCY", 3),
		IntentThreshold: getEnvFloat("INTENT_THRESHOLD", 0.3),

		CacheMaxEntries: getEnvInt("AD_CACHE_MAX_ENTRIES", 50),
		CacheTTL:        getEnvDuration("AD_CACHE_TTL", 30*time.Minute),
		ShownWindow:     getEnvInt("AD_SHOWN_WINDOW", 10),
		SweepInterval:   getEnvDuration("AD_CACHE_SWEEP_INTERVAL", 10*time.Minute),

		ClickLogSize: getEnvInt("CLICK_LOG_SIZE", 1000),

		SiteTitle: getEnv("SITE_TITLE", "ChatAds"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}
