package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// TargetingConfig represents the structure of the targeting.yaml file.
// Lexicon tuning is easier to manage in YAML than env vars: publishers add
// domain-specific stop words and commercial terms without a rebuild.
type TargetingConfig struct {
	// ExtraStopWords are added on top of the built-in stop-word lexicon.
	ExtraStopWords []string `yaml:"extra_stop_words"`

	// ExtraCommercialTerms are added to the commercial-intent lexicon.
	ExtraCommercialTerms []string `yaml:"extra_commercial_terms"`

	// ProductCategories replaces the built-in product-category pattern
	// when non-empty.
	ProductCategories []string `yaml:"product_categories"`

	Scoring ScoringConfig `yaml:"scoring"`
}

// ScoringConfig tunes the relevance/bid blend used for ranking.
type ScoringConfig struct {
	RelevanceWeight float64 `yaml:"relevance_weight"`
	BidWeight       float64 `yaml:"bid_weight"`
}

// LoadTargeting loads the YAML targeting file. Path is determined by the
// TARGETING_FILE env var, defaulting to "targeting.yaml". Returns nil
// without error if the file doesn't exist; the built-in lexicons apply.
func LoadTargeting() (*TargetingConfig, error) {
	path := getEnv("TARGETING_FILE", "targeting.yaml")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Targeting file is optional
			return nil, nil
		}
		return nil, err
	}

	var cfg TargetingConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Weights returns the configured scoring weights; zero values mean
// "use the defaults". Safe on a nil receiver.
func (c *TargetingConfig) Weights() (relevance, bid float64) {
	if c == nil {
		return 0, 0
	}
	return c.Scoring.RelevanceWeight, c.Scoring.BidWeight
}

// StopWords returns extra stop words. Safe on a nil receiver.
func (c *TargetingConfig) StopWords() []string {
	if c == nil {
		return nil
	}
	return c.ExtraStopWords
}

// CommercialTerms returns extra commercial terms. Safe on a nil receiver.
func (c *TargetingConfig) CommercialTerms() []string {
	if c == nil {
		return nil
	}
	return c.ExtraCommercialTerms
}

// Categories returns replacement product categories. Safe on a nil receiver.
func (c *TargetingConfig) Categories() []string {
	if c == nil {
		return nil
	}
	return c.ProductCategories
}
