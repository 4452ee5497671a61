package domain

import (
	"context"
	"encoding/json"
	"errors"
	"log"
)

// ErrAINotConfigured signals that the text-generation enrichment is disabled
// or missing a credential. Callers degrade to canned output.
var ErrAINotConfigured = errors.New("ai enrichment is not configured")

// AISettings controls the optional text-generation enrichment. The engine
// works fully without it; everything here is best-effort.
type AISettings struct {
	APIKey           string `json:"api_key"`
	Enabled          bool   `json:"enabled"`
	PersonalizedTips bool   `json:"personalized_tips"`
}

// DefaultAISettings returns the cold-start enrichment configuration:
// disabled, no credential, personalized tips allowed once enabled.
func DefaultAISettings() AISettings {
	return AISettings{
		PersonalizedTips: true,
	}
}

// LoadAISettings reads the enrichment settings from the blob store. Missing
// or corrupt settings degrade to the defaults; read errors are only logged.
func LoadAISettings(ctx context.Context, store BlobStore) AISettings {
	raw, err := store.Get(ctx, BlobKeyAISettings)
	if err != nil {
		if !errors.Is(err, ErrBlobNotFound) {
			log.Printf("[STORE] Failed to load AI settings: %v", err)
		}
		return DefaultAISettings()
	}

	var settings AISettings
	if err := json.Unmarshal(raw, &settings); err != nil {
		log.Printf("[STORE] Corrupt AI settings, using defaults: %v", err)
		return DefaultAISettings()
	}
	return settings
}

// FootprintSnapshot is the emission context attached to a personalized
// recommendation when it was generated.
type FootprintSnapshot struct {
	Total           float64            `json:"total"`
	HighestCategory string             `json:"highest_category"`
	Breakdown       map[string]float64 `json:"breakdown"`
}

// AIRecommendation is a cached text-generation result for one day's
// footprint. It only ever augments the canned suggestion, never replaces it.
type AIRecommendation struct {
	ID             string            `json:"id"`
	Content        string            `json:"content"`
	Category       string            `json:"category"`
	Date           string            `json:"date"`
	Timestamp      string            `json:"timestamp"`
	IsPersonalized bool              `json:"is_personalized"`
	Footprint      FootprintSnapshot `json:"footprint"`
}
