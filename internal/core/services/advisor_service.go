package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/carbontrackr/engine/internal/core/domain"
)

// TextGenerator mirrors the enrichment port used by the background worker;
// the same adapter satisfies both.
type TextGenerator interface {
	Complete(ctx context.Context, apiKey, systemPrompt, userPrompt string, maxTokens int) (string, error)
}

const coachSystemPrompt = "You are an expert environmental coach specializing in carbon footprint reduction. Provide practical, actionable advice that people can implement immediately. Be encouraging and specific."

// AdvisorService serves the deterministic suggestion path and fronts the
// optional enrichment surface: AI settings, the cached personalized
// recommendation, and direct coach questions.
type AdvisorService struct {
	store     domain.BlobStore
	generator TextGenerator
	now       func() time.Time
}

func NewAdvisorService(store domain.BlobStore, generator TextGenerator) *AdvisorService {
	return &AdvisorService{
		store:     store,
		generator: generator,
		now:       time.Now,
	}
}

// Suggest picks the canned suggestion for the highest-impact category. It
// never blocks and never fails.
func (s *AdvisorService) Suggest(results []domain.EmissionResult) domain.Suggestion {
	return domain.SuggestionFor(results)
}

// Settings returns the stored enrichment settings or the defaults.
func (s *AdvisorService) Settings(ctx context.Context) domain.AISettings {
	return domain.LoadAISettings(ctx, s.store)
}

// SaveSettings persists updated enrichment settings. An empty API key keeps
// the previously stored credential, so clients can toggle flags without
// resending the secret.
func (s *AdvisorService) SaveSettings(ctx context.Context, updated domain.AISettings) (domain.AISettings, error) {
	if updated.APIKey == "" {
		updated.APIKey = s.Settings(ctx).APIKey
	}
	updated.APIKey = strings.TrimSpace(updated.APIKey)

	data, err := json.Marshal(updated)
	if err == nil {
		err = s.store.Set(ctx, domain.BlobKeyAISettings, data)
	}
	if err != nil {
		return domain.AISettings{}, err
	}
	return updated, nil
}

// LatestRecommendation returns the cached personalized recommendation, or
// nil when none has been generated yet.
func (s *AdvisorService) LatestRecommendation(ctx context.Context) *domain.AIRecommendation {
	raw, err := s.store.Get(ctx, domain.BlobKeyRecommendation)
	if err != nil {
		if !errors.Is(err, domain.ErrBlobNotFound) {
			log.Printf("[STORE] Failed to load recommendation: %v", err)
		}
		return nil
	}

	var recommendation domain.AIRecommendation
	if err := json.Unmarshal(raw, &recommendation); err != nil {
		log.Printf("[STORE] Corrupt cached recommendation, discarding: %v", err)
		if err := s.store.Delete(ctx, domain.BlobKeyRecommendation); err != nil {
			log.Printf("[STORE] Failed to drop corrupt recommendation: %v", err)
		}
		return nil
	}
	return &recommendation
}

// AskCoach forwards a free-form question to the text-generation provider.
// Unlike the calculation path this is a direct, synchronous call: the caller
// explicitly asked for AI output, so provider errors surface as a degraded
// "unavailable" answer rather than a canned fallback.
func (s *AdvisorService) AskCoach(ctx context.Context, question string) (string, error) {
	settings := s.Settings(ctx)
	if !settings.Enabled || settings.APIKey == "" {
		return "", domain.ErrAINotConfigured
	}

	answer, err := s.generator.Complete(ctx, settings.APIKey, coachSystemPrompt, question, 150)
	if err != nil {
		return "", err
	}

	answer = strings.TrimSpace(answer)
	if answer == "" {
		return "", domain.ErrAINotConfigured
	}
	return answer, nil
}
