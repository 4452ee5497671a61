package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/carbontrackr/engine/internal/core/domain"
)

// TextGenerator produces a short completion for a prompt pair under a
// bounded token budget. Implementations are network-dependent and treated as
// unreliable: any error simply means no enrichment this time.
type TextGenerator interface {
	Complete(ctx context.Context, apiKey, systemPrompt, userPrompt string, maxTokens int) (string, error)
}

// minUsefulCompletionLen discards degenerate completions ("Ok.", emoji-only
// fragments) instead of caching them.
const minUsefulCompletionLen = 10

const generationTimeout = 20 * time.Second

const (
	tipSystemPrompt = "You are an environmental expert. Enhance the given eco-tip with a specific, actionable insight. Keep it under 150 characters and include an emoji. Focus on practical impact."

	recommendationSystemPrompt = "You are a helpful environmental coach. Provide concise, actionable eco-tips with emojis."
)

// EnrichmentJob is either a tip-enhancement request (Tip set) or a
// personalized-recommendation request (Results set).
type EnrichmentJob struct {
	Tip     *domain.DailyTip
	Results []domain.EmissionResult
	TotalKg float64
}

// EnrichmentWorker runs the optional text-generation enrichment off the
// calculation path. Jobs race against canned content that has already been
// returned to the caller: a successful job only updates cached blobs that
// future reads pick up, and a failed job changes nothing.
type EnrichmentWorker struct {
	store     domain.BlobStore
	generator TextGenerator
	jobs      chan EnrichmentJob
	now       func() time.Time
}

func NewEnrichmentWorker(store domain.BlobStore, generator TextGenerator) *EnrichmentWorker {
	return &EnrichmentWorker{
		store:     store,
		generator: generator,
		jobs:      make(chan EnrichmentJob, 100),
		now:       time.Now,
	}
}

func (w *EnrichmentWorker) Start(ctx context.Context) {
	go func() {
		log.Println("Enrichment Worker started in background...")
		for {
			select {
			case job := <-w.jobs:
				w.processJob(ctx, job)
			case <-ctx.Done():
				log.Println("Enrichment Worker shutting down...")
				return
			}
		}
	}()
}

// EnqueueTipEnhancement schedules an AI rewrite of today's tip.
func (w *EnrichmentWorker) EnqueueTipEnhancement(tip domain.DailyTip) {
	w.enqueue(EnrichmentJob{Tip: &tip})
}

// EnqueueRecommendation schedules a personalized recommendation for the
// given footprint.
func (w *EnrichmentWorker) EnqueueRecommendation(results []domain.EmissionResult, totalKg float64) {
	if len(results) == 0 {
		return
	}
	w.enqueue(EnrichmentJob{Results: results, TotalKg: totalKg})
}

func (w *EnrichmentWorker) enqueue(job EnrichmentJob) {
	select {
	case w.jobs <- job:
	default:
		log.Println("Enrichment Worker queue full! Dropping job")
	}
}

func (w *EnrichmentWorker) processJob(ctx context.Context, job EnrichmentJob) {
	settings := domain.LoadAISettings(ctx, w.store)
	if !settings.Enabled || settings.APIKey == "" {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, generationTimeout)
	defer cancel()

	if job.Tip != nil {
		w.enhanceTip(ctx, settings, *job.Tip)
		return
	}

	if settings.PersonalizedTips {
		w.generateRecommendation(ctx, settings, job.Results, job.TotalKg)
	}
}

func (w *EnrichmentWorker) enhanceTip(ctx context.Context, settings domain.AISettings, tip domain.DailyTip) {
	prompt := fmt.Sprintf("Enhance this eco-tip for the %s category: %s", tip.Category, tip.Content)

	content, err := w.generator.Complete(ctx, settings.APIKey, tipSystemPrompt, prompt, 100)
	if err != nil {
		log.Printf("Worker tip enhancement failed (enrichment is optional): %v", err)
		return
	}

	content = strings.TrimSpace(content)
	if len(content) <= minUsefulCompletionLen {
		return
	}

	tip.Content = content
	tip.IsAI = true

	data, err := json.Marshal(tip)
	if err == nil {
		err = w.store.Set(ctx, domain.BlobKeyDailyTip, data)
	}
	if err != nil {
		log.Printf("Worker failed to cache enhanced tip: %v", err)
	}
}

func (w *EnrichmentWorker) generateRecommendation(ctx context.Context, settings domain.AISettings, results []domain.EmissionResult, totalKg float64) {
	highest := results[0]
	for _, r := range results[1:] {
		if r.AmountKg > highest.AmountKg {
			highest = r
		}
	}

	breakdown := make(map[string]float64, len(results))
	var lines strings.Builder
	for _, r := range results {
		breakdown[strings.ToLower(r.Category)] = r.AmountKg
		fmt.Fprintf(&lines, "- %s: %.1f kg CO₂ (%.1f%%)\n", r.Category, r.AmountKg, r.Percentage)
	}

	prompt := fmt.Sprintf(`You are an expert environmental coach. Based on this carbon footprint data:

Total daily emissions: %.1f kg CO₂
Highest impact category: %s (%.1f kg CO₂, %.1f%%)

Breakdown:
%s
Provide ONE specific, actionable tip to reduce emissions in the highest impact category. Be encouraging, specific, and include a realistic impact estimate. Keep it under 120 characters and start with an emoji.`,
		totalKg, highest.Category, highest.AmountKg, highest.Percentage, lines.String())

	content, err := w.generator.Complete(ctx, settings.APIKey, recommendationSystemPrompt, prompt, 80)
	if err != nil {
		log.Printf("Worker recommendation failed (enrichment is optional): %v", err)
		return
	}

	content = strings.TrimSpace(content)
	if len(content) <= minUsefulCompletionLen {
		return
	}

	now := w.now().UTC()
	recommendation := domain.AIRecommendation{
		ID:             uuid.NewString(),
		Content:        content,
		Category:       highest.Category,
		Date:           w.now().Format(domain.DateKeyLayout),
		Timestamp:      now.Format(time.RFC3339),
		IsPersonalized: true,
		Footprint: domain.FootprintSnapshot{
			Total:           totalKg,
			HighestCategory: highest.Category,
			Breakdown:       breakdown,
		},
	}

	data, err := json.Marshal(recommendation)
	if err == nil {
		err = w.store.Set(ctx, domain.BlobKeyRecommendation, data)
	}
	if err != nil {
		log.Printf("Worker failed to cache recommendation: %v", err)
	}
}
