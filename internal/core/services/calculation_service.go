package services

import (
	"context"
	"sync"

	"github.com/carbontrackr/engine/internal/core/domain"
	"github.com/carbontrackr/engine/internal/core/workers"
)

// CalculationOutcome is everything one calculation event produces.
type CalculationOutcome struct {
	Results        []domain.EmissionResult `json:"results"`
	TotalEmissions float64                 `json:"total_emissions"`
	Record         *domain.DailyRecord     `json:"record"`
	Stats          *domain.UserStats       `json:"stats"`
	NewBadges      []domain.Badge          `json:"new_badges"`
	Suggestion     domain.Suggestion       `json:"suggestion"`
}

// CalculationService is the single sequential entry point for a calculation
// event. The mutex serializes the calculate, upsert and stats-update steps so
// concurrent triggers cannot double-count a day or miscompute the streak gap.
type CalculationService struct {
	mu sync.Mutex

	records *RecordService
	stats   *StatsService
	advisor *AdvisorService
	worker  *workers.EnrichmentWorker
}

// NewCalculationService wires the calculation pipeline. worker may be nil
// when enrichment is not configured.
func NewCalculationService(records *RecordService, stats *StatsService, advisor *AdvisorService, worker *workers.EnrichmentWorker) *CalculationService {
	return &CalculationService{
		records: records,
		stats:   stats,
		advisor: advisor,
		worker:  worker,
	}
}

// Run executes one calculation event end to end: convert activities to
// emissions, persist today's record, advance streaks and badges, and pick the
// canned suggestion. The optional personalized recommendation is enqueued for
// the background worker and never blocks this path.
func (s *CalculationService) Run(ctx context.Context, input domain.ActivityInput) *CalculationOutcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	results := domain.CalculateEmissions(input)
	total := domain.TotalEmissions(results)

	record := s.records.Upsert(ctx, input, results)
	stats, newBadges := s.stats.Update(ctx, total)
	suggestion := s.advisor.Suggest(results)

	if s.worker != nil {
		s.worker.EnqueueRecommendation(results, total)
	}

	if newBadges == nil {
		newBadges = []domain.Badge{}
	}

	return &CalculationOutcome{
		Results:        results,
		TotalEmissions: total,
		Record:         record,
		Stats:          stats,
		NewBadges:      newBadges,
		Suggestion:     suggestion,
	}
}
