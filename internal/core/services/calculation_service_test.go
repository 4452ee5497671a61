package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carbontrackr/engine/internal/adapters/blobstore"
	"github.com/carbontrackr/engine/internal/core/domain"
)

func newCalculationFixture(t *testing.T, today string) (*CalculationService, domain.BlobStore) {
	t.Helper()

	store := blobstore.NewInMemoryBlobStore()
	records := NewRecordService(store)
	records.now = fixedDay(t, today)
	stats := NewStatsService(store)
	stats.now = fixedDay(t, today)
	advisor := NewAdvisorService(store, &stubGenerator{})

	return NewCalculationService(records, stats, advisor, nil), store
}

func TestCalculationService_Run(t *testing.T) {
	ctx := context.Background()

	t.Run("One event updates record, stats, badges and suggestion together", func(t *testing.T) {
		svc, _ := newCalculationFixture(t, "2025-03-10")

		outcome := svc.Run(ctx, domain.ActivityInput{
			CarDistanceKm:  10,
			ElectricityKWh: 5,
			MeatGrams:      200,
			PlasticItems:   3,
		})

		require.NotNil(t, outcome)
		assert.InDelta(t, 9.95, outcome.TotalEmissions, 1e-9)
		require.NotNil(t, outcome.Record)
		assert.Equal(t, "2025-03-10", outcome.Record.Date)
		assert.Equal(t, 1, outcome.Stats.TotalCalculations)
		assert.Equal(t, 1, outcome.Stats.CurrentStreak)
		assert.True(t, containsBadge(outcome.NewBadges, domain.BadgeFirstCalculation))
		// Food dominates at 5.4 kg.
		assert.Equal(t, domain.CategoryFood, outcome.Suggestion.Category)
	})

	t.Run("All-zero input still counts as a calculation with a generic suggestion", func(t *testing.T) {
		svc, _ := newCalculationFixture(t, "2025-03-10")

		outcome := svc.Run(ctx, domain.ActivityInput{})

		assert.Zero(t, outcome.TotalEmissions)
		assert.Empty(t, outcome.Results)
		assert.Equal(t, 1, outcome.Stats.TotalCalculations)
		assert.Equal(t, "General", outcome.Suggestion.Category)
		// 0 kg is under the threshold.
		assert.True(t, containsBadge(outcome.NewBadges, domain.BadgeLowFootprint))
	})

	t.Run("NewBadges is never nil", func(t *testing.T) {
		svc, _ := newCalculationFixture(t, "2025-03-10")

		svc.Run(ctx, domain.ActivityInput{CarDistanceKm: 30})
		outcome := svc.Run(ctx, domain.ActivityInput{CarDistanceKm: 30})
		require.NotNil(t, outcome.NewBadges)
		assert.Empty(t, outcome.NewBadges)
	})

	t.Run("Concurrent events are serialized into a consistent snapshot", func(t *testing.T) {
		svc, store := newCalculationFixture(t, "2025-03-10")

		const events = 20
		var wg sync.WaitGroup
		wg.Add(events)
		for i := 0; i < events; i++ {
			go func() {
				defer wg.Done()
				svc.Run(ctx, domain.ActivityInput{CarDistanceKm: 10})
			}()
		}
		wg.Wait()

		outcome := svc.Run(ctx, domain.ActivityInput{CarDistanceKm: 10})
		assert.Equal(t, events+1, outcome.Stats.TotalCalculations)
		assert.Equal(t, 1, outcome.Stats.CurrentStreak)

		// All events landed on the same day, so the history holds one record.
		history := NewRecordService(store).GetAll(ctx)
		assert.Len(t, history, 1)
	})
}
