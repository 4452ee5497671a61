package http

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carbontrackr/engine/internal/core/domain"
	"github.com/carbontrackr/engine/internal/core/services"
)

func TestCalculationEndpoint(t *testing.T) {
	t.Run("Valid activities return the full outcome with 201", func(t *testing.T) {
		router, _ := newTestRouter(&cannedGenerator{})

		body := `{"car_distance_km":10,"electricity_kwh":5,"meat_grams":200,"plastic_items":3}`
		w := performRequest(router, http.MethodPost, "/api/v1/calculations", strings.NewReader(body))
		require.Equal(t, http.StatusCreated, w.Code)

		var outcome services.CalculationOutcome
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &outcome))

		assert.InDelta(t, 9.95, outcome.TotalEmissions, 1e-9)
		assert.Len(t, outcome.Results, 4)
		require.NotNil(t, outcome.Record)
		assert.Equal(t, time.Now().Format(domain.DateKeyLayout), outcome.Record.Date)
		require.NotNil(t, outcome.Stats)
		assert.Equal(t, 1, outcome.Stats.TotalCalculations)
		assert.Equal(t, 1, outcome.Stats.CurrentStreak)
		assert.NotEmpty(t, outcome.NewBadges)
		assert.Equal(t, domain.CategoryFood, outcome.Suggestion.Category)
	})

	t.Run("Absent fields default to zero activities", func(t *testing.T) {
		router, _ := newTestRouter(&cannedGenerator{})

		w := performRequest(router, http.MethodPost, "/api/v1/calculations", strings.NewReader(`{}`))
		require.Equal(t, http.StatusCreated, w.Code)

		var outcome services.CalculationOutcome
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &outcome))
		assert.Zero(t, outcome.TotalEmissions)
		assert.Equal(t, "General", outcome.Suggestion.Category)
	})

	t.Run("Malformed JSON is rejected with 400", func(t *testing.T) {
		router, _ := newTestRouter(&cannedGenerator{})

		w := performRequest(router, http.MethodPost, "/api/v1/calculations", strings.NewReader(`{"car_distance_km":`))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Two calculations on the same day keep one record", func(t *testing.T) {
		router, _ := newTestRouter(&cannedGenerator{})

		performRequest(router, http.MethodPost, "/api/v1/calculations", strings.NewReader(`{"car_distance_km":10}`))
		w := performRequest(router, http.MethodPost, "/api/v1/calculations", strings.NewReader(`{"car_distance_km":20}`))
		require.Equal(t, http.StatusCreated, w.Code)

		var outcome services.CalculationOutcome
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &outcome))
		assert.Equal(t, 2, outcome.Stats.TotalCalculations)
		assert.Equal(t, 1, outcome.Stats.CurrentStreak)

		summary := performRequest(router, http.MethodGet, "/api/v1/trends/summary", nil)
		var parsed domain.TrendSummary
		require.NoError(t, json.Unmarshal(summary.Body.Bytes(), &parsed))
		assert.Len(t, parsed.Records, 1)
		assert.InDelta(t, 4.2, parsed.Records[0].TotalEmissions, 1e-9)
	})
}

func TestStatsEndpoints(t *testing.T) {
	t.Run("Cold-start stats expose the locked badge catalog", func(t *testing.T) {
		router, _ := newTestRouter(&cannedGenerator{})

		w := performRequest(router, http.MethodGet, "/api/v1/stats", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var stats domain.UserStats
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
		assert.Zero(t, stats.CurrentStreak)
		assert.Zero(t, stats.TotalCalculations)
		assert.Len(t, stats.Badges, len(domain.BadgeCatalog()))
	})

	t.Run("Badges endpoint reflects unlocks", func(t *testing.T) {
		router, _ := newTestRouter(&cannedGenerator{})
		performRequest(router, http.MethodPost, "/api/v1/calculations", strings.NewReader(`{"car_distance_km":10}`))

		w := performRequest(router, http.MethodGet, "/api/v1/badges", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var parsed struct {
			Badges []domain.Badge `json:"badges"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
		require.Len(t, parsed.Badges, len(domain.BadgeCatalog()))

		unlocked := map[string]bool{}
		for _, b := range parsed.Badges {
			unlocked[b.ID] = b.Unlocked
		}
		assert.True(t, unlocked[domain.BadgeFirstCalculation])
		assert.False(t, unlocked[domain.BadgeStreak7])
	})
}
