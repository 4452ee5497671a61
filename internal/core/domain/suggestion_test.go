package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/carbontrackr/engine/internal/core/domain"
)

func TestSuggestionFor(t *testing.T) {
	tests := []struct {
		name         string
		results      []domain.EmissionResult
		wantCategory string
	}{
		{
			name:         "Empty results fall back to generic suggestion",
			results:      nil,
			wantCategory: "General",
		},
		{
			name: "Highest amount wins",
			results: []domain.EmissionResult{
				{Category: domain.CategoryTransportation, AmountKg: 2.1},
				{Category: domain.CategoryFood, AmountKg: 5.4},
				{Category: domain.CategoryPlastic, AmountKg: 0.3},
			},
			wantCategory: domain.CategoryFood,
		},
		{
			name: "Tie keeps first occurrence in category order",
			results: []domain.EmissionResult{
				{Category: domain.CategoryTransportation, AmountKg: 3.0},
				{Category: domain.CategoryElectricity, AmountKg: 3.0},
			},
			wantCategory: domain.CategoryTransportation,
		},
		{
			name: "Unrecognized category falls back to generic suggestion",
			results: []domain.EmissionResult{
				{Category: "Aviation", AmountKg: 9.9},
			},
			wantCategory: "General",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := domain.SuggestionFor(tt.results)
			assert.Equal(t, tt.wantCategory, got.Category)
			assert.NotEmpty(t, got.Message)
			assert.NotEmpty(t, got.Icon)
		})
	}
}
