package domain

// Suggestion is a canned improvement hint for the highest-impact category.
type Suggestion struct {
	Category string `json:"category"`
	Message  string `json:"message"`
	Icon     string `json:"icon"`
}

var genericSuggestion = Suggestion{
	Category: "General",
	Message:  "Start tracking your daily activities to see your carbon impact!",
	Icon:     "Leaf",
}

var suggestionsByCategory = map[string]Suggestion{
	CategoryTransportation: {
		Category: CategoryTransportation,
		Message:  "Try carpooling, using public transport, or walking to reduce your carbon impact.",
		Icon:     "Car",
	},
	CategoryElectricity: {
		Category: CategoryElectricity,
		Message:  "Switch to LED bulbs and unplug devices when not in use to save energy.",
		Icon:     "Zap",
	},
	CategoryFood: {
		Category: CategoryFood,
		Message:  "Consider having a meatless day or choosing locally sourced food options.",
		Icon:     "Beef",
	},
	CategoryPlastic: {
		Category: CategoryPlastic,
		Message:  "Use reusable bags and containers to reduce single-use plastic consumption.",
		Icon:     "Recycle",
	},
}

// SuggestionFor picks the canned suggestion for the category with the highest
// amount. Ties keep the first occurrence, which preserves the fixed category
// order of CalculateEmissions. An empty result set yields the generic
// "start tracking" suggestion, as does an unrecognized category.
func SuggestionFor(results []EmissionResult) Suggestion {
	if len(results) == 0 {
		return genericSuggestion
	}

	highest := results[0]
	for _, r := range results[1:] {
		if r.AmountKg > highest.AmountKg {
			highest = r
		}
	}

	if s, ok := suggestionsByCategory[highest.Category]; ok {
		return s
	}
	return genericSuggestion
}
