package domain

// Emission coefficients, kg CO₂ per unit of activity.
const (
	CarCoefficientPerKm          = 0.21
	ElectricityCoefficientPerKWh = 0.43
	MeatCoefficientPerGram       = 0.027
	PlasticCoefficientPerItem    = 0.1
)

// Emission categories in fixed calculation order.
const (
	CategoryTransportation = "Transportation"
	CategoryElectricity    = "Electricity"
	CategoryFood           = "Food"
	CategoryPlastic        = "Plastic"
)

// EmissionResult is one category's share of a day's footprint, with the
// display metadata clients render directly.
type EmissionResult struct {
	Category   string  `json:"category"`
	AmountKg   float64 `json:"amount_kg"`
	Percentage float64 `json:"percentage"`
	Color      string  `json:"color"`
	Icon       string  `json:"icon"`
}

// CalculateEmissions converts raw activities into per-category emissions.
// It is a pure function: same input, same output, no clock and no storage.
// Categories with zero emissions are excluded so the result only carries
// what actually contributed, in the fixed category order.
func CalculateEmissions(input ActivityInput) []EmissionResult {
	in := input.Sanitized()

	amounts := []struct {
		category string
		amountKg float64
		color    string
		icon     string
	}{
		{CategoryTransportation, in.CarDistanceKm * CarCoefficientPerKm, "#10B981", "Car"},
		{CategoryElectricity, in.ElectricityKWh * ElectricityCoefficientPerKWh, "#F59E0B", "Zap"},
		{CategoryFood, in.MeatGrams * MeatCoefficientPerGram, "#3B82F6", "Beef"},
		{CategoryPlastic, in.PlasticItems * PlasticCoefficientPerItem, "#6B7280", "Recycle"},
	}

	var total float64
	for _, a := range amounts {
		total += a.amountKg
	}

	results := make([]EmissionResult, 0, len(amounts))
	for _, a := range amounts {
		if a.amountKg <= 0 {
			continue
		}
		results = append(results, EmissionResult{
			Category:   a.category,
			AmountKg:   a.amountKg,
			Percentage: sharePercent(a.amountKg, total),
			Color:      a.color,
			Icon:       a.icon,
		})
	}
	return results
}

// TotalEmissions sums a result set back into the day's total.
func TotalEmissions(results []EmissionResult) float64 {
	var total float64
	for _, r := range results {
		total += r.AmountKg
	}
	return total
}

func sharePercent(amount, total float64) float64 {
	if total <= 0 {
		return 0
	}
	return amount / total * 100
}
