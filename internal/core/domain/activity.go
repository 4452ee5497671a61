package domain

import "math"

// ActivityInput is one day's raw activity quantities as entered by the user.
type ActivityInput struct {
	CarDistanceKm  float64 `json:"car_distance_km"`
	ElectricityKWh float64 `json:"electricity_kwh"`
	MeatGrams      float64 `json:"meat_grams"`
	PlasticItems   float64 `json:"plastic_items"`
}

// Sanitized coerces every quantity into a usable non-negative number.
// Negative, NaN and infinite values become 0 instead of failing the
// calculation.
func (a ActivityInput) Sanitized() ActivityInput {
	return ActivityInput{
		CarDistanceKm:  sanitizeQuantity(a.CarDistanceKm),
		ElectricityKWh: sanitizeQuantity(a.ElectricityKWh),
		MeatGrams:      sanitizeQuantity(a.MeatGrams),
		PlasticItems:   sanitizeQuantity(a.PlasticItems),
	}
}

func sanitizeQuantity(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
