package domain

// DateKeyLayout is the calendar-day key every record, streak and tip is
// bucketed by. Local time: a day boundary is the user's midnight.
const DateKeyLayout = "2006-01-02"

// RetentionDays bounds the record history. Anything older than this many
// days is pruned on the next write.
const RetentionDays = 90

// EmissionBreakdown is a day's emissions split by category, zero for
// categories without activity.
type EmissionBreakdown struct {
	Transportation float64 `json:"transportation"`
	Electricity    float64 `json:"electricity"`
	Food           float64 `json:"food"`
	Plastic        float64 `json:"plastic"`
}

// DailyRecord is one calendar day's footprint. At most one record exists per
// date key; recalculating a day replaces it.
type DailyRecord struct {
	Date           string            `json:"date"`
	TotalEmissions float64           `json:"total_emissions"`
	Breakdown      EmissionBreakdown `json:"breakdown"`
	Activities     ActivityInput     `json:"activities"`
}

// NewDailyRecord folds a calculation into the record for the given date key.
func NewDailyRecord(dateKey string, activities ActivityInput, results []EmissionResult) *DailyRecord {
	var breakdown EmissionBreakdown
	for _, r := range results {
		switch r.Category {
		case CategoryTransportation:
			breakdown.Transportation = r.AmountKg
		case CategoryElectricity:
			breakdown.Electricity = r.AmountKg
		case CategoryFood:
			breakdown.Food = r.AmountKg
		case CategoryPlastic:
			breakdown.Plastic = r.AmountKg
		}
	}

	return &DailyRecord{
		Date:           dateKey,
		TotalEmissions: TotalEmissions(results),
		Breakdown:      breakdown,
		Activities:     activities,
	}
}
