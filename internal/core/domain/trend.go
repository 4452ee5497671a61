package domain

// TrendSummary is derived on demand from the record history and never
// persisted. Records are ordered newest-first.
type TrendSummary struct {
	Records        []*DailyRecord `json:"records"`
	WeeklyAverage  float64        `json:"weekly_average"`
	MonthlyAverage float64        `json:"monthly_average"`
	WeeklyChange   float64        `json:"weekly_change"`
	MonthlyChange  float64        `json:"monthly_change"`
}

// ChartPoint is one calendar day of a gap-filled chart series. Days without a
// record carry zero values.
type ChartPoint struct {
	Date           string            `json:"date"`
	DisplayDate    string            `json:"display_date"`
	TotalEmissions float64           `json:"total_emissions"`
	Breakdown      EmissionBreakdown `json:"breakdown"`
}
