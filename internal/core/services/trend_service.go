package services

import (
	"context"
	"time"

	"github.com/carbontrackr/engine/internal/core/domain"
)

// Chart windows accepted by BuildSeries.
const (
	SeriesWindowWeek  = 7
	SeriesWindowMonth = 30
)

// TrendService derives rolling averages, period-over-period changes and
// gap-filled chart series from the record history. Nothing here is persisted;
// every call recomputes from the record store.
type TrendService struct {
	records *RecordService
	now     func() time.Time
}

func NewTrendService(records *RecordService) *TrendService {
	return &TrendService{
		records: records,
		now:     time.Now,
	}
}

// Summarize computes the 7- and 30-record rolling averages and their change
// against the preceding period. When a preceding period has no records the
// average compares against itself, so the reported change is 0 rather than
// undefined.
func (s *TrendService) Summarize(ctx context.Context) *domain.TrendSummary {
	records := s.records.GetAll(ctx)

	if len(records) == 0 {
		return &domain.TrendSummary{Records: []*domain.DailyRecord{}}
	}

	weeklyAverage := meanEmissions(sliceRange(records, 0, 7))
	monthlyAverage := meanEmissions(sliceRange(records, 0, 30))

	previousWeekly := weeklyAverage
	if previous := sliceRange(records, 7, 14); len(previous) > 0 {
		previousWeekly = meanEmissions(previous)
	}

	previousMonthly := monthlyAverage
	if previous := sliceRange(records, 30, 60); len(previous) > 0 {
		previousMonthly = meanEmissions(previous)
	}

	return &domain.TrendSummary{
		Records:        records,
		WeeklyAverage:  weeklyAverage,
		MonthlyAverage: monthlyAverage,
		WeeklyChange:   changePercent(weeklyAverage, previousWeekly),
		MonthlyChange:  changePercent(monthlyAverage, previousMonthly),
	}
}

// BuildSeries produces exactly windowDays chart points for the contiguous
// day range ending today, ascending. Days without a record are zero-filled,
// never interpolated.
func (s *TrendService) BuildSeries(ctx context.Context, windowDays int) []domain.ChartPoint {
	records := s.records.GetAll(ctx)

	byDate := make(map[string]*domain.DailyRecord, len(records))
	for _, r := range records {
		byDate[r.Date] = r
	}

	today, _ := time.Parse(domain.DateKeyLayout, s.now().Format(domain.DateKeyLayout))

	points := make([]domain.ChartPoint, 0, windowDays)
	for i := windowDays - 1; i >= 0; i-- {
		day := today.AddDate(0, 0, -i)
		dateKey := day.Format(domain.DateKeyLayout)

		point := domain.ChartPoint{
			Date:        dateKey,
			DisplayDate: day.Format("Jan 2"),
		}
		if record, ok := byDate[dateKey]; ok {
			point.TotalEmissions = record.TotalEmissions
			point.Breakdown = record.Breakdown
		}

		points = append(points, point)
	}

	return points
}

func sliceRange(records []*domain.DailyRecord, from, to int) []*domain.DailyRecord {
	if from >= len(records) {
		return nil
	}
	if to > len(records) {
		to = len(records)
	}
	return records[from:to]
}

func meanEmissions(records []*domain.DailyRecord) float64 {
	if len(records) == 0 {
		return 0
	}

	var sum float64
	for _, r := range records {
		sum += r.TotalEmissions
	}
	return sum / float64(len(records))
}

func changePercent(current, previous float64) float64 {
	if previous <= 0 {
		return 0
	}
	return (current - previous) / previous * 100
}
