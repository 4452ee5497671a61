package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/carbontrackr/engine/internal/core/domain"
)

// StatsService is the streak and badge engine. It mutates the singleton
// stats snapshot in response to calculation events and reports which badges
// unlocked on each call.
type StatsService struct {
	store domain.BlobStore
	now   func() time.Time
}

func NewStatsService(store domain.BlobStore) *StatsService {
	return &StatsService{
		store: store,
		now:   time.Now,
	}
}

// Get loads the current snapshot, falling back to the cold-start default
// when nothing is stored or the stored blob is corrupt.
func (s *StatsService) Get(ctx context.Context) *domain.UserStats {
	raw, err := s.store.Get(ctx, domain.BlobKeyStats)
	if err != nil {
		if !errors.Is(err, domain.ErrBlobNotFound) {
			log.Printf("[STORE] Failed to load stats snapshot: %v", err)
		}
		return domain.NewUserStats()
	}

	var stats domain.UserStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		log.Printf("[STORE] Corrupt stats snapshot, resetting to cold start: %v", err)
		return domain.NewUserStats()
	}

	if len(stats.Badges) == 0 {
		stats.Badges = domain.BadgeCatalog()
	}

	return &stats
}

// Update applies one calculation event: bumps the calculation count, runs the
// streak transition against the calendar-day gap since the last event, and
// evaluates every still-locked badge against the updated snapshot. It returns
// the snapshot and the badges that unlocked on this call, in catalog order.
func (s *StatsService) Update(ctx context.Context, totalEmissionsKg float64) (*domain.UserStats, []domain.Badge) {
	stats := s.Get(ctx)
	today := s.now().Format(domain.DateKeyLayout)

	stats.TotalCalculations++

	switch gap := dayGap(stats.LastCalculationDate, today); {
	case stats.LastCalculationDate == "":
		stats.CurrentStreak = 1
	case gap == 0:
		// Repeat calculation on the same day: streak untouched.
	case gap == 1:
		stats.CurrentStreak++
	default:
		stats.CurrentStreak = 1
	}

	stats.LastCalculationDate = today
	if stats.CurrentStreak > stats.LongestStreak {
		stats.LongestStreak = stats.CurrentStreak
	}

	var newlyUnlocked []domain.Badge
	for i := range stats.Badges {
		badge := &stats.Badges[i]
		if badge.Unlocked {
			continue
		}
		if !badgeCriteriaMet(badge.ID, stats, totalEmissionsKg) {
			continue
		}

		badge.Unlocked = true
		badge.UnlockedDate = today
		newlyUnlocked = append(newlyUnlocked, *badge)
	}

	s.persist(ctx, stats)

	return stats, newlyUnlocked
}

func (s *StatsService) persist(ctx context.Context, stats *domain.UserStats) {
	data, err := json.Marshal(stats)
	if err == nil {
		err = s.store.Set(ctx, domain.BlobKeyStats, data)
	}
	if err != nil {
		log.Printf("[STORE] Failed to persist stats snapshot: %v", err)
	}
}

// dayGap is the whole calendar days between two date keys. Unparseable or
// missing dates report -1 so the caller falls through to the reset branch
// via the empty-date check.
func dayGap(last, today string) int {
	if last == "" {
		return -1
	}

	lastDay, err := time.Parse(domain.DateKeyLayout, last)
	if err != nil {
		return -1
	}
	todayDay, err := time.Parse(domain.DateKeyLayout, today)
	if err != nil {
		return -1
	}

	return int(todayDay.Sub(lastDay).Hours() / 24)
}

func badgeCriteriaMet(badgeID string, stats *domain.UserStats, totalEmissionsKg float64) bool {
	switch badgeID {
	case domain.BadgeFirstCalculation:
		return stats.TotalCalculations >= 1
	case domain.BadgeStreak3:
		return stats.CurrentStreak >= 3
	case domain.BadgeStreak7:
		return stats.CurrentStreak >= 7
	case domain.BadgeStreak30:
		return stats.CurrentStreak >= 30
	case domain.BadgeLowFootprint:
		return totalEmissionsKg < domain.LowFootprintThresholdKg
	case domain.BadgeCalculations10:
		return stats.TotalCalculations >= 10
	case domain.BadgeCalculations50:
		return stats.TotalCalculations >= 50
	default:
		return false
	}
}
