package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sort"
	"time"

	"github.com/carbontrackr/engine/internal/core/domain"
)

// RecordService owns the daily emission record history: upsert-by-date
// writes, a bounded retention window and newest-first reads. Persistence
// failures never surface to callers; the current call keeps working on the
// in-memory result and the failure is only logged.
type RecordService struct {
	store domain.BlobStore
	now   func() time.Time
}

func NewRecordService(store domain.BlobStore) *RecordService {
	return &RecordService{
		store: store,
		now:   time.Now,
	}
}

// GetAll returns the stored record history sorted newest-first. A missing,
// unreadable or corrupt history is treated as empty.
func (s *RecordService) GetAll(ctx context.Context) []*domain.DailyRecord {
	raw, err := s.store.Get(ctx, domain.BlobKeyRecords)
	if err != nil {
		if !errors.Is(err, domain.ErrBlobNotFound) {
			log.Printf("[STORE] Failed to load records: %v", err)
		}
		return []*domain.DailyRecord{}
	}

	var records []*domain.DailyRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		log.Printf("[STORE] Corrupt record history, starting fresh: %v", err)
		return []*domain.DailyRecord{}
	}

	sortRecordsDesc(records)
	return records
}

// Upsert saves today's record, replacing any existing record for the same
// date key, prunes entries older than the retention window and returns the
// record even when persistence fails.
func (s *RecordService) Upsert(ctx context.Context, activities domain.ActivityInput, results []domain.EmissionResult) *domain.DailyRecord {
	today := s.today()
	record := domain.NewDailyRecord(today.Format(domain.DateKeyLayout), activities, results)

	existing := s.GetAll(ctx)
	cutoff := today.AddDate(0, 0, -domain.RetentionDays)

	updated := make([]*domain.DailyRecord, 0, len(existing)+1)
	updated = append(updated, record)
	for _, r := range existing {
		if r.Date == record.Date {
			continue
		}
		day, err := time.Parse(domain.DateKeyLayout, r.Date)
		if err != nil || day.Before(cutoff) {
			continue
		}
		updated = append(updated, r)
	}

	sortRecordsDesc(updated)

	data, err := json.Marshal(updated)
	if err == nil {
		err = s.store.Set(ctx, domain.BlobKeyRecords, data)
	}
	if err != nil {
		log.Printf("[STORE] Failed to persist records, keeping this call in memory: %v", err)
	}

	return record
}

// today is the current local calendar day at midnight, parsed back through
// the date-key layout so gap arithmetic works on whole days.
func (s *RecordService) today() time.Time {
	day, _ := time.Parse(domain.DateKeyLayout, s.now().Format(domain.DateKeyLayout))
	return day
}

func sortRecordsDesc(records []*domain.DailyRecord) {
	sort.Slice(records, func(i, j int) bool {
		return records[i].Date > records[j].Date
	})
}
