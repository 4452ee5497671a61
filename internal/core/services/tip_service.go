package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/carbontrackr/engine/internal/core/domain"
	"github.com/carbontrackr/engine/internal/core/workers"
)

// TipService serves the daily eco tip: a deterministic pick from the fixed
// catalog, cached per calendar day, with a best-effort AI rewrite scheduled
// in the background the first time a day's tip is generated.
type TipService struct {
	store  domain.BlobStore
	worker *workers.EnrichmentWorker
	now    func() time.Time
}

// NewTipService builds the tip service. worker may be nil when enrichment is
// not wired; the deterministic path is unaffected.
func NewTipService(store domain.BlobStore, worker *workers.EnrichmentWorker) *TipService {
	return &TipService{
		store:  store,
		worker: worker,
		now:    time.Now,
	}
}

// TodaysTip returns the tip for the current calendar day. A cached tip for
// today wins (it may already be AI-enhanced); otherwise the deterministic
// fallback is selected, cached and returned immediately while the
// enhancement job runs detached.
func (s *TipService) TodaysTip(ctx context.Context) domain.DailyTip {
	today := s.now().Format(domain.DateKeyLayout)

	if raw, err := s.store.Get(ctx, domain.BlobKeyDailyTip); err == nil {
		var cached domain.DailyTip
		if err := json.Unmarshal(raw, &cached); err != nil {
			log.Printf("[STORE] Corrupt cached tip, regenerating: %v", err)
		} else if cached.Date == today {
			return cached
		}
	} else if !errors.Is(err, domain.ErrBlobNotFound) {
		log.Printf("[STORE] Failed to load cached tip: %v", err)
	}

	tip := domain.TipForDate(today)

	data, err := json.Marshal(tip)
	if err == nil {
		err = s.store.Set(ctx, domain.BlobKeyDailyTip, data)
	}
	if err != nil {
		log.Printf("[STORE] Failed to cache daily tip: %v", err)
	}

	if s.worker != nil {
		s.worker.EnqueueTipEnhancement(tip)
	}

	return tip
}
