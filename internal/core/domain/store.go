package domain

import (
	"context"
	"errors"
)

var (
	// ErrBlobNotFound is returned by a BlobStore when no value exists for a key.
	ErrBlobNotFound = errors.New("blob not found")
)

// Logical blob keys. These are the only persisted-state locations; their JSON
// payloads must round-trip losslessly across save/load cycles.
const (
	BlobKeyStats          = "carbontrackr_stats"
	BlobKeyRecords        = "carbontrackr_trends"
	BlobKeyDailyTip       = "carbontrackr_daily_tip"
	BlobKeyAISettings     = "carbontrackr_ai_settings"
	BlobKeyRecommendation = "carbontrackr_ai_recommendation"
)

// BlobStore is the storage port: a string key to JSON blob mapping with no
// transactions. Adapters are expected to be safe for concurrent use. Callers
// in the core treat every failure as non-fatal and fall back to in-memory
// state for the current call.
type BlobStore interface {
	// Get retrieves the blob stored under key, or ErrBlobNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores the blob under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes the blob stored under key. Deleting a missing key is not
	// an error.
	Delete(ctx context.Context, key string) error
}
