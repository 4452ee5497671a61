package blobstore

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carbontrackr/engine/internal/core/domain"
)

func TestInMemoryBlobStore(t *testing.T) {
	ctx := context.Background()

	t.Run("Set and Get round trip", func(t *testing.T) {
		store := NewInMemoryBlobStore()

		require.NoError(t, store.Set(ctx, "k", []byte(`{"a":1}`)))

		got, err := store.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte(`{"a":1}`), got)
	})

	t.Run("Missing key reports ErrBlobNotFound", func(t *testing.T) {
		store := NewInMemoryBlobStore()

		_, err := store.Get(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrBlobNotFound)
	})

	t.Run("Delete removes the key, deleting twice is fine", func(t *testing.T) {
		store := NewInMemoryBlobStore()
		require.NoError(t, store.Set(ctx, "k", []byte("v")))

		require.NoError(t, store.Delete(ctx, "k"))
		_, err := store.Get(ctx, "k")
		assert.ErrorIs(t, err, domain.ErrBlobNotFound)

		assert.NoError(t, store.Delete(ctx, "k"))
	})

	t.Run("Stored bytes are isolated from caller mutations", func(t *testing.T) {
		store := NewInMemoryBlobStore()

		original := []byte("original")
		require.NoError(t, store.Set(ctx, "k", original))
		original[0] = 'X'

		got, err := store.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("original"), got)

		got[0] = 'Y'
		again, err := store.Get(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, []byte("original"), again)
	})

	t.Run("Concurrent Access", func(t *testing.T) {
		store := NewInMemoryBlobStore()
		concurrency := 20

		var wg sync.WaitGroup
		wg.Add(concurrency)
		for i := 0; i < concurrency; i++ {
			go func(id int) {
				defer wg.Done()
				key := fmt.Sprintf("concurrent_key_%d", id)
				if err := store.Set(ctx, key, []byte(key)); err != nil {
					t.Errorf("set %s: %v", key, err)
					return
				}
				got, err := store.Get(ctx, key)
				if err != nil {
					t.Errorf("get %s: %v", key, err)
					return
				}
				if string(got) != key {
					t.Errorf("got %q, want %q", got, key)
				}
			}(i)
		}
		wg.Wait()
	})
}
