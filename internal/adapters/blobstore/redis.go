package blobstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/carbontrackr/engine/internal/core/domain"
)

var _ domain.BlobStore = (*RedisBlobStore)(nil)

// NewRedisClient connects to redis and verifies the connection with a
// bounded ping.
func NewRedisClient(host, port, password string, dbIndex int) (*redis.Client, error) {
	addr := fmt.Sprintf("%s:%s", host, port)

	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           dbIndex,
		DialTimeout:  10 * time.Second,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}

	return rdb, nil
}

// RedisBlobStore keeps blobs in redis without expiry. Blobs are small JSON
// documents under a fixed set of logical keys, so plain string values are
// enough.
type RedisBlobStore struct {
	rdb *redis.Client
}

func NewRedisBlobStore(rdb *redis.Client) *RedisBlobStore {
	return &RedisBlobStore{rdb: rdb}
}

func (s *RedisBlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrBlobNotFound
		}
		return nil, err
	}
	return value, nil
}

func (s *RedisBlobStore) Set(ctx context.Context, key string, value []byte) error {
	return s.rdb.Set(ctx, key, value, 0).Err()
}

func (s *RedisBlobStore) Delete(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, key).Err()
}
