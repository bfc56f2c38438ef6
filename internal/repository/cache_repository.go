package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	appErrors "github.com/conghieu2003/KLTN2025-076-QLHeThongPhongHoc-IUH-sub002/pkg/errors"
)

// CacheRepository stores projected weekly grids in Redis as JSON blobs.
// A nil client degrades every operation to a no-op or a miss.
type CacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

// NewCacheRepository constructs a cache repository.
func NewCacheRepository(client *redis.Client, logger *zap.Logger) *CacheRepository {
	return &CacheRepository{client: client, logger: logger}
}

// Get retrieves and unmarshals the cached grid into dest. A missing key
// surfaces as ErrCacheMiss so callers can fall through to the database.
func (r *CacheRepository) Get(ctx context.Context, key string, dest interface{}) error {
	if r.client == nil {
		return appErrors.ErrCacheMiss
	}

	raw, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return appErrors.ErrCacheMiss
		}
		return fmt.Errorf("redis get %s: %w", key, err)
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("unmarshal cached grid %s: %w", key, err)
	}

	return nil
}

// Set marshals the grid and stores it with the given TTL.
func (r *CacheRepository) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if r.client == nil {
		return nil
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal grid for %s: %w", key, err)
	}

	if err := r.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}

	return nil
}

// DeleteByPattern removes cached grids matching the pattern and reports how
// many keys were dropped. Keys are scanned incrementally and deleted in
// batches so invalidation never blocks Redis on a large keyspace.
func (r *CacheRepository) DeleteByPattern(ctx context.Context, pattern string) (int, error) {
	if r.client == nil {
		return 0, nil
	}

	deleted := 0
	batch := make([]string, 0, 100)
	iter := r.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == cap(batch) {
			if err := r.client.Del(ctx, batch...).Err(); err != nil {
				return deleted, fmt.Errorf("redis delete batch: %w", err)
			}
			deleted += len(batch)
			batch = batch[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return deleted, fmt.Errorf("redis scan pattern %s: %w", pattern, err)
	}
	if len(batch) > 0 {
		if err := r.client.Del(ctx, batch...).Err(); err != nil {
			return deleted, fmt.Errorf("redis delete batch: %w", err)
		}
		deleted += len(batch)
	}

	return deleted, nil
}
