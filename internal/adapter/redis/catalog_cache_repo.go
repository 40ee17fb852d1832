package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/shalean-cleaning/shalean-cleaning-services/internal/repository"
)

const (
	catalogCacheKeyPrefix = "catalog:"
)

type catalogCacheRepository struct {
	client redis.Cmdable
}

func NewCatalogCacheRepository(client redis.Cmdable) repository.CatalogCache {
	return &catalogCacheRepository{
		client: client,
	}
}

func (r *catalogCacheRepository) cacheKey(key string) string {
	return catalogCacheKeyPrefix + key
}

func (r *catalogCacheRepository) Get(ctx context.Context, key string, dest any) error {
	val, err := r.client.Get(ctx, r.cacheKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return repository.ErrNotFound
		}
		return fmt.Errorf("failed to get catalog entry %s from redis: %w", key, err)
	}

	if err := json.Unmarshal(val, dest); err != nil {
		_ = r.Delete(ctx, key)
		return fmt.Errorf("failed to unmarshal catalog entry %s: %w", key, err)
	}
	return nil
}

func (r *catalogCacheRepository) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if key == "" || value == nil {
		return errors.New("cannot cache nil catalog value or empty key")
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal catalog entry %s: %w", key, err)
	}

	if err := r.client.Set(ctx, r.cacheKey(key), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set catalog entry %s to redis: %w", key, err)
	}
	return nil
}

func (r *catalogCacheRepository) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.cacheKey(key)).Err(); err != nil {
		return fmt.Errorf("failed to delete catalog entry %s from redis: %w", key, err)
	}
	return nil
}
