package ytm

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

type SearchCache interface {
	Get(ctx context.Context, query string) ([]SearchResult, bool, error)
	Set(ctx context.Context, query string, results []SearchResult) error
}

// RedisSearchCache stores projected results under ytm:search:<query>.
type RedisSearchCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisSearchCache(rdb *redis.Client, ttl time.Duration) *RedisSearchCache {
	return &RedisSearchCache{rdb: rdb, ttl: ttl}
}

func searchCacheKey(query string) string {
	return "ytm:search:" + query
}

func (c *RedisSearchCache) Get(ctx context.Context, query string) ([]SearchResult, bool, error) {
	data, err := c.rdb.Get(ctx, searchCacheKey(query)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var results []SearchResult
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, false, err
	}
	return results, true, nil
}

func (c *RedisSearchCache) Set(ctx context.Context, query string, results []SearchResult) error {
	data, err := json.Marshal(results)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, searchCacheKey(query), data, c.ttl).Err()
}
