// Copyright (c) 2026 Bookstore API. All rights reserved.
// Author: ukjong.dev@gmail.com

// Redis-backed implementation of the top-listing cache.
//
// # Failure Policy
//
// The cache is strictly best-effort. Every Redis error is logged at debug
// level and swallowed; the caller always has the PostgreSQL path to fall
// back on, so a degraded cache must never surface as an API error.
package book

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/Ukj0ng/bookstore-api/internal/platform/constants"
)

// RedisListCache implements [ListCache] on top of go-redis.
type RedisListCache struct {
	client *redis.Client
	logger *slog.Logger
}

// NewRedisListCache constructs a listing cache around an existing client.
func NewRedisListCache(client *redis.Client, logger *slog.Logger) *RedisListCache {
	return &RedisListCache{client: client, logger: logger}
}

// GetList returns the cached listing under key, or ok=false on miss.
func (cache *RedisListCache) GetList(ctx context.Context, key string) ([]*Book, bool) {
	payload, err := cache.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			cache.logger.DebugContext(ctx, "book_cache_get_failed",
				slog.String("key", key), slog.Any("error", err))
		}
		return nil, false
	}

	var books []*Book
	if err := json.Unmarshal(payload, &books); err != nil {
		// A corrupt entry is dropped so the next read repopulates it.
		cache.logger.DebugContext(ctx, "book_cache_decode_failed",
			slog.String("key", key), slog.Any("error", err))
		cache.client.Del(ctx, key)
		return nil, false
	}

	return books, true
}

// SetList stores a listing under key with the standard TTL.
func (cache *RedisListCache) SetList(ctx context.Context, key string, books []*Book) {
	payload, err := json.Marshal(books)
	if err != nil {
		cache.logger.DebugContext(ctx, "book_cache_encode_failed",
			slog.String("key", key), slog.Any("error", err))
		return
	}

	if err := cache.client.Set(ctx, key, payload, constants.BookListCacheTTL).Err(); err != nil {
		cache.logger.DebugContext(ctx, "book_cache_set_failed",
			slog.String("key", key), slog.Any("error", err))
	}
}

// Invalidate drops all cached listings after a catalog mutation.
func (cache *RedisListCache) Invalidate(ctx context.Context) {
	keys := []string{constants.CacheKeyBestSellers, constants.CacheKeyLatest}
	if err := cache.client.Del(ctx, keys...).Err(); err != nil {
		cache.logger.DebugContext(ctx, "book_cache_invalidate_failed", slog.Any("error", err))
	}
}

// NoopListCache satisfies [ListCache] when Redis is not configured.
type NoopListCache struct{}

func (NoopListCache) GetList(context.Context, string) ([]*Book, bool) { return nil, false }
func (NoopListCache) SetList(context.Context, string, []*Book)       {}
func (NoopListCache) Invalidate(context.Context)                     {}
