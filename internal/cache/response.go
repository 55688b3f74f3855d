// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// response.go provides a Valkey-backed cache for public API JSON responses.
// Keys are scoped by tenant so invalidation for one blog never evicts
// another's entries.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// responseKeyPrefix is the Valkey key prefix for cached API responses.
	responseKeyPrefix = "resp:"

	// DefaultResponseTTL is how long a cached response stays valid.
	DefaultResponseTTL = 5 * time.Minute
)

// ResponseCache manages public API response caching in Valkey. A nil
// *ResponseCache is a valid no-op cache, so handlers never need to check.
type ResponseCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewResponseCache creates a response cache backed by the given Valkey client.
func NewResponseCache(client *redis.Client, ttl time.Duration) *ResponseCache {
	if ttl == 0 {
		ttl = DefaultResponseTTL
	}
	return &ResponseCache{client: client, ttl: ttl}
}

func tenantKey(tenantID uuid.UUID, key string) string {
	return fmt.Sprintf("%s%s:%s", responseKeyPrefix, tenantID, key)
}

// Get retrieves a cached response body. Returns false on miss or error.
func (rc *ResponseCache) Get(ctx context.Context, tenantID uuid.UUID, key string) ([]byte, bool) {
	if rc == nil {
		return nil, false
	}
	val, err := rc.client.Get(ctx, tenantKey(tenantID, key)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("response cache get error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("response cache hit", "tenant", tenantID, "key", key)
	return val, true
}

// Set stores a response body with the configured TTL.
func (rc *ResponseCache) Set(ctx context.Context, tenantID uuid.UUID, key string, body []byte) {
	if rc == nil {
		return
	}
	if err := rc.client.Set(ctx, tenantKey(tenantID, key), body, rc.ttl).Err(); err != nil {
		slog.Warn("response cache set error", "key", key, "error", err)
	}
}

// InvalidateTenant removes every cached response for one tenant. Called
// after any write that changes public content: article creation or update,
// category changes, comment approval.
func (rc *ResponseCache) InvalidateTenant(ctx context.Context, tenantID uuid.UUID) {
	if rc == nil {
		return
	}
	pattern := fmt.Sprintf("%s%s:*", responseKeyPrefix, tenantID)
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := rc.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			slog.Warn("response cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := rc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("response cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Debug("response cache invalidated", "tenant", tenantID, "deleted", deleted)
	}
}
