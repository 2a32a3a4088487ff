package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/enpl/fieldops-console/internal/domain"
)

// ScopeCache caches resolved hierarchy scopes (per-admin and per-manager
// account listings). Implementations must treat every failure as a miss.
type ScopeCache interface {
	Get(ctx context.Context, key string) ([]domain.User, bool)
	Set(ctx context.Context, key string, users []domain.User)
	Invalidate(ctx context.Context)
}

const scopeVersionKey = "scope:version"

// redisScopeCache stores scope listings in Redis under a namespace version.
// Invalidation bumps the version with a single INCR instead of scanning keys;
// stale entries fall off via TTL.
type redisScopeCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisScopeCache builds a Redis-backed scope cache. A nil client yields a
// cache that always misses.
func NewRedisScopeCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) ScopeCache {
	return &redisScopeCache{client: client, ttl: ttl, logger: logger}
}

func (c *redisScopeCache) Get(ctx context.Context, key string) ([]domain.User, bool) {
	if c.client == nil || c.ttl <= 0 {
		return nil, false
	}
	raw, err := c.client.Get(ctx, c.versionedKey(ctx, key)).Bytes()
	if err != nil {
		return nil, false
	}
	var users []domain.User
	if err := json.Unmarshal(raw, &users); err != nil {
		c.logger.Debug("scope cache entry corrupt", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return users, true
}

func (c *redisScopeCache) Set(ctx context.Context, key string, users []domain.User) {
	if c.client == nil || c.ttl <= 0 {
		return
	}
	raw, err := json.Marshal(users)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, c.versionedKey(ctx, key), raw, c.ttl).Err(); err != nil {
		c.logger.Debug("scope cache set failed", zap.String("key", key), zap.Error(err))
	}
}

func (c *redisScopeCache) Invalidate(ctx context.Context) {
	if c.client == nil {
		return
	}
	if err := c.client.Incr(ctx, scopeVersionKey).Err(); err != nil {
		c.logger.Debug("scope cache invalidation failed", zap.Error(err))
	}
}

func (c *redisScopeCache) versionedKey(ctx context.Context, key string) string {
	version, err := c.client.Get(ctx, scopeVersionKey).Int64()
	if err != nil {
		version = 0
	}
	return fmt.Sprintf("scope:v%d:%s", version, key)
}

// noopScopeCache always misses; used when Redis is not configured.
type noopScopeCache struct{}

// NewNoopScopeCache returns a cache that never stores anything.
func NewNoopScopeCache() ScopeCache {
	return noopScopeCache{}
}

func (noopScopeCache) Get(context.Context, string) ([]domain.User, bool) { return nil, false }
func (noopScopeCache) Set(context.Context, string, []domain.User)       {}
func (noopScopeCache) Invalidate(context.Context)                       {}
