package postcode

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/proclimb/minisystem/pkg/logger"
)

const defaultRedisPrefix = "postcode:"

// RedisCache fronts a Directory with a shared Redis cache so that several
// server instances reuse one another's lookups. Redis errors never fail a
// lookup; the upstream directory answers instead.
type RedisCache struct {
	next    Directory
	client  redis.Cmdable
	prefix  string
	ttl     time.Duration
	missTTL time.Duration
	log     *slog.Logger
}

// RedisCacheOption configures RedisCache.
type RedisCacheOption func(*RedisCache)

// WithKeyPrefix changes the "postcode:" key prefix.
func WithKeyPrefix(prefix string) RedisCacheOption {
	return func(c *RedisCache) {
		c.prefix = prefix
	}
}

// WithCacheLogger logs Redis failures.
func WithCacheLogger(log *slog.Logger) RedisCacheOption {
	return func(c *RedisCache) {
		if log != nil {
			c.log = log
		}
	}
}

// NewRedisCache wraps next.
func NewRedisCache(next Directory, client redis.Cmdable, ttl, missTTL time.Duration, opts ...RedisCacheOption) *RedisCache {
	c := &RedisCache{
		next:    next,
		client:  client,
		prefix:  defaultRedisPrefix,
		ttl:     ttl,
		missTTL: missTTL,
		log:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type redisEntry struct {
	Found  bool   `json:"found"`
	Record Record `json:"record"`
}

func (c *RedisCache) Lookup(ctx context.Context, code string) (Record, error) {
	key := c.prefix + code

	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var e redisEntry
		if jsonErr := json.Unmarshal(raw, &e); jsonErr == nil {
			if !e.Found {
				return Record{}, ErrNotFound
			}
			return e.Record, nil
		}
		c.log.WarnContext(ctx, "discarding corrupt postcode cache entry", logger.PostalCode(code))
	case !errors.Is(err, redis.Nil):
		c.log.WarnContext(ctx, "postcode cache read failed", logger.PostalCode(code), logger.Error(err))
	}

	rec, err := c.next.Lookup(ctx, code)
	switch {
	case err == nil:
		c.store(ctx, key, redisEntry{Found: true, Record: rec}, c.ttl)
	case errors.Is(err, ErrNotFound):
		c.store(ctx, key, redisEntry{}, c.missTTL)
	}
	return rec, err
}

func (c *RedisCache) store(ctx context.Context, key string, e redisEntry, ttl time.Duration) {
	raw, err := json.Marshal(e)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		c.log.WarnContext(ctx, "postcode cache write failed", logger.Error(err))
	}
}
