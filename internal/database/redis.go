package database

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stemsi/gconvert/internal/cache"
	"github.com/stemsi/gconvert/internal/config"
)

// NewRedisClient creates and validates a Redis client connection.
func NewRedisClient(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*redis.Client, error) {
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	log.Info().
		Str("addr", opt.Addr).
		Int("db", opt.DB).
		Msg("Redis connected")

	return rdb, nil
}

// NewCacheStore returns a Redis-backed store when REDIS_URL is set and an
// in-process store otherwise. The returned func releases the connection.
func NewCacheStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (cache.Store, func(), error) {
	if cfg.RedisURL == "" {
		log.Info().Dur("ttl", cfg.CacheTTL).Msg("Using in-memory report cache")
		return cache.NewMemoryStore(cfg.CacheTTL, 2*cfg.CacheTTL+time.Minute), func() {}, nil
	}

	rdb, err := NewRedisClient(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}
	return cache.NewRedisStore(rdb), func() { _ = rdb.Close() }, nil
}
