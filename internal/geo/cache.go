package geo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const cacheKeyCountry = "geo:country:%s"

// Locator is the lookup surface shared by Client and CachedLocator.
type Locator interface {
	PublicIP(ctx context.Context) (string, error)
	CountryOf(ctx context.Context, ip string) (string, error)
}

// CachedLocator memoizes country lookups in redis. Public IP lookups are not
// cached since the host address can change.
type CachedLocator struct {
	next Locator
	rdb  redis.Cmdable
	ttl  time.Duration
	l    *zap.Logger
}

func NewCachedLocator(next Locator, rdb redis.Cmdable, ttl time.Duration, l *zap.Logger) *CachedLocator {
	if l == nil {
		l = zap.NewNop()
	}
	return &CachedLocator{next: next, rdb: rdb, ttl: ttl, l: l}
}

func (c *CachedLocator) PublicIP(ctx context.Context) (string, error) {
	return c.next.PublicIP(ctx)
}

func (c *CachedLocator) CountryOf(ctx context.Context, ip string) (string, error) {
	key := fmt.Sprintf(cacheKeyCountry, ip)

	country, err := c.rdb.Get(ctx, key).Result()
	if err == nil {
		return country, nil
	}
	if !errors.Is(err, redis.Nil) {
		c.l.Warn("geo cache read failed", zap.String("key", key), zap.Error(err))
	}

	country, err = c.next.CountryOf(ctx, ip)
	if err != nil {
		return "", err
	}

	if err := c.rdb.Set(ctx, key, country, c.ttl).Err(); err != nil {
		c.l.Warn("geo cache write failed", zap.String("key", key), zap.Error(err))
	}
	return country, nil
}

// NewRedisClient parses a redis:// URL and verifies the connection.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}
	return rdb, nil
}
