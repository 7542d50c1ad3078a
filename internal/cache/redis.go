package cache

import (
	"context"
	"errors"
	"time"

	"moviematrix/internal/logging"
	"moviematrix/internal/metrics"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// Keys of the derived movie lists.
const (
	KeyTopRated = "movies:top-rated"
	KeyRecent   = "movies:recent"
)

const DefaultTTL = 60 * time.Second

// Cache is a JSON read-through cache on Redis. A nil *Cache is valid and
// behaves as an always-missing cache.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// Connect returns nil when addr is empty or Redis is unreachable; the
// service then runs uncached.
func Connect(ctx context.Context, addr, password string) *Cache {
	if addr == "" {
		logging.Info().Msg("[redis] REDIS_ADDR not set, cache disabled")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logging.Error().Err(err).Str("addr", addr).Msg("[redis] ping failed, cache disabled")
		_ = client.Close()
		return nil
	}

	logging.Info().Str("addr", addr).Msg("[redis] OK")
	return New(client, DefaultTTL)
}

func New(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// GetJSON reads key and, if present, unmarshals it into dest.
func (c *Cache) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if c == nil || c.client == nil {
		return false, nil
	}

	val, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.RecordCache("miss")
		return false, nil
	}
	if err != nil {
		metrics.RecordCache("error")
		return false, err
	}

	if err := json.Unmarshal(val, dest); err != nil {
		metrics.RecordCache("error")
		return false, err
	}
	metrics.RecordCache("hit")
	return true, nil
}

// SetJSON stores value under key with the cache TTL.
func (c *Cache) SetJSON(ctx context.Context, key string, value any) error {
	if c == nil || c.client == nil {
		return nil
	}

	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, b, c.ttl).Err()
}

func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if c == nil || c.client == nil || len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

func (c *Cache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}
