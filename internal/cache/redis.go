package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"

	"github.com/nurpe/fieldops-docs/internal/config"
)

// ErrMiss is returned for absent keys and by a disabled cache.
var ErrMiss = errors.New("cache miss")

const keyPrefix = "fieldops-docs:"

// RedisCache stores rendered documents. A cache built from an empty
// address is disabled and misses every lookup.
type RedisCache struct {
	client  *redis.Client
	ttl     time.Duration
	enabled bool
}

func NewRedisCache(cfg config.RedisConfig) (*RedisCache, error) {
	if !cfg.Enabled() {
		return &RedisCache{enabled: false}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, errors.Wrap(err, "failed to connect to Redis")
	}

	return &RedisCache{client: client, ttl: cfg.TTL, enabled: true}, nil
}

func (c *RedisCache) Enabled() bool {
	return c.enabled
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	if !c.enabled {
		return nil, ErrMiss
	}
	data, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrMiss
		}
		return nil, errors.Wrap(err, "failed to get value from Redis")
	}
	return data, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, data []byte) error {
	if !c.enabled {
		return nil
	}
	if err := c.client.Set(ctx, keyPrefix+key, data, c.ttl).Err(); err != nil {
		return errors.Wrap(err, "failed to set value in Redis")
	}
	return nil
}

func (c *RedisCache) Delete(ctx context.Context, key string) error {
	if !c.enabled {
		return nil
	}
	if err := c.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		return errors.Wrap(err, "failed to delete key from Redis")
	}
	return nil
}

func (c *RedisCache) Close() error {
	if !c.enabled {
		return nil
	}
	return c.client.Close()
}

// BudgetPDFKey is the cache key of a rendered budget. Budgets never change
// after saving, so the id alone identifies the output.
func BudgetPDFKey(budgetID fmt.Stringer) string {
	return "budget-pdf:" + budgetID.String()
}
