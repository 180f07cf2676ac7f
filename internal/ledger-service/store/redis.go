package store

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// RedisKV implementa KV sobre um cliente Redis
// Valores persistem sem TTL: o histórico é durável, não cache
type RedisKV struct {
	Client *redis.Client
}

func NewRedisKV(c *redis.Client) *RedisKV { return &RedisKV{Client: c} }

func (r *RedisKV) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := r.Client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (r *RedisKV) Set(ctx context.Context, key, val string) error {
	return r.Client.Set(ctx, key, val, 0).Err()
}

func (r *RedisKV) Del(ctx context.Context, key string) error {
	return r.Client.Del(ctx, key).Err()
}
