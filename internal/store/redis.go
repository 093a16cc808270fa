package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// DefaultRedisPrefix namespaces quizdrill keys in a shared Redis database.
const DefaultRedisPrefix = "quizdrill:"

// NewRedisClient creates and validates a Redis client connection.
func NewRedisClient(ctx context.Context, url string, log zerolog.Logger) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	log.Info().
		Str("addr", opt.Addr).
		Int("db", opt.DB).
		Msg("Redis connected")

	return rdb, nil
}

// RedisKV implements KV with plain string keys under a prefix.
type RedisKV struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisKV wraps rdb. An empty prefix uses DefaultRedisPrefix.
func NewRedisKV(rdb *redis.Client, prefix string) *RedisKV {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisKV{rdb: rdb, prefix: prefix}
}

func (k *RedisKV) key(key string) string {
	return k.prefix + key
}

func (k *RedisKV) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := k.rdb.Get(ctx, k.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	return value, nil
}

func (k *RedisKV) Set(ctx context.Context, key string, value []byte) error {
	if err := k.rdb.Set(ctx, k.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (k *RedisKV) Delete(ctx context.Context, key string) error {
	if err := k.rdb.Del(ctx, k.key(key)).Err(); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// Close closes the underlying client.
func (k *RedisKV) Close() error {
	return k.rdb.Close()
}
