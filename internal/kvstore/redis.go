package kvstore

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis stores values in a Redis database under an optional key prefix
type Redis struct {
	client *redis.Client
	prefix string
}

// OpenRedis connects to addr. An empty addr returns nil so callers can fall
// back to Memory.
func OpenRedis(addr, pass string, db int, prefix string) *Redis {
	if addr == "" {
		return nil
	}
	return NewRedis(redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}), prefix)
}

// NewRedis wraps an existing client
func NewRedis(client *redis.Client, prefix string) *Redis {
	return &Redis{client: client, prefix: prefix}
}

// Ping checks the connection
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *Redis) Get(ctx context.Context, k string) ([]byte, error) {
	b, err := r.client.Get(ctx, r.prefix+k).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	return b, err
}

func (r *Redis) Set(ctx context.Context, k string, v []byte, ttl time.Duration) error {
	return r.client.Set(ctx, r.prefix+k, v, ttl).Err()
}

func (r *Redis) Remove(ctx context.Context, k string) error {
	return r.client.Del(ctx, r.prefix+k).Err()
}

// Close releases the client
func (r *Redis) Close() error {
	return r.client.Close()
}
