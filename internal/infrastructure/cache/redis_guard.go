package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/Graviton17/TrustChain-sub001/internal/domain/shared"
	"github.com/Graviton17/TrustChain-sub001/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
)

// DefaultGuardPrefix namespaces guard keys in a shared redis database.
const DefaultGuardPrefix = "trustchain:guard:"

// RedisGuard implements shared.Guard with SET NX markers, so every
// instance pointed at the same redis sees the same claims.
type RedisGuard struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisGuard connects to redis and verifies the connection.
func NewRedisGuard(cfg config.RedisConfig) (*RedisGuard, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisGuardWithClient(client, DefaultGuardPrefix), nil
}

// NewRedisGuardWithClient wraps an existing client.
func NewRedisGuardWithClient(client *redis.Client, keyPrefix string) *RedisGuard {
	if keyPrefix == "" {
		keyPrefix = DefaultGuardPrefix
	}
	return &RedisGuard{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// Acquire sets the marker only if absent, with ttl in the same command.
func (g *RedisGuard) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := g.client.SetNX(ctx, g.keyPrefix+key, "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire guard %s: %w", key, err)
	}
	return ok, nil
}

// Release deletes the marker. Releasing an absent key is not an error.
func (g *RedisGuard) Release(ctx context.Context, key string) error {
	if err := g.client.Del(ctx, g.keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to release guard %s: %w", key, err)
	}
	return nil
}

// Held reports whether key is currently claimed.
func (g *RedisGuard) Held(ctx context.Context, key string) (bool, error) {
	n, err := g.client.Exists(ctx, g.keyPrefix+key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check guard %s: %w", key, err)
	}
	return n > 0, nil
}

// Close closes the Redis client
func (g *RedisGuard) Close() error {
	return g.client.Close()
}

var _ shared.Guard = (*RedisGuard)(nil)
