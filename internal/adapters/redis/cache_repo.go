package redis

// Package redis provides the Redis-based cache adapter for the gateway.

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	apperrors "github.com/launchpath/lp-gateway/internal/errors"
)

// CacheRepo implements ports.CacheRepository using Redis.
type CacheRepo struct {
	client redis.UniversalClient
}

// NewCacheRepo creates a new CacheRepo with the given Redis client.
func NewCacheRepo(client redis.UniversalClient) *CacheRepo {
	return &CacheRepo{client: client}
}

// Set stores a value in Redis with the given key and TTL.
func (r *CacheRepo) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if key == "" {
		return errors.New("key cannot be empty")
	}

	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return apperrors.Wrapf(err, apperrors.ErrCodeUnavailable, "redis set %q", key)
	}
	return nil
}

// Get retrieves a value from Redis by key.
func (r *CacheRepo) Get(ctx context.Context, key string) ([]byte, error) {
	if key == "" {
		return nil, errors.New("key cannot be empty")
	}

	result, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil // Key doesn't exist
		}
		return nil, apperrors.Wrapf(err, apperrors.ErrCodeUnavailable, "redis get %q", key)
	}

	return []byte(result), nil
}

// Delete removes a key from Redis.
func (r *CacheRepo) Delete(ctx context.Context, key string) (bool, error) {
	if key == "" {
		return false, errors.New("key cannot be empty")
	}

	result, err := r.client.Del(ctx, key).Result()
	if err != nil {
		return false, apperrors.Wrapf(err, apperrors.ErrCodeUnavailable, "redis del %q", key)
	}

	return result > 0, nil
}

// Exists checks if a key exists in Redis.
func (r *CacheRepo) Exists(ctx context.Context, key string) (bool, error) {
	if key == "" {
		return false, errors.New("key cannot be empty")
	}

	result, err := r.client.Exists(ctx, key).Result()
	if err != nil {
		return false, apperrors.Wrapf(err, apperrors.ErrCodeUnavailable, "redis exists %q", key)
	}

	return result > 0, nil
}

// SetIfNotExists atomically sets a key only if it doesn't already exist.
// Uses Redis SET with NX and TTL options for guaranteed atomicity.
func (r *CacheRepo) SetIfNotExists(
	ctx context.Context,
	key string,
	value []byte,
	ttl time.Duration,
) (bool, error) {
	if key == "" {
		return false, errors.New("key cannot be empty")
	}

	args := redis.SetArgs{Mode: "NX"}
	if ttl > 0 {
		args.TTL = ttl
	}
	status, err := r.client.SetArgs(ctx, key, value, args).Result()
	if err != nil {
		// When the NX condition is not met (key exists), Redis returns a nil
		// reply; go-redis represents this as redis.Nil. Treat it as "was not
		// set", not an error.
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, apperrors.Wrapf(err, apperrors.ErrCodeUnavailable, "redis SET NX %q", key)
	}

	return status == "OK", nil
}

// Health checks the health of the Redis connection.
func (r *CacheRepo) Health(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}
