package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jwebster45206/tower-engine/pkg/state"
	"github.com/jwebster45206/tower-engine/pkg/storage"
)

const (
	sessionKeyPrefix = "session:"
	ageKey           = "age"
)

// RedisStorage implements the Storage interface using Redis. Saves never
// expire.
type RedisStorage struct {
	client *redis.Client
	logger *slog.Logger
}

// Ensure RedisStorage implements Storage interface
var _ storage.Storage = (*RedisStorage)(nil)

// NewRedisStorage creates a Redis storage instance from a redis:// URL.
func NewRedisStorage(redisURL string, logger *slog.Logger) (*RedisStorage, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	return &RedisStorage{
		client: redis.NewClient(opts),
		logger: logger,
	}, nil
}

// Health and lifecycle methods

func (r *RedisStorage) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *RedisStorage) Close() error {
	if err := r.client.Close(); err != nil {
		r.logger.Error("Failed to close Redis connection", "error", err)
		return err
	}
	r.logger.Debug("Redis connection closed")
	return nil
}

// WaitForConnection pings until Redis answers or attempts run out.
func (r *RedisStorage) WaitForConnection(ctx context.Context, attempts int, delay time.Duration) error {
	for i := 0; i < attempts; i++ {
		if err := r.Ping(ctx); err != nil {
			r.logger.Debug("Redis not ready yet", "error", err, "attempt", i+1)

			select {
			case <-ctx.Done():
				return fmt.Errorf("context cancelled while waiting for redis: %w", ctx.Err())
			case <-time.After(delay):
				continue
			}
		}

		r.logger.Debug("Redis connection established")
		return nil
	}

	return fmt.Errorf("redis did not become available after %d attempts", attempts)
}

// Session operations

func (r *RedisStorage) SaveSession(ctx context.Context, slot string, snap *state.Snapshot) error {
	data, err := encodeSnapshot(snap)
	if err != nil {
		r.logger.Error("Failed to marshal session", "slot", slot, "error", err)
		return err
	}

	if err := r.client.Set(ctx, sessionKeyPrefix+slot, data, 0).Err(); err != nil {
		r.logger.Error("Failed to save session", "slot", slot, "error", err)
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (r *RedisStorage) LoadSession(ctx context.Context, slot string) (*state.Snapshot, error) {
	data, err := r.client.Get(ctx, sessionKeyPrefix+slot).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			r.logger.Debug("Session not found", "slot", slot)
			return nil, nil // Return nil for not found
		}
		r.logger.Error("Failed to load session", "slot", slot, "error", err)
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}
	return decodeSnapshot(data)
}

func (r *RedisStorage) DeleteSession(ctx context.Context, slot string) error {
	if err := r.client.Del(ctx, sessionKeyPrefix+slot).Err(); err != nil {
		r.logger.Error("Failed to delete session", "slot", slot, "error", err)
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Age operations

func (r *RedisStorage) SaveAge(ctx context.Context, age int) error {
	if err := r.client.Set(ctx, ageKey, strconv.Itoa(age), 0).Err(); err != nil {
		return fmt.Errorf("failed to save age: %w", err)
	}
	return nil
}

func (r *RedisStorage) LoadAge(ctx context.Context) (int, bool, error) {
	age, err := r.client.Get(ctx, ageKey).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to load age: %w", err)
	}
	return age, true, nil
}
