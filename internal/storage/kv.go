package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store is a persisted key-value store holding JSON text blobs, one key per
// logical state container.
type Store interface {
	// GetJSON unmarshals the blob at key into dest. The boolean reports
	// whether the key existed.
	GetJSON(ctx context.Context, key string, dest any) (bool, error)
	SetJSON(ctx context.Context, key string, value any) error
	SetJSONWithTTL(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// RedisStore persists blobs in Redis.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a store backed by the given client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// GetJSON retrieves and unmarshals the blob at key.
func (s *RedisStore) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("storage: get %s: %w", key, err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("storage: unmarshal %s: %w", key, err)
	}
	return true, nil
}

// SetJSON marshals value and writes it at key with no expiry.
func (s *RedisStore) SetJSON(ctx context.Context, key string, value any) error {
	return s.SetJSONWithTTL(ctx, key, value, 0)
}

// SetJSONWithTTL marshals value and writes it at key, expiring after ttl
// when ttl > 0.
func (s *RedisStore) SetJSONWithTTL(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("storage: marshal %s: %w", key, err)
	}
	if err := s.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("storage: set %s: %w", key, err)
	}
	return nil
}

// Delete removes the blob at key. Deleting an absent key is not an error.
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("storage: delete %s: %w", key, err)
	}
	return nil
}
