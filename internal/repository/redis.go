package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"mihman/internal/config"
	"mihman/internal/models"

	"github.com/redis/go-redis/v9"
)

// RedisReservationCache keeps per-guest reservation list snapshots in Redis.
// The snapshot is what a cancellation restores when the write path fails
// half-way, so Set must always store a deep value, never a reference.
type RedisReservationCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisClient creates a Redis client from config.
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

func NewRedisReservationCache(client *redis.Client, ttl time.Duration) *RedisReservationCache {
	return &RedisReservationCache{client: client, ttl: ttl}
}

func reservationKey(guestID string) string {
	return fmt.Sprintf("guest_reservations:%s", guestID)
}

func (r *RedisReservationCache) Get(ctx context.Context, guestID string) ([]*models.Reservation, error) {
	if r.client == nil {
		return nil, fmt.Errorf("redis client is nil")
	}
	val, err := r.client.Get(ctx, reservationKey(guestID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get reservations from redis: %w", err)
	}

	var reservations []*models.Reservation
	if err := json.Unmarshal([]byte(val), &reservations); err != nil {
		return nil, fmt.Errorf("failed to unmarshal reservations: %w", err)
	}
	return reservations, nil
}

func (r *RedisReservationCache) Set(ctx context.Context, guestID string, reservations []*models.Reservation) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	data, err := json.Marshal(reservations)
	if err != nil {
		return fmt.Errorf("failed to marshal reservations: %w", err)
	}

	if err := r.client.Set(ctx, reservationKey(guestID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set reservations in redis: %w", err)
	}
	return nil
}

func (r *RedisReservationCache) Invalidate(ctx context.Context, guestID string) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if err := r.client.Del(ctx, reservationKey(guestID)).Err(); err != nil {
		return fmt.Errorf("failed to delete reservations from redis: %w", err)
	}
	return nil
}

// Ping checks the Redis connection.
func Ping(ctx context.Context, client *redis.Client) error {
	if _, err := client.Ping(ctx).Result(); err != nil {
		return fmt.Errorf("failed to ping Redis: %w", err)
	}
	return nil
}

// Close closes the Redis connection.
func Close(client *redis.Client) error {
	if client != nil {
		return client.Close()
	}
	return nil
}
