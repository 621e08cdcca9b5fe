package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"car_rental/internal/model"

	"github.com/redis/go-redis/v9"
)

const carKeyPrefix = "car:"

// CarCache holds single-car lookups for the public catalogue.
type CarCache interface {
	Get(ctx context.Context, id string) (*model.Car, bool, error)
	Set(ctx context.Context, car *model.Car) error
	Invalidate(ctx context.Context, id string) error
}

// NewRedisClient creates a go-redis client for addr
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})
}

type redisCarCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCarCache stores cars as JSON under car:<id> with the given TTL
func NewRedisCarCache(client *redis.Client, ttl time.Duration) CarCache {
	return &redisCarCache{client: client, ttl: ttl}
}

func (c *redisCarCache) Get(ctx context.Context, id string) (*model.Car, bool, error) {
	raw, err := c.client.Get(ctx, carKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read cached car: %w", err)
	}
	var car model.Car
	if err := json.Unmarshal(raw, &car); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached car: %w", err)
	}
	return &car, true, nil
}

func (c *redisCarCache) Set(ctx context.Context, car *model.Car) error {
	raw, err := json.Marshal(car)
	if err != nil {
		return fmt.Errorf("failed to encode car: %w", err)
	}
	if err := c.client.Set(ctx, carKeyPrefix+car.ID, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache car: %w", err)
	}
	return nil
}

func (c *redisCarCache) Invalidate(ctx context.Context, id string) error {
	if err := c.client.Del(ctx, carKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cached car: %w", err)
	}
	return nil
}

type noopCarCache struct{}

// NewNoopCarCache is used when REDIS_ADDR is empty
func NewNoopCarCache() CarCache { return noopCarCache{} }

func (noopCarCache) Get(context.Context, string) (*model.Car, bool, error) { return nil, false, nil }
func (noopCarCache) Set(context.Context, *model.Car) error                 { return nil }
func (noopCarCache) Invalidate(context.Context, string) error              { return nil }
