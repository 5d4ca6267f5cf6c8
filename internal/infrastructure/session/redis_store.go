package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ebookstore/backend/internal/domain/cart"
)

const keyPrefix = "cart:"

// RedisStore keeps carts in Redis keyed by session ID. Every write
// refreshes the idle expiry so active shoppers never lose their cart.
type RedisStore struct {
	client *redis.Client
	expiry time.Duration
}

// NewRedisStore creates a Redis-backed cart store
func NewRedisStore(client *redis.Client, expiry time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		expiry: expiry,
	}
}

// Get returns the cart for the session, or an empty cart if none exists
func (s *RedisStore) Get(ctx context.Context, sessionID string) (*cart.Cart, error) {
	data, err := s.client.Get(ctx, keyPrefix+sessionID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return cart.New(), nil
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}

	var c cart.Cart
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	return &c, nil
}

// Put stores the cart, refreshing its idle expiry
func (s *RedisStore) Put(ctx context.Context, sessionID string, c *cart.Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := s.client.Set(ctx, keyPrefix+sessionID, data, s.expiry).Err(); err != nil {
		return fmt.Errorf("put cart: %w", err)
	}
	return nil
}

// Remove deletes the session's cart
func (s *RedisStore) Remove(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, keyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("remove cart: %w", err)
	}
	return nil
}
