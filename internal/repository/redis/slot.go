package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultTimeout = 3 * time.Second

// SlotRepo implements repository.SlotRepository on top of Redis.
// Slots expire through the key TTL.
type SlotRepo struct {
	client  redis.Cmdable
	ttl     time.Duration
	timeout time.Duration
}

// NewSlotRepo creates a new slot repository. A zero ttl keeps slots forever.
func NewSlotRepo(client redis.Cmdable, ttl time.Duration) *SlotRepo {
	return &SlotRepo{
		client:  client,
		ttl:     ttl,
		timeout: defaultTimeout,
	}
}

// Get returns the value stored under key
func (r *SlotRepo) Get(key string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	value, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Put stores value under key and refreshes its TTL
func (r *SlotRepo) Put(key string, value []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	return r.client.Set(ctx, key, value, r.ttl).Err()
}

// Delete empties the slot
func (r *SlotRepo) Delete(key string) error {
	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	return r.client.Del(ctx, key).Err()
}

// CleanExpired is a no-op, Redis expires slots on its own
func (r *SlotRepo) CleanExpired(days int) error {
	return nil
}
