// Package checkout runs the shipping -> payment -> confirmation flow. The
// only state carried between steps is the selected address id, held in a
// short-lived slot so it survives navigation without living in the store.
package checkout

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/electrofy/storefront-client/pkg/errors"
	"github.com/electrofy/storefront-client/pkg/redis"
	goredis "github.com/redis/go-redis/v9"
)

// ErrSlotEmpty marks a read of a slot that was never written, expired, or
// was already consumed.
var ErrSlotEmpty = errors.New(errors.CodeNotFound, "checkout slot is empty")

// Slot stores the selected shipping-address id across route changes. Entries
// expire so an abandoned checkout never leaks into a later session.
type Slot interface {
	Put(ctx context.Context, sessionID, addressID string) error
	Get(ctx context.Context, sessionID string) (string, error)
	Delete(ctx context.Context, sessionID string) error
}

// RedisSlot keys the address id by session with a TTL.
type RedisSlot struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSlot(client *redis.Client, ttl time.Duration) *RedisSlot {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &RedisSlot{client: client, ttl: ttl}
}

func (s *RedisSlot) Put(ctx context.Context, sessionID, addressID string) error {
	if s == nil || s.client == nil {
		return errors.New(errors.CodeInternal, "checkout slot unavailable")
	}
	return s.client.Set(ctx, s.client.CheckoutAddressKey(sessionID), addressID, s.ttl)
}

func (s *RedisSlot) Get(ctx context.Context, sessionID string) (string, error) {
	if s == nil || s.client == nil {
		return "", errors.New(errors.CodeInternal, "checkout slot unavailable")
	}
	value, err := s.client.Get(ctx, s.client.CheckoutAddressKey(sessionID))
	if err != nil {
		if err == goredis.Nil {
			return "", ErrSlotEmpty
		}
		return "", err
	}
	if strings.TrimSpace(value) == "" {
		return "", ErrSlotEmpty
	}
	return value, nil
}

func (s *RedisSlot) Delete(ctx context.Context, sessionID string) error {
	if s == nil || s.client == nil {
		return errors.New(errors.CodeInternal, "checkout slot unavailable")
	}
	return s.client.Del(ctx, s.client.CheckoutAddressKey(sessionID))
}

// MemorySlot is an in-process slot for tests and single-binary setups.
type MemorySlot struct {
	mu      sync.Mutex
	entries map[string]string
}

func NewMemorySlot() *MemorySlot {
	return &MemorySlot{entries: map[string]string{}}
}

func (s *MemorySlot) Put(ctx context.Context, sessionID, addressID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[sessionID] = addressID
	return nil
}

func (s *MemorySlot) Get(ctx context.Context, sessionID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.entries[sessionID]
	if !ok || value == "" {
		return "", ErrSlotEmpty
	}
	return value, nil
}

func (s *MemorySlot) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, sessionID)
	return nil
}
