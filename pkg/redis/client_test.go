package redis

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestKeyBuilders(t *testing.T) {
	client := &Client{}
	if got := client.CheckoutAddressKey("sess-1"); got != "electrofy:checkout:address:sess-1" {
		t.Fatalf("unexpected checkout key %s", got)
	}
	if got := client.GuestSessionKey("device-9"); got != "electrofy:session:guest:device-9" {
		t.Fatalf("unexpected guest session key %s", got)
	}
	if got := client.CheckoutAddressKey(""); got != "electrofy:checkout:address" {
		t.Fatalf("empty parts should be skipped, got %s", got)
	}
}

func TestSetGetDelLifecycle(t *testing.T) {
	ctx := context.Background()
	mock := newMockCmdable()
	client := &Client{store: mock}

	key := client.CheckoutAddressKey("sess-1")
	if err := client.Set(ctx, key, "addr-42", 30*time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	value, err := client.Get(ctx, key)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if value != "addr-42" {
		t.Fatalf("expected stored address id, got %q", value)
	}

	if err := client.Del(ctx, key); err != nil {
		t.Fatalf("del failed: %v", err)
	}
	if _, err := client.Get(ctx, key); err == nil || err != redis.Nil {
		t.Fatalf("expected redis.Nil after delete, got %v", err)
	}
}

func TestEnsureGuestSession(t *testing.T) {
	ctx := context.Background()
	mock := newMockCmdable()
	client := &Client{store: mock}

	first, err := client.EnsureGuestSession(ctx, "device-9", "candidate-a", time.Hour)
	if err != nil {
		t.Fatalf("ensure failed: %v", err)
	}
	if first != "candidate-a" {
		t.Fatalf("expected candidate to win on first call, got %q", first)
	}

	second, err := client.EnsureGuestSession(ctx, "device-9", "candidate-b", time.Hour)
	if err != nil {
		t.Fatalf("ensure failed: %v", err)
	}
	if second != "candidate-a" {
		t.Fatalf("expected existing session to be returned, got %q", second)
	}
}

type mockCmdable struct {
	data map[string]string
}

func newMockCmdable() *mockCmdable {
	return &mockCmdable{data: make(map[string]string)}
}

func (m *mockCmdable) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (m *mockCmdable) Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	m.data[key] = fmt.Sprint(value)
	return redis.NewStatusResult("OK", nil)
}

func (m *mockCmdable) Get(ctx context.Context, key string) *redis.StringCmd {
	v, ok := m.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *mockCmdable) SetNX(ctx context.Context, key string, value any, expiration time.Duration) *redis.BoolCmd {
	if _, exists := m.data[key]; exists {
		return redis.NewBoolResult(false, nil)
	}
	m.data[key] = fmt.Sprint(value)
	return redis.NewBoolResult(true, nil)
}

func (m *mockCmdable) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	var removed int64
	for _, key := range keys {
		if _, ok := m.data[key]; ok {
			delete(m.data, key)
			removed++
		}
	}
	return redis.NewIntResult(removed, nil)
}
