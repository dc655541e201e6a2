package checkout

import (
	"context"
	"testing"
)

func TestMemorySlotRoundTrip(t *testing.T) {
	slot := NewMemorySlot()
	ctx := context.Background()

	if _, err := slot.Get(ctx, "s1"); err != ErrSlotEmpty {
		t.Fatalf("empty slot err = %v, want ErrSlotEmpty", err)
	}

	if err := slot.Put(ctx, "s1", "a1"); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, err := slot.Get(ctx, "s1")
	if err != nil || got != "a1" {
		t.Fatalf("Get = %q, %v", got, err)
	}

	// Sessions are isolated.
	if _, err := slot.Get(ctx, "s2"); err != ErrSlotEmpty {
		t.Fatalf("other session err = %v, want ErrSlotEmpty", err)
	}

	// Overwrites replace, not accumulate.
	if err := slot.Put(ctx, "s1", "a2"); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if got, _ := slot.Get(ctx, "s1"); got != "a2" {
		t.Fatalf("Get = %q, want a2", got)
	}

	if err := slot.Delete(ctx, "s1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := slot.Get(ctx, "s1"); err != ErrSlotEmpty {
		t.Fatalf("deleted slot err = %v, want ErrSlotEmpty", err)
	}
}
