package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryCacheRoundTrip(t *testing.T) {
	mc := NewMemoryCache(WithMemoryMaxSize(10))
	defer mc.Close()
	ctx := context.Background()

	type row struct {
		Date  string  `json:"date"`
		Close float64 `json:"close"`
	}
	in := []row{{Date: "2024-01-02", Close: 4742.83}, {Date: "2024-01-03", Close: 4704.81}}

	if err := mc.Set(ctx, "prices:^GSPC", in, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}

	var out []row
	if err := mc.Get(ctx, "prices:^GSPC", &out); err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(out) != 2 || out[1].Close != 4704.81 {
		t.Fatalf("unexpected value %+v", out)
	}
}

func TestMemoryCacheMiss(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()

	var out string
	err := mc.Get(context.Background(), "absent", &out)
	if !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected miss, got %v", err)
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	mc := NewMemoryCache()
	defer mc.Close()
	ctx := context.Background()

	if err := mc.Set(ctx, "k", "v", time.Nanosecond); err != nil {
		t.Fatalf("set: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	var out string
	if err := mc.Get(ctx, "k", &out); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected expired miss, got %v", err)
	}
}

func TestMemoryCacheCloseStopsCleanup(t *testing.T) {
	mc := NewMemoryCache(WithMemoryCleanup(time.Millisecond))

	done := make(chan struct{})
	go func() {
		mc.cleanupExpired() // second watcher on the same done channel
		close(done)
	}()

	if err := mc.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("cleanup goroutine did not stop after Close")
	}

	// repeated Close must not panic on the closed channel
	if err := mc.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
}

func TestGenerateKeyWithParams(t *testing.T) {
	key := GenerateKeyWithParams("prices", "^GSPC", "2010-01-01", "2025-12-31")
	if key != "prices:^GSPC:2010-01-01:2025-12-31" {
		t.Fatalf("unexpected key %q", key)
	}
}
