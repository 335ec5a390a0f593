package engine

import (
	"context"
	"fmt"
	"testing"
	"time"
)

func TestCacheKey_Deterministic(t *testing.T) {
	a := CacheKey("profile_fetch", "dev", "")
	b := CacheKey("profile_fetch", "dev", "")
	if a != b {
		t.Errorf("same parts should produce same key: %q vs %q", a, b)
	}
	c := CacheKey("profile_fetch", "other", "")
	if a == c {
		t.Error("different parts should produce different keys")
	}
	if len(a) != 27 { // "gc:" + 24 hex chars
		t.Errorf("key length = %d, want 27: %q", len(a), a)
	}
}

func TestCacheGetSet_L1(t *testing.T) {
	InitCache("", time.Minute, 100, time.Minute)
	ctx := context.Background()

	key := CacheKey("test", "roundtrip")
	if _, ok := CacheGet(ctx, key); ok {
		t.Fatal("expected miss before set")
	}

	CacheSet(ctx, key, []byte("payload"))
	data, ok := CacheGet(ctx, key)
	if !ok {
		t.Fatal("expected hit after set")
	}
	if string(data) != "payload" {
		t.Errorf("data = %q", data)
	}
}

func TestCacheGet_Expired(t *testing.T) {
	InitCache("", -time.Second, 100, time.Minute)
	ctx := context.Background()

	key := CacheKey("test", "expired")
	CacheSet(ctx, key, []byte("stale"))
	if _, ok := CacheGet(ctx, key); ok {
		t.Error("expired entry should miss")
	}
}

func TestCache_EvictIfNeeded(t *testing.T) {
	InitCache("", time.Minute, 5, time.Minute)
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		CacheSet(ctx, CacheKey("evict", fmt.Sprint(i)), []byte("x"))
	}

	count := 0
	extractCache.l1.Range(func(_, _ any) bool {
		count++
		return true
	})
	if count > 5 {
		t.Errorf("L1 holds %d entries, want at most maxEntries=5", count)
	}
}

func TestCacheGet_Uninitialized(t *testing.T) {
	saved := extractCache
	extractCache = nil
	defer func() { extractCache = saved }()

	if _, ok := CacheGet(context.Background(), "any"); ok {
		t.Error("uninitialized cache must miss")
	}
	// Set on uninitialized cache must be a no-op, not a panic.
	CacheSet(context.Background(), "any", []byte("x"))
}
