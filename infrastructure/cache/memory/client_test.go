package memory

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryCache_SetAndGet(t *testing.T) {
	cache := NewMemoryCache(time.Minute, time.Minute)
	ctx := context.Background()

	if err := cache.Set(ctx, "key1", []byte("value1"), time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, err := cache.Get(ctx, "key1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	if string(got) != "value1" {
		t.Errorf("Get() = %s, want value1", got)
	}
}

func TestMemoryCache_GetMissingKey(t *testing.T) {
	cache := NewMemoryCache(time.Minute, time.Minute)

	_, err := cache.Get(context.Background(), "missing")
	if !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("Get() error = %v, want ErrKeyNotFound", err)
	}
}

func TestMemoryCache_Expiration(t *testing.T) {
	cache := NewMemoryCache(time.Minute, time.Minute)
	ctx := context.Background()

	cache.Set(ctx, "fleeting", []byte("x"), 10*time.Millisecond)
	time.Sleep(20 * time.Millisecond)

	if _, err := cache.Get(ctx, "fleeting"); !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("Get() after expiry error = %v, want ErrKeyNotFound", err)
	}
}

func TestMemoryCache_ZeroTTLStoresIndefinitely(t *testing.T) {
	cache := NewMemoryCache(10*time.Millisecond, time.Minute)
	ctx := context.Background()

	cache.Set(ctx, "pinned", []byte("x"), 0)
	time.Sleep(20 * time.Millisecond)

	if _, err := cache.Get(ctx, "pinned"); err != nil {
		t.Errorf("Get() error = %v, zero TTL should not expire", err)
	}
}

func TestMemoryCache_Delete(t *testing.T) {
	cache := NewMemoryCache(time.Minute, time.Minute)
	ctx := context.Background()

	cache.Set(ctx, "key1", []byte("value1"), time.Minute)

	if err := cache.Delete(ctx, "key1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if _, err := cache.Get(ctx, "key1"); !errors.Is(err, ErrKeyNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrKeyNotFound", err)
	}
}

func TestMemoryCache_DeleteMissingKeyIsNil(t *testing.T) {
	cache := NewMemoryCache(time.Minute, time.Minute)

	if err := cache.Delete(context.Background(), "missing"); err != nil {
		t.Errorf("Delete() of missing key error = %v, want nil", err)
	}
}

func TestMemoryCache_GetReturnsCopy(t *testing.T) {
	cache := NewMemoryCache(time.Minute, time.Minute)
	ctx := context.Background()

	cache.Set(ctx, "key1", []byte("value1"), time.Minute)

	first, _ := cache.Get(ctx, "key1")
	first[0] = 'X'

	second, _ := cache.Get(ctx, "key1")
	if string(second) != "value1" {
		t.Errorf("cached value was mutated through a returned slice: %s", second)
	}
}

func TestMemoryCache_CancelledContext(t *testing.T) {
	cache := NewMemoryCache(time.Minute, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := cache.Get(ctx, "key1"); err == nil {
		t.Error("Get() should fail with a cancelled context")
	}

	if err := cache.Set(ctx, "key1", []byte("v"), time.Minute); err == nil {
		t.Error("Set() should fail with a cancelled context")
	}
}
