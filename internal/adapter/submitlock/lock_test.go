package submitlock

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestMemoryLocker(t *testing.T) {
	ctx := context.Background()
	locker := NewMemoryLocker()

	ok, err := locker.Acquire(ctx, "orders:1")
	if err != nil || !ok {
		t.Fatalf("expected first acquire to succeed, got ok=%v err=%v", ok, err)
	}

	ok, err = locker.Acquire(ctx, "orders:1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected second acquire of held key to fail")
	}

	ok, err = locker.Acquire(ctx, "orders:2")
	if err != nil || !ok {
		t.Fatalf("expected acquire of different key to succeed, got ok=%v err=%v", ok, err)
	}

	if err := locker.Release(ctx, "orders:1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ok, err = locker.Acquire(ctx, "orders:1")
	if err != nil || !ok {
		t.Fatalf("expected acquire after release to succeed, got ok=%v err=%v", ok, err)
	}
}

func getRedisClient(t *testing.T) *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	return client
}

func TestRedisLocker(t *testing.T) {
	client := getRedisClient(t)
	defer client.Close()

	ctx := context.Background()
	locker := NewRedisLocker(client, time.Minute)
	client.Del(ctx, "poconfirm:test:lock")

	ok, err := locker.Acquire(ctx, "poconfirm:test:lock")
	if err != nil || !ok {
		t.Fatalf("expected first acquire to succeed, got ok=%v err=%v", ok, err)
	}

	ok, err = locker.Acquire(ctx, "poconfirm:test:lock")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected second acquire of held key to fail")
	}

	if err := locker.Release(ctx, "poconfirm:test:lock"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ok, err = locker.Acquire(ctx, "poconfirm:test:lock")
	if err != nil || !ok {
		t.Fatalf("expected acquire after release to succeed, got ok=%v err=%v", ok, err)
	}
	client.Del(ctx, "poconfirm:test:lock")
}
