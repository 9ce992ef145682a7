package redis

import (
	"fmt"
	"testing"

	"github.com/alicebob/miniredis/v2"
)

func TestNewRedisAppliesPoolSize(t *testing.T) {
	t.Parallel()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run() error = %v", err)
	}
	t.Cleanup(mr.Close)

	client, err := NewRedis(fmt.Sprintf("redis://%s", mr.Addr()), 32)
	if err != nil {
		t.Fatalf("NewRedis() error = %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	if got := client.Options().PoolSize; got != 32 {
		t.Fatalf("pool size = %d, want 32", got)
	}
}

func TestNewRedisKeepsDefaultPoolForZero(t *testing.T) {
	t.Parallel()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run() error = %v", err)
	}
	t.Cleanup(mr.Close)

	client, err := NewRedis(fmt.Sprintf("redis://%s", mr.Addr()), 0)
	if err != nil {
		t.Fatalf("NewRedis() error = %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	if got := client.Options().PoolSize; got <= 0 {
		t.Fatalf("pool size = %d, want client default", got)
	}
}

func TestNewRedisRejectsBadURL(t *testing.T) {
	t.Parallel()

	if _, err := NewRedis("not-a-url", 8); err == nil {
		t.Fatal("expected error for malformed url, got nil")
	}
}
