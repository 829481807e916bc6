package storage

import (
	"context"
	"testing"

	testcontainers "github.com/testcontainers/testcontainers-go"
	rediscontainer "github.com/testcontainers/testcontainers-go/modules/redis"
)

func newRedisKVForTest(t *testing.T) (*RedisKV, func()) {
	t.Helper()
	testcontainers.SkipIfProviderIsNotHealthy(t)

	ctx := context.Background()
	container, err := rediscontainer.Run(ctx, "redis:7.2-alpine")
	if err != nil {
		t.Skipf("redis container unavailable: %v", err)
	}

	endpoint, err := container.Endpoint(ctx, "")
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("container endpoint: %v", err)
	}

	kv, err := NewRedisKV(RedisConfig{Addr: endpoint})
	if err != nil {
		_ = container.Terminate(ctx)
		t.Fatalf("NewRedisKV() error = %v", err)
	}

	cleanup := func() {
		_ = kv.Close()
		_ = container.Terminate(context.Background())
	}
	return kv, cleanup
}
