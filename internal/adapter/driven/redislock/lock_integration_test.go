//go:build integration

package redislock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupRedis(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("start redis container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("terminate container: %v", err)
		}
	})

	addr, err := container.PortEndpoint(ctx, "6379/tcp", "")
	if err != nil {
		t.Fatalf("get redis endpoint: %v", err)
	}

	return addr
}

func TestLock_ExclusiveUntilReleased(t *testing.T) {
	addr := setupRedis(t)
	ctx := context.Background()

	client, err := NewClient(ctx, addr)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	first := New(client)
	second := New(client)

	ok, err := first.TryAcquire(ctx, "heartbeat", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = second.TryAcquire(ctx, "heartbeat", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok, "second holder is refused while the lock is held")

	require.NoError(t, second.Release(ctx, "heartbeat"))
	ok, err = second.TryAcquire(ctx, "heartbeat", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok, "releasing without holding must not free the lock")

	require.NoError(t, first.Release(ctx, "heartbeat"))
	ok, err = second.TryAcquire(ctx, "heartbeat", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}
