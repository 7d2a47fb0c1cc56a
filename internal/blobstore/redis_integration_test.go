//go:build integration

package blobstore

import (
	"context"
	"errors"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"

	"mintgate/pkg/platform/sentinel"
)

func newRedisClient(t *testing.T) *redis.Client {
	t.Helper()
	ctx := context.Background()

	container, err := tcredis.Run(ctx, "redis:7-alpine")
	require.NoError(t, err, "failed to start redis container")
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	url, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	opts, err := redis.ParseURL(url)
	require.NoError(t, err)

	client := redis.NewClient(opts)
	require.NoError(t, client.Ping(ctx).Err())
	t.Cleanup(func() { _ = client.Close() })

	return client
}

func TestRedisStoreIntegration(t *testing.T) {
	ctx := context.Background()
	store := NewRedisStore(newRedisClient(t))

	t.Run("load missing namespace returns not found", func(t *testing.T) {
		_, err := store.Load(ctx, "missing")
		assert.True(t, errors.Is(err, sentinel.ErrNotFound))
	})

	t.Run("save then load round-trips", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, "consent_records", []byte(`[{"id":"a"}]`)))

		data, err := store.Load(ctx, "consent_records")
		require.NoError(t, err)
		assert.Equal(t, []byte(`[{"id":"a"}]`), data)
	})

	t.Run("save overwrites previous blob", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, "consent_records", []byte("first")))
		require.NoError(t, store.Save(ctx, "consent_records", []byte("second")))

		data, err := store.Load(ctx, "consent_records")
		require.NoError(t, err)
		assert.Equal(t, []byte("second"), data)
	})
}
