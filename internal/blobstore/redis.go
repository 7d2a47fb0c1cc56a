package blobstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"mintgate/pkg/platform/sentinel"
)

// Redis key prefix for namespaced blobs.
const blobKeyPrefix = "blob:"

// RedisStore persists blobs in Redis. Recommended when multiple instances
// need to observe the same consent ledger.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore constructs a Redis-backed blob store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Load(ctx context.Context, namespace string) ([]byte, error) {
	data, err := s.client.Get(ctx, blobKeyPrefix+namespace).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load blob %q: %w", namespace, err)
	}
	return data, nil
}

func (s *RedisStore) Save(ctx context.Context, namespace string, data []byte) error {
	// Blobs never expire; revocation rewrites the namespace.
	if err := s.client.Set(ctx, blobKeyPrefix+namespace, data, 0).Err(); err != nil {
		return fmt.Errorf("save blob %q: %w", namespace, err)
	}
	return nil
}
