// Package blobstore provides durable storage of opaque blobs keyed by
// namespace. The consent ledger persists its full record list as one blob;
// no partial updates, last write wins.
package blobstore

import "context"

// Store is interface-driven to keep domain logic testable and to allow
// swapping in-memory, redis, or postgres persistence without rewiring
// business code.
//
// Load returns sentinel.ErrNotFound when no blob exists for the namespace.
type Store interface {
	Load(ctx context.Context, namespace string) ([]byte, error)
	Save(ctx context.Context, namespace string, data []byte) error
}
