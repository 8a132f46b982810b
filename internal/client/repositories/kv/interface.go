// Package kv is the persistent key/value store behind the user collection and
// the remembered session. Values are opaque byte strings; callers store JSON.
package kv

import (
	"context"
)

// Repository is a flat key/value store.
//
// Get returns (nil, nil) when the key is absent. Set is an upsert and
// Delete is idempotent.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
