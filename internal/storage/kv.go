// Package storage holds the key/value snapshot backends behind the record store.
// Every backend stores opaque byte payloads and rewrites a key wholesale on Put.
package storage

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("storage: key not found")

type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Close() error
}
