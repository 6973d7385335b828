// Package document persists one JSON document per key. Every save overwrites
// the whole document; there is no merge or partial update.
package document

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("document not found")

// Backend stores raw document bytes by key.
type Backend interface {
	// Get returns ErrNotFound when nothing was saved under key yet.
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, body []byte) error
}
