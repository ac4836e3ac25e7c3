package cart

import (
	"context"
	"errors"
)

// ErrNotFound is returned by a Store when no value exists under the key.
var ErrNotFound = errors.New("cart: no stored value for key")

// Store is the durable key-value facility the manager persists into.
// Values are opaque to the store; the manager writes JSON-encoded lines.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}
