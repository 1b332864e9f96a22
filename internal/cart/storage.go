package cart

import (
	"context"
	"errors"
)

// ErrNotFound is returned by a Storage when the key holds no value.
var ErrNotFound = errors.New("cart: key not found")

// Storage is the port for the durable key/value store the cart is mirrored to.
// The store depends on this abstraction, so SQLite, Redis or the in-memory
// implementation can be swapped without touching cart logic.
type Storage interface {
	// Get returns the stored bytes, or ErrNotFound when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set replaces the value stored under key.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
