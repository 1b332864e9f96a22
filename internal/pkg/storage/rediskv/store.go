// Package rediskv provides a Redis-backed implementation of cart.Storage.
package rediskv

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/jcmexdev/greyden-storefront/internal/cart"
)

var _ cart.Storage = (*Store)(nil)

// Store keeps values under "<namespace>:<key>" with no expiry.
type Store struct {
	client    *redis.Client
	namespace string
}

func NewStore(addr, namespace string) *Store {
	return NewStoreWithClient(redis.NewClient(&redis.Options{Addr: addr}), namespace)
}

func NewStoreWithClient(client *redis.Client, namespace string) *Store {
	return &Store{client: client, namespace: namespace}
}

// Ping checks the connection; main calls it once before serving.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis: ping: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := s.client.Get(ctx, s.GenerateKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, cart.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis: get %q: %w", key, err)
	}
	return v, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, s.GenerateKey(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis: set %q: %w", key, err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.GenerateKey(key)).Err(); err != nil {
		return fmt.Errorf("redis: delete %q: %w", key, err)
	}
	return nil
}

func (s *Store) GenerateKey(key string) string {
	if s.namespace == "" {
		return key
	}
	return fmt.Sprintf("%s:%s", s.namespace, key)
}
