package ports

import "context"

// KeyValueStore persists small string values. Get returns
// domain.ErrKeyNotFound when key is absent.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key string, value string) error
	Delete(ctx context.Context, key string) error
}
