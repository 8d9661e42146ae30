package lru

import (
	"context"
	"errors"
	"time"

	"github.com/bnema/daily-activity-cli/internal/domain"
	"github.com/bnema/daily-activity-cli/internal/ports"
	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	defaultMaxSize = 64
	defaultTTL     = 30 * time.Second
)

type Config struct {
	// MaxSize is the maximum number of cached keys.
	MaxSize int
	// TTL bounds how long a read may be served without consulting the
	// underlying store. Other processes may write the same file.
	TTL time.Duration
}

type entry struct {
	value    string
	missing  bool
	storedAt time.Time
}

// Store is a read-through cache in front of another KeyValueStore. Writes
// go to the delegate first and update the cache on success.
type Store struct {
	delegate ports.KeyValueStore
	cache    *lru.Cache[string, entry]
	ttl      time.Duration
	clock    ports.Clock
}

var _ ports.KeyValueStore = (*Store)(nil)

// NewStore wraps delegate. Zero config values fall back to defaults.
func NewStore(delegate ports.KeyValueStore, clock ports.Clock, cfg Config) (*Store, error) {
	if delegate == nil {
		return nil, errors.New("lru store requires a delegate")
	}
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if cfg.MaxSize <= 0 {
		cfg.MaxSize = defaultMaxSize
	}
	if cfg.TTL <= 0 {
		cfg.TTL = defaultTTL
	}

	cache, err := lru.New[string, entry](cfg.MaxSize)
	if err != nil {
		return nil, err
	}

	return &Store{delegate: delegate, cache: cache, ttl: cfg.TTL, clock: clock}, nil
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if cached, ok := s.cache.Get(key); ok && s.clock.Now().Sub(cached.storedAt) < s.ttl {
		if cached.missing {
			return "", domain.ErrKeyNotFound
		}
		return cached.value, nil
	}

	value, err := s.delegate.Get(ctx, key)
	switch {
	case err == nil:
		s.cache.Add(key, entry{value: value, storedAt: s.clock.Now()})
		return value, nil
	case errors.Is(err, domain.ErrKeyNotFound):
		s.cache.Add(key, entry{missing: true, storedAt: s.clock.Now()})
		return "", err
	default:
		s.cache.Remove(key)
		return "", err
	}
}

func (s *Store) Put(ctx context.Context, key string, value string) error {
	if err := s.delegate.Put(ctx, key, value); err != nil {
		s.cache.Remove(key)
		return err
	}

	s.cache.Add(key, entry{value: value, storedAt: s.clock.Now()})
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	s.cache.Remove(key)
	return s.delegate.Delete(ctx, key)
}

// Purge drops every cached entry.
func (s *Store) Purge() {
	s.cache.Purge()
}
