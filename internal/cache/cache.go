// Package cache provides a pluggable key-value cache used to memoize title
// analysis snapshots. Providers register themselves by name; the analysis
// facade picks one from configuration.
package cache

import (
	"fmt"
	"sort"
	"sync"
	"time"
)

// Cache is a byte-oriented key-value cache with TTL semantics.
type Cache interface {
	// Get retrieves a value by key. Returns the value and true if found.
	Get(key string) ([]byte, bool)

	// Set stores a value under key, overwriting any existing entry.
	Set(key string, value []byte)

	// Contains reports whether key exists without counting as a lookup.
	Contains(key string) bool

	// Len returns the number of entries currently in the cache.
	Len() int

	// Close releases any resources held by the cache (e.g., network
	// connections). For in-memory caches this is a no-op.
	Close() error
}

// Logger receives error reports from cache operations. A nil Logger silently
// discards them.
type Logger interface {
	Error(msg string, err error)
}

// Options configures a cache provider.
type Options struct {
	// Size is the maximum number of entries for LRU providers.
	Size int

	// TTL is the time-to-live for cache entries.
	TTL time.Duration

	// Logger receives error reports from cache operations.
	Logger Logger

	// RedisAddress is the Redis server address (e.g., "localhost:6379").
	RedisAddress string

	// RedisPassword is the password for the Redis server.
	RedisPassword string

	// RedisDB is the Redis database number.
	RedisDB int

	// Group labels the Prometheus metrics recorded for this cache instance.
	// When non-empty the cache is wrapped with metric instrumentation.
	Group string
}

type constructor func(opts Options) (Cache, error)

var (
	mu       sync.RWMutex
	registry = make(map[string]constructor)
)

// register adds a provider constructor under the given name. Called from
// provider init() functions; panics on duplicates.
func register(name string, fn constructor) {
	mu.Lock()
	defer mu.Unlock()

	if fn == nil {
		panic("cache: register with nil constructor")
	}
	if _, exists := registry[name]; exists {
		panic(fmt.Sprintf("cache: provider %q already registered", name))
	}
	registry[name] = fn
}

// New creates a cache using the named provider. When Options.Group is set the
// returned cache records hit/miss metrics under that label.
func New(provider string, opts Options) (Cache, error) {
	mu.RLock()
	fn, ok := registry[provider]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("cache: unknown provider %q (available: %v)", provider, Providers())
	}

	c, err := fn(opts)
	if err != nil {
		return nil, err
	}

	if opts.Group != "" {
		c = newInstrumentedCache(c, opts.Group)
	}
	return c, nil
}

// Providers returns the registered provider names, sorted.
func Providers() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
