package cache

import (
	lru "github.com/hashicorp/golang-lru/v2/expirable"
)

func init() {
	register("memory", newMemoryCache)
}

// memoryCache wraps hashicorp/golang-lru/v2 expirable to implement the Cache
// interface in-process.
type memoryCache struct {
	inner *lru.LRU[string, []byte]
}

func newMemoryCache(opts Options) (Cache, error) {
	return &memoryCache{
		inner: lru.NewLRU[string, []byte](opts.Size, nil, opts.TTL),
	}, nil
}

func (m *memoryCache) Get(key string) ([]byte, bool) {
	return m.inner.Get(key)
}

func (m *memoryCache) Set(key string, value []byte) {
	m.inner.Add(key, value)
}

func (m *memoryCache) Contains(key string) bool {
	return m.inner.Contains(key)
}

func (m *memoryCache) Len() int {
	return m.inner.Len()
}

func (m *memoryCache) Close() error {
	return nil
}
