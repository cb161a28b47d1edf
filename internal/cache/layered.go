package cache

import "time"

// LayeredCache fronts the disk cache with a memory layer. Reads check
// memory first and promote disk hits; writes and deletes go to both.
type LayeredCache struct {
	hot  Cache
	cold Cache
}

// NewLayeredCache creates the standard memory-over-disk pairing
func NewLayeredCache(memoryTTL time.Duration, diskDir string, diskTTL time.Duration) *LayeredCache {
	return &LayeredCache{
		hot:  NewMemoryCache(memoryTTL, 10*time.Minute),
		cold: NewDiskCache(diskDir, diskTTL),
	}
}

func (l *LayeredCache) Get(key string) ([]byte, bool) {
	if v, ok := l.hot.Get(key); ok {
		return v, true
	}
	v, ok := l.cold.Get(key)
	if !ok {
		return nil, false
	}
	_ = l.hot.Set(key, v, 0)
	return v, true
}

func (l *LayeredCache) Set(key string, value []byte, ttl time.Duration) error {
	if err := l.hot.Set(key, value, ttl); err != nil {
		return err
	}
	return l.cold.Set(key, value, ttl)
}

func (l *LayeredCache) Delete(key string) error {
	_ = l.hot.Delete(key)
	return l.cold.Delete(key)
}

func (l *LayeredCache) Clear() error {
	_ = l.hot.Clear()
	return l.cold.Clear()
}
