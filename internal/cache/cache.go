// Package cache stores extraction results so repeated evaluations of
// identical text skip the LLM round-trip.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is the storage contract shared by the memory, disk and layered
// implementations
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives the cache key for a source text. The version segment guards
// against stale entries when the stored payload shape changes.
func Key(text string) string {
	sum := sha256.Sum256([]byte(text))
	return "veridical:v1:" + hex.EncodeToString(sum[:])
}
