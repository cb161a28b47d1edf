package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DiskCache persists payloads as one JSON envelope per key so extraction
// results survive restarts. Expired entries are removed lazily on read.
type DiskCache struct {
	dir        string
	defaultTTL time.Duration
}

// NewDiskCache creates a disk cache rooted at dir
func NewDiskCache(dir string, defaultTTL time.Duration) *DiskCache {
	return &DiskCache{dir: dir, defaultTTL: defaultTTL}
}

type diskEntry struct {
	Payload []byte    `json:"payload"`
	Expires time.Time `json:"expires"`
}

func (d *DiskCache) Get(key string) ([]byte, bool) {
	path := d.entryPath(key)

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}

	var entry diskEntry
	if err := json.Unmarshal(raw, &entry); err != nil {
		_ = os.Remove(path)
		return nil, false
	}
	if time.Now().After(entry.Expires) {
		_ = os.Remove(path)
		return nil, false
	}
	return entry.Payload, true
}

// Set stores the payload; a zero ttl uses the cache default
func (d *DiskCache) Set(key string, value []byte, ttl time.Duration) error {
	if ttl == 0 {
		ttl = d.defaultTTL
	}

	raw, err := json.Marshal(diskEntry{Payload: value, Expires: time.Now().Add(ttl)})
	if err != nil {
		return fmt.Errorf("encode cache entry: %w", err)
	}

	if err := os.MkdirAll(d.dir, 0755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	if err := os.WriteFile(d.entryPath(key), raw, 0644); err != nil {
		return fmt.Errorf("write cache entry: %w", err)
	}
	return nil
}

func (d *DiskCache) Delete(key string) error {
	return os.Remove(d.entryPath(key))
}

func (d *DiskCache) Clear() error {
	return os.RemoveAll(d.dir)
}

// entryPath maps a key to a filename, replacing the key's separators
func (d *DiskCache) entryPath(key string) string {
	name := strings.ReplaceAll(key, ":", "_")
	return filepath.Join(d.dir, name+".json")
}
