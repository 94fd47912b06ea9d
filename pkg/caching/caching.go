// Package caching stores fetched HTML on disk so repeat analyses of
// the same URL skip the network (and the courtesy delay) while the
// copy is fresh. The cache is optional; the analyzer runs without one.
package caching

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Cache is a file-per-URL HTML cache with a freshness TTL.
type Cache struct {
	dir string
	ttl time.Duration
}

// NewCache builds a cache rooted at dir. The directory is created
// lazily on first write, so constructing a cache never fails.
func NewCache(dir string, ttl time.Duration) *Cache {
	return &Cache{dir: dir, ttl: ttl}
}

// key hashes the URL into a filesystem-safe name.
func (c *Cache) key(url string) string {
	sum := sha256.Sum256([]byte(url))
	return fmt.Sprintf("%x.html", sum)
}

// Get returns the cached HTML for a URL and whether it was found
// fresh. Any miss condition (absent, expired, unreadable) reports
// false; callers fall through to a live fetch.
func (c *Cache) Get(url string) ([]byte, bool) {
	path := filepath.Join(c.dir, c.key(url))

	info, err := os.Stat(path)
	if err != nil {
		return nil, false
	}
	if time.Since(info.ModTime()) > c.ttl {
		return nil, false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	return data, true
}

// Set stores fetched HTML for a URL, creating the cache directory on
// first use.
func (c *Cache) Set(url string, html []byte) error {
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(c.dir, c.key(url)), html, 0644); err != nil {
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	return nil
}
