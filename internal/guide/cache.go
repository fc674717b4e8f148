package guide

import (
	"context"
	"sync"
	"time"
)

// CachedLoader keeps the last successful read of an underlying Loader for
// ttl. Thread-safe.
//
// A failed re-read drops the cached copy, so callers fall back exactly as
// they would without the cache.
type CachedLoader struct {
	next Loader
	ttl  time.Duration
	now  func() time.Time

	mu       sync.Mutex
	body     string
	loadedAt time.Time
	valid    bool
}

// NewCachedLoader wraps next with a cache entry that expires after ttl.
func NewCachedLoader(next Loader, ttl time.Duration) *CachedLoader {
	return &CachedLoader{
		next: next,
		ttl:  ttl,
		now:  time.Now,
	}
}

// Load returns the cached template while it is fresh and re-reads it otherwise.
func (c *CachedLoader) Load(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if c.valid && now.Sub(c.loadedAt) < c.ttl {
		return c.body, nil
	}

	body, err := c.next.Load(ctx)
	if err != nil {
		c.valid = false
		c.body = ""
		return "", err
	}
	c.body = body
	c.loadedAt = now
	c.valid = true
	return body, nil
}

// NewLoader returns a FileLoader for path, wrapped in a CachedLoader when
// ttl is positive.
func NewLoader(path string, ttl time.Duration) Loader {
	fl := FileLoader{Path: path}
	if ttl <= 0 {
		return fl
	}
	return NewCachedLoader(fl, ttl)
}
