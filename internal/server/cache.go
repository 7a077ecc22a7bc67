package server

import (
	"sync"
	"time"

	"github.com/mj1618/winhint/internal/model"
	"github.com/mj1618/winhint/internal/platform"
)

// cacheEntry holds a cached window list with its timestamp.
type cacheEntry struct {
	windows   []model.Window
	timestamp time.Time
}

// WindowCache provides a TTL-based cache over window listing, so a burst of
// tool calls does not hit the window manager for every one.
type WindowCache struct {
	mu      sync.Mutex
	entries map[platform.ListOptions]cacheEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewWindowCache creates a new cache. A ttl of 0 disables caching.
func NewWindowCache(ttl time.Duration) *WindowCache {
	return &WindowCache{
		entries: make(map[platform.ListOptions]cacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// ListWindows returns cached windows if within TTL, otherwise lists fresh.
func (c *WindowCache) ListWindows(l platform.WindowLister, opts platform.ListOptions) ([]model.Window, error) {
	if c.ttl == 0 {
		return l.ListWindows(opts)
	}

	c.mu.Lock()
	if entry, ok := c.entries[opts]; ok && c.now().Sub(entry.timestamp) < c.ttl {
		windows := entry.windows
		c.mu.Unlock()
		return windows, nil
	}
	c.mu.Unlock()

	windows, err := l.ListWindows(opts)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[opts] = cacheEntry{windows: windows, timestamp: c.now()}
	c.mu.Unlock()

	return windows, nil
}

// InvalidateAll clears the entire cache.
func (c *WindowCache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[platform.ListOptions]cacheEntry)
}
