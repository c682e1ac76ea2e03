// ABOUTME: This file implements the process-wide cache for idempotent reads
// ABOUTME: Entries expire lazily on lookup after a fixed TTL

package cache

import (
	"strings"
	"sync"
	"time"
)

// DefaultTTL is the maximum age after which a cached response is never served.
const DefaultTTL = 5 * time.Minute

type entry struct {
	payload  []byte
	storedAt time.Time
}

// ResponseCache is a thread-safe in-memory store of recent successful read
// results, keyed by request signature. Expiry is applied at read time; there
// is no background sweep.
type ResponseCache struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
}

// NewResponseCache creates a cache with the given TTL. A non-positive TTL
// falls back to DefaultTTL.
func NewResponseCache(ttl time.Duration) *ResponseCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &ResponseCache{
		entries: make(map[string]entry),
		ttl:     ttl,
	}
}

// Key builds a cache key from the request shape. Endpoint comes first so
// explicit invalidation can match on an endpoint prefix; method and body
// keep distinct logical queries from colliding.
func Key(endpoint, method string, body []byte) string {
	var b strings.Builder
	b.WriteString(endpoint)
	b.WriteByte('|')
	b.WriteString(method)
	b.WriteByte('|')
	b.Write(body)
	return b.String()
}

// Get returns the cached payload for key, or ok=false on a miss. An entry
// older than the TTL is treated as a miss and evicted.
func (c *ResponseCache) Get(key string) ([]byte, bool) {
	c.mu.RLock()
	e, found := c.entries[key]
	c.mu.RUnlock()

	if !found {
		return nil, false
	}
	if time.Since(e.storedAt) >= c.ttl {
		c.mu.Lock()
		// Re-check under the write lock; a concurrent Set may have
		// replaced the entry with a fresh one.
		if cur, ok := c.entries[key]; ok && time.Since(cur.storedAt) >= c.ttl {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return nil, false
	}
	return e.payload, true
}

// Set stores a response payload under key.
func (c *ResponseCache) Set(key string, payload []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{payload: payload, storedAt: time.Now()}
}

// Invalidate removes every entry whose key starts with prefix. Passing an
// endpoint drops all cached reads against it regardless of query or body.
func (c *ResponseCache) Invalidate(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
}

// Clear drops the whole cache.
func (c *ResponseCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]entry)
}

// Len reports the number of stored entries, including any not yet evicted.
func (c *ResponseCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}
