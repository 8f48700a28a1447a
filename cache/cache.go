// Package cache provides memoization for compiled trees. Build tools
// that recompile the same sources repeatedly, such as watch modes, can
// skip the parse and generation passes on unchanged input.
package cache

import (
	"crypto/sha256"
	"sort"
	"sync"
)

// CompileCache caches generated source keyed by input text and options.
type CompileCache struct {
	mu        sync.RWMutex
	cache     map[string]string
	maxSize   int
	hits      int64
	misses    int64
	evictions int64
}

// NewCompileCache creates a cache with the specified maximum size.
// When the cache is full, oldest entries are evicted (FIFO).
// Set maxSize to 0 for unlimited cache.
func NewCompileCache(maxSize int) *CompileCache {
	return &CompileCache{
		cache:   make(map[string]string),
		maxSize: maxSize,
	}
}

// hashKey creates a deterministic hash of the source text and the
// option set that shaped the output.
func hashKey(source string, options map[string]string) string {
	// Sort option keys for determinism
	keys := make([]string, 0, len(options))
	for k := range options {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	h := sha256.New()
	h.Write([]byte(source))
	for _, k := range keys {
		h.Write([]byte{0})
		h.Write([]byte(k))
		h.Write([]byte{0})
		h.Write([]byte(options[k]))
	}
	return string(h.Sum(nil))
}

// Get retrieves cached output for the given source and options.
// Returns ("", false) if not found.
func (c *CompileCache) Get(source string, options map[string]string) (string, bool) {
	key := hashKey(source, options)

	c.mu.Lock()
	defer c.mu.Unlock()

	if out, ok := c.cache[key]; ok {
		c.hits++
		return out, true
	}
	c.misses++
	return "", false
}

// Put stores generated output in the cache.
func (c *CompileCache) Put(source string, options map[string]string, output string) {
	key := hashKey(source, options)

	c.mu.Lock()
	defer c.mu.Unlock()

	// Evict if necessary (simple FIFO - remove first key found)
	if c.maxSize > 0 && len(c.cache) >= c.maxSize {
		for k := range c.cache {
			delete(c.cache, k)
			c.evictions++
			break
		}
	}

	c.cache[key] = output
}

// GetOrCompute retrieves from cache or compiles and caches the result.
// The compile error is never cached.
func (c *CompileCache) GetOrCompute(source string, options map[string]string, compile func() (string, error)) (string, error) {
	if out, ok := c.Get(source, options); ok {
		return out, nil
	}

	out, err := compile()
	if err != nil {
		return "", err
	}
	c.Put(source, options, out)
	return out, nil
}

// Clear removes all entries from the cache.
func (c *CompileCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache = make(map[string]string)
}

// Size returns the current number of cached entries.
func (c *CompileCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.cache)
}

// Stats returns cache statistics.
type Stats struct {
	Size      int
	MaxSize   int
	Hits      int64
	Misses    int64
	Evictions int64
	HitRate   float64
}

// Stats returns cache statistics.
func (c *CompileCache) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	total := c.hits + c.misses
	hitRate := 0.0
	if total > 0 {
		hitRate = float64(c.hits) / float64(total)
	}

	return Stats{
		Size:      len(c.cache),
		MaxSize:   c.maxSize,
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
		HitRate:   hitRate,
	}
}
