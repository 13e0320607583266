package iface

import (
	"interfacer/internal/shared/observability"
	"sync"
	"sync/atomic"
)

// Cache memoizes descriptors by canonical absolute path for the lifetime of
// one batch. Loads of the same key are serialized, so a file requested by
// several importers at once is extracted exactly once. Failed loads are not
// stored.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*cacheEntry

	hits   atomic.Int64
	misses atomic.Int64
}

type cacheEntry struct {
	mu   sync.Mutex
	desc *Descriptor
}

type CacheStats struct {
	Entries int
	Hits    int64
	Misses  int64
}

func NewCache() *Cache {
	return &Cache{entries: make(map[string]*cacheEntry)}
}

// Get returns the descriptor stored under key, calling load when there is
// none yet. Concurrent callers for the same key wait for the first load.
func (c *Cache) Get(key string, load func() (*Descriptor, error)) (*Descriptor, error) {
	entry := c.entry(key)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if entry.desc != nil {
		c.hits.Add(1)
		observability.DescriptorCacheHits.Inc()
		return entry.desc, nil
	}

	c.misses.Add(1)
	observability.DescriptorCacheMisses.Inc()
	desc, err := load()
	if err != nil {
		return nil, err
	}
	entry.desc = desc
	return desc, nil
}

func (c *Cache) Len() int {
	c.mu.Lock()
	entries := make([]*cacheEntry, 0, len(c.entries))
	for _, entry := range c.entries {
		entries = append(entries, entry)
	}
	c.mu.Unlock()

	n := 0
	for _, entry := range entries {
		entry.mu.Lock()
		if entry.desc != nil {
			n++
		}
		entry.mu.Unlock()
	}
	return n
}

func (c *Cache) Stats() CacheStats {
	return CacheStats{
		Entries: c.Len(),
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
	}
}

func (c *Cache) entry(key string) *cacheEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	if !ok {
		entry = &cacheEntry{}
		c.entries[key] = entry
	}
	return entry
}
