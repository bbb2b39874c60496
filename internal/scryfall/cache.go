package scryfall

import "sync"

// Cache is a bounded in-memory card cache keyed by the name the lookup was
// issued with. Runs are one-shot, so entries never expire; the size bound is
// a ceiling, and once reached new entries are simply not stored.
type Cache struct {
	mu      sync.RWMutex
	maxSize int
	entries map[string]*Card
}

// NewCache creates a cache holding at most maxSize cards. maxSize <= 0 means
// unbounded.
func NewCache(maxSize int) *Cache {
	return &Cache{
		maxSize: maxSize,
		entries: make(map[string]*Card),
	}
}

// Get returns the cached card for name, or nil.
func (c *Cache) Get(name string) *Card {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.entries[name]
}

// Put stores a card under name. A full cache drops the insert.
func (c *Cache) Put(name string, card *Card) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[name]; !ok && c.maxSize > 0 && len(c.entries) >= c.maxSize {
		return
	}
	c.entries[name] = card
}

// Invalidate removes the entry for name, if present.
func (c *Cache) Invalidate(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, name)
}

// Clear removes all entries.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*Card)
}

// Len returns the number of cached cards.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
