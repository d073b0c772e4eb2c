package aliases

import "sync"

// Cache memoizes alias tables per project root. A table is loaded on first
// access and reused for the remainder of the run; it is never invalidated
// mid-run. Write-once-read-many, safe for concurrent file analyses.
type Cache struct {
	mu     sync.RWMutex
	tables map[string]Table
}

func NewCache() *Cache {
	return &Cache{tables: make(map[string]Table)}
}

// Get returns the alias table for rootDir, loading it on first use.
func (c *Cache) Get(rootDir string, extra []Item) Table {
	c.mu.RLock()
	table, ok := c.tables[rootDir]
	c.mu.RUnlock()
	if ok {
		return table
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if table, ok := c.tables[rootDir]; ok {
		return table
	}
	table = Load(rootDir, extra)
	c.tables[rootDir] = table
	return table
}
