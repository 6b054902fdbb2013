package eval

import "sync"

// parseCache memoizes parsed statements keyed by source text. REPL
// sessions re-evaluate the same expression often enough that skipping
// the lexer and parser is worth a small amount of memory. Oldest
// entries are evicted once the cache is full.
type parseCache struct {
	mu      sync.Mutex
	entries map[string]*statement
	order   []string
	max     int
}

func newParseCache(max int) *parseCache {
	return &parseCache{
		entries: make(map[string]*statement, max),
		max:     max,
	}
}

func (c *parseCache) get(src string) (*statement, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	stmt, ok := c.entries[src]
	return stmt, ok
}

func (c *parseCache) put(src string, stmt *statement) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[src]; ok {
		return
	}
	if len(c.order) >= c.max {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
	c.entries[src] = stmt
	c.order = append(c.order, src)
}
