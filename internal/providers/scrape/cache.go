package scrape

import "sync"

// ResultCache remembers the single most recent scrape, keyed by exact
// URL. Repeating the previous turn's URL reuses the cached text; any
// new URL overwrites the entry.
type ResultCache struct {
	mu   sync.Mutex
	url  string
	text string
	set  bool
}

func NewResultCache() *ResultCache {
	return &ResultCache{}
}

func (c *ResultCache) Get(url string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.set || c.url != url {
		return "", false
	}
	return c.text, true
}

func (c *ResultCache) Put(url, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.url = url
	c.text = text
	c.set = true
}
