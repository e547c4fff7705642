package fuzzy

import (
	"container/list"
	"sync"
)

// DefaultCacheSize is the number of queries a Ranker remembers.
const DefaultCacheSize = 128

// cache is an LRU of rankings keyed by normalized query.
type cache struct {
	mu      sync.Mutex
	maxSize int
	items   map[string]*list.Element
	lru     *list.List
}

type cacheEntry struct {
	query   string
	results []Candidate
}

func newCache(maxSize int) *cache {
	return &cache{
		maxSize: maxSize,
		items:   make(map[string]*list.Element),
		lru:     list.New(),
	}
}

// get returns a copy of the cached ranking for query.
func (c *cache) get(query string) ([]Candidate, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[query]
	if !ok {
		return nil, false
	}
	c.lru.MoveToFront(elem)
	entry := elem.Value.(*cacheEntry) //nolint:errcheck // list only contains *cacheEntry
	return copyCandidates(entry.results), true
}

func (c *cache) set(query string, results []Candidate) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[query]; ok {
		c.lru.MoveToFront(elem)
		elem.Value.(*cacheEntry).results = copyCandidates(results) //nolint:errcheck // list only contains *cacheEntry
		return
	}
	if c.lru.Len() >= c.maxSize {
		if oldest := c.lru.Back(); oldest != nil {
			c.lru.Remove(oldest)
			delete(c.items, oldest.Value.(*cacheEntry).query) //nolint:errcheck // list only contains *cacheEntry
		}
	}
	c.items[query] = c.lru.PushFront(&cacheEntry{query: query, results: copyCandidates(results)})
}

func (c *cache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

func copyCandidates(in []Candidate) []Candidate {
	out := make([]Candidate, len(in))
	for i, c := range in {
		out[i] = c
		if c.Positions != nil {
			out[i].Positions = append([]int(nil), c.Positions...)
		}
	}
	return out
}
