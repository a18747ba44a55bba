package dataloader

import (
	"container/list"
	"fmt"
	"sync"

	"github.com/tsawler/go-voc/dataset"
)

// Cache is an LRU cache of loaded samples keyed by image identifier.
// It can be shared between DataLoaders working over subsets of the
// same dataset.
type Cache struct {
	mu          sync.Mutex
	cache       map[string]dataset.Sample
	lru         *list.List
	lruMap      map[string]*list.Element
	maxSize     int
	currentSize int

	// Statistics
	hits   int64
	misses int64
}

func NewCache(maxSize int) *Cache {
	return &Cache{
		cache:   make(map[string]dataset.Sample),
		lru:     list.New(),
		lruMap:  make(map[string]*list.Element),
		maxSize: maxSize,
	}
}

// Get retrieves a sample from the cache.
func (c *Cache) Get(key string) (dataset.Sample, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if sample, exists := c.cache[key]; exists {
		if elem, ok := c.lruMap[key]; ok {
			c.lru.MoveToFront(elem)
		}
		c.hits++
		return sample, true
	}

	c.misses++
	return dataset.Sample{}, false
}

// Put adds a sample to the cache, evicting the least recently used
// entries once full.
func (c *Cache) Put(key string, sample dataset.Sample) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.cache[key]; exists {
		if elem, ok := c.lruMap[key]; ok {
			c.lru.MoveToFront(elem)
		}
		return
	}

	elem := c.lru.PushFront(key)
	c.lruMap[key] = elem
	c.cache[key] = sample
	c.currentSize++

	for c.currentSize > c.maxSize && c.lru.Len() > 0 {
		oldest := c.lru.Back()
		if oldest != nil {
			c.removeElement(oldest)
		}
	}
}

func (c *Cache) removeElement(elem *list.Element) {
	key := elem.Value.(string)
	c.lru.Remove(elem)
	delete(c.lruMap, key)
	delete(c.cache, key)
	c.currentSize--
}

// Stats returns cache statistics.
func (c *Cache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return CacheStats{
		Size:    c.currentSize,
		MaxSize: c.maxSize,
		Hits:    c.hits,
		Misses:  c.misses,
		HitRate: c.calculateHitRate(),
	}
}

func (c *Cache) calculateHitRate() float64 {
	total := c.hits + c.misses
	if total == 0 {
		return 0
	}
	return float64(c.hits) / float64(total) * 100
}

// Clear drops all entries. Statistics stay cumulative.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache = make(map[string]dataset.Sample)
	c.lru = list.New()
	c.lruMap = make(map[string]*list.Element)
	c.currentSize = 0
}

// ResetStats resets the hit and miss counters.
func (c *Cache) ResetStats() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hits = 0
	c.misses = 0
}

// CacheStats holds cache statistics.
type CacheStats struct {
	Size    int
	MaxSize int
	Hits    int64
	Misses  int64
	HitRate float64
}

func (cs CacheStats) String() string {
	return fmt.Sprintf("Cache: %d/%d items, Hits: %d, Misses: %d, Hit Rate: %.1f%%",
		cs.Size, cs.MaxSize, cs.Hits, cs.Misses, cs.HitRate)
}
