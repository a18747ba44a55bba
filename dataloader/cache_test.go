package dataloader

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"
)

// TestNewCache tests cache creation
func TestNewCache(t *testing.T) {
	c := NewCache(100)

	if c.maxSize != 100 {
		t.Errorf("Expected max size 100, got %d", c.maxSize)
	}
	if c.currentSize != 0 {
		t.Errorf("Expected initial current size 0, got %d", c.currentSize)
	}
	if c.cache == nil {
		t.Error("Cache map should be initialized")
	}
	if c.lru == nil {
		t.Error("LRU list should be initialized")
	}
	if c.lruMap == nil {
		t.Error("LRU map should be initialized")
	}
	if c.hits != 0 || c.misses != 0 {
		t.Error("Statistics should be initialized to zero")
	}
}

// TestCacheBasicOperations tests basic get/put operations
func TestCacheBasicOperations(t *testing.T) {
	c := NewCache(5)

	// Get on an empty cache misses.
	if _, exists := c.Get("nonexistent"); exists {
		t.Error("Get should return false for nonexistent key")
	}
	if stats := c.Stats(); stats.Misses != 1 {
		t.Errorf("Expected 1 miss, got %d", stats.Misses)
	}

	sample, err := mockSample(7)
	if err != nil {
		t.Fatalf("Failed to build sample: %v", err)
	}
	c.Put("000007", sample)

	if stats := c.Stats(); stats.Size != 1 {
		t.Errorf("Expected cache size 1, got %d", stats.Size)
	}

	retrieved, exists := c.Get("000007")
	if !exists {
		t.Fatal("Get should return true for existing key")
	}
	if retrieved.Image != sample.Image || retrieved.Target != sample.Target {
		t.Error("Retrieved sample should share the cached tensors")
	}

	if stats := c.Stats(); stats.Hits != 1 {
		t.Errorf("Expected 1 hit, got %d", stats.Hits)
	}
}

// putMockSample is a test helper for filling the cache
func putMockSample(t *testing.T, c *Cache, key string, index int) {
	t.Helper()
	sample, err := mockSample(index)
	if err != nil {
		t.Fatalf("Failed to build sample: %v", err)
	}
	c.Put(key, sample)
}

// TestCacheLRUEviction tests LRU eviction policy
func TestCacheLRUEviction(t *testing.T) {
	c := NewCache(3)

	putMockSample(t, c, "key1", 1)
	putMockSample(t, c, "key2", 2)
	putMockSample(t, c, "key3", 3)

	if stats := c.Stats(); stats.Size != 3 {
		t.Errorf("Expected cache size 3, got %d", stats.Size)
	}

	// A fourth item evicts key1, the least recently used.
	putMockSample(t, c, "key4", 4)

	if stats := c.Stats(); stats.Size != 3 {
		t.Errorf("Expected cache size 3 after eviction, got %d", stats.Size)
	}

	if _, exists := c.Get("key1"); exists {
		t.Error("key1 should have been evicted")
	}
	if _, exists := c.Get("key2"); !exists {
		t.Error("key2 should still exist")
	}
	if _, exists := c.Get("key3"); !exists {
		t.Error("key3 should still exist")
	}
	if _, exists := c.Get("key4"); !exists {
		t.Error("key4 should exist")
	}
}

// TestCacheLRUOrder tests LRU ordering with access patterns
func TestCacheLRUOrder(t *testing.T) {
	c := NewCache(3)

	putMockSample(t, c, "key1", 1)
	putMockSample(t, c, "key2", 2)
	putMockSample(t, c, "key3", 3)

	// Accessing key1 makes it most recently used.
	c.Get("key1")

	// A fourth item evicts key2, the oldest unused.
	putMockSample(t, c, "key4", 4)

	if _, exists := c.Get("key2"); exists {
		t.Error("key2 should have been evicted")
	}
	if _, exists := c.Get("key1"); !exists {
		t.Error("key1 should still exist (was accessed recently)")
	}
}

// TestCachePutExisting tests putting to existing keys
func TestCachePutExisting(t *testing.T) {
	c := NewCache(3)

	putMockSample(t, c, "key1", 1)
	initialSize := c.Stats().Size

	putMockSample(t, c, "key1", 1)

	if stats := c.Stats(); stats.Size != initialSize {
		t.Errorf("Expected cache size to remain %d, got %d", initialSize, stats.Size)
	}
	if _, exists := c.Get("key1"); !exists {
		t.Error("key1 should still exist after re-put")
	}
}

// TestCacheStatsAccounting tests statistics calculation
func TestCacheStatsAccounting(t *testing.T) {
	c := NewCache(5)

	stats := c.Stats()
	if stats.Size != 0 || stats.MaxSize != 5 || stats.Hits != 0 || stats.Misses != 0 {
		t.Error("Initial stats incorrect")
	}
	if stats.HitRate != 0 {
		t.Errorf("Expected initial hit rate 0, got %f", stats.HitRate)
	}

	putMockSample(t, c, "key1", 1)
	putMockSample(t, c, "key2", 2)

	c.Get("key1")     // hit
	c.Get("key2")     // hit
	c.Get("key3")     // miss
	c.Get("nonexist") // miss

	stats = c.Stats()
	if stats.Size != 2 {
		t.Errorf("Expected size 2, got %d", stats.Size)
	}
	if stats.Hits != 2 {
		t.Errorf("Expected 2 hits, got %d", stats.Hits)
	}
	if stats.Misses != 2 {
		t.Errorf("Expected 2 misses, got %d", stats.Misses)
	}
	if stats.HitRate != 50.0 {
		t.Errorf("Expected hit rate 50.0, got %f", stats.HitRate)
	}
}

// TestCacheClear tests cache clearing
func TestCacheClear(t *testing.T) {
	c := NewCache(5)

	putMockSample(t, c, "key1", 1)
	putMockSample(t, c, "key2", 2)
	c.Get("key1")

	if stats := c.Stats(); stats.Size != 2 {
		t.Errorf("Expected size 2 before clear, got %d", stats.Size)
	}

	c.Clear()

	// The cache empties but statistics stay cumulative.
	stats := c.Stats()
	if stats.Size != 0 {
		t.Errorf("Expected size 0 after clear, got %d", stats.Size)
	}
	if stats.Hits == 0 {
		t.Error("Expected stats to be preserved after clear")
	}

	if _, exists := c.Get("key1"); exists {
		t.Error("key1 should not exist after clear")
	}
	if _, exists := c.Get("key2"); exists {
		t.Error("key2 should not exist after clear")
	}
}

// TestCacheResetStats tests statistics reset
func TestCacheResetStats(t *testing.T) {
	c := NewCache(5)

	putMockSample(t, c, "key1", 1)
	c.Get("key1")    // hit
	c.Get("nothing") // miss

	stats := c.Stats()
	if stats.Hits == 0 || stats.Misses == 0 {
		t.Error("Expected some hits and misses before reset")
	}

	c.ResetStats()

	stats = c.Stats()
	if stats.Hits != 0 || stats.Misses != 0 {
		t.Errorf("Expected zero stats after reset, got hits: %d, misses: %d", stats.Hits, stats.Misses)
	}
	if stats.HitRate != 0 {
		t.Errorf("Expected zero hit rate after reset, got %f", stats.HitRate)
	}

	// Cache contents remain.
	if stats.Size != 1 {
		t.Errorf("Expected cache size to remain 1, got %d", stats.Size)
	}
}

// TestCacheHitRateCalculation tests hit rate calculation edge cases
func TestCacheHitRateCalculation(t *testing.T) {
	c := NewCache(5)

	if hitRate := c.calculateHitRate(); hitRate != 0 {
		t.Errorf("Expected hit rate 0 with no operations, got %f", hitRate)
	}

	c.hits = 10
	c.misses = 0
	if hitRate := c.calculateHitRate(); hitRate != 100.0 {
		t.Errorf("Expected hit rate 100.0 with only hits, got %f", hitRate)
	}

	c.hits = 0
	c.misses = 5
	if hitRate := c.calculateHitRate(); hitRate != 0.0 {
		t.Errorf("Expected hit rate 0.0 with only misses, got %f", hitRate)
	}

	c.hits = 7
	c.misses = 3
	if hitRate := c.calculateHitRate(); hitRate != 70.0 {
		t.Errorf("Expected hit rate 70.0, got %f", hitRate)
	}
}

// TestCacheConcurrency tests thread safety
func TestCacheConcurrency(t *testing.T) {
	c := NewCache(100)
	numGoroutines := 50
	numOperations := 50

	var wg sync.WaitGroup
	wg.Add(numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			defer wg.Done()

			for j := 0; j < numOperations; j++ {
				key := fmt.Sprintf("key_%d_%d", id, j)
				sample, err := mockSample(j)
				if err != nil {
					t.Errorf("Failed to build sample: %v", err)
					return
				}

				c.Put(key, sample)
				if retrieved, exists := c.Get(key); exists {
					if retrieved.Image == nil || retrieved.Target == nil {
						t.Errorf("Corrupt sample for key %s", key)
					}
				}
				c.Stats()
			}
		}(i)
	}

	done := make(chan bool)
	go func() {
		wg.Wait()
		done <- true
	}()

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("Timeout waiting for concurrent operations")
	}

	stats := c.Stats()
	if stats.Size == 0 {
		t.Error("Expected non-zero cache size after concurrent operations")
	}
	if stats.Hits+stats.Misses == 0 {
		t.Error("Expected some cache operations to have occurred")
	}
}

// TestCacheStatsString tests the string representation of cache stats
func TestCacheStatsString(t *testing.T) {
	stats := CacheStats{
		Size:    10,
		MaxSize: 100,
		Hits:    75,
		Misses:  25,
		HitRate: 75.0,
	}

	str := stats.String()
	for _, substr := range []string{"10/100", "75", "25", "75.0%"} {
		if !strings.Contains(str, substr) {
			t.Errorf("Expected stats string to contain %q, got: %s", substr, str)
		}
	}
}

// BenchmarkCachePut benchmarks put operations
func BenchmarkCachePut(b *testing.B) {
	c := NewCache(1000)
	sample, err := mockSample(0)
	if err != nil {
		b.Fatalf("Failed to build sample: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		key := fmt.Sprintf("key_%d", i%500)
		c.Put(key, sample)
	}
}

// BenchmarkCacheGet benchmarks get operations
func BenchmarkCacheGet(b *testing.B) {
	c := NewCache(1000)
	sample, err := mockSample(0)
	if err != nil {
		b.Fatalf("Failed to build sample: %v", err)
	}
	for i := 0; i < 500; i++ {
		c.Put(fmt.Sprintf("key_%d", i), sample)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Get(fmt.Sprintf("key_%d", i%500))
	}
}
