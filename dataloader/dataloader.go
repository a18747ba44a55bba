package dataloader

import (
	"math/rand"
	"strconv"
	"sync"

	"github.com/tsawler/go-voc/dataset"
)

// Dataset is the contract batching runs against.
type Dataset interface {
	Len() int
	Get(index int) (dataset.Sample, error)
}

// Identifier is implemented by datasets whose samples have stable
// string identities. Caches key by identity so loaders over different
// subsets of one dataset can share entries.
type Identifier interface {
	ID(index int) (string, error)
}

// Config holds configuration for DataLoader.
type Config struct {
	BatchSize int  // samples per batch, default 1
	Shuffle   bool // reshuffle the index order every epoch

	// CacheSize enables an LRU sample cache holding up to this many
	// samples. Zero leaves caching off, so every access re-reads from
	// disk.
	CacheSize int

	// Cache optionally shares an existing cache instead of owning one.
	Cache *Cache
}

// DataLoader iterates a dataset in batches. One epoch runs from Reset
// to the first nil batch from Next.
type DataLoader struct {
	dataset   Dataset
	batchSize int
	shuffle   bool
	indices   []int
	position  int
	mu        sync.Mutex

	cache      *Cache
	ownedCache bool
}

// NewDataLoader creates a new data loader.
func NewDataLoader(ds Dataset, config Config) *DataLoader {
	if config.BatchSize <= 0 {
		config.BatchSize = 1
	}

	indices := make([]int, ds.Len())
	for i := range indices {
		indices[i] = i
	}

	if config.Shuffle {
		rand.Shuffle(len(indices), func(i, j int) {
			indices[i], indices[j] = indices[j], indices[i]
		})
	}

	var cache *Cache
	var ownedCache bool
	if config.Cache != nil {
		cache = config.Cache
	} else if config.CacheSize > 0 {
		cache = NewCache(config.CacheSize)
		ownedCache = true
	}

	return &DataLoader{
		dataset:    ds,
		batchSize:  config.BatchSize,
		shuffle:    config.Shuffle,
		indices:    indices,
		position:   0,
		cache:      cache,
		ownedCache: ownedCache,
	}
}

// Reset rewinds to the start of a new epoch, reshuffling if enabled.
func (dl *DataLoader) Reset() {
	dl.mu.Lock()
	defer dl.mu.Unlock()

	dl.position = 0
	if dl.shuffle {
		rand.Shuffle(len(dl.indices), func(i, j int) {
			dl.indices[i], dl.indices[j] = dl.indices[j], dl.indices[i]
		})
	}
}

// HasNext reports whether the current epoch has batches left.
func (dl *DataLoader) HasNext() bool {
	dl.mu.Lock()
	defer dl.mu.Unlock()
	return dl.position < len(dl.indices)
}

// Next assembles the next batch. The final batch of an epoch may hold
// fewer than BatchSize samples; after the epoch is exhausted Next
// returns (nil, nil) until Reset.
func (dl *DataLoader) Next() (*Batch, error) {
	dl.mu.Lock()
	defer dl.mu.Unlock()

	remaining := len(dl.indices) - dl.position
	if remaining <= 0 {
		return nil, nil
	}

	batchSize := dl.batchSize
	if remaining < batchSize {
		batchSize = remaining
	}

	samples := make([]dataset.Sample, 0, batchSize)
	for i := 0; i < batchSize; i++ {
		idx := dl.indices[dl.position]
		sample, err := dl.getSample(idx)
		if err != nil {
			return nil, err
		}
		samples = append(samples, sample)
		dl.position++
	}

	return Collate(samples)
}

func (dl *DataLoader) getSample(index int) (dataset.Sample, error) {
	if dl.cache == nil {
		return dl.dataset.Get(index)
	}

	key := dl.sampleKey(index)
	if sample, ok := dl.cache.Get(key); ok {
		return sample, nil
	}

	sample, err := dl.dataset.Get(index)
	if err != nil {
		return dataset.Sample{}, err
	}
	dl.cache.Put(key, sample)
	return sample, nil
}

func (dl *DataLoader) sampleKey(index int) string {
	if ider, ok := dl.dataset.(Identifier); ok {
		if id, err := ider.ID(index); err == nil {
			return id
		}
	}
	return strconv.Itoa(index)
}

// NumBatches returns the batches per epoch, counting a short final
// batch.
func (dl *DataLoader) NumBatches() int {
	return (len(dl.indices) + dl.batchSize - 1) / dl.batchSize
}

// Progress returns the current position through the dataset.
func (dl *DataLoader) Progress() (current, total int) {
	dl.mu.Lock()
	defer dl.mu.Unlock()
	return dl.position, len(dl.indices)
}

// Stats returns cache statistics.
func (dl *DataLoader) Stats() string {
	if dl.cache == nil {
		return "Cache: disabled"
	}
	return dl.cache.Stats().String()
}

// ClearCache clears an owned cache. Shared caches are left alone.
func (dl *DataLoader) ClearCache() {
	if dl.ownedCache {
		dl.cache.Clear()
	}
}

// GetCache returns the cache for sharing between DataLoaders. May be
// nil when caching is disabled.
func (dl *DataLoader) GetCache() *Cache {
	return dl.cache
}
