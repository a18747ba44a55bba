package dataloader

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"sync"

	"github.com/cyclopcam/logs"

	"github.com/tsawler/go-voc/dataset"
)

// PrefetchConfig holds configuration for the Prefetcher.
type PrefetchConfig struct {
	BatchSize     int  // samples per batch, default 1
	Shuffle       bool // shuffle indices for the epoch
	PrefetchDepth int  // batches buffered ahead (default: 3)
	Workers       int  // background workers (default: 2)

	// Log receives worker diagnostics. A stdout logger is created when
	// nil.
	Log logs.Log
}

// Prefetcher assembles batches in background workers so consumers
// never wait on image decode. One Start covers one epoch: Next hands
// out batches until io.EOF, then Stop releases the workers. Batch
// order is not deterministic when more than one worker runs.
type Prefetcher struct {
	dataset       Dataset
	batchSize     int
	shuffle       bool
	prefetchDepth int
	workers       int
	log           logs.Log

	jobs         chan []int
	batchChannel chan *Batch
	errorChannel chan error

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	isRunning bool
	mutex     sync.Mutex
}

// NewPrefetcher creates a prefetcher over the dataset.
func NewPrefetcher(ds Dataset, config PrefetchConfig) (*Prefetcher, error) {
	if ds == nil {
		return nil, fmt.Errorf("dataset cannot be nil")
	}
	if config.BatchSize <= 0 {
		config.BatchSize = 1
	}
	if config.PrefetchDepth <= 0 {
		config.PrefetchDepth = 3
	}
	if config.Workers <= 0 {
		config.Workers = 2
	}
	if config.Log == nil {
		logger, err := logs.NewLog()
		if err != nil {
			return nil, fmt.Errorf("failed to create logger: %v", err)
		}
		config.Log = logger
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Prefetcher{
		dataset:       ds,
		batchSize:     config.BatchSize,
		shuffle:       config.Shuffle,
		prefetchDepth: config.PrefetchDepth,
		workers:       config.Workers,
		log:           config.Log,

		jobs:         make(chan []int, config.PrefetchDepth),
		batchChannel: make(chan *Batch, config.PrefetchDepth),
		errorChannel: make(chan error, config.Workers),

		ctx:    ctx,
		cancel: cancel,
	}, nil
}

// Start launches the dispatcher and workers for one epoch.
func (p *Prefetcher) Start() error {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.isRunning {
		return fmt.Errorf("prefetcher is already running")
	}
	if p.ctx.Err() != nil {
		return fmt.Errorf("prefetcher cannot restart after Stop; create a new one")
	}

	indices := make([]int, p.dataset.Len())
	for i := range indices {
		indices[i] = i
	}
	if p.shuffle {
		rand.Shuffle(len(indices), func(i, j int) {
			indices[i], indices[j] = indices[j], indices[i]
		})
	}

	numBatches := (len(indices) + p.batchSize - 1) / p.batchSize
	p.log.Infof("prefetcher: %d batches of up to %d samples, %d workers", numBatches, p.batchSize, p.workers)

	p.wg.Add(1)
	go p.dispatch(indices)

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}

	// Close the output once the epoch is fully delivered.
	go func() {
		p.wg.Wait()
		close(p.batchChannel)
	}()

	p.isRunning = true
	return nil
}

// dispatch slices the epoch indices into batch jobs.
func (p *Prefetcher) dispatch(indices []int) {
	defer p.wg.Done()
	defer close(p.jobs)

	for start := 0; start < len(indices); start += p.batchSize {
		end := start + p.batchSize
		if end > len(indices) {
			end = len(indices)
		}

		select {
		case p.jobs <- indices[start:end]:
		case <-p.ctx.Done():
			return
		}
	}
}

func (p *Prefetcher) worker(workerID int) {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case job, ok := <-p.jobs:
			if !ok {
				return
			}

			batch, err := p.loadBatch(job)
			if err != nil {
				p.log.Warnf("prefetch worker %d: %v", workerID, err)
				select {
				case p.errorChannel <- fmt.Errorf("worker %d: %v", workerID, err):
				case <-p.ctx.Done():
				}
				return
			}

			select {
			case p.batchChannel <- batch:
			case <-p.ctx.Done():
				return
			}
		}
	}
}

func (p *Prefetcher) loadBatch(indices []int) (*Batch, error) {
	samples := make([]dataset.Sample, len(indices))
	for i, idx := range indices {
		sample, err := p.dataset.Get(idx)
		if err != nil {
			return nil, err
		}
		samples[i] = sample
	}
	return Collate(samples)
}

// Next returns the next ready batch, blocking until one is available.
// It returns io.EOF once the epoch is exhausted.
func (p *Prefetcher) Next() (*Batch, error) {
	select {
	case err := <-p.errorChannel:
		return nil, fmt.Errorf("prefetch error: %v", err)
	default:
	}

	select {
	case batch, ok := <-p.batchChannel:
		if !ok {
			// Workers are done; surface a pending error before EOF.
			select {
			case err := <-p.errorChannel:
				return nil, fmt.Errorf("prefetch error: %v", err)
			default:
			}
			return nil, io.EOF
		}
		return batch, nil
	case err := <-p.errorChannel:
		return nil, fmt.Errorf("prefetch error: %v", err)
	case <-p.ctx.Done():
		return nil, p.ctx.Err()
	}
}

// TryNext returns the next batch if one is ready, without blocking.
// It returns (nil, nil) when no batch is ready yet and io.EOF once
// the epoch is exhausted.
func (p *Prefetcher) TryNext() (*Batch, error) {
	select {
	case batch, ok := <-p.batchChannel:
		if !ok {
			select {
			case err := <-p.errorChannel:
				return nil, fmt.Errorf("prefetch error: %v", err)
			default:
			}
			return nil, io.EOF
		}
		return batch, nil
	case err := <-p.errorChannel:
		return nil, fmt.Errorf("prefetch error: %v", err)
	default:
		return nil, nil
	}
}

// Stop cancels outstanding work and waits for the workers to exit.
// Safe to call after the epoch completed.
func (p *Prefetcher) Stop() {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if !p.isRunning {
		return
	}

	p.cancel()
	for range p.batchChannel {
		// Drain until the closer goroutine shuts the channel.
	}

	p.isRunning = false
}
