package screener

import (
	"context"
	"sync"
	"time"

	"github.com/quantbench/stock-screener/pkg/types"
)

// SeriesSource supplies the universe and per-symbol price history.
// Load must be safe for concurrent use; workers never share state beyond it.
type SeriesSource interface {
	// Symbols lists every ticker in the universe.
	Symbols() ([]string, error)

	// Load returns the full price series for one symbol, oldest bar first.
	Load(ctx context.Context, symbol string) ([]types.OHLCV, error)
}

// LoadJob is a single per-symbol load task.
type LoadJob struct {
	Symbol string
}

// LoadResult is the outcome of one load task. Results are purely local:
// aggregation into shared structures happens after all workers finish.
type LoadResult struct {
	Symbol   string
	Data     []types.OHLCV
	Duration time.Duration
	Err      error
}

// WorkerPool fans per-symbol loads out over a bounded set of workers.
// The pool is only used for I/O-bound loads and fetches, never for
// shared mutable state.
type WorkerPool struct {
	workerCount int
	source      SeriesSource
	jobQueue    chan LoadJob
	resultQueue chan LoadResult
	wg          sync.WaitGroup
	ctx         context.Context
	cancel      context.CancelFunc
}

const (
	minWorkers = 1
	maxWorkers = 16
)

// NewWorkerPool creates a load pool with workerCount workers, clamped
// to a sane range.
func NewWorkerPool(ctx context.Context, workerCount, jobBufferSize int, source SeriesSource) *WorkerPool {
	if workerCount < minWorkers {
		workerCount = minWorkers
	}
	if workerCount > maxWorkers {
		workerCount = maxWorkers
	}

	poolCtx, cancel := context.WithCancel(ctx)

	return &WorkerPool{
		workerCount: workerCount,
		source:      source,
		jobQueue:    make(chan LoadJob, jobBufferSize),
		resultQueue: make(chan LoadResult, jobBufferSize),
		ctx:         poolCtx,
		cancel:      cancel,
	}
}

// Start starts the workers.
func (wp *WorkerPool) Start() {
	for i := 0; i < wp.workerCount; i++ {
		wp.wg.Add(1)
		go wp.worker()
	}
}

// Stop stops the pool gracefully after all submitted jobs drain.
func (wp *WorkerPool) Stop() {
	close(wp.jobQueue)
	wp.wg.Wait()
	close(wp.resultQueue)
	wp.cancel()
}

// Submit enqueues one load job.
func (wp *WorkerPool) Submit(job LoadJob) error {
	select {
	case wp.jobQueue <- job:
		return nil
	case <-wp.ctx.Done():
		return wp.ctx.Err()
	}
}

// Results returns the channel completed loads arrive on.
func (wp *WorkerPool) Results() <-chan LoadResult {
	return wp.resultQueue
}

func (wp *WorkerPool) worker() {
	defer wp.wg.Done()

	for {
		select {
		case job, ok := <-wp.jobQueue:
			if !ok {
				return
			}

			result := wp.processJob(job)

			select {
			case wp.resultQueue <- result:
			case <-wp.ctx.Done():
				return
			}

		case <-wp.ctx.Done():
			return
		}
	}
}

func (wp *WorkerPool) processJob(job LoadJob) LoadResult {
	start := time.Now()

	data, err := wp.source.Load(wp.ctx, job.Symbol)

	return LoadResult{
		Symbol:   job.Symbol,
		Data:     data,
		Duration: time.Since(start),
		Err:      err,
	}
}
