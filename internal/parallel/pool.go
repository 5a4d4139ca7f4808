// Package parallel distributes scanline work across CPU cores for the
// compositor's resampling pass.
package parallel

import (
	"runtime"
	"sync"
)

// minRowsPerChunk keeps chunks large enough that goroutine handoff does
// not dominate the resampling work itself.
const minRowsPerChunk = 32

// WorkerPool is a pool of goroutines for parallel row processing.
//
// Work is split into contiguous row chunks pulled from one queue shared
// by all workers. Chunks are sized so that a fast worker picks up slack
// from a slow one without per-row channel traffic.
//
// Thread safety: WorkerPool is safe for concurrent use; concurrent Run
// calls simply share the workers.
type WorkerPool struct {
	workers int
	work    chan chunk
	done    chan struct{}
	wg      sync.WaitGroup
	once    sync.Once
}

// chunk is a half-open row range [lo, hi) with the function to apply and
// the batch it belongs to.
type chunk struct {
	lo, hi int
	fn     func(y int)
	batch  *sync.WaitGroup
}

// NewWorkerPool creates a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	p := &WorkerPool{
		workers: workers,
		work:    make(chan chunk, workers*2),
		done:    make(chan struct{}),
	}
	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker()
	}
	return p
}

func (p *WorkerPool) worker() {
	defer p.wg.Done()
	for {
		select {
		case c := <-p.work:
			for y := c.lo; y < c.hi; y++ {
				c.fn(y)
			}
			c.batch.Done()
		case <-p.done:
			return
		}
	}
}

// Run applies fn to every row in [0, rows), blocking until all rows are
// processed. Rows within a chunk run in order; chunks run concurrently.
func (p *WorkerPool) Run(rows int, fn func(y int)) {
	if rows <= 0 {
		return
	}

	per := rows / (p.workers * 4)
	if per < minRowsPerChunk {
		per = minRowsPerChunk
	}

	var batch sync.WaitGroup
	for lo := 0; lo < rows; lo += per {
		hi := lo + per
		if hi > rows {
			hi = rows
		}
		batch.Add(1)
		p.work <- chunk{lo: lo, hi: hi, fn: fn, batch: &batch}
	}
	batch.Wait()
}

// Close stops the workers. Run must not be called after Close.
func (p *WorkerPool) Close() {
	p.once.Do(func() {
		close(p.done)
	})
	p.wg.Wait()
}

var (
	sharedOnce sync.Once
	shared     *WorkerPool
)

// Rows runs fn over [0, rows) on a process-wide shared pool, creating it
// on first use with GOMAXPROCS workers.
func Rows(rows int, fn func(y int)) {
	sharedOnce.Do(func() {
		shared = NewWorkerPool(0)
	})
	shared.Run(rows, fn)
}
