// Package parallel distributes per-frame pixel work across CPU cores.
//
// Frame filtering is embarrassingly parallel across output rows, so the
// primary entry point is ForRows, which splits a row range into bands and
// runs them on a shared worker pool. The pool is created once and reused
// for every frame; tearing goroutines up and down per frame would dominate
// the cost of filtering small frames.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// minRowsParallel is the row count below which banding is not worth the
// synchronization overhead and work runs inline.
const minRowsParallel = 64

// WorkerPool is a fixed set of goroutines with per-worker queues. A worker
// prefers its own queue and steals from the others when idle, which keeps
// cores busy when bands finish unevenly (edge bands touch clamped taps and
// run slightly longer).
//
// Thread safety: WorkerPool is safe for concurrent use.
type WorkerPool struct {
	workers    int
	workQueues []chan func()
	done       chan struct{}
	wg         sync.WaitGroup
	running    atomic.Bool
}

// NewWorkerPool creates a pool with the given number of workers.
// Zero or negative means GOMAXPROCS. Workers start immediately.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	queueSize := workers * 4
	if queueSize < 8 {
		queueSize = 8
	}

	p := &WorkerPool{
		workers:    workers,
		workQueues: make([]chan func(), workers),
		done:       make(chan struct{}),
	}
	for i := range p.workQueues {
		p.workQueues[i] = make(chan func(), queueSize)
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker(i)
	}
	return p
}

func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()
	myQueue := p.workQueues[id]

	for {
		select {
		case <-p.done:
			p.drain(myQueue)
			return
		case work := <-myQueue:
			if work != nil {
				work()
			}
		default:
			if stolen := p.steal(id); stolen != nil {
				stolen()
				continue
			}
			select {
			case <-p.done:
				p.drain(myQueue)
				return
			case work := <-myQueue:
				if work != nil {
					work()
				}
			}
		}
	}
}

func (p *WorkerPool) drain(queue chan func()) {
	for {
		select {
		case work := <-queue:
			if work != nil {
				work()
			}
		default:
			return
		}
	}
}

// steal takes one work item from another worker's queue, or returns nil.
func (p *WorkerPool) steal(myID int) func() {
	for i := 0; i < p.workers; i++ {
		if i == myID {
			continue
		}
		select {
		case work := <-p.workQueues[i]:
			return work
		default:
		}
	}
	return nil
}

// ExecuteAll distributes work round-robin across workers and blocks until
// every item has run. A closed pool runs nothing.
func (p *WorkerPool) ExecuteAll(work []func()) {
	if len(work) == 0 || !p.running.Load() {
		return
	}

	var completion sync.WaitGroup
	completion.Add(len(work))
	for i, fn := range work {
		workFn := fn
		wrapped := func() {
			defer completion.Done()
			workFn()
		}
		select {
		case p.workQueues[i%p.workers] <- wrapped:
		case <-p.done:
			completion.Done()
		}
	}
	completion.Wait()
}

// Close stops accepting work, finishes what is queued, and joins the
// workers. Safe to call more than once.
func (p *WorkerPool) Close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

// Workers returns the pool size.
func (p *WorkerPool) Workers() int { return p.workers }

// IsRunning reports whether the pool accepts work.
func (p *WorkerPool) IsRunning() bool { return p.running.Load() }

var (
	sharedOnce sync.Once
	sharedPool *WorkerPool
)

func shared() *WorkerPool {
	sharedOnce.Do(func() {
		sharedPool = NewWorkerPool(0)
	})
	return sharedPool
}

// ForRows runs fn over [0, h) split into one band per worker. Bands are
// disjoint half-open row ranges [y0, y1). fn must not write outside its
// band. Short frames run inline on the calling goroutine.
func ForRows(h int, fn func(y0, y1 int)) {
	if h <= 0 {
		return
	}
	pool := shared()
	workers := pool.Workers()
	if h < minRowsParallel || workers < 2 {
		fn(0, h)
		return
	}

	bands := workers
	if bands > h {
		bands = h
	}
	rowsPer := (h + bands - 1) / bands

	work := make([]func(), 0, bands)
	for y0 := 0; y0 < h; y0 += rowsPer {
		y1 := y0 + rowsPer
		if y1 > h {
			y1 = h
		}
		band0, band1 := y0, y1
		work = append(work, func() { fn(band0, band1) })
	}
	pool.ExecuteAll(work)
}
