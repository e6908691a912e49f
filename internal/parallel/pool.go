package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// WorkerPool is a fixed set of goroutines that process bands.
//
// Each worker owns a queue; an idle worker steals from the others, which
// evens out bands whose pixels cost different amounts (zero-alpha pixels
// are much cheaper than the rest).
//
// Thread safety: WorkerPool is safe for concurrent use. Concurrent
// ForRange calls share the workers.
type WorkerPool struct {
	workers int
	queues  []chan func()
	done    chan struct{}
	wg      sync.WaitGroup
	running atomic.Bool

	// submitMu keeps Close from closing done while bands are being queued.
	submitMu sync.RWMutex
}

// NewWorkerPool starts a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	queueSize := max(workers*4, 8)

	p := &WorkerPool{
		workers: workers,
		queues:  make([]chan func(), workers),
		done:    make(chan struct{}),
	}
	for i := range workers {
		p.queues[i] = make(chan func(), queueSize)
	}

	p.running.Store(true)
	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}
	return p
}

func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	own := p.queues[id]
	for {
		select {
		case <-p.done:
			p.drain(own)
			return
		case work := <-own:
			work()
		default:
			if work := p.steal(id); work != nil {
				work()
				continue
			}
			select {
			case <-p.done:
				p.drain(own)
				return
			case work := <-own:
				work()
			}
		}
	}
}

// drain runs whatever is left in queue. Callers of ForRange wait on every
// band they submitted, so queued work must never be dropped.
func (p *WorkerPool) drain(queue chan func()) {
	for {
		select {
		case work := <-queue:
			work()
		default:
			return
		}
	}
}

func (p *WorkerPool) steal(id int) func() {
	for i := range p.workers {
		if i == id {
			continue
		}
		select {
		case work := <-p.queues[i]:
			return work
		default:
		}
	}
	return nil
}

// ForRange splits [start, limit) into bands of at least minSize indices and
// calls f once per band, spread over the workers. It returns when every band
// has finished.
//
// If the pool is closed, the bands run on the calling goroutine.
func (p *WorkerPool) ForRange(start, limit, minSize int, f func(start, limit int)) {
	bands := Bands(start, limit, p.workers*4, minSize)
	if len(bands) == 0 {
		return
	}

	p.submitMu.RLock()
	if len(bands) == 1 || !p.running.Load() {
		p.submitMu.RUnlock()
		for _, b := range bands {
			f(b.Start, b.Limit)
		}
		return
	}

	var wg sync.WaitGroup
	wg.Add(len(bands))
	for i, b := range bands {
		p.queues[i%p.workers] <- func() {
			defer wg.Done()
			f(b.Start, b.Limit)
		}
	}
	p.submitMu.RUnlock()
	wg.Wait()
}

// Close stops the workers after the queued bands have run.
// Close is safe to call multiple times.
func (p *WorkerPool) Close() {
	p.submitMu.Lock()
	if !p.running.CompareAndSwap(true, false) {
		p.submitMu.Unlock()
		return
	}
	close(p.done)
	p.submitMu.Unlock()
	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// IsRunning reports whether the pool still accepts work.
func (p *WorkerPool) IsRunning() bool {
	return p.running.Load()
}
