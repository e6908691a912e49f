package image

import (
	"sync"

	"github.com/gogpu/unmult/internal/channel"
)

// Pool is a thread-safe pool of scratch quad slices.
//
// Render bands decode pixels into a scratch slice, run the kernel over it and
// encode it back. Reusing the slices keeps steady-state rendering free of
// allocations.
//
// Thread safety: All methods are safe for concurrent use.
type Pool[T channel.Value] struct {
	mu      sync.Mutex
	free    [][]Quad[T]
	maxSize int // max slices retained
}

// NewPool creates a pool that retains at most maxSize slices.
// A maxSize of 0 means unlimited.
func NewPool[T channel.Value](maxSize int) *Pool[T] {
	return &Pool[T]{maxSize: maxSize}
}

// Get returns an empty slice with capacity for at least n quads.
func (p *Pool[T]) Get(n int) []Quad[T] {
	p.mu.Lock()
	for i := len(p.free) - 1; i >= 0; i-- {
		if s := p.free[i]; cap(s) >= n {
			last := len(p.free) - 1
			p.free[i] = p.free[last]
			p.free[last] = nil
			p.free = p.free[:last]
			p.mu.Unlock()
			return s[:0]
		}
	}
	p.mu.Unlock()

	return make([]Quad[T], 0, n)
}

// Put returns a slice to the pool.
// If the pool is at capacity, the slice is discarded.
func (p *Pool[T]) Put(s []Quad[T]) {
	if cap(s) == 0 {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.maxSize > 0 && len(p.free) >= p.maxSize {
		return
	}
	p.free = append(p.free, s[:0])
}

// Len returns the number of slices currently retained.
func (p *Pool[T]) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.free)
}

// Package-level pools, one per channel type.
var (
	pool8  = NewPool[uint8](64)
	pool16 = NewPool[uint16](64)
	pool32 = NewPool[float32](64)
)

// GetScratch retrieves a scratch slice from the default pool for T.
func GetScratch[T channel.Value](n int) []Quad[T] {
	return defaultPool[T]().Get(n)
}

// PutScratch returns a scratch slice to the default pool for T.
func PutScratch[T channel.Value](s []Quad[T]) {
	defaultPool[T]().Put(s)
}

func defaultPool[T channel.Value]() *Pool[T] {
	var p any
	switch channel.DepthOf[T]() {
	case channel.Depth8:
		p = pool8
	case channel.Depth16:
		p = pool16
	default:
		p = pool32
	}
	return p.(*Pool[T])
}
