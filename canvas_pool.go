package evolve

import "sync"

// CanvasPool recycles canvases of identical dimensions.
//
// The search loop draws one candidate per iteration and throws most of
// them away; recycling those buffers keeps the loop from allocating a
// full-size canvas every iteration.
//
// Thread safety: All methods are safe for concurrent use.
type CanvasPool struct {
	mu      sync.Mutex
	buckets map[poolKey][]*Canvas
	maxSize int // max canvases per bucket
}

// poolKey identifies a bucket of identically sized canvases.
type poolKey struct {
	width  int
	height int
}

// NewCanvasPool creates a pool that retains at most maxPerBucket canvases
// per size. A maxPerBucket of 0 means unlimited.
func NewCanvasPool(maxPerBucket int) *CanvasPool {
	return &CanvasPool{
		buckets: make(map[poolKey][]*Canvas),
		maxSize: maxPerBucket,
	}
}

// Get returns a canvas of the given size. Recycled canvases keep their
// previous contents; callers overwrite them with CopyFrom or Clear.
func (p *CanvasPool) Get(width, height int) *Canvas {
	key := poolKey{width: width, height: height}

	p.mu.Lock()
	bucket := p.buckets[key]
	if n := len(bucket); n > 0 {
		c := bucket[n-1]
		bucket[n-1] = nil
		p.buckets[key] = bucket[:n-1]
		p.mu.Unlock()
		return c
	}
	p.mu.Unlock()

	return NewCanvas(width, height)
}

// CloneOf returns a pooled canvas holding a copy of src.
func (p *CanvasPool) CloneOf(src *Canvas) *Canvas {
	c := p.Get(src.width, src.height)
	copy(c.data, src.data)
	return c
}

// Put hands a canvas back for reuse. The caller must not touch it
// afterwards. Nil canvases and canvases beyond bucket capacity are dropped.
func (p *CanvasPool) Put(c *Canvas) {
	if c == nil {
		return
	}
	key := poolKey{width: c.width, height: c.height}

	p.mu.Lock()
	defer p.mu.Unlock()

	bucket := p.buckets[key]
	if p.maxSize > 0 && len(bucket) >= p.maxSize {
		return
	}
	p.buckets[key] = append(bucket, c)
}

// Len returns the number of idle canvases across all buckets.
func (p *CanvasPool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	n := 0
	for _, b := range p.buckets {
		n += len(b)
	}
	return n
}
