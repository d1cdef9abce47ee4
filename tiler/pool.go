// Package tiler generates tile meshes off the render thread. A fixed pool
// of workers drains a request queue and delivers results on a channel the
// render loop polls; requests for a key already in flight are coalesced.
// Skirted patches go through the geometry cache, so tiles sharing a
// (level, row) shape resolve to one set of buffers.
package tiler

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/mantle3d/mantle/geo"
	"github.com/mantle3d/mantle/terrain"
)

// Job identifies one queued generation request.
type Job struct {
	ID      uuid.UUID
	Key     geo.TileKey
	Skirted bool
}

// Result carries a finished job. Mode is nil when Err is set.
type Result struct {
	Job
	Mode *terrain.GeometryMode
	Err  error
}

type Pool struct {
	cache  *terrain.GeometryCache
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	requests chan Job
	results  chan Result

	mu       sync.Mutex
	inflight map[jobKey]uuid.UUID
}

type jobKey struct {
	key     geo.TileKey
	skirted bool
}

// NewPool starts workers resolving requests through cache. Close the pool,
// or cancel ctx, to stop them.
func NewPool(ctx context.Context, cache *terrain.GeometryCache, workers int) *Pool {
	if workers < 1 {
		workers = 1
	}
	ctx, cancel := context.WithCancel(ctx)
	p := &Pool{
		cache:    cache,
		ctx:      ctx,
		cancel:   cancel,
		requests: make(chan Job, workers*4),
		results:  make(chan Result, workers*4),
		inflight: make(map[jobKey]uuid.UUID),
	}
	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker()
	}
	return p
}

// Request queues a tile for generation. When the key is already queued or
// being generated, the existing job's ID is returned with false.
func (p *Pool) Request(key geo.TileKey, skirted bool) (uuid.UUID, bool) {
	jk := jobKey{key: key, skirted: skirted}

	p.mu.Lock()
	if id, ok := p.inflight[jk]; ok {
		p.mu.Unlock()
		return id, false
	}
	id := uuid.New()
	p.inflight[jk] = id
	p.mu.Unlock()

	select {
	case p.requests <- Job{ID: id, Key: key, Skirted: skirted}:
		return id, true
	case <-p.ctx.Done():
		p.mu.Lock()
		delete(p.inflight, jk)
		p.mu.Unlock()
		return id, false
	}
}

// Results is the delivery channel. It is closed after Close once all
// workers have drained.
func (p *Pool) Results() <-chan Result {
	return p.results
}

// Close stops the workers and closes the results channel.
func (p *Pool) Close() {
	p.cancel()
	p.wg.Wait()
	close(p.results)
}

// build resolves a job. Skirted patches come from the cache; an unskirted
// shape is not a cached one and is generated fresh.
func (p *Pool) build(job Job) (*terrain.GeometryMode, error) {
	if job.Skirted {
		return p.cache.Get(job.Key.Level, job.Key.Row, false)
	}
	return p.cache.Generator().Generate(job.Key, false)
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for {
		select {
		case <-p.ctx.Done():
			return
		case job := <-p.requests:
			mode, err := p.build(job)

			p.mu.Lock()
			delete(p.inflight, jobKey{key: job.Key, skirted: job.Skirted})
			p.mu.Unlock()

			select {
			case p.results <- Result{Job: job, Mode: mode, Err: err}:
			case <-p.ctx.Done():
				return
			}
		}
	}
}
