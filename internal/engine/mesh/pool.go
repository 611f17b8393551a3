package mesh

import (
	"sync"

	"github.com/OCharnyshevich/voxel-engine/internal/engine/world"
)

// Result is the outcome of one build: the buffers plus the snapshot
// revision they were built from. The consumer compares the revision against
// the live chunk and drops stale results.
type Result struct {
	Coord    world.ChunkCoord
	Revision uint64
	Buffers  []Buffer
}

// Pool runs mesh builds on a fixed set of workers. Submission is
// non-blocking; a full queue pushes back on the caller, which retries the
// chunk on a later tick since it stays dirty.
type Pool struct {
	builder *Builder
	jobs    chan *world.Neighborhood
	results chan Result
	wg      sync.WaitGroup

	closeOnce sync.Once
}

// NewPool starts workers goroutines meshing through builder. queue bounds
// both the job and result channels.
func NewPool(builder *Builder, workers, queue int) *Pool {
	p := &Pool{
		builder: builder,
		jobs:    make(chan *world.Neighborhood, queue),
		results: make(chan Result, queue),
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.run()
	}
	return p
}

func (p *Pool) run() {
	defer p.wg.Done()
	for n := range p.jobs {
		p.results <- Result{
			Coord:    n.Coord,
			Revision: n.Revision,
			Buffers:  p.builder.Build(n),
		}
	}
}

// Submit queues a snapshot for building. Returns false when the queue is
// full.
func (p *Pool) Submit(n *world.Neighborhood) bool {
	select {
	case p.jobs <- n:
		return true
	default:
		return false
	}
}

// Results is the channel finished builds arrive on. It is closed by Close
// after the workers drain.
func (p *Pool) Results() <-chan Result {
	return p.results
}

// Close stops accepting work, waits for in-flight builds and closes the
// results channel.
func (p *Pool) Close() {
	p.closeOnce.Do(func() {
		close(p.jobs)
		go func() {
			p.wg.Wait()
			close(p.results)
		}()
	})
}
