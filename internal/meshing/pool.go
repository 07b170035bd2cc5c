package meshing

import (
	"context"
	"errors"
	"sync"
	"time"

	"voxmesh/internal/profiling"
	"voxmesh/internal/voxel"
	"voxmesh/internal/world"
)

// ErrPoolClosed is returned when submitting to a pool that has shut down.
var ErrPoolClosed = errors.New("meshing: worker pool closed")

// MeshJob represents a meshing job request
type MeshJob struct {
	Coord world.ChunkCoord
	Grid  *voxel.Grid
	// Result channel - will be sent the result when done
	ResultChan chan MeshResult
}

// MeshResult contains the result of a meshing operation
type MeshResult struct {
	Coord    world.ChunkCoord
	Mesh     *MeshBuffer
	Duration time.Duration
	Err      error
}

// WorkerPool meshes independent chunks on a fixed set of goroutines. Grids
// must be fully populated before submission and left untouched until the
// result arrives; each result owns its buffer.
type WorkerPool struct {
	mesher   Mesher
	jobQueue chan MeshJob
	workers  int
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
	once     sync.Once
}

// NewWorkerPool creates a new mesh worker pool
func NewWorkerPool(mesher Mesher, workers int, queueSize int) *WorkerPool {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 0 {
		queueSize = 0
	}
	ctx, cancel := context.WithCancel(context.Background())

	pool := &WorkerPool{
		mesher:   mesher,
		jobQueue: make(chan MeshJob, queueSize),
		workers:  workers,
		ctx:      ctx,
		cancel:   cancel,
	}

	for i := 0; i < workers; i++ {
		pool.wg.Add(1)
		go pool.worker()
	}

	return pool
}

// SubmitJob submits a mesh generation job to the pool
// Returns true if job was submitted successfully, false if queue is full or the pool is closed
func (p *WorkerPool) SubmitJob(job MeshJob) bool {
	if p.ctx.Err() != nil {
		return false
	}
	select {
	case p.jobQueue <- job:
		return true
	default:
		return false
	}
}

// SubmitJobBlocking submits a job and blocks until it's queued, ctx is done or the pool shuts down
func (p *WorkerPool) SubmitJobBlocking(ctx context.Context, job MeshJob) error {
	if p.ctx.Err() != nil {
		return ErrPoolClosed
	}
	select {
	case p.jobQueue <- job:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-p.ctx.Done():
		return ErrPoolClosed
	}
}

func (p *WorkerPool) worker() {
	defer p.wg.Done()

	for {
		select {
		case job := <-p.jobQueue:
			result := p.run(job)
			select {
			case job.ResultChan <- result:
			case <-p.ctx.Done():
				return
			}

		case <-p.ctx.Done():
			return
		}
	}
}

func (p *WorkerPool) run(job MeshJob) MeshResult {
	defer profiling.Track("meshing.WorkerPool")()

	if job.Grid == nil {
		return MeshResult{Coord: job.Coord, Err: errors.New("meshing: job has no grid")}
	}
	start := time.Now()
	m := p.mesher.Mesh(job.Grid)
	return MeshResult{Coord: job.Coord, Mesh: m, Duration: time.Since(start)}
}

// Shutdown stops the workers and waits for them to exit. Queued jobs that
// have not started are dropped. Safe to call more than once.
func (p *WorkerPool) Shutdown() {
	p.once.Do(func() {
		p.cancel()
		p.wg.Wait()
	})
}

// QueueLength returns the current number of jobs in the queue
func (p *WorkerPool) QueueLength() int {
	return len(p.jobQueue)
}

// Workers returns the number of worker goroutines.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// MeshAll meshes every chunk on a temporary pool and returns results in
// the order of chunks. Chunk coordinates must be unique.
func MeshAll(ctx context.Context, mesher Mesher, chunks []*world.Chunk, workers int) ([]MeshResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	pool := NewWorkerPool(mesher, workers, len(chunks))
	defer pool.Shutdown()

	results := make(chan MeshResult, len(chunks))
	index := make(map[world.ChunkCoord]int, len(chunks))
	for i, c := range chunks {
		index[c.Coord] = i
		if err := pool.SubmitJobBlocking(ctx, MeshJob{Coord: c.Coord, Grid: c.Grid, ResultChan: results}); err != nil {
			return nil, err
		}
	}

	out := make([]MeshResult, len(chunks))
	for range chunks {
		select {
		case r := <-results:
			out[index[r.Coord]] = r
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return out, nil
}
