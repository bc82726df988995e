// Package meshing builds renderable meshes on a pool of worker goroutines.
// Mesh construction is pure CPU work, so independent meshes build in parallel;
// GPU initialization still happens later on the render thread.
package meshing

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"viz3d/internal/graphics/renderables/meshes"
)

// ErrPoolClosed is returned for jobs submitted after Shutdown.
var ErrPoolClosed = errors.New("mesh pool shut down")

// BuildFunc produces one mesh.
type BuildFunc func() (*meshes.Mesh, error)

// MeshJob represents a mesh build request
type MeshJob struct {
	ID    int
	Build BuildFunc
	// Result channel - will be sent the result when done
	ResultChan chan MeshResult
}

// MeshResult contains the result of a build
type MeshResult struct {
	ID    int
	Mesh  *meshes.Mesh
	Error error
}

// WorkerPool manages goroutines for mesh building
type WorkerPool struct {
	jobQueue chan MeshJob
	workers  int
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// NewWorkerPool creates a new mesh worker pool
func NewWorkerPool(workers int, queueSize int) *WorkerPool {
	if workers < 1 {
		workers = 1
	}
	ctx, cancel := context.WithCancel(context.Background())

	pool := &WorkerPool{
		jobQueue: make(chan MeshJob, queueSize),
		workers:  workers,
		ctx:      ctx,
		cancel:   cancel,
	}

	// Start worker goroutines
	for i := range workers {
		pool.wg.Add(1)
		go pool.worker(i)
	}

	return pool
}

// SubmitJob queues a build job, blocking while the queue is full.
// It fails once ctx ends or the pool is shut down.
func (p *WorkerPool) SubmitJob(ctx context.Context, job MeshJob) error {
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

// worker is the worker goroutine that processes build jobs
func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	for {
		select {
		case job := <-p.jobQueue:
			result := MeshResult{ID: job.ID}
			result.Mesh, result.Error = runBuild(job.Build)

			// Send result back
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

// runBuild turns a panicking builder into an error so one bad input cannot take the pool down
func runBuild(build BuildFunc) (m *meshes.Mesh, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("mesh build panicked: %v", r)
		}
	}()
	return build()
}

// Shutdown stops the workers and waits for them to exit
func (p *WorkerPool) Shutdown() {
	p.cancel()
	p.wg.Wait()
}

// BuildAll runs every builder on the pool and returns the meshes in input order.
// The first error (by input position) is returned after all jobs finish.
func (p *WorkerPool) BuildAll(ctx context.Context, builds []BuildFunc) ([]*meshes.Mesh, error) {
	results := make(chan MeshResult, len(builds))
	for i, b := range builds {
		if err := p.SubmitJob(ctx, MeshJob{ID: i, Build: b, ResultChan: results}); err != nil {
			return nil, err
		}
	}

	out := make([]*meshes.Mesh, len(builds))
	errs := make([]error, len(builds))
	for range builds {
		select {
		case r := <-results:
			out[r.ID], errs[r.ID] = r.Mesh, r.Error
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("mesh %d: %w", i, err)
		}
	}
	return out, nil
}
