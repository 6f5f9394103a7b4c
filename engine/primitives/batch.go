package primitives

import (
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
)

// Job produces the vertex data of one shape. Jobs run on pool goroutines and must not touch
// the render context.
type Job func() Data

// BoxJob returns a Job generating Box(width, height, depth).
func BoxJob(width, height, depth float32) Job {
	return func() Data { return Box(width, height, depth) }
}

// PlaneJob returns a Job generating Plane(width, height).
func PlaneJob(width, height float32) Job {
	return func() Data { return Plane(width, height) }
}

// SphereJob returns a Job generating Sphere(radius, widthSegments, heightSegments).
func SphereJob(radius float32, widthSegments, heightSegments int) Job {
	return func() Data { return Sphere(radius, widthSegments, heightSegments) }
}

type batch struct {
	workers   int
	queueSize int
	idle      time.Duration
	pool      worker.DynamicWorkerPool
	released  bool
}

// Batch runs generator jobs on a reusable worker pool.
type Batch interface {
	// Generate runs every job and blocks until all of them finished.
	//
	// Parameters:
	//   - jobs: the shapes to generate
	//
	// Returns:
	//   - []Data: one result per job, in job order
	Generate(jobs ...Job) []Data

	// Workers returns the maximum number of jobs running at once.
	//
	// Returns:
	//   - int: the worker count
	Workers() int

	// Release stops the pool and its worker goroutines. The Batch must not be used afterwards.
	// Calling it more than once is a no-op.
	Release()
}

var _ Batch = &batch{}

// NewBatch creates a batch generator. Its worker goroutines live until Release.
//
// Parameters:
//   - options: functional options to configure the batch
//
// Returns:
//   - Batch: the newly created batch generator
func NewBatch(options ...BatchBuilderOption) Batch {
	b := &batch{
		workers:   4,
		queueSize: 256,
		idle:      1 * time.Second,
	}
	for _, option := range options {
		option(b)
	}
	b.pool = worker.NewDynamicWorkerPool(b.workers, b.queueSize, b.idle)
	return b
}

func (b *batch) Generate(jobs ...Job) []Data {
	out := make([]Data, len(jobs))
	if len(jobs) == 0 {
		return out
	}

	// the pool's own Wait only returns once workers idle out, so a WaitGroup is the barrier
	var wg sync.WaitGroup
	for i, job := range jobs {
		wg.Add(1)
		b.pool.SubmitTask(worker.Task{
			ID: i,
			Do: func() (any, error) {
				defer wg.Done()
				out[i] = job()
				return nil, nil
			},
		})
	}
	wg.Wait()
	return out
}

func (b *batch) Workers() int {
	return b.workers
}

func (b *batch) Release() {
	if b.released {
		return
	}
	b.released = true
	b.pool.Stop()
}

// GenerateBatch runs jobs on a fresh pool of the given size, stops the pool and returns the
// data in job order.
//
// Parameters:
//   - jobs: the shapes to generate
//   - workers: the pool size; values below 1 use one worker
//
// Returns:
//   - []Data: one result per job
func GenerateBatch(jobs []Job, workers int) []Data {
	b := NewBatch(WithWorkers(workers))
	defer b.Release()
	return b.Generate(jobs...)
}
