package pipeline

import (
	"context"
	"sync"
)

// RenderJob asks the pool to render one pipeline and deliver the result
// on ResultChan.
type RenderJob struct {
	ID            string
	Pipeline      *RenderPipeline
	PreviewHidden bool
	DisableGreedy bool
	ResultChan    chan RenderResult
}

// RenderResult is the outcome of one RenderJob.
type RenderResult struct {
	ID      string
	Mesh    *MeshTriple
	Changed bool
}

// Pool runs RenderJobs across a fixed set of worker goroutines, the way
// a collaborative editor dispatches concurrent re-renders for many
// independently-edited projects. Each pipeline stays single-threaded;
// only whole Render calls for distinct pipelines run in parallel.
type Pool struct {
	jobQueue chan RenderJob
	workers  int
	ctx      context.Context
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// NewPool starts a pool of workers consuming from a queue of the given
// size.
func NewPool(workers, queueSize int) *Pool {
	ctx, cancel := context.WithCancel(context.Background())

	pool := &Pool{
		jobQueue: make(chan RenderJob, queueSize),
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

// Submit enqueues job, returning false if the queue is full.
func (p *Pool) Submit(job RenderJob) bool {
	select {
	case p.jobQueue <- job:
		return true
	default:
		return false
	}
}

// SubmitBlocking enqueues job, blocking until there's room or the pool
// is shut down.
func (p *Pool) SubmitBlocking(job RenderJob) {
	select {
	case p.jobQueue <- job:
	case <-p.ctx.Done():
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for {
		select {
		case job, ok := <-p.jobQueue:
			if !ok {
				return
			}
			mesh, changed := job.Pipeline.Render(job.PreviewHidden, job.DisableGreedy)
			result := RenderResult{ID: job.ID, Mesh: mesh, Changed: changed}

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

// Shutdown cancels all workers and waits for them to drain in-flight
// jobs.
func (p *Pool) Shutdown() {
	p.cancel()
	close(p.jobQueue)
	p.wg.Wait()
}

// QueueLength returns the number of jobs currently queued.
func (p *Pool) QueueLength() int {
	return len(p.jobQueue)
}
