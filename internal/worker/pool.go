// Package worker runs the embarrassingly parallel parts of a batch:
// document pipelines and the directive x aircraft evaluation product.
// Jobs share no mutable state; results are collected by one reduction
// step.
package worker

import (
	"context"
	"sync"
)

// Job is a self-contained unit of work.
type Job interface {
	Execute(ctx context.Context) Result
}

// Result is the outcome of one job.
type Result interface {
	Err() error
}

// Pool executes jobs on a fixed number of goroutines.
type Pool struct {
	workers   int
	jobs      chan Job
	results   chan Result
	collector *resultCollector
	drained   chan struct{}
	wg        sync.WaitGroup
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

// NewPool creates a pool with the given worker count.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	p := &Pool{
		workers:   workers,
		jobs:      make(chan Job, workers*2),
		results:   make(chan Result, workers*2),
		collector: &resultCollector{},
		drained:   make(chan struct{}),
		ctx:       ctx,
		cancel:    cancel,
	}

	// Drain results as they arrive. The channels are small, so a
	// caller that submits more jobs than the buffers hold must never
	// be the only reader: without this drain, workers block on a full
	// results channel and Submit deadlocks against them.
	go func() {
		for result := range p.results {
			p.collector.add(result)
		}
		close(p.drained)
	}()

	return p
}

// Start launches the workers.
func (p *Pool) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case job, ok := <-p.jobs:
			if !ok {
				return
			}
			result := job.Execute(p.ctx)
			select {
			case p.results <- result:
			case <-p.ctx.Done():
				return
			}
		}
	}
}

// Submit queues a job. Submissions after Shutdown are dropped.
func (p *Pool) Submit(job Job) {
	select {
	case <-p.ctx.Done():
	case p.jobs <- job:
	}
}

// Wait closes the queue, waits for the workers to drain it, and returns
// every result. Result order is unspecified; jobs carry their own
// position when order matters.
func (p *Pool) Wait() []Result {
	close(p.jobs)

	go func() {
		p.wg.Wait()
		p.closeResults()
	}()

	<-p.drained
	return p.collector.results()
}

// Shutdown cancels in-flight jobs and stops the workers. Because every
// job is independent and idempotent, cancellation between documents
// leaves no partial state behind.
func (p *Pool) Shutdown() {
	p.cancel()
	p.wg.Wait()
	p.closeResults()
}

func (p *Pool) closeResults() {
	p.closeOnce.Do(func() {
		close(p.results)
	})
}

// resultCollector accumulates results from the drain goroutine.
type resultCollector struct {
	mu   sync.Mutex
	list []Result
}

func (c *resultCollector) add(result Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.list = append(c.list, result)
}

func (c *resultCollector) results() []Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.list
}
