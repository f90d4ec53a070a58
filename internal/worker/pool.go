package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ahmetcoskunkizilkaya/recipehub-backend/internal/metrics"
)

// Pool runs tasks on a fixed set of goroutines fed by a bounded queue. When
// the queue is full the submitting goroutine runs the task itself, so work
// is never dropped and Submit never blocks on a slow worker.
type Pool struct {
	name  string
	tasks chan func()
	wg    sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

func NewPool(name string, workers, queueSize int) *Pool {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 0 {
		queueSize = 0
	}

	p := &Pool{
		name:  name,
		tasks: make(chan func(), queueSize),
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.work()
	}
	slog.Info("worker pool started", "pool", name, "workers", workers, "queue_size", queueSize)
	return p
}

func (p *Pool) work() {
	defer p.wg.Done()
	for task := range p.tasks {
		metrics.WorkerPoolQueueDepth.WithLabelValues(p.name).Set(float64(len(p.tasks)))
		p.run(task)
	}
}

func (p *Pool) run(task func()) {
	defer func() {
		if r := recover(); r != nil {
			metrics.WorkerPoolTaskPanics.WithLabelValues(p.name).Inc()
			slog.Error("worker pool task panicked", "pool", p.name, "error", fmt.Sprint(r))
		}
	}()
	task()
}

// Submit queues task, or runs it inline when the queue is full or the pool
// has been shut down.
func (p *Pool) Submit(task func()) {
	p.mu.RLock()
	if p.closed {
		p.mu.RUnlock()
		slog.Warn("worker pool closed, running task on caller", "pool", p.name)
		p.run(task)
		return
	}

	select {
	case p.tasks <- task:
		metrics.WorkerPoolQueueDepth.WithLabelValues(p.name).Set(float64(len(p.tasks)))
		p.mu.RUnlock()
	default:
		p.mu.RUnlock()
		metrics.WorkerPoolCallerRuns.WithLabelValues(p.name).Inc()
		slog.Warn("worker pool queue full, running task on caller", "pool", p.name)
		p.run(task)
	}
}

func (p *Pool) QueueDepth() int {
	return len(p.tasks)
}

// Shutdown stops accepting work and waits for queued tasks to finish or for
// ctx to end.
func (p *Pool) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.tasks)
	}
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		slog.Info("worker pool stopped", "pool", p.name)
		return nil
	case <-ctx.Done():
		return fmt.Errorf("worker pool %s: %w", p.name, ctx.Err())
	}
}
