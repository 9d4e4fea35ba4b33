package workerpools

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"

	"traffic-analytics/internal/shared/loggers"
)

// OverflowPolicy decides what happens to a task submitted while the queue is full.
type OverflowPolicy int

const (
	// CallerRuns executes the task on the submitting goroutine, slowing the producer down.
	CallerRuns OverflowPolicy = iota
	// Discard drops the task and reports ErrQueueFull.
	Discard
)

var (
	ErrQueueFull  = errors.New("worker pool queue is full")
	ErrPoolClosed = errors.New("worker pool is shut down")
)

// Task is a unit of work executed by a pool worker.
type Task func(ctx context.Context)

// Options configures a Pool.
type Options struct {
	Name          string
	Workers       int
	QueueCapacity int
	Policy        OverflowPolicy
}

// Pool is a fixed-size set of workers draining a bounded task queue.
// The owner constructs it, hands it to producers and shuts it down explicitly.
type Pool struct {
	name   string
	policy OverflowPolicy
	tasks  chan Task

	// ctx is handed to every task; cancelled when Shutdown gives up waiting.
	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.RWMutex
	closed bool

	wg      sync.WaitGroup
	callers sync.WaitGroup // tasks running on submitting goroutines
	logger  loggers.Logger
}

// New starts the workers and returns the running pool.
func New(opts Options, logger loggers.Logger) *Pool {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.QueueCapacity < 0 {
		opts.QueueCapacity = 0
	}
	ctx, cancel := context.WithCancel(context.Background())
	pool := &Pool{
		name:   opts.Name,
		policy: opts.Policy,
		tasks:  make(chan Task, opts.QueueCapacity),
		ctx:    ctx,
		cancel: cancel,
		logger: logger.With().Str(loggers.FieldComponent, "workerpool").Str("pool", opts.Name).Logger(),
	}
	for i := 0; i < opts.Workers; i++ {
		pool.wg.Add(1)
		go func() {
			defer pool.wg.Done()
			for task := range pool.tasks {
				pool.run(task)
			}
		}()
	}
	return pool
}

// Submit enqueues a task. When the queue is full the pool's overflow policy applies.
func (pool *Pool) Submit(task Task) error {
	pool.mu.RLock()
	if pool.closed {
		pool.mu.RUnlock()
		return ErrPoolClosed
	}

	select {
	case pool.tasks <- task:
		pool.mu.RUnlock()
		metricPoolTasksTotal.WithLabelValues(pool.name, outcomeQueued).Inc()
		return nil
	default:
	}

	if pool.policy != CallerRuns {
		pool.mu.RUnlock()
		metricPoolTasksTotal.WithLabelValues(pool.name, outcomeDiscarded).Inc()
		return ErrQueueFull
	}

	// Registered before the lock is released so Shutdown either rejects the task or waits for it.
	pool.callers.Add(1)
	pool.mu.RUnlock()
	defer pool.callers.Done()

	metricPoolTasksTotal.WithLabelValues(pool.name, outcomeCallerRuns).Inc()
	pool.run(task)
	return nil
}

// Shutdown stops accepting tasks and waits for queued and caller-run ones to finish.
// If ctx expires first, running tasks see their context cancelled.
func (pool *Pool) Shutdown(ctx context.Context) error {
	pool.mu.Lock()
	if !pool.closed {
		pool.closed = true
		close(pool.tasks)
	}
	pool.mu.Unlock()

	done := make(chan struct{})
	go func() {
		pool.wg.Wait()
		pool.callers.Wait()
		close(done)
	}()

	select {
	case <-done:
		pool.cancel()
		return nil
	case <-ctx.Done():
		pool.cancel()
		return fmt.Errorf("worker pool %q shutdown: %w", pool.name, ctx.Err())
	}
}

func (pool *Pool) run(task Task) {
	defer func() {
		if r := recover(); r != nil {
			metricPoolTasksTotal.WithLabelValues(pool.name, outcomePanicked).Inc()
			pool.logger.Error().
				Bytes(loggers.FieldErrorStack, debug.Stack()).
				Msgf("worker pool task panic recovered: %v", r)
		}
	}()
	task(pool.ctx)
}
