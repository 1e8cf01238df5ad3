package task

import (
	"log/slog"
	"sync"
)

// RunnerConfig holds configuration for the task runner
type RunnerConfig struct {
	// WorkerCount determines how many concurrent workers process tasks
	WorkerCount int

	// QueueSize determines the buffer size for the in-memory task queue
	QueueSize int
}

// DefaultRunnerConfig returns a RunnerConfig with reasonable defaults
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		WorkerCount: 4,
		QueueSize:   100,
	}
}

// Runner accepts tasks into a bounded queue and executes them on a worker pool.
type Runner struct {
	queue    *TaskQueue
	pool     *WorkerPool
	logger   *slog.Logger
	stopOnce sync.Once
}

// NewRunner creates a Runner. Call Start before submitting work you expect
// to run; tasks submitted earlier wait in the queue.
func NewRunner(config RunnerConfig, logger *slog.Logger) *Runner {
	logger = logger.With("component", "task_runner")
	queue := NewTaskQueue(config.QueueSize, logger)

	return &Runner{
		queue:  queue,
		pool:   NewWorkerPool(queue, WorkerPoolConfig{WorkerCount: config.WorkerCount}, logger),
		logger: logger,
	}
}

// SetErrorHandler allows setting a custom error handler function
func (r *Runner) SetErrorHandler(handler func(task Task, err error)) {
	r.pool.SetErrorHandler(handler)
}

// Submit adds a task to the queue without blocking. It fails with
// ErrQueueFull when the queue is at capacity and ErrQueueClosed after Stop.
func (r *Runner) Submit(task Task) error {
	return r.queue.Enqueue(task)
}

// Start launches the workers.
func (r *Runner) Start() {
	r.pool.Start()
}

// Stop refuses new tasks, cancels running ones and waits for the workers.
func (r *Runner) Stop() {
	r.stopOnce.Do(func() {
		r.queue.Close()
		r.pool.Stop()
	})
}

// Stats returns the number of completed, failed and cancelled tasks.
func (r *Runner) Stats() (completed, failed, cancelled int64) {
	return r.pool.Stats()
}
