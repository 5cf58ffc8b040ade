// ABOUTME: Worker pool for background processing of scheduled trends tasks
// ABOUTME: Drives task status transitions and retries with persistent state

package tasks

import (
	"context"
	"sync"
	"time"

	"trends-shared/core/domain"
	"trends-shared/core/interfaces"
	"trends-shared/pkg/utils"
)

// Handler executes a single task. The handler may set the task's Result;
// returning an error marks the attempt as failed.
type Handler func(ctx context.Context, task *domain.TrendsTask) error

// Store persists task state between attempts. TrendsTaskRepository
// satisfies this interface.
type Store interface {
	Save(ctx context.Context, task *domain.TrendsTask) error
}

// WorkerConfig holds configuration for the task worker pool
type WorkerConfig struct {
	MaxWorkers int
	QueueSize  int
	MaxRetries int
}

// DefaultWorkerConfig returns the default worker configuration
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		MaxWorkers: 10,
		QueueSize:  100,
		MaxRetries: 3,
	}
}

// Worker manages background task processing
type Worker struct {
	handler    Handler
	store      Store
	logger     interfaces.Logger
	jobQueue   chan *domain.TrendsTask
	maxWorkers int
	maxRetries int
	wg         sync.WaitGroup
	ctx        context.Context
	cancel     context.CancelFunc
	mu         sync.Mutex
	running    bool
}

// NewWorker creates a task worker pool
func NewWorker(handler Handler, store Store, logger interfaces.Logger, config WorkerConfig) *Worker {
	ctx, cancel := context.WithCancel(context.Background())

	defaults := DefaultWorkerConfig()
	if config.MaxWorkers <= 0 {
		config.MaxWorkers = defaults.MaxWorkers
	}
	if config.QueueSize <= 0 {
		config.QueueSize = defaults.QueueSize
	}
	if config.MaxRetries < 0 {
		config.MaxRetries = defaults.MaxRetries
	}

	return &Worker{
		handler:    handler,
		store:      store,
		logger:     logger,
		jobQueue:   make(chan *domain.TrendsTask, config.QueueSize),
		maxWorkers: config.MaxWorkers,
		maxRetries: config.MaxRetries,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Start starts the worker pool
func (w *Worker) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.running {
		return nil
	}

	for i := 0; i < w.maxWorkers; i++ {
		w.wg.Add(1)
		go w.run()
	}

	w.running = true
	return nil
}

// Stop stops the worker pool gracefully
func (w *Worker) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return nil
	}

	// The queue is deliberately left open: workers requeue retries and
	// Submit may race a shutdown, so workers exit on context cancellation.
	w.cancel()
	w.wg.Wait()

	w.running = false
	return nil
}

// Submit queues a task for processing
func (w *Worker) Submit(task *domain.TrendsTask) error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return ErrWorkerNotRunning
	}
	w.mu.Unlock()

	select {
	case w.jobQueue <- task:
		return nil
	case <-time.After(5 * time.Second):
		return ErrQueueFull
	}
}

// run is the main loop for each worker goroutine
func (w *Worker) run() {
	defer w.wg.Done()

	for {
		select {
		case task := <-w.jobQueue:
			w.process(task)
		case <-w.ctx.Done():
			return
		}
	}
}

// process executes a single task attempt
func (w *Worker) process(task *domain.TrendsTask) {
	if !w.waitUntilDue(task) {
		return
	}

	if !task.Status.CanTransition(domain.TaskStatusInProgress) {
		w.logWarn("Task skipped in unexpected status", task, nil)
		return
	}

	if err := w.transition(task, domain.TaskStatusInProgress); err != nil {
		w.logError("Failed to persist task pickup", task, err)
		return
	}

	err := utils.SafeCall(func() error {
		return w.handler(w.ctx, task)
	}, nil)

	if err == nil {
		if saveErr := w.transition(task, domain.TaskStatusCompleted); saveErr != nil {
			w.logError("Failed to persist task completion", task, saveErr)
		}
		return
	}

	w.logWarn("Task attempt failed", task, err)
	w.retry(task, err)
}

// retry requeues a failed task or marks it failed once retries are exhausted
func (w *Worker) retry(task *domain.TrendsTask, cause error) {
	task.RetryCount++
	task.ErrorMessage = cause.Error()

	if task.RetryCount > w.maxRetries {
		if err := w.transition(task, domain.TaskStatusFailed); err != nil {
			w.logError("Failed to persist task failure", task, err)
		}
		return
	}

	if err := w.transition(task, domain.TaskStatusPending); err != nil {
		w.logError("Failed to requeue task", task, err)
		return
	}

	select {
	case w.jobQueue <- task:
	default:
		// Queue full; the task stays pending in the store for a later sweep
		w.logWarn("Queue full, task left pending", task, nil)
	}
}

// waitUntilDue blocks until the task's schedule time, or returns false
// if the pool shuts down first.
func (w *Worker) waitUntilDue(task *domain.TrendsTask) bool {
	delay := time.Until(task.ScheduleAt)
	if delay <= 0 {
		return true
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return true
	case <-w.ctx.Done():
		return false
	}
}

// saveTimeout bounds each status persist.
const saveTimeout = 5 * time.Second

func (w *Worker) transition(task *domain.TrendsTask, to domain.TaskStatus) error {
	task.Status = to
	task.UpdatedAt = time.Now()

	// Detached from w.ctx so a task finishing during Stop still records
	// its final status instead of being stranded in_progress.
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()

	return w.store.Save(ctx, task)
}

func (w *Worker) logWarn(msg string, task *domain.TrendsTask, err error) {
	if w.logger == nil {
		return
	}
	w.logger.Warn(msg, w.fields(task, err))
}

func (w *Worker) logError(msg string, task *domain.TrendsTask, err error) {
	if w.logger == nil {
		return
	}
	w.logger.Error(msg, w.fields(task, err))
}

func (w *Worker) fields(task *domain.TrendsTask, err error) map[string]interface{} {
	fields := map[string]interface{}{
		"task_id":     task.TaskID,
		"status":      string(task.Status),
		"retry_count": task.RetryCount,
	}
	if err != nil {
		fields["error"] = err.Error()
	}
	return fields
}

// Error definitions
var (
	ErrWorkerNotRunning = &WorkerError{Message: "worker pool is not running"}
	ErrQueueFull        = &WorkerError{Message: "job queue is full"}
)

// WorkerError represents a worker-specific error
type WorkerError struct {
	Message string
}

func (e *WorkerError) Error() string {
	return e.Message
}
