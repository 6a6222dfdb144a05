package projection

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	appsync "github.com/ovnstore/backend/internal/application/sync"
)

// Applier performs one projection attempt for a task
type Applier interface {
	Apply(ctx context.Context, task appsync.Task) error
}

// RetryQueue re-runs failed projection tasks with exponential backoff.
// The queue is bounded; when it is full Enqueue reports false and the caller
// decides what to log. A dropped task is recovered by the next full resync.
type RetryQueue struct {
	applier     Applier
	logger      *zap.Logger
	tasks       chan appsync.Task
	baseDelay   time.Duration
	maxDelay    time.Duration
	maxAttempts int

	quit chan struct{}
	wg   sync.WaitGroup
	once sync.Once
}

// NewRetryQueue creates a retry queue with the given capacity and backoff bounds
func NewRetryQueue(applier Applier, logger *zap.Logger, size int, baseDelay, maxDelay time.Duration, maxAttempts int) *RetryQueue {
	return &RetryQueue{
		applier:     applier,
		logger:      logger,
		tasks:       make(chan appsync.Task, size),
		baseDelay:   baseDelay,
		maxDelay:    maxDelay,
		maxAttempts: maxAttempts,
		quit:        make(chan struct{}),
	}
}

// Enqueue offers a task to the queue without blocking
func (q *RetryQueue) Enqueue(task appsync.Task) bool {
	select {
	case q.tasks <- task:
		return true
	default:
		return false
	}
}

// Len returns the number of tasks currently waiting
func (q *RetryQueue) Len() int {
	return len(q.tasks)
}

// Start launches the worker goroutine
func (q *RetryQueue) Start() {
	q.wg.Add(1)
	go q.run()
	q.logger.Info("projection retry queue started",
		zap.Int("capacity", cap(q.tasks)),
		zap.Duration("base_delay", q.baseDelay),
		zap.Duration("max_delay", q.maxDelay),
		zap.Int("max_attempts", q.maxAttempts))
}

// Stop drains nothing and stops the worker; queued tasks are abandoned.
// A later resync reconciles anything that was still pending.
func (q *RetryQueue) Stop() {
	q.once.Do(func() {
		close(q.quit)
	})
	q.wg.Wait()
	q.logger.Info("projection retry queue stopped", zap.Int("abandoned", len(q.tasks)))
}

func (q *RetryQueue) run() {
	defer q.wg.Done()
	for {
		select {
		case <-q.quit:
			return
		case task := <-q.tasks:
			q.process(task)
		}
	}
}

func (q *RetryQueue) process(task appsync.Task) {
	delay := q.backoff(task.Attempts)
	select {
	case <-q.quit:
		return
	case <-time.After(delay):
	}

	task.Attempts++
	if err := q.applier.Apply(context.Background(), task); err != nil {
		if task.Attempts >= q.maxAttempts {
			q.logger.Error("projection task dropped after max attempts",
				zap.String("aggregate_type", task.AggregateType),
				zap.String("aggregate_id", task.AggregateID.String()),
				zap.Int("attempts", task.Attempts),
				zap.Error(err))
			return
		}
		q.logger.Warn("projection retry failed",
			zap.String("aggregate_type", task.AggregateType),
			zap.String("aggregate_id", task.AggregateID.String()),
			zap.Int("attempts", task.Attempts),
			zap.Error(err))
		if !q.Enqueue(task) {
			q.logger.Error("retry queue full, projection task dropped",
				zap.String("aggregate_type", task.AggregateType),
				zap.String("aggregate_id", task.AggregateID.String()))
		}
		return
	}

	q.logger.Info("projection task recovered",
		zap.String("aggregate_type", task.AggregateType),
		zap.String("aggregate_id", task.AggregateID.String()),
		zap.Int("attempts", task.Attempts))
}

// backoff doubles the base delay per attempt, capped at maxDelay
func (q *RetryQueue) backoff(attempts int) time.Duration {
	delay := q.baseDelay
	for i := 0; i < attempts; i++ {
		delay *= 2
		if delay >= q.maxDelay {
			return q.maxDelay
		}
	}
	return delay
}

var _ appsync.RetryEnqueuer = (*RetryQueue)(nil)
