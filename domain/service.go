package domain

import "context"

// TaskProgress reports progress of one unit of tracked work back to a
// ProgressManager. Increment/Complete must be safe to call from the
// goroutine running the associated ExecutableTask.
type TaskProgress interface {
	Increment(n int)
	Complete()
}

// ProgressManager renders progress for the concurrent stage-2 worker pool.
// An implementation that is not enabled (e.g. non-interactive output) may
// return a no-op TaskProgress from StartTask.
type ProgressManager interface {
	StartTask(description string, total int) TaskProgress
	Close()
}

// ExecutableTask is one unit of work dispatched into the bounded worker
// pool described in §5. Name and IsEnabled drive progress reporting;
// Execute does the actual work and must respect ctx cancellation.
type ExecutableTask interface {
	Name() string
	IsEnabled() bool
	Execute(ctx context.Context) error
}
