// Package service holds collaborators outside the core's contract: progress
// reporting, top-level cancellation plumbing, and result serialization.
package service

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/compscan/compscan/domain"
)

// Default values for ParallelExecutorImpl.
const (
	// DefaultMaxConcurrency is used when a CoreConfig's Concurrency is 0
	// (spec.md §6: "default = hardware parallelism") and runtime.NumCPU()
	// itself cannot be trusted, e.g. when built from CoreConfig directly.
	DefaultMaxConcurrency = 4
	DefaultTimeout        = 5 * time.Minute
)

// TaskError represents a single task failure.
type TaskError struct {
	TaskName string
	Err      error
}

func (e TaskError) Error() string { return fmt.Sprintf("[%s] %v", e.TaskName, e.Err) }
func (e TaskError) Unwrap() error { return e.Err }

// AggregatedError collects all task failures from one Execute call.
type AggregatedError struct {
	Errors []TaskError
}

func (e *AggregatedError) Error() string {
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d tasks failed:\n", len(e.Errors)))
	for i, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

func (e *AggregatedError) Unwrap() error {
	if len(e.Errors) == 0 {
		return nil
	}
	return e.Errors[0].Err
}

// ParallelExecutorImpl runs a set of domain.ExecutableTask values under one
// top-level cancellation token (spec.md §5), bounding concurrency with
// errgroup.SetLimit the same way internal/astanalyzer bounds Stage 2's
// worker pool. The CLI uses a single-task slice today (one core.Analyze
// call per invocation); the bound and timeout still apply: when the
// timeout fires the context handed to each task is cancelled, and Execute
// still waits for every started task to return.
type ParallelExecutorImpl struct {
	maxConcurrency int
	timeout        time.Duration
	progress       domain.ProgressManager
	mu             sync.RWMutex
}

// NewParallelExecutor creates an executor with hardware-parallelism
// concurrency and the package default timeout.
func NewParallelExecutor() *ParallelExecutorImpl {
	return &ParallelExecutorImpl{
		maxConcurrency: runtime.NumCPU(),
		timeout:        DefaultTimeout,
	}
}

// NewParallelExecutorFromConfig derives concurrency from a CoreConfig
// (0 means hardware parallelism, per spec.md §6) and uses the package
// default overall timeout — distinct from CoreConfig.PerFileTimeout, which
// bounds a single Stage 2 parse rather than the whole run.
func NewParallelExecutorFromConfig(cfg domain.CoreConfig) *ParallelExecutorImpl {
	maxConcurrency := cfg.Concurrency
	if maxConcurrency <= 0 {
		maxConcurrency = runtime.NumCPU()
		if maxConcurrency <= 0 {
			maxConcurrency = DefaultMaxConcurrency
		}
	}
	return &ParallelExecutorImpl{
		maxConcurrency: maxConcurrency,
		timeout:        DefaultTimeout,
	}
}

// NewParallelExecutorWithProgress attaches a ProgressManager to an executor
// built from cfg.
func NewParallelExecutorWithProgress(cfg domain.CoreConfig, pm domain.ProgressManager) *ParallelExecutorImpl {
	executor := NewParallelExecutorFromConfig(cfg)
	executor.progress = pm
	return executor
}

// Execute runs every enabled task under one timeout/cancellation context,
// bounded by maxConcurrency, and returns an AggregatedError if any task
// failed. A single-task slice still benefits: the timeout and the
// cancellation propagation into each task's ctx apply regardless of count.
func (e *ParallelExecutorImpl) Execute(ctx context.Context, tasks []domain.ExecutableTask) error {
	enabledTasks := e.filterEnabledTasks(tasks)
	if len(enabledTasks) == 0 {
		return nil
	}

	e.mu.RLock()
	maxConcurrency := e.maxConcurrency
	timeout := e.timeout
	e.mu.RUnlock()

	timeoutCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var task domain.TaskProgress = &NoOpTaskProgress{}
	if e.progress != nil {
		task = e.progress.StartTask("Executing tasks", len(enabledTasks))
	}
	defer task.Complete()

	g, gCtx := errgroup.WithContext(timeoutCtx)
	g.SetLimit(maxConcurrency)

	var errMu sync.Mutex
	var taskErrors []TaskError

	for _, t := range enabledTasks {
		g.Go(func() error {
			select {
			case <-gCtx.Done():
				return gCtx.Err()
			default:
			}

			err := t.Execute(gCtx)
			task.Increment(1)

			if err != nil {
				errMu.Lock()
				taskErrors = append(taskErrors, TaskError{TaskName: t.Name(), Err: err})
				errMu.Unlock()
			}

			// Always return nil so the group keeps running the remaining
			// tasks; failures are collected in taskErrors instead.
			return nil
		})
	}

	_ = g.Wait()

	if len(taskErrors) > 0 {
		return &AggregatedError{Errors: taskErrors}
	}
	return nil
}

// SetMaxConcurrency sets the maximum number of concurrent tasks.
func (e *ParallelExecutorImpl) SetMaxConcurrency(max int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if max > 0 {
		e.maxConcurrency = max
	}
}

// SetTimeout sets the overall timeout applied to Execute.
func (e *ParallelExecutorImpl) SetTimeout(timeout time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if timeout > 0 {
		e.timeout = timeout
	}
}

func (e *ParallelExecutorImpl) filterEnabledTasks(tasks []domain.ExecutableTask) []domain.ExecutableTask {
	enabled := make([]domain.ExecutableTask, 0, len(tasks))
	for _, t := range tasks {
		if t.IsEnabled() {
			enabled = append(enabled, t)
		}
	}
	return enabled
}
