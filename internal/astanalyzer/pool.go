package astanalyzer

import (
	"context"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/compscan/compscan/domain"
	"github.com/compscan/compscan/internal/corerr"
)

// noOpTaskProgress is used when the caller does not want progress reporting.
type noOpTaskProgress struct{}

func (noOpTaskProgress) Increment(int) {}
func (noOpTaskProgress) Complete()     {}

// AnalyzeAll runs Analyze over fileIds through a bounded worker pool,
// per spec.md §5: width defaults to hardware parallelism (concurrency<=0),
// a per-file timeout converts a stuck parse into ParseFailure{Timeout},
// and on ctx cancellation no new files are dispatched. The returned
// FileFacts slice is sorted by FileId, which is the ordering guarantee
// GraphBuilder's determinism contract depends on.
func (a *ASTAnalyzer) AnalyzeAll(ctx context.Context, fileIds []domain.FileId, concurrency int, perFileTimeout time.Duration, progress domain.ProgressManager) ([]*domain.FileFacts, []domain.ParseFailure) {
	if concurrency <= 0 {
		concurrency = defaultConcurrency()
	}

	var task domain.TaskProgress = noOpTaskProgress{}
	if progress != nil {
		task = progress.StartTask("Analyzing files", len(fileIds))
	}
	defer task.Complete()

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	var mu sync.Mutex
	var facts []*domain.FileFacts
	var failures []domain.ParseFailure

	for _, id := range fileIds {
		id := id
		g.Go(func() error {
			select {
			case <-gCtx.Done():
				return nil // cancellation: no new files dispatched
			default:
			}

			f, failure := a.analyzeWithTimeout(id, perFileTimeout)
			task.Increment(1)

			mu.Lock()
			defer mu.Unlock()
			if failure != nil {
				failures = append(failures, *failure)
			} else if f != nil {
				facts = append(facts, f)
			}
			return nil
		})
	}

	_ = g.Wait()

	sort.Slice(facts, func(i, j int) bool { return facts[i].FileId < facts[j].FileId })
	sort.Slice(failures, func(i, j int) bool { return failures[i].FileId < failures[j].FileId })

	return facts, failures
}

// analyzeWithTimeout runs Analyze on its own goroutine and races it
// against perFileTimeout (0 = unbounded). The in-flight parse is allowed
// to keep running after a timeout fires — either outcome the spec
// describes as correct — but the caller only waits for the timeout.
func (a *ASTAnalyzer) analyzeWithTimeout(id domain.FileId, perFileTimeout time.Duration) (*domain.FileFacts, *domain.ParseFailure) {
	if perFileTimeout <= 0 {
		f, failure := a.Analyze(id)
		return f, failure
	}

	type result struct {
		facts   *domain.FileFacts
		failure *domain.ParseFailure
	}
	done := make(chan result, 1)
	go func() {
		f, failure := a.Analyze(id)
		done <- result{f, failure}
	}()

	select {
	case r := <-done:
		return r.facts, r.failure
	case <-time.After(perFileTimeout):
		return nil, &domain.ParseFailure{FileId: id, Reason: corerr.ReasonTimeout}
	}
}
