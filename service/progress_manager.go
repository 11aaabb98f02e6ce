package service

import (
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"

	"github.com/compscan/compscan/domain"
)

// ProgressManagerImpl implements domain.ProgressManager with interactive
// progress bars. Kept close to the teacher's progress_manager.go; adapted
// to domain.TaskProgress's narrower Increment/Complete contract.
type ProgressManagerImpl struct {
	writer io.Writer
	tasks  []*progressbar.ProgressBar
}

// NewProgressManager returns an interactive progress manager when enabled
// and stderr is a terminal, or a no-op manager otherwise.
func NewProgressManager(enabled bool) domain.ProgressManager {
	if enabled && isInteractiveEnvironment() {
		return &ProgressManagerImpl{writer: os.Stderr}
	}
	return &NoOpProgressManager{}
}

func isInteractiveEnvironment() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}

func (pm *ProgressManagerImpl) StartTask(description string, total int) domain.TaskProgress {
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(pm.writer),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowBytes(false),
		progressbar.OptionSetWidth(18),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(true),
	)
	pm.tasks = append(pm.tasks, bar)
	return &TaskProgressImpl{bar: bar}
}

func (pm *ProgressManagerImpl) Close() {
	for _, bar := range pm.tasks {
		_ = bar.Finish()
	}
	pm.tasks = nil
}

// TaskProgressImpl implements domain.TaskProgress with a progress bar.
type TaskProgressImpl struct {
	bar *progressbar.ProgressBar
}

func (tp *TaskProgressImpl) Increment(n int) { _ = tp.bar.Add(n) }
func (tp *TaskProgressImpl) Complete()       { _ = tp.bar.Finish() }

// NoOpProgressManager implements domain.ProgressManager with no-op methods,
// used for non-interactive runs (piped output, CI, --no-progress).
type NoOpProgressManager struct{}

func (pm *NoOpProgressManager) StartTask(_ string, _ int) domain.TaskProgress {
	return &NoOpTaskProgress{}
}
func (pm *NoOpProgressManager) Close() {}

// NoOpTaskProgress implements domain.TaskProgress with no-op methods.
type NoOpTaskProgress struct{}

func (tp *NoOpTaskProgress) Increment(_ int) {}
func (tp *NoOpTaskProgress) Complete()       {}
