package service

import (
	"testing"

	"github.com/compscan/compscan/domain"
)

func TestNoOpProgressManager(t *testing.T) {
	pm := &NoOpProgressManager{}

	task := pm.StartTask("test", 100)
	if task == nil {
		t.Fatal("expected non-nil task from StartTask")
	}

	task.Increment(10)
	task.Complete()
	pm.Close()
}

func TestNoOpTaskProgress(t *testing.T) {
	tp := &NoOpTaskProgress{}
	tp.Increment(10)
	tp.Complete()

	var _ domain.TaskProgress = tp
}

func TestProgressManagerImplementsInterfaces(t *testing.T) {
	var _ domain.ProgressManager = &ProgressManagerImpl{}
	var _ domain.TaskProgress = &TaskProgressImpl{}
	var _ domain.ProgressManager = &NoOpProgressManager{}
}

func TestNewProgressManagerDisabledReturnsNoOp(t *testing.T) {
	pm := NewProgressManager(false)
	if _, ok := pm.(*NoOpProgressManager); !ok {
		t.Errorf("expected NoOpProgressManager when disabled, got %T", pm)
	}
}
