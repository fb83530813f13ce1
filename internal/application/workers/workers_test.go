package workers

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"kunlun/internal/domain"
	"kunlun/internal/logger"
)

type countingWorker struct {
	runs atomic.Int32
	err  error
}

func (w *countingWorker) Name() string { return "counting" }

func (w *countingWorker) Run(context.Context) error {
	w.runs.Add(1)
	return w.err
}

func TestRunByDuration(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w := &countingWorker{err: errors.New("keeps going")}
	NewScheduler(logger.Nop()).RunByDuration(ctx, time.Millisecond, w)

	deadline := time.After(5 * time.Second)
	for w.runs.Load() < 3 {
		select {
		case <-deadline:
			t.Fatalf("worker ran %d times, want >= 3", w.runs.Load())
		case <-time.After(time.Millisecond):
		}
	}

	cancel()
	time.Sleep(20 * time.Millisecond)
	stopped := w.runs.Load()
	time.Sleep(20 * time.Millisecond)
	if w.runs.Load() != stopped {
		t.Error("worker kept running after cancel")
	}
}

type fakeStatusService struct {
	maxAge  time.Duration
	deleted int64
	err     error
}

func (f *fakeStatusService) Ingest(context.Context, domain.StatusReport) (*domain.IngestResult, error) {
	return nil, nil
}

func (f *fakeStatusService) Latest(context.Context) ([]domain.Status, error) {
	return nil, nil
}

func (f *fakeStatusService) Cleanup(_ context.Context, maxAge time.Duration) (int64, error) {
	f.maxAge = maxAge
	return f.deleted, f.err
}

func TestStatusCleanupWorker(t *testing.T) {
	svc := &fakeStatusService{deleted: 4}
	w := NewStatusCleanupWorker(svc, 48*time.Hour, logger.Nop())

	if w.Name() != "status_cleanup" {
		t.Errorf("Name() = %q", w.Name())
	}
	if err := w.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if svc.maxAge != 48*time.Hour {
		t.Errorf("maxAge = %v", svc.maxAge)
	}

	svc.err = errors.New("locked")
	if err := w.Run(context.Background()); err == nil {
		t.Error("expected error")
	}
}
