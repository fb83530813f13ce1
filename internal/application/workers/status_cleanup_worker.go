package workers

import (
	"context"
	"time"

	"kunlun/internal/domain"
	"kunlun/internal/logger"
)

type StatusCleanupWorker struct {
	svc    domain.StatusService
	maxAge time.Duration
	log    logger.Logger
}

func NewStatusCleanupWorker(svc domain.StatusService, maxAge time.Duration, log logger.Logger) Worker {
	return &StatusCleanupWorker{
		svc:    svc,
		maxAge: maxAge,
		log:    log,
	}
}

func (w *StatusCleanupWorker) Name() string {
	return "status_cleanup"
}

func (w *StatusCleanupWorker) Run(ctx context.Context) error {
	deleted, err := w.svc.Cleanup(ctx, w.maxAge)
	if err != nil {
		return err
	}
	if deleted > 0 {
		w.log.Info("stale statuses removed", "count", deleted, "max_age", w.maxAge)
	}
	return nil
}
