package worker

import (
	"context"
	"time"

	"github.com/jwalitptl/clinic-dashboard/internal/service/audit"
	"github.com/jwalitptl/clinic-dashboard/pkg/logger"
)

// AuditCleanupWorker periodically drops audit entries past their retention.
type AuditCleanupWorker struct {
	auditor         *audit.Service
	log             *logger.Logger
	retention       time.Duration
	cleanupInterval time.Duration
	now             func() time.Time
}

func NewAuditCleanupWorker(auditor *audit.Service, log *logger.Logger, retention, cleanupInterval time.Duration) *AuditCleanupWorker {
	if log == nil {
		log = logger.Nop()
	}
	return &AuditCleanupWorker{
		auditor:         auditor,
		log:             log.WithComponent("audit_cleanup"),
		retention:       retention,
		cleanupInterval: cleanupInterval,
		now:             time.Now,
	}
}

// Start blocks until ctx is cancelled.
func (w *AuditCleanupWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.cleanup(ctx)
		}
	}
}

func (w *AuditCleanupWorker) cleanup(ctx context.Context) int {
	cutoff := w.now().Add(-w.retention)
	n := w.auditor.Prune(ctx, cutoff)
	if n > 0 {
		w.log.Info("Cleaned up audit logs", "removed", n, "cutoff", cutoff)
	}
	return n
}
