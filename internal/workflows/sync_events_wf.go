package workflows

import (
	"fmt"
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
	"go.uber.org/zap"

	"github.com/scriptorium/curation-reconciler/internal/logger"
)

// SyncCurationEvents runs one synchronizer pass over the next unprocessed
// block range. The scheduler starts it on a cron with a stable workflow ID,
// so at most one pass runs at a time and a slow pass skips the next tick
// instead of overlapping with it.
func (w *workerCore) SyncCurationEvents(ctx workflow.Context) error {
	activityOptions := workflow.ActivityOptions{
		StartToCloseTimeout: 10 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 3,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, activityOptions)

	var processed int
	err := workflow.ExecuteActivity(ctx, w.executor.SyncCurationEvents).Get(ctx, &processed)
	if err != nil {
		logger.ErrorWf(ctx, fmt.Errorf("failed to sync curation events: %w", err))
		return err
	}

	logger.InfoWf(ctx, "Curation event sync pass finished", zap.Int("events", processed))

	return nil
}
