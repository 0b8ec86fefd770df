package scheduler

import (
	"context"
	"errors"
	"fmt"

	"go.temporal.io/api/enums/v1"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
	"go.uber.org/zap"

	"github.com/scriptorium/curation-reconciler/internal/logger"
	"github.com/scriptorium/curation-reconciler/internal/providers/temporal"
	"github.com/scriptorium/curation-reconciler/internal/workflows"
)

// SyncWorkflowID is the fixed workflow ID of the recurring synchronizer run.
// Reusing one ID keeps at most a single cron chain alive, so overlapping
// synchronizer passes cannot race on the cursor.
const SyncWorkflowID = "sync-curation-events"

// Config holds the scheduling parameters for the synchronizer cron
type Config struct {
	TaskQueue    string
	CronSchedule string
}

// Scheduler installs the recurring synchronizer workflow on Temporal
type Scheduler struct {
	orchestrator temporal.TemporalOrchestrator
	config       Config
}

// New creates a scheduler backed by the given Temporal orchestrator
func New(orchestrator temporal.TemporalOrchestrator, config Config) *Scheduler {
	return &Scheduler{
		orchestrator: orchestrator,
		config:       config,
	}
}

// EnsureSyncWorkflow starts the synchronizer cron workflow if it is not
// already running. A workflow chain left over from a previous deployment is
// left untouched, so calling this on every startup is safe.
func (s *Scheduler) EnsureSyncWorkflow(ctx context.Context) error {
	w := workflows.NewWorker(nil, workflows.DefaultWorkerConfig())

	opt := client.StartWorkflowOptions{
		ID:                    SyncWorkflowID,
		TaskQueue:             s.config.TaskQueue,
		CronSchedule:          s.config.CronSchedule,
		WorkflowIDReusePolicy: enums.WORKFLOW_ID_REUSE_POLICY_ALLOW_DUPLICATE_FAILED_ONLY,
	}

	_, err := s.orchestrator.ExecuteWorkflow(ctx, opt, w.SyncCurationEvents)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &alreadyStarted) {
			logger.InfoCtx(ctx, "Synchronizer cron workflow already running",
				zap.String("workflowID", SyncWorkflowID),
			)
			return nil
		}
		return fmt.Errorf("failed to start synchronizer cron workflow: %w", err)
	}

	logger.InfoCtx(ctx, "Started synchronizer cron workflow",
		zap.String("workflowID", SyncWorkflowID),
		zap.String("cronSchedule", s.config.CronSchedule),
		zap.String("taskQueue", s.config.TaskQueue),
	)

	return nil
}
