package workflows

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
	"go.uber.org/zap"

	"github.com/scriptorium/curation-reconciler/internal/logger"
)

// VerifyDonationPayment waits for the verification delay and then checks a
// claimed donation against its on-chain receipt
func (w *workerCore) VerifyDonationPayment(ctx workflow.Context, transactionID uuid.UUID) error {
	logger.InfoWf(ctx, "Verifying donation payment", zap.String("transactionID", transactionID.String()))

	// Give the transaction time to be mined before the first check
	if w.config.VerifyDelay > 0 {
		if err := workflow.Sleep(ctx, w.config.VerifyDelay); err != nil {
			return err
		}
	}

	// Only the unmined case is retryable; the activity reports every other
	// verification failure as non-retryable
	activityOptions := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    w.config.VerifyInitialInterval,
			BackoffCoefficient: 2.0,
			MaximumAttempts:    w.config.VerifyMaxAttempts,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, activityOptions)

	err := workflow.ExecuteActivity(ctx, w.executor.VerifyDonationPayment, transactionID).Get(ctx, nil)
	if err != nil {
		logger.ErrorWf(ctx, fmt.Errorf("failed to verify donation payment: %w", err),
			zap.String("transactionID", transactionID.String()),
		)
		return err
	}

	logger.InfoWf(ctx, "Donation payment verification finished", zap.String("transactionID", transactionID.String()))

	return nil
}
