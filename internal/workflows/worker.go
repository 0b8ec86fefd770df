package workflows

import (
	"time"

	"github.com/google/uuid"
	"go.temporal.io/sdk/workflow"
)

// Worker defines the interface for the reconciler workflows
//
//go:generate mockgen -source=worker.go -destination=../mocks/worker.go -package=mocks -mock_names=Worker=MockWorker
type Worker interface {
	// SyncCurationEvents runs one synchronizer pass. Scheduled on a cron
	// with a stable workflow ID so passes never overlap.
	SyncCurationEvents(ctx workflow.Context) error

	// VerifyDonationPayment waits for the verification delay and then
	// checks a claimed donation against its on-chain receipt, retrying
	// while the transaction is unmined.
	VerifyDonationPayment(ctx workflow.Context, transactionID uuid.UUID) error
}

type WorkerConfig struct {
	// VerifyDelay is how long a verification workflow waits before the
	// first receipt check, giving the transaction time to be mined
	VerifyDelay time.Duration
	// VerifyInitialInterval is the backoff base between receipt checks
	VerifyInitialInterval time.Duration
	// VerifyMaxAttempts bounds how many times an unmined transaction is
	// re-checked before the claim is abandoned
	VerifyMaxAttempts int32
}

// DefaultWorkerConfig returns the production verification schedule
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		VerifyDelay:           30 * time.Second,
		VerifyInitialInterval: 20 * time.Second,
		VerifyMaxAttempts:     8,
	}
}

// workerCore is the concrete implementation of Worker
type workerCore struct {
	config   WorkerConfig
	executor Executor
}

// NewWorker creates a new worker instance
func NewWorker(executor Executor, config WorkerConfig) Worker {
	return &workerCore{
		executor: executor,
		config:   config,
	}
}
