package sweeper

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/cenkalti/backoff/v4"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"github.com/scriptorium/curation-reconciler/internal/adapter"
	"github.com/scriptorium/curation-reconciler/internal/cache"
	"github.com/scriptorium/curation-reconciler/internal/chain"
	"github.com/scriptorium/curation-reconciler/internal/domain"
	"github.com/scriptorium/curation-reconciler/internal/logger"
	"github.com/scriptorium/curation-reconciler/internal/store"
	"github.com/scriptorium/curation-reconciler/internal/store/schema"
)

const (
	SWEEP_CYCLE_INTERVAL = 15 * time.Minute // Time to sleep between sweep cycles
)

// ReceiptAuditSweeperConfig holds configuration for the receipt audit sweeper
type ReceiptAuditSweeperConfig struct {
	ChainID        domain.Chain
	BatchSize      int           // Transactions to audit per batch
	WorkerPoolSize int           // Concurrent workers
	RecheckAfter   time.Duration // Only audit transactions older than this
}

// receiptAuditSweeper re-checks the receipts of settled blockchain
// transactions. Removal logs are delivered only to live subscriptions, so a
// reorg that happens while the synchronizer is polling would otherwise leave
// a succeeded pair pointing at a transaction the canonical chain dropped.
type receiptAuditSweeper struct {
	config      *ReceiptAuditSweeperConfig
	store       store.Store
	chain       chain.Client
	invalidator cache.Invalidator
	pool        pond.Pool
	clock       adapter.Clock
	running     atomic.Bool
	stopChan    chan struct{}
	stoppedCh   chan struct{}
}

// NewReceiptAuditSweeper creates a new receipt audit sweeper
func NewReceiptAuditSweeper(
	config *ReceiptAuditSweeperConfig,
	st store.Store,
	chainClient chain.Client,
	invalidator cache.Invalidator,
	clock adapter.Clock,
) Sweeper {
	return &receiptAuditSweeper{
		config:      config,
		store:       st,
		chain:       chainClient,
		invalidator: invalidator,
		clock:       clock,
		stopChan:    make(chan struct{}),
		stoppedCh:   make(chan struct{}),
	}
}

// Name returns the sweeper's name
func (s *receiptAuditSweeper) Name() string {
	return "receipt-audit-sweeper"
}

// Start begins the sweeper's main loop
func (s *receiptAuditSweeper) Start(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return fmt.Errorf("sweeper already running")
	}
	defer func() {
		s.running.Store(false)
		close(s.stoppedCh)
	}()

	logger.InfoCtx(ctx, "Starting receipt audit sweeper",
		zap.String("chain", string(s.config.ChainID)),
		zap.Int("batch_size", s.config.BatchSize),
		zap.Int("worker_pool_size", s.config.WorkerPoolSize),
		zap.Duration("recheck_after", s.config.RecheckAfter),
	)

	s.pool = pond.NewPool(
		s.config.WorkerPoolSize,
		pond.WithQueueSize(s.config.BatchSize),
		pond.WithContext(ctx),
	)

	for {
		select {
		case <-ctx.Done():
			logger.InfoCtx(ctx, "Receipt audit sweeper stopping due to context cancellation", zap.Error(ctx.Err()))
			s.cleanup()
			return nil
		case <-s.stopChan:
			logger.InfoCtx(ctx, "Receipt audit sweeper stop requested")
			s.cleanup()
			return nil
		default:
			if err := s.runSweepCycle(ctx); err != nil {
				if !errors.Is(err, context.Canceled) {
					logger.ErrorCtx(ctx, err)
				}
			}
		}
	}
}

// cleanup stops the worker pool and waits for tasks to complete
func (s *receiptAuditSweeper) cleanup() {
	if s.pool != nil {
		s.pool.StopAndWait()
	}
}

// Stop gracefully stops the sweeper with timeout support
func (s *receiptAuditSweeper) Stop(ctx context.Context) error {
	if !s.running.CompareAndSwap(true, false) {
		return nil // Already stopped
	}

	logger.InfoCtx(ctx, "Stopping receipt audit sweeper")

	close(s.stopChan)

	select {
	case <-s.stoppedCh:
		logger.InfoCtx(ctx, "Receipt audit sweeper stopped gracefully")
		return nil
	case <-ctx.Done():
		logger.WarnCtx(ctx, "Receipt audit sweeper stop interrupted by context timeout")
		return ctx.Err()
	}
}

// runSweepCycle audits a single batch of settled transactions
func (s *receiptAuditSweeper) runSweepCycle(ctx context.Context) error {
	startTime := s.clock.Now()

	cutoff := startTime.Add(-s.config.RecheckAfter)
	btxs, err := s.store.ListSucceededBlockchainTransactions(ctx, s.config.ChainID, cutoff, s.config.BatchSize)
	if err != nil {
		return fmt.Errorf("failed to list settled transactions for audit: %w", err)
	}

	if len(btxs) == 0 {
		if !s.sleep(ctx, SWEEP_CYCLE_INTERVAL) {
			return ctx.Err()
		}
		return nil
	}

	logger.InfoCtx(ctx, "Auditing settled transactions", zap.Int("count", len(btxs)))

	var healthyCount, rolledBackCount, transientErrorCount atomic.Int32

	// Every audited row gets its updated_at bumped so the next cycle moves
	// on, including rows whose receipt check errored out
	audited := sync.Map{}

	for _, btx := range btxs {
		s.pool.Submit(func() {
			audited.Store(btx.ID, struct{}{})
			s.auditTransaction(ctx, btx, &healthyCount, &rolledBackCount, &transientErrorCount)
		})
	}

	s.pool.StopAndWait()

	var auditedIDs []uint64
	audited.Range(func(key, value interface{}) bool {
		auditedIDs = append(auditedIDs, key.(uint64))
		return true
	})

	if err := s.flushAuditedWithRetry(ctx, auditedIDs); err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("CRITICAL: failed to mark transactions audited after retries: %w", err),
			zap.Int("count", len(auditedIDs)),
			zap.Uint64s("ids", auditedIDs),
		)
	}

	// Recreate pool for next cycle
	s.pool = pond.NewPool(
		s.config.WorkerPoolSize,
		pond.WithQueueSize(s.config.BatchSize),
		pond.WithContext(ctx),
	)

	duration := s.clock.Since(startTime)
	logger.InfoCtx(ctx, "Audit cycle completed",
		zap.Duration("duration", duration),
		zap.Int("total_audited", len(btxs)),
		zap.Int32("healthy", healthyCount.Load()),
		zap.Int32("rolled_back", rolledBackCount.Load()),
		zap.Int32("transient_errors", transientErrorCount.Load()),
	)

	if !s.sleep(ctx, SWEEP_CYCLE_INTERVAL) {
		return ctx.Err()
	}

	return nil
}

// sleep sleeps for the given duration but can be interrupted by context
// cancellation or a stop request. Returns true if the sleep completed.
func (s *receiptAuditSweeper) sleep(ctx context.Context, duration time.Duration) bool {
	select {
	case <-s.clock.After(duration):
		return true
	case <-ctx.Done():
		return false
	case <-s.stopChan:
		return false
	}
}

// auditTransaction re-checks a single settled transaction against the
// canonical chain and rolls the pair back when the chain disagrees
func (s *receiptAuditSweeper) auditTransaction(ctx context.Context, btx *schema.BlockchainTransaction, healthyCount, rolledBackCount, transientErrorCount *atomic.Int32) {
	receipt, err := s.chain.TransactionReceipt(ctx, btx.TxHash)
	if err != nil {
		transientErrorCount.Add(1)
		logger.WarnCtx(ctx, "Transient error fetching receipt, will retry next cycle",
			zap.String("txHash", btx.TxHash),
			zap.Error(err),
		)
		return
	}

	var ledgerState domain.TransactionState
	var btxState domain.BlockchainTxState
	switch {
	case receipt == nil:
		// The canonical chain no longer carries this transaction
		ledgerState = domain.TransactionStatePending
		btxState = domain.BlockchainTxStatePending
	case receipt.Status == ethtypes.ReceiptStatusFailed:
		ledgerState = domain.TransactionStateFailed
		btxState = domain.BlockchainTxStateReverted
	default:
		healthyCount.Add(1)
		return
	}

	if btx.TransactionID == nil {
		// Mirror-only record, no ledger pair to transition
		if err := s.store.UpdateBlockchainTransactionState(ctx, btx.ID, btxState); err != nil {
			logger.ErrorCtx(ctx, err, zap.String("txHash", btx.TxHash))
			return
		}
		rolledBackCount.Add(1)
		logger.WarnCtx(ctx, "Settled transaction disappeared from canonical chain (no ledger link)",
			zap.String("txHash", btx.TxHash),
			zap.String("blockchainState", string(btxState)))
		return
	}

	ledger, err := s.store.GetTransaction(ctx, *btx.TransactionID)
	if err != nil {
		logger.ErrorCtx(ctx, err, zap.String("txHash", btx.TxHash))
		return
	}
	if ledger == nil {
		logger.ErrorCtx(ctx, domain.ErrTransactionNotFound, zap.String("txHash", btx.TxHash))
		return
	}

	err = s.store.TransitionPair(ctx, store.TransitionPairInput{
		TransactionID:           *btx.TransactionID,
		State:                   ledgerState,
		BlockchainTransactionID: btx.ID,
		BlockchainState:         btxState,
	})
	if err != nil {
		logger.ErrorCtx(ctx, err, zap.String("txHash", btx.TxHash))
		return
	}

	rolledBackCount.Add(1)
	logger.WarnCtx(ctx, "Rolled back settled transaction after canonical chain diverged",
		zap.String("txHash", btx.TxHash),
		zap.String("transactionID", btx.TransactionID.String()),
		zap.String("ledgerState", string(ledgerState)),
		zap.String("blockchainState", string(btxState)),
	)

	s.invalidator.Invalidate(ctx, cache.EntityTypeTransaction, btx.TransactionID.String())
	s.invalidator.Invalidate(ctx, cache.EntityTypeArticle, strconv.FormatUint(ledger.TargetID, 10))
}

// flushAuditedWithRetry bumps the audit timestamps with exponential backoff
func (s *receiptAuditSweeper) flushAuditedWithRetry(ctx context.Context, ids []uint64) error {
	if len(ids) == 0 {
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 15 * time.Second
	b.MaxInterval = 2 * time.Minute
	b.MaxElapsedTime = 1 * time.Hour
	b.Multiplier = 2.0
	b.RandomizationFactor = 0.5

	backoffWithContext := backoff.WithContext(b, ctx)

	operation := func() error {
		return s.store.TouchBlockchainTransactions(ctx, ids)
	}

	var attemptCount int
	notifyOnError := func(err error, duration time.Duration) {
		attemptCount++
		logger.WarnCtx(ctx, "Audit timestamp flush failed, retrying",
			zap.Error(err),
			zap.Int("attempt", attemptCount),
			zap.Duration("next_retry_in", duration),
		)
	}

	err := backoff.RetryNotify(operation, backoffWithContext, notifyOnError)
	if err != nil {
		return fmt.Errorf("failed after %d attempts: %w", attemptCount, err)
	}

	return nil
}
