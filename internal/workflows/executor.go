package workflows

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"go.temporal.io/sdk/temporal"
	"go.uber.org/zap"

	"github.com/scriptorium/curation-reconciler/internal/cache"
	"github.com/scriptorium/curation-reconciler/internal/chain"
	"github.com/scriptorium/curation-reconciler/internal/domain"
	"github.com/scriptorium/curation-reconciler/internal/logger"
	"github.com/scriptorium/curation-reconciler/internal/notify"
	"github.com/scriptorium/curation-reconciler/internal/store"
	"github.com/scriptorium/curation-reconciler/internal/store/schema"
	"github.com/scriptorium/curation-reconciler/internal/sync"
)

// ExecutorConfig carries the chain parameters the verification activity
// checks receipts against
type ExecutorConfig struct {
	ChainID         domain.Chain
	ContractAddress string
	TokenAddress    string
	Currency        string
	TokenDecimals   int
}

// Executor defines the interface for executing activities
//
//go:generate mockgen -source=executor.go -destination=../mocks/executor.go -package=mocks -mock_names=Executor=MockExecutor
type Executor interface {
	// SyncCurationEvents runs a single synchronizer pass and returns the
	// number of events processed
	SyncCurationEvents(ctx context.Context) (int, error)

	// VerifyDonationPayment checks a pending donation against its on-chain
	// receipt and settles the ledger accordingly. It returns a retryable
	// error only while the transaction is not yet mined; every other
	// failure to verify is terminal.
	VerifyDonationPayment(ctx context.Context, transactionID uuid.UUID) error
}

type executor struct {
	store       store.Store
	chain       chain.Client
	syncer      sync.Syncer
	notifier    notify.Notifier
	invalidator cache.Invalidator
	config      ExecutorConfig
}

// NewExecutor creates a new activity executor
func NewExecutor(
	st store.Store,
	chainClient chain.Client,
	syncer sync.Syncer,
	notifier notify.Notifier,
	invalidator cache.Invalidator,
	config ExecutorConfig,
) Executor {
	return &executor{
		store:       st,
		chain:       chainClient,
		syncer:      syncer,
		notifier:    notifier,
		invalidator: invalidator,
		config:      config,
	}
}

// SyncCurationEvents runs a single synchronizer pass
func (e *executor) SyncCurationEvents(ctx context.Context) (int, error) {
	return e.syncer.Sync(ctx)
}

// VerifyDonationPayment checks a pending donation against its on-chain receipt
func (e *executor) VerifyDonationPayment(ctx context.Context, transactionID uuid.UUID) error {
	ledger, err := e.store.GetTransaction(ctx, transactionID)
	if err != nil {
		return fmt.Errorf("failed to get transaction: %w", err)
	}
	if ledger == nil {
		return temporal.NewNonRetryableApplicationError(
			"transaction not found",
			"TransactionNotFound",
			domain.ErrTransactionNotFound,
		)
	}
	if ledger.Provider != domain.TransactionProviderBlockchain {
		return temporal.NewNonRetryableApplicationError(
			"transaction is not settled on-chain",
			"WrongProvider",
			domain.ErrWrongProvider,
		)
	}
	if ledger.State != domain.TransactionStatePending {
		// Already settled by an earlier attempt or by the synchronizer
		logger.InfoCtx(ctx, "Donation already settled, nothing to verify",
			zap.String("transactionID", transactionID.String()),
			zap.String("state", string(ledger.State)))
		return nil
	}
	if ledger.ProviderTxID == nil {
		return temporal.NewNonRetryableApplicationError(
			"transaction has no blockchain transaction",
			"BlockchainTxNotFound",
			domain.ErrBlockchainTxNotFound,
		)
	}

	btx, err := e.store.GetBlockchainTransactionByID(ctx, *ledger.ProviderTxID)
	if err != nil {
		return fmt.Errorf("failed to get blockchain transaction: %w", err)
	}
	if btx == nil {
		return temporal.NewNonRetryableApplicationError(
			"blockchain transaction record not found",
			"BlockchainTxNotFound",
			domain.ErrBlockchainTxNotFound,
		)
	}

	receipt, err := e.chain.TransactionReceipt(ctx, btx.TxHash)
	if err != nil {
		return fmt.Errorf("failed to get transaction receipt: %w", err)
	}
	if receipt == nil {
		// The only retryable outcome: keep polling until the transaction
		// is mined or the retry budget runs out
		return fmt.Errorf("%w: %s", domain.ErrReceiptNotAvailable, btx.TxHash)
	}

	if receipt.Status == 0 {
		err := e.store.TransitionPair(ctx, store.TransitionPairInput{
			TransactionID:           ledger.ID,
			State:                   domain.TransactionStateFailed,
			BlockchainTransactionID: btx.ID,
			BlockchainState:         domain.BlockchainTxStateReverted,
		})
		if err != nil {
			return fmt.Errorf("failed to record reverted transaction: %w", err)
		}

		logger.InfoCtx(ctx, "Donation transaction reverted on-chain",
			zap.String("transactionID", transactionID.String()),
			zap.String("txHash", btx.TxHash))
		e.invalidate(ctx, ledger)
		return nil
	}

	events, err := e.chain.FindCurationEvents(receipt, e.config.ContractAddress)
	if err != nil {
		return fmt.Errorf("failed to decode curation events from receipt: %w", err)
	}

	matches, err := e.receiptSettlesLedger(ctx, events, ledger)
	if err != nil {
		return err
	}
	if !matches {
		// Mined and succeeded, but the logs do not carry the expected
		// transfer. The claim was wrong; the on-chain record stands.
		remark := domain.TransactionRemarkInvalid
		err := e.store.TransitionPair(ctx, store.TransitionPairInput{
			TransactionID:           ledger.ID,
			State:                   domain.TransactionStateCanceled,
			Remark:                  &remark,
			BlockchainTransactionID: btx.ID,
			BlockchainState:         domain.BlockchainTxStateSucceeded,
		})
		if err != nil {
			return fmt.Errorf("failed to cancel mismatched transaction: %w", err)
		}

		logger.WarnCtx(ctx, "Donation claim does not match its on-chain receipt",
			zap.String("transactionID", transactionID.String()),
			zap.String("txHash", btx.TxHash))
		e.invalidate(ctx, ledger)
		return nil
	}

	err = e.store.TransitionPair(ctx, store.TransitionPairInput{
		TransactionID:           ledger.ID,
		State:                   domain.TransactionStateSucceeded,
		BlockchainTransactionID: btx.ID,
		BlockchainState:         domain.BlockchainTxStateSucceeded,
	})
	if err != nil {
		return fmt.Errorf("failed to settle verified transaction: %w", err)
	}

	logger.InfoCtx(ctx, "Donation payment verified",
		zap.String("transactionID", transactionID.String()),
		zap.String("txHash", btx.TxHash))

	e.announce(ctx, ledger, btx.TxHash)

	return nil
}

// receiptSettlesLedger reports whether any decoded receipt event carries
// exactly the transfer the ledger transaction claims. A receipt can emit
// several curation events; one exact match settles the claim.
func (e *executor) receiptSettlesLedger(ctx context.Context, events []*domain.CurationEvent, ledger *schema.Transaction) (bool, error) {
	if len(events) == 0 {
		return false, nil
	}

	expected, err := e.expectedDonation(ctx, ledger)
	if err != nil {
		return false, err
	}
	if expected == nil {
		return false, nil
	}

	for _, event := range events {
		if expected.Matches(event) {
			return true, nil
		}
	}
	return false, nil
}

// expectedDonation reconstructs the on-chain transfer parameters the ledger
// transaction claims. Nil means the claim cannot map to any curation event,
// for example when a party has no wallet or the target article is unknown.
func (e *executor) expectedDonation(ctx context.Context, ledger *schema.Transaction) (*domain.DonationParams, error) {
	if ledger.Currency != e.config.Currency {
		return nil, nil
	}
	amount, err := domain.ParseAmount(ledger.Amount, e.config.TokenDecimals)
	if err != nil {
		return nil, nil
	}

	curator, err := e.store.GetUserByID(ctx, ledger.SenderID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up curator: %w", err)
	}
	creator, err := e.store.GetUserByID(ctx, ledger.RecipientID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up creator: %w", err)
	}
	if curator == nil || curator.EthAddress == nil || creator == nil || creator.EthAddress == nil {
		return nil, nil
	}

	article, err := e.store.GetArticleByID(ctx, ledger.TargetID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up article: %w", err)
	}
	if article == nil {
		return nil, nil
	}

	return &domain.DonationParams{
		CuratorAddress: *curator.EthAddress,
		CreatorAddress: *creator.EthAddress,
		TokenAddress:   e.config.TokenAddress,
		Amount:         amount,
		DataHash:       article.DataHash,
	}, nil
}

// invalidate drops the cached ledger transaction and the target article,
// whose donation rollup changed with the settlement
func (e *executor) invalidate(ctx context.Context, ledger *schema.Transaction) {
	e.invalidator.Invalidate(ctx, cache.EntityTypeTransaction, ledger.ID.String())
	e.invalidator.Invalidate(ctx, cache.EntityTypeArticle, strconv.FormatUint(ledger.TargetID, 10))
}

// announce publishes the confirmation events and drops the cached
// transaction. Best effort, verification has already been recorded.
func (e *executor) announce(ctx context.Context, ledger *schema.Transaction, txHash string) {
	err := e.notifier.PublishPaymentConfirmed(ctx, notify.PaymentConfirmedEvent{
		TransactionID: ledger.ID,
		Chain:         e.config.ChainID,
		TxHash:        txHash,
		Amount:        ledger.Amount,
		Currency:      ledger.Currency,
		SenderID:      ledger.SenderID,
		RecipientID:   ledger.RecipientID,
		TargetID:      ledger.TargetID,
		Outcome:       domain.ReconcileOutcomeConfirmed,
	})
	if err != nil {
		logger.Error(err, zap.String("message", "Failed to publish payment confirmation"),
			zap.String("transactionID", ledger.ID.String()))
	}

	err = e.notifier.PublishDonationNotification(ctx, notify.DonationNotificationEvent{
		TransactionID: ledger.ID,
		SenderID:      ledger.SenderID,
		RecipientID:   ledger.RecipientID,
		TargetID:      ledger.TargetID,
	})
	if err != nil {
		logger.Error(err, zap.String("message", "Failed to publish donation notification"),
			zap.String("transactionID", ledger.ID.String()))
	}

	e.invalidate(ctx, ledger)
}
