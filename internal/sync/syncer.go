package sync

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"

	"github.com/scriptorium/curation-reconciler/internal/cache"
	"github.com/scriptorium/curation-reconciler/internal/chain"
	"github.com/scriptorium/curation-reconciler/internal/domain"
	"github.com/scriptorium/curation-reconciler/internal/logger"
	"github.com/scriptorium/curation-reconciler/internal/notify"
	"github.com/scriptorium/curation-reconciler/internal/store"
	"github.com/scriptorium/curation-reconciler/internal/store/schema"
)

// Config holds the configuration for the event synchronizer
type Config struct {
	ChainID         domain.Chain
	ContractAddress string
	// StartBlock is the contract deploy block, used when no cursor exists yet
	StartBlock uint64
	// SafeConfirmations is how many blocks below the head the synchronizer trails
	SafeConfirmations uint64
	// RangeCap bounds the number of blocks scanned in a single pass
	RangeCap uint64
	// TokenAddress is the accepted ERC20 token
	TokenAddress string
	// Currency is the ledger currency code for the accepted token
	Currency string
	// TokenDecimals converts between base units and ledger decimal amounts
	TokenDecimals int
}

// Syncer mirrors on-chain Curation events and reconciles them against the ledger
//
//go:generate mockgen -source=syncer.go -destination=../mocks/syncer.go -package=mocks -mock_names=Syncer=MockSyncer
type Syncer interface {
	// Sync runs a single pass over the next unprocessed block range and
	// returns the number of events handled. The cursor only advances after
	// every event in the range has been mirrored and reconciled, so an
	// interrupted pass is re-run from the same position.
	Sync(ctx context.Context) (int, error)
}

type syncer struct {
	store       store.Store
	chain       chain.Client
	notifier    notify.Notifier
	invalidator cache.Invalidator
	config      Config
}

// NewSyncer creates a new event synchronizer
func NewSyncer(
	st store.Store,
	chainClient chain.Client,
	notifier notify.Notifier,
	invalidator cache.Invalidator,
	cfg Config,
) Syncer {
	return &syncer{
		store:       st,
		chain:       chainClient,
		notifier:    notifier,
		invalidator: invalidator,
		config:      cfg,
	}
}

// resolvedParties are the platform entities an event maps onto
type resolvedParties struct {
	curator *schema.User
	creator *schema.User
	article *schema.Article
}

// Sync runs a single pass over the next unprocessed block range
func (s *syncer) Sync(ctx context.Context) (int, error) {
	head, err := s.chain.BlockNumber(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get chain head: %w", err)
	}
	if head < s.config.SafeConfirmations {
		return 0, nil
	}
	safeHead := head - s.config.SafeConfirmations

	cursor, err := s.store.GetSyncCursor(ctx, s.config.ChainID, s.config.ContractAddress)
	if err != nil {
		return 0, fmt.Errorf("failed to get sync cursor: %w", err)
	}

	if cursor == 0 {
		return s.catchUp(ctx, safeHead)
	}
	return s.incremental(ctx, cursor, safeHead)
}

// catchUp runs the initial unbounded scan. Events above the safe head are
// dropped; the cursor lands on the last processed block when anything was
// dropped, otherwise on the safe head itself.
func (s *syncer) catchUp(ctx context.Context, safeHead uint64) (int, error) {
	events, err := s.chain.FilterCurationEventsFrom(ctx, s.config.ContractAddress, s.config.StartBlock)
	if err != nil {
		return 0, fmt.Errorf("failed to filter curation events: %w", err)
	}

	kept := make([]*domain.CurationEvent, 0, len(events))
	for _, event := range events {
		if event.BlockNumber <= safeHead {
			kept = append(kept, event)
		}
	}

	processed, err := s.processBatch(ctx, kept)
	if err != nil {
		return processed, err
	}

	cursorBlock := safeHead
	if len(kept) < len(events) {
		if len(kept) == 0 {
			// Everything is still within the unsafe window, try again later
			return 0, nil
		}
		cursorBlock = kept[len(kept)-1].BlockNumber
	}

	if err := s.store.SetSyncCursor(ctx, s.config.ChainID, s.config.ContractAddress, cursorBlock); err != nil {
		return processed, fmt.Errorf("failed to set sync cursor: %w", err)
	}

	logger.InfoCtx(ctx, "Catch-up sync complete",
		zap.String("chain", string(s.config.ChainID)),
		zap.Uint64("cursor", cursorBlock),
		zap.Int("events", processed))

	return processed, nil
}

// incremental scans the capped range just above the cursor and advances the
// cursor to the range's upper bound
func (s *syncer) incremental(ctx context.Context, cursor, safeHead uint64) (int, error) {
	fromBlock := cursor + 1
	if fromBlock > safeHead {
		return 0, nil
	}

	toBlock := safeHead
	if s.config.RangeCap > 0 && toBlock-fromBlock+1 > s.config.RangeCap {
		toBlock = fromBlock + s.config.RangeCap - 1
	}

	events, err := s.chain.FilterCurationEvents(ctx, s.config.ContractAddress, fromBlock, toBlock)
	if err != nil {
		return 0, fmt.Errorf("failed to filter curation events: %w", err)
	}

	processed, err := s.processBatch(ctx, events)
	if err != nil {
		return processed, err
	}

	if err := s.store.SetSyncCursor(ctx, s.config.ChainID, s.config.ContractAddress, toBlock); err != nil {
		return processed, fmt.Errorf("failed to advance sync cursor: %w", err)
	}

	logger.InfoCtx(ctx, "Sync pass complete",
		zap.String("chain", string(s.config.ChainID)),
		zap.Uint64("fromBlock", fromBlock),
		zap.Uint64("toBlock", toBlock),
		zap.Int("events", processed))

	return processed, nil
}

// processBatch reconciles every event and then mirrors the batch in one
// atomic insert. Any failure leaves the cursor untouched.
func (s *syncer) processBatch(ctx context.Context, events []*domain.CurationEvent) (int, error) {
	mirror := make([]*schema.CurationEvent, 0, len(events))
	processed := 0
	for _, event := range events {
		outcome, btxID, err := s.reconcile(ctx, event)
		if err != nil {
			// Cursor stays put; the next pass re-runs this range and the
			// idempotent writes absorb the partial progress
			return processed, fmt.Errorf("failed to reconcile event %s: %w", event.TxHash, err)
		}

		logger.InfoCtx(ctx, "Reconciled curation event",
			zap.String("txHash", event.TxHash),
			zap.Uint64("blockNumber", event.BlockNumber),
			zap.String("outcome", string(outcome)))

		mirror = append(mirror, buildMirrorRow(event, btxID))
		processed++
	}

	if err := s.store.UpsertCurationEvents(ctx, mirror); err != nil {
		return processed, fmt.Errorf("failed to mirror curation events: %w", err)
	}

	return processed, nil
}

// reconcile applies a single event to the ledger and reports what happened
// along with the blockchain transaction the mirror row should link to
func (s *syncer) reconcile(ctx context.Context, event *domain.CurationEvent) (domain.ReconcileOutcome, *uint64, error) {
	if event.Removed {
		return s.reconcileRemoval(ctx, event)
	}

	// A non-removed log at safe depth implies inclusion, so a record
	// created here starts out succeeded
	btx, err := s.store.FindOrCreateBlockchainTransaction(ctx, s.config.ChainID, event.TxHash, domain.BlockchainTxStateSucceeded)
	if err != nil {
		return "", nil, err
	}

	if btx.TransactionID != nil {
		return s.reconcileLinked(ctx, event, btx)
	}

	// Unlinked hash: admit it as a retroactive donation if all parties
	// resolve to platform entities
	parties, err := s.resolveParties(ctx, event)
	if err != nil {
		return "", nil, err
	}
	if parties == nil {
		return domain.ReconcileOutcomeNoMatch, &btx.ID, nil
	}

	ledger, createdBtx, err := s.store.CreateDonation(ctx, store.CreateDonationInput{
		SenderID:        parties.curator.ID,
		RecipientID:     parties.creator.ID,
		TargetID:        parties.article.ID,
		Amount:          domain.FormatAmount(event.Amount, s.config.TokenDecimals),
		Currency:        s.config.Currency,
		Chain:           s.config.ChainID,
		TxHash:          event.TxHash,
		State:           domain.TransactionStateSucceeded,
		BlockchainState: domain.BlockchainTxStateSucceeded,
	})
	if err != nil {
		return "", nil, err
	}

	s.announce(ctx, ledger, event.TxHash, domain.ReconcileOutcomeNewDonation)

	return domain.ReconcileOutcomeNewDonation, &createdBtx.ID, nil
}

// reconcileLinked handles an event whose hash already has a ledger transaction
func (s *syncer) reconcileLinked(ctx context.Context, event *domain.CurationEvent, btx *schema.BlockchainTransaction) (domain.ReconcileOutcome, *uint64, error) {
	ledger, err := s.store.GetTransaction(ctx, *btx.TransactionID)
	if err != nil {
		return "", nil, err
	}
	if ledger == nil {
		return "", nil, fmt.Errorf("blockchain transaction %d links to missing transaction %s", btx.ID, *btx.TransactionID)
	}

	parties, err := s.resolveParties(ctx, event)
	if err != nil {
		return "", nil, err
	}

	if parties != nil && s.eventMatchesLedger(event, ledger, parties) {
		if ledger.State != domain.TransactionStateSucceeded || btx.State != domain.BlockchainTxStateSucceeded {
			err := s.store.TransitionPair(ctx, store.TransitionPairInput{
				TransactionID:           ledger.ID,
				State:                   domain.TransactionStateSucceeded,
				BlockchainTransactionID: btx.ID,
				BlockchainState:         domain.BlockchainTxStateSucceeded,
			})
			if err != nil {
				return "", nil, err
			}
			s.announce(ctx, ledger, event.TxHash, domain.ReconcileOutcomeConfirmed)
		}
		return domain.ReconcileOutcomeConfirmed, &btx.ID, nil
	}

	if parties == nil {
		// The linked ledger transaction disagrees with the chain but the
		// event does not map to platform entities either. Leave the ledger
		// alone and surface it for operators.
		logger.WarnCtx(ctx, "Curation event disagrees with linked transaction and resolves to no platform entities",
			zap.String("txHash", event.TxHash),
			zap.String("transactionID", ledger.ID.String()))
		return domain.ReconcileOutcomeNoMatch, &btx.ID, nil
	}

	// The chain is the source of truth: cancel the stale link and record
	// what actually happened on-chain
	replacement, err := s.store.ReplaceTransaction(ctx, store.ReplaceTransactionInput{
		StaleTransactionID:      ledger.ID,
		BlockchainTransactionID: btx.ID,
		SenderID:                parties.curator.ID,
		RecipientID:             parties.creator.ID,
		TargetID:                parties.article.ID,
		Amount:                  domain.FormatAmount(event.Amount, s.config.TokenDecimals),
		Currency:                s.config.Currency,
		State:                   domain.TransactionStateSucceeded,
		BlockchainState:         domain.BlockchainTxStateSucceeded,
	})
	if err != nil {
		return "", nil, err
	}

	s.invalidate(ctx, ledger)
	s.announce(ctx, replacement, event.TxHash, domain.ReconcileOutcomeSuperseded)

	return domain.ReconcileOutcomeSuperseded, &btx.ID, nil
}

// reconcileRemoval handles a log retracted by a chain reorganization. The
// current canonical chain decides where the pair lands.
func (s *syncer) reconcileRemoval(ctx context.Context, event *domain.CurationEvent) (domain.ReconcileOutcome, *uint64, error) {
	btx, err := s.store.GetBlockchainTransaction(ctx, s.config.ChainID, event.TxHash)
	if err != nil {
		return "", nil, err
	}
	if btx == nil || btx.TransactionID == nil {
		// Never tracked as a donation, nothing to roll back
		return domain.ReconcileOutcomeNoMatch, nil, nil
	}

	ledger, err := s.store.GetTransaction(ctx, *btx.TransactionID)
	if err != nil {
		return "", nil, err
	}
	if ledger == nil {
		return "", nil, fmt.Errorf("blockchain transaction %d links to missing transaction %s", btx.ID, *btx.TransactionID)
	}

	receipt, err := s.chain.TransactionReceipt(ctx, event.TxHash)
	if err != nil {
		return "", nil, err
	}

	var ledgerState domain.TransactionState
	var btxState domain.BlockchainTxState
	switch {
	case receipt == nil:
		// Dropped from the canonical chain entirely, back to pending
		ledgerState = domain.TransactionStatePending
		btxState = domain.BlockchainTxStatePending
	case receipt.Status == types.ReceiptStatusFailed:
		ledgerState = domain.TransactionStateFailed
		btxState = domain.BlockchainTxStateReverted
	default:
		// Re-mined successfully on the new canonical chain
		ledgerState = domain.TransactionStateSucceeded
		btxState = domain.BlockchainTxStateSucceeded
	}

	err = s.store.TransitionPair(ctx, store.TransitionPairInput{
		TransactionID:           *btx.TransactionID,
		State:                   ledgerState,
		BlockchainTransactionID: btx.ID,
		BlockchainState:         btxState,
	})
	if err != nil {
		return "", nil, err
	}

	s.invalidate(ctx, ledger)

	logger.InfoCtx(ctx, "Resolved removed log against canonical chain",
		zap.String("txHash", event.TxHash),
		zap.String("ledgerState", string(ledgerState)),
		zap.String("blockchainState", string(btxState)))

	return domain.ReconcileOutcomeReorged, &btx.ID, nil
}

// resolveParties maps an event onto platform entities. A nil result with a
// nil error means the event is not an in-platform donation.
func (s *syncer) resolveParties(ctx context.Context, event *domain.CurationEvent) (*resolvedParties, error) {
	if event.TokenAddress != domain.NormalizeAddress(s.config.TokenAddress) {
		logger.DebugCtx(ctx, "Skipping event with unaccepted token",
			zap.String("txHash", event.TxHash),
			zap.String("token", event.TokenAddress))
		return nil, nil
	}
	if !domain.IsRecognizedURI(event.URI) {
		logger.DebugCtx(ctx, "Skipping event with unrecognized URI",
			zap.String("txHash", event.TxHash),
			zap.String("uri", event.URI))
		return nil, nil
	}

	dataHash, err := domain.ExtractDataHash(event.URI)
	if err != nil {
		logger.DebugCtx(ctx, "Skipping event with malformed URI",
			zap.String("txHash", event.TxHash),
			zap.String("uri", event.URI))
		return nil, nil
	}

	curator, err := s.store.GetUserByEthAddress(ctx, event.CuratorAddress)
	if err != nil {
		return nil, err
	}
	creator, err := s.store.GetUserByEthAddress(ctx, event.CreatorAddress)
	if err != nil {
		return nil, err
	}
	article, err := s.store.GetArticleByDataHash(ctx, dataHash)
	if err != nil {
		return nil, err
	}

	if curator == nil || creator == nil || article == nil {
		return nil, nil
	}
	if article.AuthorID != creator.ID {
		logger.DebugCtx(ctx, "Skipping event whose creator does not own the article",
			zap.String("txHash", event.TxHash),
			zap.Uint64("articleID", article.ID))
		return nil, nil
	}

	return &resolvedParties{curator: curator, creator: creator, article: article}, nil
}

// eventMatchesLedger reports whether a ledger transaction records exactly the
// transfer the event describes
func (s *syncer) eventMatchesLedger(event *domain.CurationEvent, ledger *schema.Transaction, parties *resolvedParties) bool {
	if ledger.SenderID != parties.curator.ID ||
		ledger.RecipientID != parties.creator.ID ||
		ledger.TargetID != parties.article.ID {
		return false
	}
	if ledger.Currency != s.config.Currency {
		return false
	}

	expected, err := domain.ParseAmount(ledger.Amount, s.config.TokenDecimals)
	if err != nil {
		return false
	}
	return expected.Cmp(event.Amount) == 0
}

// announce publishes the confirmation and notification events and drops the
// cached transaction. Best effort: failures are logged, the sync pass goes on.
func (s *syncer) announce(ctx context.Context, ledger *schema.Transaction, txHash string, outcome domain.ReconcileOutcome) {
	err := s.notifier.PublishPaymentConfirmed(ctx, notify.PaymentConfirmedEvent{
		TransactionID: ledger.ID,
		Chain:         s.config.ChainID,
		TxHash:        txHash,
		Amount:        ledger.Amount,
		Currency:      ledger.Currency,
		SenderID:      ledger.SenderID,
		RecipientID:   ledger.RecipientID,
		TargetID:      ledger.TargetID,
		Outcome:       outcome,
	})
	if err != nil {
		logger.Error(err, zap.String("message", "Failed to publish payment confirmation"),
			zap.String("transactionID", ledger.ID.String()))
	}

	err = s.notifier.PublishDonationNotification(ctx, notify.DonationNotificationEvent{
		TransactionID: ledger.ID,
		SenderID:      ledger.SenderID,
		RecipientID:   ledger.RecipientID,
		TargetID:      ledger.TargetID,
	})
	if err != nil {
		logger.Error(err, zap.String("message", "Failed to publish donation notification"),
			zap.String("transactionID", ledger.ID.String()))
	}

	s.invalidate(ctx, ledger)
}

// invalidate drops the cached ledger transaction and its target article,
// whose donation rollup changed with the state of the transaction
func (s *syncer) invalidate(ctx context.Context, ledger *schema.Transaction) {
	s.invalidator.Invalidate(ctx, cache.EntityTypeTransaction, ledger.ID.String())
	s.invalidator.Invalidate(ctx, cache.EntityTypeArticle, strconv.FormatUint(ledger.TargetID, 10))
}

// buildMirrorRow converts a decoded event into its mirror table row
func buildMirrorRow(event *domain.CurationEvent, btxID *uint64) *schema.CurationEvent {
	raw, err := json.Marshal(event)
	if err != nil {
		raw = nil
	}

	return &schema.CurationEvent{
		TxHash:                  event.TxHash,
		BlockNumber:             event.BlockNumber,
		ContractAddress:         event.ContractAddress,
		CuratorAddress:          event.CuratorAddress,
		CreatorAddress:          event.CreatorAddress,
		TokenAddress:            event.TokenAddress,
		Amount:                  event.Amount.String(),
		URI:                     event.URI,
		BlockchainTransactionID: btxID,
		Raw:                     raw,
	}
}
