package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/scriptorium/curation-reconciler/internal/domain"
	"github.com/scriptorium/curation-reconciler/internal/store/schema"
)

//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks

// CreateDonationInput contains everything needed to create a ledger
// transaction together with its blockchain transaction record
type CreateDonationInput struct {
	SenderID    uint64
	RecipientID uint64
	TargetID    uint64
	Amount      string
	Currency    string
	Chain       domain.Chain
	TxHash      string
	// State is the initial state for both rows of the pair. A donation
	// discovered during catch-up is created succeeded/succeeded; one
	// discovered near the head is created pending/pending.
	State           domain.TransactionState
	BlockchainState domain.BlockchainTxState
}

// TransitionPairInput identifies a ledger/blockchain transaction pair and
// the states to move both rows to
type TransitionPairInput struct {
	TransactionID           uuid.UUID
	State                   domain.TransactionState
	Remark                  *domain.TransactionRemark
	BlockchainTransactionID uint64
	BlockchainState         domain.BlockchainTxState
}

// ReplaceTransactionInput cancels a stale ledger transaction and creates its
// replacement, repointing the blockchain transaction record to the new row
type ReplaceTransactionInput struct {
	StaleTransactionID      uuid.UUID
	BlockchainTransactionID uint64
	SenderID                uint64
	RecipientID             uint64
	TargetID                uint64
	Amount                  string
	Currency                string
	State                   domain.TransactionState
	BlockchainState         domain.BlockchainTxState
}

// Store defines the interface for database operations
type Store interface {
	// GetSyncCursor retrieves the last fully processed block number for a
	// watched contract, 0 when no cursor exists yet
	GetSyncCursor(ctx context.Context, chain domain.Chain, contractAddress string) (uint64, error)
	// SetSyncCursor stores the last fully processed block number for a watched contract
	SetSyncCursor(ctx context.Context, chain domain.Chain, contractAddress string, blockNumber uint64) error

	// UpsertCurationEvents mirrors a batch of decoded curation events,
	// inserting new rows and refreshing existing ones by tx hash
	UpsertCurationEvents(ctx context.Context, events []*schema.CurationEvent) error
	// GetCurationEventByTxHash retrieves a mirrored event by its transaction hash
	GetCurationEventByTxHash(ctx context.Context, txHash string) (*schema.CurationEvent, error)

	// FindOrCreateBlockchainTransaction returns the blockchain transaction
	// record for (chain, txHash), creating it in the given state if absent
	FindOrCreateBlockchainTransaction(ctx context.Context, chain domain.Chain, txHash string, state domain.BlockchainTxState) (*schema.BlockchainTransaction, error)
	// GetBlockchainTransaction retrieves a blockchain transaction by chain and hash
	GetBlockchainTransaction(ctx context.Context, chain domain.Chain, txHash string) (*schema.BlockchainTransaction, error)
	// GetBlockchainTransactionByID retrieves a blockchain transaction by its internal ID
	GetBlockchainTransactionByID(ctx context.Context, id uint64) (*schema.BlockchainTransaction, error)
	// ListSucceededBlockchainTransactions lists succeeded blockchain
	// transactions last updated before the given time, oldest first
	ListSucceededBlockchainTransactions(ctx context.Context, chain domain.Chain, updatedBefore time.Time, limit int) ([]*schema.BlockchainTransaction, error)
	// TouchBlockchainTransactions bumps the update timestamps of the given
	// blockchain transactions so audit scans move past them
	TouchBlockchainTransactions(ctx context.Context, ids []uint64) error
	// UpdateBlockchainTransactionState moves a blockchain transaction to a new state
	UpdateBlockchainTransactionState(ctx context.Context, id uint64, state domain.BlockchainTxState) error

	// GetTransaction retrieves a ledger transaction by its ID
	GetTransaction(ctx context.Context, id uuid.UUID) (*schema.Transaction, error)

	// GetUserByID retrieves a user by ID, nil when unknown
	GetUserByID(ctx context.Context, id uint64) (*schema.User, error)
	// GetUserByEthAddress retrieves a user by wallet address, nil when unknown
	GetUserByEthAddress(ctx context.Context, address string) (*schema.User, error)
	// GetArticleByID retrieves an article by ID, nil when unknown
	GetArticleByID(ctx context.Context, id uint64) (*schema.Article, error)
	// GetArticleByDataHash retrieves an article by its content hash, nil when unknown
	GetArticleByDataHash(ctx context.Context, dataHash string) (*schema.Article, error)

	// CreateDonation atomically creates a ledger transaction and its
	// blockchain transaction record, linked both ways
	CreateDonation(ctx context.Context, input CreateDonationInput) (*schema.Transaction, *schema.BlockchainTransaction, error)
	// TransitionPair atomically moves a ledger transaction and its
	// blockchain transaction to new states
	TransitionPair(ctx context.Context, input TransitionPairInput) error
	// ReplaceTransaction atomically cancels a stale ledger transaction,
	// creates a replacement carrying a pointer back to the canceled row,
	// and repoints the blockchain transaction record to the replacement
	ReplaceTransaction(ctx context.Context, input ReplaceTransactionInput) (*schema.Transaction, error)
}
