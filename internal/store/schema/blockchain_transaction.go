package schema

import (
	"time"

	"github.com/google/uuid"

	"github.com/scriptorium/curation-reconciler/internal/domain"
)

// BlockchainTransaction represents the blockchain_transactions table - a thin
// record mapping an on-chain transaction hash to at most one ledger
// transaction and a confirmation state. Created lazily by whichever path
// observes the hash first.
type BlockchainTransaction struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// Chain identifies the blockchain network (CAIP-2)
	Chain domain.Chain `gorm:"column:chain;not null;type:text;uniqueIndex:idx_blockchain_transactions_chain_tx_hash,priority:1"`
	// TxHash is the on-chain transaction hash, lower-cased
	TxHash string `gorm:"column:tx_hash;not null;type:text;uniqueIndex:idx_blockchain_transactions_chain_tx_hash,priority:2"`
	// State is the confirmation state (pending, succeeded, reverted)
	State domain.BlockchainTxState `gorm:"column:state;not null;type:text"`
	// TransactionID links to the current ledger transaction for this hash,
	// nil until a ledger row is associated. Repointed when a stale link is
	// superseded.
	TransactionID *uuid.UUID `gorm:"column:transaction_id;type:uuid"`
	// CreatedAt is the timestamp when this record was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now()"`
	// UpdatedAt is the timestamp when this record was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now()"`
}

// TableName specifies the table name for the BlockchainTransaction model
func (BlockchainTransaction) TableName() string {
	return "blockchain_transactions"
}
