package schema

import (
	"time"

	"github.com/google/uuid"

	"github.com/scriptorium/curation-reconciler/internal/domain"
)

// Transaction represents the transactions table - the platform's ledger
// record of a monetary transfer, independent of its settlement mechanism
type Transaction struct {
	// ID is the ledger transaction identifier
	ID uuid.UUID `gorm:"column:id;primaryKey;type:uuid"`
	// State is the lifecycle state (pending, succeeded, canceled, failed)
	State domain.TransactionState `gorm:"column:state;not null;type:text;index"`
	// Remark is an optional machine-readable reason for a terminal transition
	Remark *string `gorm:"column:remark;type:text"`
	// Purpose describes what the transfer pays for (donation)
	Purpose string `gorm:"column:purpose;not null;type:text"`
	// Amount is the human-readable decimal amount (e.g. "10.0")
	Amount string `gorm:"column:amount;not null;type:numeric(36,18)"`
	// Currency is the ledger currency code (e.g. "USDT")
	Currency string `gorm:"column:currency;not null;type:text"`
	// Provider identifies the settlement mechanism (blockchain)
	Provider string `gorm:"column:provider;not null;type:text"`
	// ProviderTxID references the blockchain transaction record, when on-chain
	ProviderTxID *uint64 `gorm:"column:provider_tx_id;type:bigint;index"`
	// SenderID is the donating platform user
	SenderID uint64 `gorm:"column:sender_id;not null;type:bigint;index"`
	// RecipientID is the receiving platform user
	RecipientID uint64 `gorm:"column:recipient_id;not null;type:bigint;index"`
	// TargetID is the donated-to article
	TargetID uint64 `gorm:"column:target_id;not null;type:bigint;index"`
	// SupersedesID points at the canceled ledger transaction this row replaced,
	// set only on replacements created when a stale link is invalidated
	SupersedesID *uuid.UUID `gorm:"column:supersedes_id;type:uuid"`
	// CreatedAt is the timestamp when this record was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now()"`
	// UpdatedAt is the timestamp when this record was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now()"`
}

// TableName specifies the table name for the Transaction model
func (Transaction) TableName() string {
	return "transactions"
}
