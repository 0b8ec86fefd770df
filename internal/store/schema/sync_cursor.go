package schema

import (
	"time"

	"github.com/scriptorium/curation-reconciler/internal/domain"
)

// SyncCursor represents the sync_cursors table - the last fully processed
// block number per watched contract. One row per (chain, contract) pair;
// only the event synchronizer writes it.
type SyncCursor struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// ChainID identifies the blockchain network (CAIP-2, e.g. "eip155:1")
	ChainID domain.Chain `gorm:"column:chain_id;not null;type:text;uniqueIndex:idx_sync_cursors_chain_contract,priority:1"`
	// ContractAddress is the watched contract, lower-cased
	ContractAddress string `gorm:"column:contract_address;not null;type:text;uniqueIndex:idx_sync_cursors_chain_contract,priority:2"`
	// BlockNumber is the highest block whose events have been fully mirrored
	BlockNumber uint64 `gorm:"column:block_number;not null;type:bigint"`
	// CreatedAt is the timestamp when this record was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now()"`
	// UpdatedAt is the timestamp when this record was last advanced
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now()"`
}

// TableName specifies the table name for the SyncCursor model
func (SyncCursor) TableName() string {
	return "sync_cursors"
}
