package schema

import (
	"time"

	"gorm.io/datatypes"
)

// CurationEvent represents the curation_events table - the local mirror of
// on-chain Curation logs. One row per distinct emitting transaction hash;
// reprocessing the same hash upserts rather than duplicates.
type CurationEvent struct {
	// ID is the internal database primary key
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement"`
	// TxHash is the hash of the transaction that emitted the event
	TxHash string `gorm:"column:tx_hash;not null;uniqueIndex;type:text"`
	// BlockNumber is the block the event was observed in
	BlockNumber uint64 `gorm:"column:block_number;not null;type:bigint"`
	// ContractAddress is the emitting contract, lower-cased
	ContractAddress string `gorm:"column:contract_address;not null;type:text"`
	// CuratorAddress is the donating wallet, lower-cased
	CuratorAddress string `gorm:"column:curator_address;not null;type:text;index"`
	// CreatorAddress is the receiving wallet, lower-cased
	CreatorAddress string `gorm:"column:creator_address;not null;type:text;index"`
	// TokenAddress is the ERC20 token used for the transfer, lower-cased
	TokenAddress string `gorm:"column:token_address;not null;type:text"`
	// Amount is the transferred amount in base token units (up to 78 digits)
	Amount string `gorm:"column:amount;not null;type:numeric(78,0)"`
	// URI is the content-addressed URI emitted with the event
	URI string `gorm:"column:uri;not null;type:text"`
	// BlockchainTransactionID references the blockchain transaction record for this hash
	BlockchainTransactionID *uint64 `gorm:"column:blockchain_transaction_id;type:bigint"`
	// Raw contains the decoded event as JSON for debugging and audit
	Raw datatypes.JSON `gorm:"column:raw;type:jsonb"`
	// CreatedAt is the timestamp when this record was first mirrored
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now()"`
	// UpdatedAt is the timestamp when this record was last upserted
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now()"`
}

// TableName specifies the table name for the CurationEvent model
func (CurationEvent) TableName() string {
	return "curation_events"
}
