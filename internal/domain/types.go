package domain

import (
	"math/big"
	"strings"
)

// Chain represents the blockchain network identifier using CAIP-2 format
type Chain string

const (
	ChainEthereumMainnet Chain = "eip155:1"
	ChainEthereumSepolia Chain = "eip155:11155111"
	ChainPolygonMainnet  Chain = "eip155:137"
)

// IsValidChain checks if a chain is valid
func IsValidChain(chain Chain) bool {
	return chain == ChainEthereumMainnet ||
		chain == ChainEthereumSepolia ||
		chain == ChainPolygonMainnet
}

// TransactionState represents the lifecycle state of a ledger transaction
type TransactionState string

const (
	TransactionStatePending   TransactionState = "pending"
	TransactionStateSucceeded TransactionState = "succeeded"
	TransactionStateCanceled  TransactionState = "canceled"
	TransactionStateFailed    TransactionState = "failed"
)

// BlockchainTxState represents the confirmation state of an on-chain transaction
type BlockchainTxState string

const (
	BlockchainTxStatePending   BlockchainTxState = "pending"
	BlockchainTxStateSucceeded BlockchainTxState = "succeeded"
	BlockchainTxStateReverted  BlockchainTxState = "reverted"
)

// TransactionRemark is a machine-readable reason attached to a terminal transition
type TransactionRemark string

const (
	// TransactionRemarkInvalid marks a ledger transaction whose on-chain
	// counterpart does not match the claimed donation parameters
	TransactionRemarkInvalid TransactionRemark = "invalid"
)

const (
	// TransactionPurposeDonation is the only purpose this service touches
	TransactionPurposeDonation = "donation"
	// TransactionProviderBlockchain marks transactions settled on-chain
	TransactionProviderBlockchain = "blockchain"
)

// CurationEvent is a decoded Curation log as returned by the chain client.
// Addresses are normalized to lower case for comparison.
type CurationEvent struct {
	TxHash          string    `json:"tx_hash"`
	BlockNumber     uint64    `json:"block_number"`
	LogIndex        uint      `json:"log_index"`
	Removed         bool      `json:"removed"` // true when the log was retracted by a reorg
	ContractAddress string    `json:"contract_address"`
	CuratorAddress  string    `json:"curator_address"`
	CreatorAddress  string    `json:"creator_address"`
	TokenAddress    string    `json:"token_address"`
	URI             string   `json:"uri"`
	Amount          *big.Int `json:"amount"` // base units of the token
}

// DonationParams are the on-chain transfer parameters expected for a ledger
// transaction, decoded from ledger data by the verifier
type DonationParams struct {
	CuratorAddress string
	CreatorAddress string
	TokenAddress   string
	Amount         *big.Int // base units
	DataHash       string   // IPFS content identifier of the target article
}

// Matches reports whether a decoded curation event carries exactly these
// donation parameters. Address comparison is case-insensitive.
func (p DonationParams) Matches(event *CurationEvent) bool {
	if event == nil || event.Amount == nil || p.Amount == nil {
		return false
	}
	dataHash, err := ExtractDataHash(event.URI)
	if err != nil {
		return false
	}
	return strings.EqualFold(p.CuratorAddress, event.CuratorAddress) &&
		strings.EqualFold(p.CreatorAddress, event.CreatorAddress) &&
		strings.EqualFold(p.TokenAddress, event.TokenAddress) &&
		p.Amount.Cmp(event.Amount) == 0 &&
		dataHash == p.DataHash
}

// ReconcileOutcome tags the result of reconciling a mirrored curation event
// against the ledger
type ReconcileOutcome string

const (
	// ReconcileOutcomeNoMatch means the event is not an in-platform donation
	ReconcileOutcomeNoMatch ReconcileOutcome = "no_match"
	// ReconcileOutcomeNewDonation means a ledger transaction was created retroactively
	ReconcileOutcomeNewDonation ReconcileOutcome = "new_donation"
	// ReconcileOutcomeConfirmed means an existing ledger transaction was confirmed
	ReconcileOutcomeConfirmed ReconcileOutcome = "confirmed"
	// ReconcileOutcomeSuperseded means a stale ledger transaction was canceled and replaced
	ReconcileOutcomeSuperseded ReconcileOutcome = "superseded"
	// ReconcileOutcomeReorged means a removed log was re-resolved against the canonical chain
	ReconcileOutcomeReorged ReconcileOutcome = "reorged"
)

// NormalizeAddress lower-cases a hex address so that equality checks and
// database lookups are case-insensitive
func NormalizeAddress(address string) string {
	return strings.ToLower(address)
}

// NormalizeHash lower-cases a transaction hash for the same reason
func NormalizeHash(hash string) string {
	return strings.ToLower(hash)
}
