package domain

import "errors"

var (
	// ErrTransactionNotFound is returned when a ledger transaction is not found
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrBlockchainTxNotFound is returned when a blockchain transaction record is not found
	ErrBlockchainTxNotFound = errors.New("blockchain transaction not found")

	// ErrWrongProvider is returned when a verification job references a
	// transaction that is not settled on-chain
	ErrWrongProvider = errors.New("transaction provider is not blockchain")

	// ErrReceiptNotAvailable is returned while a transaction is not yet mined
	ErrReceiptNotAvailable = errors.New("transaction receipt not available")

	// ErrInvalidAmount is returned when a ledger amount cannot be converted
	// to base units without loss
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrUnsupportedURI is returned for URIs whose scheme is not a
	// recognized content-addressed scheme
	ErrUnsupportedURI = errors.New("unsupported uri scheme")
)
