package chain

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sort"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/scriptorium/curation-reconciler/internal/adapter"
	"github.com/scriptorium/curation-reconciler/internal/domain"
)

var (
	// Curation(address indexed curator, address indexed creator, address indexed token, string uri, uint256 amount)
	curationEventSignature = crypto.Keccak256Hash([]byte("Curation(address,address,address,string,uint256)"))

	// Non-indexed arguments (uri, amount) live in the log data
	curationDataArguments abi.Arguments
)

func init() {
	stringType, _ := abi.NewType("string", "", nil)
	uint256Type, _ := abi.NewType("uint256", "", nil)
	curationDataArguments = abi.Arguments{
		{Name: "uri", Type: stringType},
		{Name: "amount", Type: uint256Type},
	}
}

// Client reads Curation contract activity from an EVM chain
//
//go:generate mockgen -source=client.go -destination=../mocks/chain.go -package=mocks -mock_names=Client=MockChainClient
type Client interface {
	// BlockNumber returns the most recent block number
	BlockNumber(ctx context.Context) (uint64, error)

	// FilterCurationEvents returns decoded Curation events emitted by the
	// contract within [fromBlock, toBlock], ordered by block number then
	// log index
	FilterCurationEvents(ctx context.Context, contractAddress string, fromBlock, toBlock uint64) ([]*domain.CurationEvent, error)

	// FilterCurationEventsFrom returns all decoded Curation events from
	// fromBlock up to the chain head, in the same order
	FilterCurationEventsFrom(ctx context.Context, contractAddress string, fromBlock uint64) ([]*domain.CurationEvent, error)

	// TransactionReceipt returns the receipt for a transaction hash, or
	// nil when the transaction is not mined on the current canonical chain
	TransactionReceipt(ctx context.Context, txHash string) (*types.Receipt, error)

	// FindCurationEvents extracts every Curation event emitted by the given
	// contract from a receipt, empty when the receipt carries none. A
	// transaction can emit several Curation events; callers match on the
	// decoded arguments, not log position.
	FindCurationEvents(receipt *types.Receipt, contractAddress string) ([]*domain.CurationEvent, error)

	// Close closes the underlying connection
	Close()
}

type client struct {
	chainID domain.Chain
	eth     adapter.EthClient
}

// NewClient creates a curation chain client over an Ethereum RPC client
func NewClient(chainID domain.Chain, eth adapter.EthClient) Client {
	return &client{chainID: chainID, eth: eth}
}

// BlockNumber returns the most recent block number
func (c *client) BlockNumber(ctx context.Context) (uint64, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	head, err := c.eth.BlockNumber(timeoutCtx)
	if err != nil {
		return 0, fmt.Errorf("failed to get block number: %w", err)
	}
	return head, nil
}

// FilterCurationEvents returns decoded Curation events emitted by the
// contract within [fromBlock, toBlock], ordered by block number then log index
func (c *client) FilterCurationEvents(ctx context.Context, contractAddress string, fromBlock, toBlock uint64) ([]*domain.CurationEvent, error) {
	return c.filterCurationEvents(ctx, contractAddress, fromBlock, new(big.Int).SetUint64(toBlock))
}

// FilterCurationEventsFrom returns all decoded Curation events from fromBlock
// up to the chain head, in the same order
func (c *client) FilterCurationEventsFrom(ctx context.Context, contractAddress string, fromBlock uint64) ([]*domain.CurationEvent, error) {
	return c.filterCurationEvents(ctx, contractAddress, fromBlock, nil)
}

func (c *client) filterCurationEvents(ctx context.Context, contractAddress string, fromBlock uint64, toBlock *big.Int) ([]*domain.CurationEvent, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	query := ethereum.FilterQuery{
		FromBlock: new(big.Int).SetUint64(fromBlock),
		ToBlock:   toBlock,
		Addresses: []common.Address{common.HexToAddress(contractAddress)},
		Topics:    [][]common.Hash{{curationEventSignature}},
	}

	logs, err := c.eth.FilterLogs(timeoutCtx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to filter logs from block %d: %w", fromBlock, err)
	}

	events := make([]*domain.CurationEvent, 0, len(logs))
	for _, vLog := range logs {
		event, err := ParseCurationLog(vLog)
		if err != nil {
			return nil, fmt.Errorf("failed to parse log %s: %w", vLog.TxHash.Hex(), err)
		}
		events = append(events, event)
	}

	sort.Slice(events, func(i, j int) bool {
		if events[i].BlockNumber != events[j].BlockNumber {
			return events[i].BlockNumber < events[j].BlockNumber
		}
		return events[i].LogIndex < events[j].LogIndex
	})

	return events, nil
}

// TransactionReceipt returns the receipt for a transaction hash, or nil when
// the transaction is not mined on the current canonical chain
func (c *client) TransactionReceipt(ctx context.Context, txHash string) (*types.Receipt, error) {
	timeoutCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	receipt, err := c.eth.TransactionReceipt(timeoutCtx, common.HexToHash(txHash))
	if err != nil {
		if errors.Is(err, ethereum.NotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get transaction receipt: %w", err)
	}
	return receipt, nil
}

// FindCurationEvents extracts every Curation event emitted by the given
// contract from a receipt, empty when the receipt carries none
func (c *client) FindCurationEvents(receipt *types.Receipt, contractAddress string) ([]*domain.CurationEvent, error) {
	if receipt == nil {
		return nil, nil
	}

	contract := common.HexToAddress(contractAddress)
	var events []*domain.CurationEvent
	for _, vLog := range receipt.Logs {
		if vLog == nil || vLog.Address != contract {
			continue
		}
		if len(vLog.Topics) == 0 || vLog.Topics[0] != curationEventSignature {
			continue
		}
		event, err := ParseCurationLog(*vLog)
		if err != nil {
			return nil, fmt.Errorf("failed to parse log %s: %w", vLog.TxHash.Hex(), err)
		}
		events = append(events, event)
	}

	return events, nil
}

// Close closes the underlying connection
func (c *client) Close() {
	c.eth.Close()
}

// ParseCurationLog decodes a raw Curation log. Indexed topics carry the
// curator, creator and token addresses; the data carries the uri and amount.
func ParseCurationLog(vLog types.Log) (*domain.CurationEvent, error) {
	if len(vLog.Topics) != 4 {
		return nil, fmt.Errorf("invalid Curation event: expected 4 topics, got %d", len(vLog.Topics))
	}
	if vLog.Topics[0] != curationEventSignature {
		return nil, fmt.Errorf("invalid Curation event: unexpected signature %s", vLog.Topics[0].Hex())
	}

	values, err := curationDataArguments.Unpack(vLog.Data)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack Curation event data: %w", err)
	}
	uri, ok := values[0].(string)
	if !ok {
		return nil, fmt.Errorf("invalid Curation event: uri is not a string")
	}
	amount, ok := values[1].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("invalid Curation event: amount is not a uint256")
	}

	return &domain.CurationEvent{
		TxHash:          domain.NormalizeHash(vLog.TxHash.Hex()),
		BlockNumber:     vLog.BlockNumber,
		LogIndex:        vLog.Index,
		Removed:         vLog.Removed,
		ContractAddress: domain.NormalizeAddress(vLog.Address.Hex()),
		CuratorAddress:  domain.NormalizeAddress(common.BytesToAddress(vLog.Topics[1].Bytes()).Hex()),
		CreatorAddress:  domain.NormalizeAddress(common.BytesToAddress(vLog.Topics[2].Bytes()).Hex()),
		TokenAddress:    domain.NormalizeAddress(common.BytesToAddress(vLog.Topics[3].Bytes()).Hex()),
		URI:             uri,
		Amount:          amount,
	}, nil
}
