package store

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scriptorium/curation-reconciler/internal/domain"
	"github.com/scriptorium/curation-reconciler/internal/store/schema"
)

// =============================================================================
// Test Data Builders
// =============================================================================

const (
	testContract = "0xcccccccccccccccccccccccccccccccccccccccc"
	testToken    = "0xdac17f958d2ee523a2206206994597c13d831ec7"
)

// buildTestCurationEvent creates a mirrored event row for a given tx hash
func buildTestCurationEvent(txHash string, blockNumber uint64) *schema.CurationEvent {
	raw, _ := json.Marshal(map[string]interface{}{
		"tx_hash":      txHash,
		"block_number": blockNumber,
	})
	return &schema.CurationEvent{
		TxHash:          txHash,
		BlockNumber:     blockNumber,
		ContractAddress: testContract,
		CuratorAddress:  "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
		CreatorAddress:  "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb",
		TokenAddress:    testToken,
		Amount:          "10000000",
		URI:             "ipfs://QmYwAPJzv5CZsnAzt8auVZRn2E6sp7M3mXZbU1zi9cNkLW",
		Raw:             raw,
	}
}

// buildTestDonation creates a donation input for the seeded curator/creator/article
func buildTestDonation(txHash string, state domain.TransactionState, blockchainState domain.BlockchainTxState) CreateDonationInput {
	return CreateDonationInput{
		SenderID:        1,
		RecipientID:     2,
		TargetID:        10,
		Amount:          "10.0",
		Currency:        "USDT",
		Chain:           domain.ChainEthereumMainnet,
		TxHash:          txHash,
		State:           state,
		BlockchainState: blockchainState,
	}
}

// =============================================================================
// Test: SyncCursor
// =============================================================================

func testSyncCursor(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("missing cursor returns zero", func(t *testing.T) {
		block, err := store.GetSyncCursor(ctx, domain.ChainEthereumMainnet, testContract)
		require.NoError(t, err)
		assert.Equal(t, uint64(0), block)
	})

	t.Run("set then get", func(t *testing.T) {
		err := store.SetSyncCursor(ctx, domain.ChainEthereumMainnet, testContract, 990)
		require.NoError(t, err)

		block, err := store.GetSyncCursor(ctx, domain.ChainEthereumMainnet, testContract)
		require.NoError(t, err)
		assert.Equal(t, uint64(990), block)
	})

	t.Run("set again overwrites", func(t *testing.T) {
		err := store.SetSyncCursor(ctx, domain.ChainEthereumMainnet, testContract, 2000)
		require.NoError(t, err)

		block, err := store.GetSyncCursor(ctx, domain.ChainEthereumMainnet, testContract)
		require.NoError(t, err)
		assert.Equal(t, uint64(2000), block)
	})

	t.Run("cursors are per chain and contract", func(t *testing.T) {
		other := "0xdddddddddddddddddddddddddddddddddddddddd"
		err := store.SetSyncCursor(ctx, domain.ChainEthereumMainnet, other, 5)
		require.NoError(t, err)

		block, err := store.GetSyncCursor(ctx, domain.ChainEthereumMainnet, testContract)
		require.NoError(t, err)
		assert.Equal(t, uint64(2000), block)

		block, err = store.GetSyncCursor(ctx, domain.ChainEthereumSepolia, testContract)
		require.NoError(t, err)
		assert.Equal(t, uint64(0), block)
	})

	t.Run("address lookup is case-insensitive", func(t *testing.T) {
		block, err := store.GetSyncCursor(ctx, domain.ChainEthereumMainnet, "0xCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCCC")
		require.NoError(t, err)
		assert.Equal(t, uint64(2000), block)
	})
}

// =============================================================================
// Test: UpsertCurationEvents
// =============================================================================

func testUpsertCurationEvents(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("empty batch is a no-op", func(t *testing.T) {
		require.NoError(t, store.UpsertCurationEvents(ctx, nil))
	})

	t.Run("insert then refresh by tx hash", func(t *testing.T) {
		events := []*schema.CurationEvent{
			buildTestCurationEvent("0xevent1", 100),
			buildTestCurationEvent("0xevent2", 101),
		}
		require.NoError(t, store.UpsertCurationEvents(ctx, events))

		got, err := store.GetCurationEventByTxHash(ctx, "0xevent1")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, uint64(100), got.BlockNumber)
		firstID := got.ID

		// Reprocessing the same hash after a reorg moved the block
		moved := buildTestCurationEvent("0xevent1", 105)
		require.NoError(t, store.UpsertCurationEvents(ctx, []*schema.CurationEvent{moved}))

		got, err = store.GetCurationEventByTxHash(ctx, "0xevent1")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, firstID, got.ID, "upsert must not create a second row")
		assert.Equal(t, uint64(105), got.BlockNumber)
	})

	t.Run("unknown hash returns nil", func(t *testing.T) {
		got, err := store.GetCurationEventByTxHash(ctx, "0xnothere")
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

// =============================================================================
// Test: FindOrCreateBlockchainTransaction
// =============================================================================

func testFindOrCreateBlockchainTransaction(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("creates when absent", func(t *testing.T) {
		btx, err := store.FindOrCreateBlockchainTransaction(ctx, domain.ChainEthereumMainnet, "0xAbCdEf01", domain.BlockchainTxStatePending)
		require.NoError(t, err)
		require.NotNil(t, btx)
		assert.NotZero(t, btx.ID)
		assert.Equal(t, "0xabcdef01", btx.TxHash)
		assert.Equal(t, domain.BlockchainTxStatePending, btx.State)
	})

	t.Run("returns existing without touching state", func(t *testing.T) {
		first, err := store.FindOrCreateBlockchainTransaction(ctx, domain.ChainEthereumMainnet, "0xfeed", domain.BlockchainTxStateSucceeded)
		require.NoError(t, err)

		second, err := store.FindOrCreateBlockchainTransaction(ctx, domain.ChainEthereumMainnet, "0xfeed", domain.BlockchainTxStatePending)
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, domain.BlockchainTxStateSucceeded, second.State)
	})

	t.Run("same hash on another chain is a distinct record", func(t *testing.T) {
		mainnet, err := store.FindOrCreateBlockchainTransaction(ctx, domain.ChainEthereumMainnet, "0xsamehash", domain.BlockchainTxStatePending)
		require.NoError(t, err)

		sepolia, err := store.FindOrCreateBlockchainTransaction(ctx, domain.ChainEthereumSepolia, "0xsamehash", domain.BlockchainTxStatePending)
		require.NoError(t, err)
		assert.NotEqual(t, mainnet.ID, sepolia.ID)
	})
}

// =============================================================================
// Test: CreateDonation
// =============================================================================

func testCreateDonation(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("creates a linked pair", func(t *testing.T) {
		ledger, btx, err := store.CreateDonation(ctx, buildTestDonation("0xdonation1", domain.TransactionStatePending, domain.BlockchainTxStatePending))
		require.NoError(t, err)
		require.NotNil(t, ledger)
		require.NotNil(t, btx)

		assert.Equal(t, domain.TransactionStatePending, ledger.State)
		assert.Equal(t, domain.TransactionPurposeDonation, ledger.Purpose)
		assert.Equal(t, domain.TransactionProviderBlockchain, ledger.Provider)
		require.NotNil(t, ledger.ProviderTxID)
		assert.Equal(t, btx.ID, *ledger.ProviderTxID)

		require.NotNil(t, btx.TransactionID)
		assert.Equal(t, ledger.ID, *btx.TransactionID)
	})

	t.Run("adopts a pre-existing blockchain transaction", func(t *testing.T) {
		pre, err := store.FindOrCreateBlockchainTransaction(ctx, domain.ChainEthereumMainnet, "0xdonation2", domain.BlockchainTxStatePending)
		require.NoError(t, err)

		ledger, btx, err := store.CreateDonation(ctx, buildTestDonation("0xdonation2", domain.TransactionStateSucceeded, domain.BlockchainTxStateSucceeded))
		require.NoError(t, err)
		assert.Equal(t, pre.ID, btx.ID)
		assert.Equal(t, domain.BlockchainTxStateSucceeded, btx.State)
		require.NotNil(t, btx.TransactionID)
		assert.Equal(t, ledger.ID, *btx.TransactionID)
	})
}

// =============================================================================
// Test: TransitionPair
// =============================================================================

func testTransitionPair(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("pending to succeeded moves both rows", func(t *testing.T) {
		ledger, btx, err := store.CreateDonation(ctx, buildTestDonation("0xpair1", domain.TransactionStatePending, domain.BlockchainTxStatePending))
		require.NoError(t, err)

		err = store.TransitionPair(ctx, TransitionPairInput{
			TransactionID:           ledger.ID,
			State:                   domain.TransactionStateSucceeded,
			BlockchainTransactionID: btx.ID,
			BlockchainState:         domain.BlockchainTxStateSucceeded,
		})
		require.NoError(t, err)

		gotLedger, err := store.GetTransaction(ctx, ledger.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.TransactionStateSucceeded, gotLedger.State)
		assert.Nil(t, gotLedger.Remark)

		gotBtx, err := store.GetBlockchainTransactionByID(ctx, btx.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.BlockchainTxStateSucceeded, gotBtx.State)
	})

	t.Run("failed transition records a remark", func(t *testing.T) {
		ledger, btx, err := store.CreateDonation(ctx, buildTestDonation("0xpair2", domain.TransactionStatePending, domain.BlockchainTxStatePending))
		require.NoError(t, err)

		remark := domain.TransactionRemarkInvalid
		err = store.TransitionPair(ctx, TransitionPairInput{
			TransactionID:           ledger.ID,
			State:                   domain.TransactionStateFailed,
			Remark:                  &remark,
			BlockchainTransactionID: btx.ID,
			BlockchainState:         domain.BlockchainTxStateReverted,
		})
		require.NoError(t, err)

		gotLedger, err := store.GetTransaction(ctx, ledger.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.TransactionStateFailed, gotLedger.State)
		require.NotNil(t, gotLedger.Remark)
		assert.Equal(t, string(domain.TransactionRemarkInvalid), *gotLedger.Remark)
	})

	t.Run("reorg can move failed back to pending", func(t *testing.T) {
		ledger, btx, err := store.CreateDonation(ctx, buildTestDonation("0xpair3", domain.TransactionStateFailed, domain.BlockchainTxStateReverted))
		require.NoError(t, err)

		err = store.TransitionPair(ctx, TransitionPairInput{
			TransactionID:           ledger.ID,
			State:                   domain.TransactionStatePending,
			BlockchainTransactionID: btx.ID,
			BlockchainState:         domain.BlockchainTxStatePending,
		})
		require.NoError(t, err)

		gotLedger, err := store.GetTransaction(ctx, ledger.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.TransactionStatePending, gotLedger.State)
	})

	t.Run("missing ledger transaction", func(t *testing.T) {
		err := store.TransitionPair(ctx, TransitionPairInput{
			TransactionID:           uuid.New(),
			State:                   domain.TransactionStateSucceeded,
			BlockchainTransactionID: 1,
			BlockchainState:         domain.BlockchainTxStateSucceeded,
		})
		assert.ErrorIs(t, err, domain.ErrTransactionNotFound)
	})

	t.Run("missing blockchain transaction rolls the pair back", func(t *testing.T) {
		ledger, _, err := store.CreateDonation(ctx, buildTestDonation("0xpair4", domain.TransactionStatePending, domain.BlockchainTxStatePending))
		require.NoError(t, err)

		err = store.TransitionPair(ctx, TransitionPairInput{
			TransactionID:           ledger.ID,
			State:                   domain.TransactionStateSucceeded,
			BlockchainTransactionID: 999999999,
			BlockchainState:         domain.BlockchainTxStateSucceeded,
		})
		assert.ErrorIs(t, err, domain.ErrBlockchainTxNotFound)

		gotLedger, err := store.GetTransaction(ctx, ledger.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.TransactionStatePending, gotLedger.State, "ledger update must roll back with the pair")
	})

	t.Run("canceled transactions never move again", func(t *testing.T) {
		ledger, btx, err := store.CreateDonation(ctx, buildTestDonation("0xpair5", domain.TransactionStatePending, domain.BlockchainTxStatePending))
		require.NoError(t, err)

		_, err = store.ReplaceTransaction(ctx, ReplaceTransactionInput{
			StaleTransactionID:      ledger.ID,
			BlockchainTransactionID: btx.ID,
			SenderID:                1,
			RecipientID:             2,
			TargetID:                11,
			Amount:                  "10.0",
			Currency:                "USDT",
			State:                   domain.TransactionStatePending,
			BlockchainState:         domain.BlockchainTxStatePending,
		})
		require.NoError(t, err)

		err = store.TransitionPair(ctx, TransitionPairInput{
			TransactionID:           ledger.ID,
			State:                   domain.TransactionStateSucceeded,
			BlockchainTransactionID: btx.ID,
			BlockchainState:         domain.BlockchainTxStateSucceeded,
		})
		assert.Error(t, err)
	})
}

// =============================================================================
// Test: ReplaceTransaction
// =============================================================================

func testReplaceTransaction(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("cancels the stale row and repoints the hash", func(t *testing.T) {
		stale, btx, err := store.CreateDonation(ctx, buildTestDonation("0xreplace1", domain.TransactionStatePending, domain.BlockchainTxStatePending))
		require.NoError(t, err)

		replacement, err := store.ReplaceTransaction(ctx, ReplaceTransactionInput{
			StaleTransactionID:      stale.ID,
			BlockchainTransactionID: btx.ID,
			SenderID:                1,
			RecipientID:             2,
			TargetID:                11,
			Amount:                  "25.5",
			Currency:                "USDT",
			State:                   domain.TransactionStateSucceeded,
			BlockchainState:         domain.BlockchainTxStateSucceeded,
		})
		require.NoError(t, err)
		require.NotNil(t, replacement)

		// Stale row is terminal with an invalid remark
		gotStale, err := store.GetTransaction(ctx, stale.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.TransactionStateCanceled, gotStale.State)
		require.NotNil(t, gotStale.Remark)
		assert.Equal(t, string(domain.TransactionRemarkInvalid), *gotStale.Remark)

		// Replacement points back at what it superseded
		assert.Equal(t, domain.TransactionStateSucceeded, replacement.State)
		assert.Equal(t, "25.5", replacement.Amount)
		require.NotNil(t, replacement.SupersedesID)
		assert.Equal(t, stale.ID, *replacement.SupersedesID)

		// Blockchain record now belongs to the replacement
		gotBtx, err := store.GetBlockchainTransactionByID(ctx, btx.ID)
		require.NoError(t, err)
		require.NotNil(t, gotBtx.TransactionID)
		assert.Equal(t, replacement.ID, *gotBtx.TransactionID)
		assert.Equal(t, domain.BlockchainTxStateSucceeded, gotBtx.State)
	})

	t.Run("missing stale transaction", func(t *testing.T) {
		_, err := store.ReplaceTransaction(ctx, ReplaceTransactionInput{
			StaleTransactionID:      uuid.New(),
			BlockchainTransactionID: 1,
			SenderID:                1,
			RecipientID:             2,
			TargetID:                10,
			Amount:                  "1.0",
			Currency:                "USDT",
			State:                   domain.TransactionStatePending,
			BlockchainState:         domain.BlockchainTxStatePending,
		})
		assert.ErrorIs(t, err, domain.ErrTransactionNotFound)
	})
}

// =============================================================================
// Test: lookups
// =============================================================================

func testLookups(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("user by address", func(t *testing.T) {
		user, err := store.GetUserByEthAddress(ctx, "0xAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, uint64(1), user.ID)

		user, err = store.GetUserByEthAddress(ctx, "0x9999999999999999999999999999999999999999")
		require.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("user by id", func(t *testing.T) {
		user, err := store.GetUserByID(ctx, 1)
		require.NoError(t, err)
		require.NotNil(t, user)
		require.NotNil(t, user.EthAddress)
		assert.Equal(t, "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", *user.EthAddress)

		user, err = store.GetUserByID(ctx, 999)
		require.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("article by data hash", func(t *testing.T) {
		article, err := store.GetArticleByDataHash(ctx, "QmYwAPJzv5CZsnAzt8auVZRn2E6sp7M3mXZbU1zi9cNkLW")
		require.NoError(t, err)
		require.NotNil(t, article)
		assert.Equal(t, uint64(10), article.ID)
		assert.Equal(t, uint64(2), article.AuthorID)

		article, err = store.GetArticleByDataHash(ctx, "QmMissing")
		require.NoError(t, err)
		assert.Nil(t, article)
	})

	t.Run("article by id", func(t *testing.T) {
		article, err := store.GetArticleByID(ctx, 10)
		require.NoError(t, err)
		require.NotNil(t, article)
		assert.Equal(t, "QmYwAPJzv5CZsnAzt8auVZRn2E6sp7M3mXZbU1zi9cNkLW", article.DataHash)

		article, err = store.GetArticleByID(ctx, 999)
		require.NoError(t, err)
		assert.Nil(t, article)
	})
}

// =============================================================================
// Test: ListSucceededBlockchainTransactions
// =============================================================================

func testListSucceededBlockchainTransactions(t *testing.T, store Store) {
	ctx := context.Background()

	for i := range 3 {
		_, err := store.FindOrCreateBlockchainTransaction(ctx, domain.ChainEthereumMainnet, fmt.Sprintf("0xlist%d", i), domain.BlockchainTxStateSucceeded)
		require.NoError(t, err)
	}
	_, err := store.FindOrCreateBlockchainTransaction(ctx, domain.ChainEthereumMainnet, "0xlistpending", domain.BlockchainTxStatePending)
	require.NoError(t, err)

	btxs, err := store.ListSucceededBlockchainTransactions(ctx, domain.ChainEthereumMainnet, time.Now().Add(time.Minute), 10)
	require.NoError(t, err)
	assert.Len(t, btxs, 3)

	btxs, err = store.ListSucceededBlockchainTransactions(ctx, domain.ChainEthereumMainnet, time.Now().Add(time.Minute), 2)
	require.NoError(t, err)
	assert.Len(t, btxs, 2)

	btxs, err = store.ListSucceededBlockchainTransactions(ctx, domain.ChainEthereumMainnet, time.Now().Add(-time.Hour), 10)
	require.NoError(t, err)
	assert.Empty(t, btxs)
}

func testTouchBlockchainTransactions(t *testing.T, store Store) {
	ctx := context.Background()

	btx, err := store.FindOrCreateBlockchainTransaction(ctx, domain.ChainEthereumMainnet, "0xtouch", domain.BlockchainTxStateSucceeded)
	require.NoError(t, err)

	// Touching moves the row past an updatedBefore cutoff taken now
	cutoff := time.Now()
	time.Sleep(10 * time.Millisecond)
	require.NoError(t, store.TouchBlockchainTransactions(ctx, []uint64{btx.ID}))

	btxs, err := store.ListSucceededBlockchainTransactions(ctx, domain.ChainEthereumMainnet, cutoff, 10)
	require.NoError(t, err)
	assert.Empty(t, btxs)

	// Empty input is a no-op
	require.NoError(t, store.TouchBlockchainTransactions(ctx, nil))
}

func testUpdateBlockchainTransactionState(t *testing.T, store Store) {
	ctx := context.Background()

	btx, err := store.FindOrCreateBlockchainTransaction(ctx, domain.ChainEthereumMainnet, "0xmirror", domain.BlockchainTxStateSucceeded)
	require.NoError(t, err)

	require.NoError(t, store.UpdateBlockchainTransactionState(ctx, btx.ID, domain.BlockchainTxStatePending))

	updated, err := store.GetBlockchainTransactionByID(ctx, btx.ID)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, domain.BlockchainTxStatePending, updated.State)

	err = store.UpdateBlockchainTransactionState(ctx, 999999, domain.BlockchainTxStatePending)
	assert.ErrorIs(t, err, domain.ErrBlockchainTxNotFound)
}

// =============================================================================
// Suite runner
// =============================================================================

// RunStoreTests runs all store tests against a Store implementation
func RunStoreTests(t *testing.T, initDB func(t *testing.T) Store, cleanupDB func(t *testing.T)) {
	tests := []struct {
		name string
		fn   func(*testing.T, Store)
	}{
		{"SyncCursor", testSyncCursor},
		{"UpsertCurationEvents", testUpsertCurationEvents},
		{"FindOrCreateBlockchainTransaction", testFindOrCreateBlockchainTransaction},
		{"CreateDonation", testCreateDonation},
		{"TransitionPair", testTransitionPair},
		{"ReplaceTransaction", testReplaceTransaction},
		{"Lookups", testLookups},
		{"ListSucceededBlockchainTransactions", testListSucceededBlockchainTransactions},
		{"TouchBlockchainTransactions", testTouchBlockchainTransactions},
		{"UpdateBlockchainTransactionState", testUpdateBlockchainTransactionState},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := initDB(t)
			defer cleanupDB(t)
			tt.fn(t, store)
		})
	}
}
