package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/scriptorium/curation-reconciler/internal/domain"
	"github.com/scriptorium/curation-reconciler/internal/store/schema"
)

type pgStore struct {
	db *gorm.DB
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM database connection.
// It accesses the underlying *sql.DB and sets the pool configuration.
// If any of the pool settings are 0 or empty, reasonable defaults are used:
//   - MaxOpenConns: 20 (if 0)
//   - MaxIdleConns: 5 (if 0)
//   - ConnMaxLifetime: 5 minutes (if 0)
//   - ConnMaxIdleTime: 10 minutes (if 0)
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and clamps pool settings into safe values.
//
// Defaults (when zero):
//   - MaxOpenConns: 20
//   - MaxIdleConns: 5
//   - ConnMaxLifetime: 5 minutes
//   - ConnMaxIdleTime: 10 minutes
//
// Notes:
//   - database/sql treats MaxOpenConns=0 as "unlimited"
//   - database/sql treats MaxIdleConns=0 as "no idle connections"
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	// Set defaults if not provided
	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	// Ensure MaxIdleConns doesn't exceed MaxOpenConns
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// GetSyncCursor retrieves the last fully processed block number for a
// watched contract, 0 when no cursor exists yet
func (s *pgStore) GetSyncCursor(ctx context.Context, chain domain.Chain, contractAddress string) (uint64, error) {
	var cursor schema.SyncCursor
	err := s.db.WithContext(ctx).
		Where("chain_id = ? AND contract_address = ?", chain, domain.NormalizeAddress(contractAddress)).
		First(&cursor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil // No cursor yet means start from the deploy block
		}
		return 0, fmt.Errorf("failed to get sync cursor: %w", err)
	}
	return cursor.BlockNumber, nil
}

// SetSyncCursor stores the last fully processed block number for a watched contract
func (s *pgStore) SetSyncCursor(ctx context.Context, chain domain.Chain, contractAddress string, blockNumber uint64) error {
	cursor := schema.SyncCursor{
		ChainID:         chain,
		ContractAddress: domain.NormalizeAddress(contractAddress),
		BlockNumber:     blockNumber,
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "chain_id"}, {Name: "contract_address"}},
		DoUpdates: clause.AssignmentColumns([]string{"block_number", "updated_at"}),
	}).Create(&cursor).Error
	if err != nil {
		return fmt.Errorf("failed to set sync cursor: %w", err)
	}

	return nil
}

// UpsertCurationEvents mirrors a batch of decoded curation events,
// inserting new rows and refreshing existing ones by tx hash
func (s *pgStore) UpsertCurationEvents(ctx context.Context, events []*schema.CurationEvent) error {
	if len(events) == 0 {
		return nil
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "tx_hash"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"block_number", "contract_address", "curator_address", "creator_address",
			"token_address", "amount", "uri", "blockchain_transaction_id", "raw", "updated_at",
		}),
	}).CreateInBatches(events, 500).Error
	if err != nil {
		return fmt.Errorf("failed to upsert curation events: %w", err)
	}

	return nil
}

// GetCurationEventByTxHash retrieves a mirrored event by its transaction hash
func (s *pgStore) GetCurationEventByTxHash(ctx context.Context, txHash string) (*schema.CurationEvent, error) {
	var event schema.CurationEvent
	err := s.db.WithContext(ctx).Where("tx_hash = ?", domain.NormalizeHash(txHash)).First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get curation event: %w", err)
	}
	return &event, nil
}

// FindOrCreateBlockchainTransaction returns the blockchain transaction
// record for (chain, txHash), creating it in the given state if absent
func (s *pgStore) FindOrCreateBlockchainTransaction(ctx context.Context, chain domain.Chain, txHash string, state domain.BlockchainTxState) (*schema.BlockchainTransaction, error) {
	btx := schema.BlockchainTransaction{
		Chain:  chain,
		TxHash: domain.NormalizeHash(txHash),
		State:  state,
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "chain"}, {Name: "tx_hash"}},
		DoNothing: true,
	}).Clauses(clause.Returning{Columns: []clause.Column{}}).
		Create(&btx).Error
	if err != nil {
		return nil, fmt.Errorf("failed to create blockchain transaction: %w", err)
	}

	// ID 0 means the row already existed, fetch it without touching its state
	if btx.ID == 0 {
		err = s.db.WithContext(ctx).
			Where("chain = ? AND tx_hash = ?", chain, domain.NormalizeHash(txHash)).
			First(&btx).Error
		if err != nil {
			return nil, fmt.Errorf("failed to get existing blockchain transaction: %w", err)
		}
	}

	return &btx, nil
}

// GetBlockchainTransaction retrieves a blockchain transaction by chain and hash
func (s *pgStore) GetBlockchainTransaction(ctx context.Context, chain domain.Chain, txHash string) (*schema.BlockchainTransaction, error) {
	var btx schema.BlockchainTransaction
	err := s.db.WithContext(ctx).
		Where("chain = ? AND tx_hash = ?", chain, domain.NormalizeHash(txHash)).
		First(&btx).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get blockchain transaction: %w", err)
	}
	return &btx, nil
}

// GetBlockchainTransactionByID retrieves a blockchain transaction by its internal ID
func (s *pgStore) GetBlockchainTransactionByID(ctx context.Context, id uint64) (*schema.BlockchainTransaction, error) {
	var btx schema.BlockchainTransaction
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&btx).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get blockchain transaction: %w", err)
	}
	return &btx, nil
}

// ListSucceededBlockchainTransactions lists succeeded blockchain
// transactions last updated before the given time, oldest first
func (s *pgStore) ListSucceededBlockchainTransactions(ctx context.Context, chain domain.Chain, updatedBefore time.Time, limit int) ([]*schema.BlockchainTransaction, error) {
	var btxs []*schema.BlockchainTransaction
	err := s.db.WithContext(ctx).
		Where("chain = ? AND state = ? AND updated_at < ?", chain, domain.BlockchainTxStateSucceeded, updatedBefore).
		Order("updated_at ASC").
		Limit(limit).
		Find(&btxs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list succeeded blockchain transactions: %w", err)
	}
	return btxs, nil
}

// TouchBlockchainTransactions bumps the update timestamps of the given
// blockchain transactions so audit scans move past them
func (s *pgStore) TouchBlockchainTransactions(ctx context.Context, ids []uint64) error {
	if len(ids) == 0 {
		return nil
	}

	err := s.db.WithContext(ctx).
		Model(&schema.BlockchainTransaction{}).
		Where("id IN ?", ids).
		Update("updated_at", time.Now()).Error
	if err != nil {
		return fmt.Errorf("failed to touch blockchain transactions: %w", err)
	}
	return nil
}

// UpdateBlockchainTransactionState moves a blockchain transaction to a new state
func (s *pgStore) UpdateBlockchainTransactionState(ctx context.Context, id uint64, state domain.BlockchainTxState) error {
	result := s.db.WithContext(ctx).
		Model(&schema.BlockchainTransaction{}).
		Where("id = ?", id).
		Update("state", state)
	if result.Error != nil {
		return fmt.Errorf("failed to update blockchain transaction state: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrBlockchainTxNotFound
	}
	return nil
}

// GetTransaction retrieves a ledger transaction by its ID
func (s *pgStore) GetTransaction(ctx context.Context, id uuid.UUID) (*schema.Transaction, error) {
	var tx schema.Transaction
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&tx).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return &tx, nil
}

// GetUserByID retrieves a user by ID, nil when unknown
func (s *pgStore) GetUserByID(ctx context.Context, id uint64) (*schema.User, error) {
	var user schema.User
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// GetUserByEthAddress retrieves a user by wallet address, nil when unknown
func (s *pgStore) GetUserByEthAddress(ctx context.Context, address string) (*schema.User, error) {
	var user schema.User
	err := s.db.WithContext(ctx).
		Where("eth_address = ?", domain.NormalizeAddress(address)).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by address: %w", err)
	}
	return &user, nil
}

// GetArticleByID retrieves an article by ID, nil when unknown
func (s *pgStore) GetArticleByID(ctx context.Context, id uint64) (*schema.Article, error) {
	var article schema.Article
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&article).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get article: %w", err)
	}
	return &article, nil
}

// GetArticleByDataHash retrieves an article by its content hash, nil when unknown
func (s *pgStore) GetArticleByDataHash(ctx context.Context, dataHash string) (*schema.Article, error) {
	var article schema.Article
	err := s.db.WithContext(ctx).Where("data_hash = ?", dataHash).First(&article).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get article by data hash: %w", err)
	}
	return &article, nil
}

// CreateDonation atomically creates a ledger transaction and its
// blockchain transaction record, linked both ways
func (s *pgStore) CreateDonation(ctx context.Context, input CreateDonationInput) (*schema.Transaction, *schema.BlockchainTransaction, error) {
	ledger := schema.Transaction{
		ID:          uuid.New(),
		State:       input.State,
		Purpose:     domain.TransactionPurposeDonation,
		Amount:      input.Amount,
		Currency:    input.Currency,
		Provider:    domain.TransactionProviderBlockchain,
		SenderID:    input.SenderID,
		RecipientID: input.RecipientID,
		TargetID:    input.TargetID,
	}
	btx := schema.BlockchainTransaction{
		Chain:  input.Chain,
		TxHash: domain.NormalizeHash(input.TxHash),
		State:  input.BlockchainState,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Create or get the blockchain transaction record for this hash
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "chain"}, {Name: "tx_hash"}},
			DoNothing: true,
		}).Clauses(clause.Returning{Columns: []clause.Column{}}).
			Create(&btx).Error; err != nil {
			return fmt.Errorf("failed to create blockchain transaction: %w", err)
		}

		if btx.ID == 0 {
			if err := tx.Where("chain = ? AND tx_hash = ?", input.Chain, domain.NormalizeHash(input.TxHash)).
				First(&btx).Error; err != nil {
				return fmt.Errorf("failed to get existing blockchain transaction: %w", err)
			}
		}

		// 2. Create the ledger transaction pointing at the blockchain record
		ledger.ProviderTxID = &btx.ID
		if err := tx.Create(&ledger).Error; err != nil {
			return fmt.Errorf("failed to create transaction: %w", err)
		}

		// 3. Link back and align the blockchain state
		if err := tx.Model(&schema.BlockchainTransaction{}).
			Where("id = ?", btx.ID).
			Updates(map[string]interface{}{
				"transaction_id": ledger.ID,
				"state":          input.BlockchainState,
			}).Error; err != nil {
			return fmt.Errorf("failed to link blockchain transaction: %w", err)
		}

		btx.TransactionID = &ledger.ID
		btx.State = input.BlockchainState
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return &ledger, &btx, nil
}

// TransitionPair atomically moves a ledger transaction and its blockchain
// transaction to new states. Both rows change or neither does.
func (s *pgStore) TransitionPair(ctx context.Context, input TransitionPairInput) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ledger schema.Transaction
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", input.TransactionID).
			First(&ledger).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrTransactionNotFound
			}
			return fmt.Errorf("failed to get transaction: %w", err)
		}

		if ledger.Provider != domain.TransactionProviderBlockchain {
			return domain.ErrWrongProvider
		}
		// Canceled rows are superseded history and never move again
		if ledger.State == domain.TransactionStateCanceled {
			return fmt.Errorf("transaction %s is canceled and cannot transition", ledger.ID)
		}

		updates := map[string]interface{}{"state": input.State}
		if input.Remark != nil {
			remark := string(*input.Remark)
			updates["remark"] = remark
		}
		if err := tx.Model(&schema.Transaction{}).
			Where("id = ?", input.TransactionID).
			Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update transaction state: %w", err)
		}

		result := tx.Model(&schema.BlockchainTransaction{}).
			Where("id = ?", input.BlockchainTransactionID).
			Update("state", input.BlockchainState)
		if result.Error != nil {
			return fmt.Errorf("failed to update blockchain transaction state: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return domain.ErrBlockchainTxNotFound
		}

		return nil
	})
}

// ReplaceTransaction atomically cancels a stale ledger transaction, creates a
// replacement carrying a pointer back to the canceled row, and repoints the
// blockchain transaction record to the replacement
func (s *pgStore) ReplaceTransaction(ctx context.Context, input ReplaceTransactionInput) (*schema.Transaction, error) {
	replacement := schema.Transaction{
		ID:           uuid.New(),
		State:        input.State,
		Purpose:      domain.TransactionPurposeDonation,
		Amount:       input.Amount,
		Currency:     input.Currency,
		Provider:     domain.TransactionProviderBlockchain,
		ProviderTxID: &input.BlockchainTransactionID,
		SenderID:     input.SenderID,
		RecipientID:  input.RecipientID,
		TargetID:     input.TargetID,
		SupersedesID: &input.StaleTransactionID,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var stale schema.Transaction
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", input.StaleTransactionID).
			First(&stale).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrTransactionNotFound
			}
			return fmt.Errorf("failed to get stale transaction: %w", err)
		}

		// 1. Cancel the stale row with an invalid remark
		remark := string(domain.TransactionRemarkInvalid)
		if err := tx.Model(&schema.Transaction{}).
			Where("id = ?", input.StaleTransactionID).
			Updates(map[string]interface{}{
				"state":  domain.TransactionStateCanceled,
				"remark": remark,
			}).Error; err != nil {
			return fmt.Errorf("failed to cancel stale transaction: %w", err)
		}

		// 2. Create the replacement
		if err := tx.Create(&replacement).Error; err != nil {
			return fmt.Errorf("failed to create replacement transaction: %w", err)
		}

		// 3. Repoint the blockchain transaction and align its state
		result := tx.Model(&schema.BlockchainTransaction{}).
			Where("id = ?", input.BlockchainTransactionID).
			Updates(map[string]interface{}{
				"transaction_id": replacement.ID,
				"state":          input.BlockchainState,
			})
		if result.Error != nil {
			return fmt.Errorf("failed to repoint blockchain transaction: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return domain.ErrBlockchainTxNotFound
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &replacement, nil
}
