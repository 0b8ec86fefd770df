package cache

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/scriptorium/curation-reconciler/internal/adapter"
	"github.com/scriptorium/curation-reconciler/internal/logger"
)

// Entity types whose cached representations go stale when the ledger moves
const (
	EntityTypeTransaction = "transaction"
	EntityTypeUser        = "user"
	EntityTypeArticle     = "article"
)

// Invalidator drops cached API representations after ledger writes
//
//go:generate mockgen -source=invalidator.go -destination=../mocks/invalidator.go -package=mocks -mock_names=Invalidator=MockInvalidator
type Invalidator interface {
	// Invalidate removes the cache entries for the given entities.
	// Failures are logged, never propagated.
	Invalidate(ctx context.Context, entityType string, ids ...string)
	// Close closes the underlying connection
	Close() error
}

type invalidator struct {
	client adapter.RedisClient
}

// NewInvalidator creates a Redis-backed cache invalidator
func NewInvalidator(client adapter.RedisClient) Invalidator {
	return &invalidator{client: client}
}

// Invalidate removes the cache entries for the given entities
func (i *invalidator) Invalidate(ctx context.Context, entityType string, ids ...string) {
	if len(ids) == 0 {
		return
	}

	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, fmt.Sprintf("cache:%s:%s", entityType, id))
	}

	if err := i.client.Del(ctx, keys...); err != nil {
		logger.Error(err,
			zap.String("message", "Failed to invalidate cache entries"),
			zap.String("entityType", entityType),
			zap.Strings("ids", ids))
	}
}

// Close closes the underlying connection
func (i *invalidator) Close() error {
	return i.client.Close()
}
