package db

import (
	"context"

	"github.com/trywilco/secure-info-concierge/models"
)

// ConciergeStore adapts the package-level query functions to the read
// interface the pipeline consumes.
type ConciergeStore struct{}

func (ConciergeStore) ListAccounts(ctx context.Context, username string) ([]models.Account, error) {
	return ListAccounts(ctx, username)
}

func (ConciergeStore) ListTransactions(ctx context.Context, username string, limit int) ([]models.Transaction, error) {
	return ListTransactions(ctx, username, limit)
}

func (ConciergeStore) ListAllTransactions(ctx context.Context, limit int) ([]models.Transaction, error) {
	return ListAllTransactions(ctx, limit)
}

func (ConciergeStore) LookupKnowledge(ctx context.Context, tag string) ([]models.KnowledgeItem, error) {
	return LookupKnowledge(ctx, tag)
}
