package repositories

import (
	"context"

	"github.com/SscSPs/banking_app/internal/core/domain"
)

// TransactionReader defines read operations on the transaction log
type TransactionReader interface {
	// ListForOwner returns every record on the owner's accounts, newest first.
	ListForOwner(ctx context.Context, ownerID string) ([]domain.Transaction, error)

	// ListForOwnerPage returns up to limit records older than the cursor, newest first.
	// A nil cursor starts from the newest record.
	ListForOwnerPage(ctx context.Context, ownerID string, after *domain.TransactionCursor, limit int) ([]domain.Transaction, error)
}

// TransactionWriter defines the append-only write side of the transaction log
type TransactionWriter interface {
	// Append stores one immutable record.
	Append(ctx context.Context, txn domain.Transaction) (int64, error)
}

// TransactionRepositoryFacade combines all transaction log interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
