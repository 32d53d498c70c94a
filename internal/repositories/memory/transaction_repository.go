package memory

import (
	"context"
	"sort"

	"github.com/SscSPs/banking_app/internal/core/domain"
	portsrepo "github.com/SscSPs/banking_app/internal/core/ports/repositories"
)

type TransactionRepository struct {
	store *Store
}

var _ portsrepo.TransactionRepositoryFacade = (*TransactionRepository)(nil)

func (r *TransactionRepository) Append(ctx context.Context, txn domain.Transaction) (int64, error) {
	defer r.store.lock(ctx)()
	r.store.transactions = append(r.store.transactions, txn)
	return 1, nil
}

func (r *TransactionRepository) ListForOwner(ctx context.Context, ownerID string) ([]domain.Transaction, error) {
	defer r.store.lock(ctx)()
	return r.ownerHistory(ownerID), nil
}

func (r *TransactionRepository) ListForOwnerPage(ctx context.Context, ownerID string, after *domain.TransactionCursor, limit int) ([]domain.Transaction, error) {
	defer r.store.lock(ctx)()
	page := make([]domain.Transaction, 0, limit)
	for _, t := range r.ownerHistory(ownerID) {
		if after != nil && !olderThan(t, *after) {
			continue
		}
		if len(page) == limit {
			break
		}
		page = append(page, t)
	}
	return page, nil
}

// ownerHistory returns the owner's records ordered by (timestamp, id) descending.
// Caller holds the store lock.
func (r *TransactionRepository) ownerHistory(ownerID string) []domain.Transaction {
	history := []domain.Transaction{}
	for _, t := range r.store.transactions {
		if acc, ok := r.store.accounts[t.IBAN]; ok && acc.OwnerID == ownerID {
			history = append(history, t)
		}
	}
	sort.SliceStable(history, func(i, j int) bool {
		return olderThan(history[j], domain.TransactionCursor{Timestamp: history[i].Timestamp, TransactionID: history[i].TransactionID})
	})
	return history
}

func olderThan(t domain.Transaction, c domain.TransactionCursor) bool {
	if !t.Timestamp.Equal(c.Timestamp) {
		return t.Timestamp.Before(c.Timestamp)
	}
	return t.TransactionID < c.TransactionID
}
