package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/SscSPs/banking_app/internal/apperrors"
	"github.com/SscSPs/banking_app/internal/core/domain"
	portsrepo "github.com/SscSPs/banking_app/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

type AccountRepository struct {
	store *Store
}

var _ portsrepo.AccountRepositoryFacade = (*AccountRepository)(nil)

func (r *AccountRepository) ExistsForOwner(ctx context.Context, iban string, ownerID string) (bool, error) {
	defer r.store.lock(ctx)()
	acc, ok := r.store.accounts[iban]
	return ok && acc.OwnerID == ownerID, nil
}

func (r *AccountRepository) ExistsByIdentifier(ctx context.Context, iban string) (bool, error) {
	defer r.store.lock(ctx)()
	_, ok := r.store.accounts[iban]
	return ok, nil
}

func (r *AccountRepository) BalanceOf(ctx context.Context, iban string) (decimal.Decimal, error) {
	defer r.store.lock(ctx)()
	acc, ok := r.store.accounts[iban]
	if !ok {
		return decimal.Zero, apperrors.NewAppError(apperrors.KindAccountNotFound, fmt.Sprintf("account %s not found", iban), nil)
	}
	return acc.Balance, nil
}

func (r *AccountRepository) TotalBalanceOf(ctx context.Context, ownerID string) (decimal.Decimal, error) {
	defer r.store.lock(ctx)()
	total := decimal.Zero
	for _, acc := range r.store.accounts {
		if acc.OwnerID == ownerID {
			total = total.Add(acc.Balance)
		}
	}
	return total, nil
}

func (r *AccountRepository) ListAccountsByOwner(ctx context.Context, ownerID string) ([]domain.Account, error) {
	defer r.store.lock(ctx)()
	accounts := []domain.Account{}
	for _, acc := range r.store.accounts {
		if acc.OwnerID == ownerID {
			accounts = append(accounts, acc)
		}
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].IBAN < accounts[j].IBAN })
	return accounts, nil
}

// Upsert inserts the account or overwrites the balance of an existing one.
func (r *AccountRepository) Upsert(ctx context.Context, account domain.Account) (int64, error) {
	defer r.store.lock(ctx)()
	if existing, ok := r.store.accounts[account.IBAN]; ok {
		existing.Balance = account.Balance
		r.store.accounts[account.IBAN] = existing
		return 1, nil
	}
	r.store.accounts[account.IBAN] = account
	return 1, nil
}

func (r *AccountRepository) InsertIfAbsent(ctx context.Context, account domain.Account) (int64, error) {
	defer r.store.lock(ctx)()
	if _, ok := r.store.accounts[account.IBAN]; ok {
		return 0, nil
	}
	r.store.accounts[account.IBAN] = account
	return 1, nil
}

// FindAccountsForUpdate returns the requested accounts. The store lock held by the
// surrounding transaction already excludes other writers.
func (r *AccountRepository) FindAccountsForUpdate(ctx context.Context, ibans []string) (map[string]domain.Account, error) {
	if !inTx(ctx) {
		return nil, apperrors.NewStoreFailure("FindAccountsForUpdate must run inside a transaction", nil)
	}
	result := make(map[string]domain.Account, len(ibans))
	for _, iban := range ibans {
		if acc, ok := r.store.accounts[iban]; ok {
			result[iban] = acc
		}
	}
	return result, nil
}
