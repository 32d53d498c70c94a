package repositories

import (
	"context"

	"github.com/SscSPs/banking_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// ExistsForOwner reports whether the account exists and belongs to the owner.
	ExistsForOwner(ctx context.Context, iban string, ownerID string) (bool, error)

	// ExistsByIdentifier reports whether the account exists, regardless of owner.
	ExistsByIdentifier(ctx context.Context, iban string) (bool, error)

	// BalanceOf returns the current balance of an account.
	BalanceOf(ctx context.Context, iban string) (decimal.Decimal, error)

	// TotalBalanceOf sums the balances of every account held by the owner. Zero when there are none.
	TotalBalanceOf(ctx context.Context, ownerID string) (decimal.Decimal, error)

	// ListAccountsByOwner returns the owner's accounts ordered by IBAN.
	ListAccountsByOwner(ctx context.Context, ownerID string) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// Upsert inserts the account or, when the IBAN exists, overwrites its balance.
	Upsert(ctx context.Context, account domain.Account) (int64, error)

	// InsertIfAbsent inserts the account and reports 0 rows affected when the IBAN is taken.
	InsertIfAbsent(ctx context.Context, account domain.Account) (int64, error)
}

// AccountTransactionSupport defines operations that support account transactions
type AccountTransactionSupport interface {
	// FindAccountsForUpdate selects the accounts and locks them until the surrounding
	// transaction ends. Must be called inside TransactionManager.WithTx.
	FindAccountsForUpdate(ctx context.Context, ibans []string) (map[string]domain.Account, error)
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountTransactionSupport
}
