package repositories

import (
	"context"
)

// TransactionManager runs a unit of work inside one store transaction.
type TransactionManager interface {
	// WithTx executes fn with a context carrying the transaction. The transaction is
	// committed when fn returns nil and rolled back otherwise.
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}
