package services

import (
	"context"

	"github.com/SscSPs/banking_app/internal/core/domain"
	"github.com/SscSPs/banking_app/internal/dto"
	"github.com/shopspring/decimal"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// CheckAccountOwnership reports whether the account exists and belongs to the owner.
	CheckAccountOwnership(ctx context.Context, iban string, ownerID string) (bool, error)

	// GetAccountBalance returns the balance of one of the owner's accounts.
	GetAccountBalance(ctx context.Context, iban string, ownerID string) (decimal.Decimal, error)

	// GetOwnerTotalBalance sums the balances of every account the owner holds.
	GetOwnerTotalBalance(ctx context.Context, ownerID string) (decimal.Decimal, error)

	// ListAccounts returns the owner's accounts ordered by IBAN.
	ListAccounts(ctx context.Context, ownerID string) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateAccount opens a new zero-balance account with a generated IBAN.
	CreateAccount(ctx context.Context, ownerID string) (*domain.Account, error)
}

// MoneyMovementSvc defines the operations that change balances
type MoneyMovementSvc interface {
	// TopUp credits one of the owner's accounts.
	TopUp(ctx context.Context, ownerID string, req dto.TopUpRequest) (bool, error)

	// SendMoney moves money from one of the owner's accounts to any existing account.
	SendMoney(ctx context.Context, ownerID string, req dto.SendMoneyRequest) (bool, error)
}

// TransactionHistorySvc defines read operations on the transaction log
type TransactionHistorySvc interface {
	// GetAllTransactions returns every record on the owner's accounts, newest first.
	GetAllTransactions(ctx context.Context, ownerID string) ([]dto.TransactionResponse, error)

	// ListTransactions returns one page of the owner's history.
	ListTransactions(ctx context.Context, ownerID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
}

// AccountSvcFacade combines all account-related service interfaces
// This is a facade for clients that need access to all operations
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
	MoneyMovementSvc
	TransactionHistorySvc
}
