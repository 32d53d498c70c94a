package dto

import (
	"github.com/SscSPs/banking_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountResponse defines the data returned for an account.
// Also used as the response of account creation.
type AccountResponse struct {
	IBAN    string          `json:"iban"`
	Balance decimal.Decimal `json:"balance"`
	UserID  string          `json:"userId"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		IBAN:    acc.IBAN,
		Balance: acc.Balance,
		UserID:  acc.OwnerID,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}

// ListAccountsResponse wraps the list of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// AccountBalanceResponse defines the data returned for a single account balance query.
type AccountBalanceResponse struct {
	IBAN    string          `json:"iban"`
	Balance decimal.Decimal `json:"balance"`
}

// TotalBalanceResponse is the sum of all balances held by the caller.
type TotalBalanceResponse struct {
	Balance decimal.Decimal `json:"balance"`
}
