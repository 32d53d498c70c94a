package domain

import (
	"github.com/shopspring/decimal"
)

// Account is a customer bank account identified by its IBAN.
// An owner may hold several accounts; the balance only changes through a top-up
// or a transfer.
type Account struct {
	IBAN    string          `json:"iban"`    // Primary Key, see GenerateIBAN
	OwnerID string          `json:"userId"`  // FK -> users.user_id
	Balance decimal.Decimal `json:"balance"` // Never negative as a result of a debit
}

// NewAccount returns a fresh account with a zero balance.
func NewAccount(iban, ownerID string) Account {
	return Account{IBAN: iban, OwnerID: ownerID, Balance: decimal.Zero}
}
