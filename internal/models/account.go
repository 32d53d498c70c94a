package models

import (
	"github.com/shopspring/decimal"
)

// Account is the row shape of the accounts table.
type Account struct {
	IBAN    string          `db:"iban"`
	UserID  string          `db:"user_id"`
	Balance decimal.Decimal `db:"balance"`
}
