package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is the row shape of the transactions table.
// Type holds the textual TransactionType tag.
type Transaction struct {
	TransactionID string          `db:"transaction_id"`
	IBAN          string          `db:"iban"`
	Type          string          `db:"type"`
	Sum           decimal.Decimal `db:"sum"`
	Timestamp     time.Time       `db:"timestamp"`
	Description   string          `db:"description"`
}
