package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType tags a transaction record with the kind of balance mutation it audits.
type TransactionType string

const (
	Unknown  TransactionType = "Unknown"
	Debit    TransactionType = "Debit"  // outgoing transfer
	Credit   TransactionType = "Credit" // incoming transfer
	TopUp    TransactionType = "TopUp"
	WithDraw TransactionType = "WithDraw" // reserved, no operation produces it
)

// ParseTransactionType maps a stored tag back to a TransactionType. Unrecognised tags become Unknown.
func ParseTransactionType(s string) TransactionType {
	switch t := TransactionType(s); t {
	case Debit, Credit, TopUp, WithDraw:
		return t
	default:
		return Unknown
	}
}

// Transaction is an immutable audit record of one balance mutation on one account.
type Transaction struct {
	TransactionID string          `json:"transactionId"`
	IBAN          string          `json:"iban"`
	Type          TransactionType `json:"type"`
	Amount        decimal.Decimal `json:"sum"` // Negative for debits
	Timestamp     time.Time       `json:"timestamp"`
	Description   string          `json:"description"`
}

// TransactionCursor marks a position in an owner's newest-first transaction history.
type TransactionCursor struct {
	Timestamp     time.Time
	TransactionID string
}

// FormatAmount prints an amount with at least two decimal places, keeping any extra precision.
func FormatAmount(d decimal.Decimal) string {
	places := int32(2)
	if -d.Exponent() > places {
		places = -d.Exponent()
	}
	return d.StringFixed(places)
}

// TopUpDescription is the description stored on a TopUp record.
func TopUpDescription(amount decimal.Decimal) string {
	return fmt.Sprintf("%s by %s", TopUp, FormatAmount(amount))
}

// TransferToDescription is the description stored on the sender's Debit record.
func TransferToDescription(receiverIBAN string) string {
	return "Transfer to " + receiverIBAN
}

// TransferFromDescription is the description stored on the receiver's Credit record.
func TransferFromDescription(senderIBAN string) string {
	return "Transfer from " + senderIBAN
}
