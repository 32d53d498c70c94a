package dto

import (
	"time"

	"github.com/SscSPs/banking_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TopUpRequest credits one of the caller's accounts.
type TopUpRequest struct {
	IBAN string          `json:"iban" binding:"required,iban"`
	Sum  decimal.Decimal `json:"sum" binding:"required,dpositive"`
}

// SendMoneyRequest moves money from one of the caller's accounts to any existing account.
type SendMoneyRequest struct {
	SenderIBAN   string          `json:"senderIban" binding:"required,iban"`
	ReceiverIBAN string          `json:"receiverIban" binding:"required,iban"`
	Sum          decimal.Decimal `json:"sum" binding:"required,dpositive"`
}

// OperationResponse reports whether a balance changing operation was written.
type OperationResponse struct {
	Success bool `json:"success"`
}

// TransactionResponse is the read-only view of a transaction record.
type TransactionResponse struct {
	TransactionID string                 `json:"transactionId"`
	IBAN          string                 `json:"iban"`
	Type          domain.TransactionType `json:"type"`
	Sum           decimal.Decimal        `json:"sum"`
	Description   string                 `json:"description"`
	Timestamp     time.Time              `json:"timestamp"`
}

// ToTransactionResponse converts a domain.Transaction to its read-only view.
func ToTransactionResponse(t domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: t.TransactionID,
		IBAN:          t.IBAN,
		Type:          t.Type,
		Sum:           t.Amount,
		Description:   t.Description,
		Timestamp:     t.Timestamp,
	}
}

// ToTransactionResponses converts records in order; never returns nil.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i, t := range txns {
		res[i] = ToTransactionResponse(t)
	}
	return res
}

// ListTransactionsParams defines query parameters for paginated history.
type ListTransactionsParams struct {
	Limit     int    `form:"limit" binding:"omitempty,min=1,max=100"`
	NextToken string `form:"nextToken"`
}

// ListTransactionsResponse is one page of history. NextToken is empty on the last page.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    string                `json:"nextToken,omitempty"`
}
