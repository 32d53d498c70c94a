package mapping

import (
	"github.com/SscSPs/banking_app/internal/core/domain"
	"github.com/SscSPs/banking_app/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID: d.TransactionID,
		IBAN:          d.IBAN,
		Type:          string(d.Type),
		Sum:           d.Amount,
		Timestamp:     d.Timestamp,
		Description:   d.Description,
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID: m.TransactionID,
		IBAN:          m.IBAN,
		Type:          domain.ParseTransactionType(m.Type),
		Amount:        m.Sum,
		Timestamp:     m.Timestamp,
		Description:   m.Description,
	}
}

// ToDomainTransactionSlice converts a slice of model Transactions to domain Transactions
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
