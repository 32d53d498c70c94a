package mapping

import (
	"github.com/SscSPs/banking_app/internal/core/domain"
	"github.com/SscSPs/banking_app/internal/models"
)

// ToModelAccount converts a domain Account to a model Account
func ToModelAccount(d domain.Account) models.Account {
	return models.Account{
		IBAN:    d.IBAN,
		UserID:  d.OwnerID,
		Balance: d.Balance,
	}
}

// ToDomainAccount converts a model Account to a domain Account
func ToDomainAccount(m models.Account) domain.Account {
	return domain.Account{
		IBAN:    m.IBAN,
		OwnerID: m.UserID,
		Balance: m.Balance,
	}
}

// ToDomainAccountSlice converts a slice of model Accounts to a slice of domain Accounts
func ToDomainAccountSlice(ms []models.Account) []domain.Account {
	ds := make([]domain.Account, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainAccount(m)
	}
	return ds
}
