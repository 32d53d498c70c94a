package pgsql

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/SscSPs/banking_app/internal/apperrors"
	"github.com/SscSPs/banking_app/internal/core/domain"
	portsrepo "github.com/SscSPs/banking_app/internal/core/ports/repositories"
	"github.com/SscSPs/banking_app/internal/models"
	"github.com/SscSPs/banking_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) *PgxAccountRepository {
	return &PgxAccountRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

func (r *PgxAccountRepository) ExistsForOwner(ctx context.Context, iban string, ownerID string) (bool, error) {
	var exists bool
	err := r.db(ctx).QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM accounts WHERE iban = $1 AND user_id = $2);`,
		iban, ownerID,
	).Scan(&exists)
	if err != nil {
		return false, apperrors.NewStoreFailure(fmt.Sprintf("failed to check ownership of account %s", iban), err)
	}
	return exists, nil
}

func (r *PgxAccountRepository) ExistsByIdentifier(ctx context.Context, iban string) (bool, error) {
	var exists bool
	err := r.db(ctx).QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM accounts WHERE iban = $1);`,
		iban,
	).Scan(&exists)
	if err != nil {
		return false, apperrors.NewStoreFailure(fmt.Sprintf("failed to check account %s", iban), err)
	}
	return exists, nil
}

func (r *PgxAccountRepository) BalanceOf(ctx context.Context, iban string) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := r.db(ctx).QueryRow(ctx, `SELECT balance FROM accounts WHERE iban = $1;`, iban).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, apperrors.NewAppError(apperrors.KindAccountNotFound, fmt.Sprintf("account %s not found", iban), err)
		}
		return decimal.Zero, apperrors.NewStoreFailure(fmt.Sprintf("failed to read balance of account %s", iban), err)
	}
	return balance, nil
}

func (r *PgxAccountRepository) TotalBalanceOf(ctx context.Context, ownerID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db(ctx).QueryRow(ctx,
		`SELECT COALESCE(SUM(balance), 0) FROM accounts WHERE user_id = $1;`,
		ownerID,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, apperrors.NewStoreFailure("failed to sum balances", err)
	}
	return total, nil
}

func (r *PgxAccountRepository) ListAccountsByOwner(ctx context.Context, ownerID string) ([]domain.Account, error) {
	rows, err := r.db(ctx).Query(ctx,
		`SELECT iban, user_id, balance FROM accounts WHERE user_id = $1 ORDER BY iban;`,
		ownerID,
	)
	if err != nil {
		return nil, apperrors.NewStoreFailure("failed to list accounts", err)
	}
	accounts, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Account])
	if err != nil {
		return nil, apperrors.NewStoreFailure("failed to scan accounts", err)
	}
	return mapping.ToDomainAccountSlice(accounts), nil
}

// Upsert writes the account; on an existing IBAN only the balance changes.
func (r *PgxAccountRepository) Upsert(ctx context.Context, account domain.Account) (int64, error) {
	m := mapping.ToModelAccount(account)
	tag, err := r.db(ctx).Exec(ctx, `
		INSERT INTO accounts (iban, user_id, balance)
		VALUES ($1, $2, $3)
		ON CONFLICT (iban) DO UPDATE SET balance = EXCLUDED.balance;`,
		m.IBAN, m.UserID, m.Balance,
	)
	if err != nil {
		return 0, apperrors.NewStoreFailure(fmt.Sprintf("failed to save account %s", m.IBAN), err)
	}
	return tag.RowsAffected(), nil
}

func (r *PgxAccountRepository) InsertIfAbsent(ctx context.Context, account domain.Account) (int64, error) {
	m := mapping.ToModelAccount(account)
	tag, err := r.db(ctx).Exec(ctx, `
		INSERT INTO accounts (iban, user_id, balance)
		VALUES ($1, $2, $3)
		ON CONFLICT (iban) DO NOTHING;`,
		m.IBAN, m.UserID, m.Balance,
	)
	if err != nil {
		return 0, apperrors.NewStoreFailure(fmt.Sprintf("failed to insert account %s", m.IBAN), err)
	}
	return tag.RowsAffected(), nil
}

// FindAccountsForUpdate locks the rows in IBAN order so two transfers between the
// same pair of accounts cannot deadlock.
func (r *PgxAccountRepository) FindAccountsForUpdate(ctx context.Context, ibans []string) (map[string]domain.Account, error) {
	tx, ok := txFromCtx(ctx)
	if !ok {
		return nil, apperrors.NewStoreFailure("FindAccountsForUpdate must run inside a transaction", nil)
	}
	if len(ibans) == 0 {
		return map[string]domain.Account{}, nil
	}

	sorted := append([]string(nil), ibans...)
	sort.Strings(sorted)

	rows, err := tx.Query(ctx, `
		SELECT iban, user_id, balance
		FROM accounts
		WHERE iban = ANY($1)
		ORDER BY iban
		FOR UPDATE;`,
		sorted,
	)
	if err != nil {
		return nil, apperrors.NewStoreFailure("failed to lock accounts", err)
	}
	accounts, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Account])
	if err != nil {
		return nil, apperrors.NewStoreFailure("failed to scan locked accounts", err)
	}

	result := make(map[string]domain.Account, len(accounts))
	for _, m := range accounts {
		result[m.IBAN] = mapping.ToDomainAccount(m)
	}
	return result, nil
}
