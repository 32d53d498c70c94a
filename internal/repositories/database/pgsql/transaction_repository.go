package pgsql

import (
	"context"
	"fmt"

	"github.com/SscSPs/banking_app/internal/apperrors"
	"github.com/SscSPs/banking_app/internal/core/domain"
	portsrepo "github.com/SscSPs/banking_app/internal/core/ports/repositories"
	"github.com/SscSPs/banking_app/internal/models"
	"github.com/SscSPs/banking_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const transactionColumns = `t.transaction_id, t.iban, t.type, t."sum", t."timestamp", t.description`

type PgxTransactionRepository struct {
	BaseRepository
}

func newPgxTransactionRepository(pool *pgxpool.Pool) *PgxTransactionRepository {
	return &PgxTransactionRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

func (r *PgxTransactionRepository) Append(ctx context.Context, txn domain.Transaction) (int64, error) {
	m := mapping.ToModelTransaction(txn)
	tag, err := r.db(ctx).Exec(ctx, `
		INSERT INTO transactions (transaction_id, iban, type, "sum", "timestamp", description)
		VALUES ($1, $2, $3, $4, $5, $6);`,
		m.TransactionID, m.IBAN, m.Type, m.Sum, m.Timestamp, m.Description,
	)
	if err != nil {
		return 0, apperrors.NewStoreFailure(fmt.Sprintf("failed to save transaction for account %s", m.IBAN), err)
	}
	return tag.RowsAffected(), nil
}

func (r *PgxTransactionRepository) ListForOwner(ctx context.Context, ownerID string) ([]domain.Transaction, error) {
	rows, err := r.db(ctx).Query(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions t
		JOIN accounts a ON a.iban = t.iban
		WHERE a.user_id = $1
		ORDER BY t."timestamp" DESC, t.transaction_id DESC;`,
		ownerID,
	)
	if err != nil {
		return nil, apperrors.NewStoreFailure("failed to list transactions", err)
	}
	return collectTransactions(rows)
}

func (r *PgxTransactionRepository) ListForOwnerPage(ctx context.Context, ownerID string, after *domain.TransactionCursor, limit int) ([]domain.Transaction, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if after == nil {
		rows, err = r.db(ctx).Query(ctx, `
			SELECT `+transactionColumns+`
			FROM transactions t
			JOIN accounts a ON a.iban = t.iban
			WHERE a.user_id = $1
			ORDER BY t."timestamp" DESC, t.transaction_id DESC
			LIMIT $2;`,
			ownerID, limit,
		)
	} else {
		rows, err = r.db(ctx).Query(ctx, `
			SELECT `+transactionColumns+`
			FROM transactions t
			JOIN accounts a ON a.iban = t.iban
			WHERE a.user_id = $1
			  AND (t."timestamp", t.transaction_id) < ($2, $3::uuid)
			ORDER BY t."timestamp" DESC, t.transaction_id DESC
			LIMIT $4;`,
			ownerID, after.Timestamp, after.TransactionID, limit,
		)
	}
	if err != nil {
		return nil, apperrors.NewStoreFailure("failed to list transactions page", err)
	}
	return collectTransactions(rows)
}

func collectTransactions(rows pgx.Rows) ([]domain.Transaction, error) {
	txns, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Transaction])
	if err != nil {
		return nil, apperrors.NewStoreFailure("failed to scan transactions", err)
	}
	return mapping.ToDomainTransactionSlice(txns), nil
}
