package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/banking_app/internal/apperrors"
	"github.com/SscSPs/banking_app/internal/core/domain"
	portsrepo "github.com/SscSPs/banking_app/internal/core/ports/repositories"
	"github.com/SscSPs/banking_app/internal/models"
	"github.com/SscSPs/banking_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(pool *pgxpool.Pool) *PgxUserRepository {
	return &PgxUserRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	_, err := r.db(ctx).Exec(ctx, `
		INSERT INTO users (user_id, email, local_id, date_created)
		VALUES ($1, $2, $3, $4);`,
		m.UserID, m.Email, m.LocalID, m.DateCreated,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return fmt.Errorf("%w: user with local id %s already exists", apperrors.ErrDuplicate, m.LocalID)
		}
		return apperrors.NewStoreFailure("failed to save user", err)
	}
	return nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return r.findOne(ctx, `SELECT user_id, email, local_id, date_created FROM users WHERE user_id = $1;`, userID)
}

func (r *PgxUserRepository) FindUserByLocalID(ctx context.Context, localID string) (*domain.User, error) {
	return r.findOne(ctx, `SELECT user_id, email, local_id, date_created FROM users WHERE local_id = $1;`, localID)
}

func (r *PgxUserRepository) UpdateEmail(ctx context.Context, userID string, email string) (int64, error) {
	tag, err := r.db(ctx).Exec(ctx, `UPDATE users SET email = $2 WHERE user_id = $1;`, userID, email)
	if err != nil {
		return 0, apperrors.NewStoreFailure("failed to update user email", err)
	}
	return tag.RowsAffected(), nil
}

func (r *PgxUserRepository) findOne(ctx context.Context, query string, arg string) (*domain.User, error) {
	rows, err := r.db(ctx).Query(ctx, query, arg)
	if err != nil {
		return nil, apperrors.NewStoreFailure("failed to query user", err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.User])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewStoreFailure("failed to scan user", err)
	}
	user := mapping.ToDomainUser(m)
	return &user, nil
}
