package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/banking_app/internal/apperrors"
	"github.com/SscSPs/banking_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_WithTxRollsBackOnError(t *testing.T) {
	store := NewStore()
	repos := store.RepositoryProvider()
	ctx := context.Background()

	_, err := repos.AccountRepo.Upsert(ctx, domain.Account{IBAN: "LT000000001000000001", OwnerID: "owner", Balance: decimal.NewFromInt(10)})
	require.NoError(t, err)

	boom := errors.New("boom")
	err = store.WithTx(ctx, func(txCtx context.Context) error {
		if _, err := repos.AccountRepo.Upsert(txCtx, domain.Account{IBAN: "LT000000001000000001", OwnerID: "owner", Balance: decimal.NewFromInt(99)}); err != nil {
			return err
		}
		if _, err := repos.TransactionRepo.Append(txCtx, domain.Transaction{TransactionID: "t1", IBAN: "LT000000001000000001"}); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	balance, err := repos.AccountRepo.BalanceOf(ctx, "LT000000001000000001")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(10).Equal(balance))

	history, err := repos.TransactionRepo.ListForOwner(ctx, "owner")
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestStore_FindAccountsForUpdateRequiresTx(t *testing.T) {
	repos := NewRepositoryProvider()
	_, err := repos.AccountRepo.FindAccountsForUpdate(context.Background(), []string{"LT000000001000000001"})
	assert.ErrorIs(t, err, apperrors.ErrStoreFailure)
}

func TestAccountRepository_InsertIfAbsentAndUpsert(t *testing.T) {
	repos := NewRepositoryProvider()
	ctx := context.Background()
	acc := domain.NewAccount("LT000000001000000001", "owner")

	rows, err := repos.AccountRepo.InsertIfAbsent(ctx, acc)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	rows, err = repos.AccountRepo.InsertIfAbsent(ctx, domain.NewAccount("LT000000001000000001", "someone-else"))
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)

	// Upsert only changes the balance of an existing row.
	_, err = repos.AccountRepo.Upsert(ctx, domain.Account{IBAN: acc.IBAN, OwnerID: "someone-else", Balance: decimal.NewFromInt(5)})
	require.NoError(t, err)
	owned, err := repos.AccountRepo.ExistsForOwner(ctx, acc.IBAN, "owner")
	require.NoError(t, err)
	assert.True(t, owned)

	total, err := repos.AccountRepo.TotalBalanceOf(ctx, "owner")
	require.NoError(t, err)
	assert.Equal(t, "5", total.String())

	total, err = repos.AccountRepo.TotalBalanceOf(ctx, "nobody")
	require.NoError(t, err)
	assert.True(t, total.IsZero())
}

func TestTransactionRepository_PagesNewestFirst(t *testing.T) {
	repos := NewRepositoryProvider()
	ctx := context.Background()
	_, err := repos.AccountRepo.InsertIfAbsent(ctx, domain.NewAccount("LT000000001000000001", "owner"))
	require.NoError(t, err)
	_, err = repos.AccountRepo.InsertIfAbsent(ctx, domain.NewAccount("LT000000002000000002", "other"))
	require.NoError(t, err)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"a", "b", "c", "d"} {
		_, err := repos.TransactionRepo.Append(ctx, domain.Transaction{TransactionID: id, IBAN: "LT000000001000000001", Timestamp: base.Add(time.Duration(i/2) * time.Minute)})
		require.NoError(t, err)
	}
	_, err = repos.TransactionRepo.Append(ctx, domain.Transaction{TransactionID: "z", IBAN: "LT000000002000000002", Timestamp: base})
	require.NoError(t, err)

	all, err := repos.TransactionRepo.ListForOwner(ctx, "owner")
	require.NoError(t, err)
	assert.Equal(t, []string{"d", "c", "b", "a"}, ids(all))

	first, err := repos.TransactionRepo.ListForOwnerPage(ctx, "owner", nil, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"d", "c", "b"}, ids(first))

	last := first[len(first)-1]
	rest, err := repos.TransactionRepo.ListForOwnerPage(ctx, "owner", &domain.TransactionCursor{Timestamp: last.Timestamp, TransactionID: last.TransactionID}, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, ids(rest))
}

func TestUserRepository(t *testing.T) {
	repos := NewRepositoryProvider()
	ctx := context.Background()
	user := domain.User{UserID: "u1", Email: "a@example.com", LocalID: "uid-1", DateCreated: time.Now()}

	require.NoError(t, repos.UserRepo.SaveUser(ctx, user))
	assert.ErrorIs(t, repos.UserRepo.SaveUser(ctx, domain.User{UserID: "u2", LocalID: "uid-1"}), apperrors.ErrDuplicate)

	found, err := repos.UserRepo.FindUserByLocalID(ctx, "uid-1")
	require.NoError(t, err)
	assert.Equal(t, "u1", found.UserID)

	_, err = repos.UserRepo.FindUserByID(ctx, "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	rows, err := repos.UserRepo.UpdateEmail(ctx, "u1", "b@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	rows, err = repos.UserRepo.UpdateEmail(ctx, "missing", "b@example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)
}

func ids(txns []domain.Transaction) []string {
	out := make([]string, len(txns))
	for i, t := range txns {
		out[i] = t.TransactionID
	}
	return out
}
