// Package memory keeps accounts, transactions and users in process memory.
// It backs STORAGE_DRIVER=memory and the service tests.
package memory

import (
	"context"
	"sync"

	"github.com/SscSPs/banking_app/internal/core/domain"
	portsrepo "github.com/SscSPs/banking_app/internal/core/ports/repositories"
)

type txCtxKey struct{}

// Store is the shared state behind the memory repositories. A transaction holds mu for
// its whole duration, so units of work are serialised and see each other's effects only
// after commit.
type Store struct {
	mu           sync.Mutex
	accounts     map[string]domain.Account
	transactions []domain.Transaction
	users        map[string]domain.User
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		accounts: make(map[string]domain.Account),
		users:    make(map[string]domain.User),
	}
}

type snapshot struct {
	accounts     map[string]domain.Account
	transactions int
	users        map[string]domain.User
}

func (s *Store) snapshot() snapshot {
	accounts := make(map[string]domain.Account, len(s.accounts))
	for k, v := range s.accounts {
		accounts[k] = v
	}
	users := make(map[string]domain.User, len(s.users))
	for k, v := range s.users {
		users[k] = v
	}
	return snapshot{accounts: accounts, transactions: len(s.transactions), users: users}
}

func (s *Store) restore(snap snapshot) {
	s.accounts = snap.accounts
	s.transactions = s.transactions[:snap.transactions]
	s.users = snap.users
}

// lock acquires mu unless ctx belongs to a running transaction, which already holds it.
func (s *Store) lock(ctx context.Context) func() {
	if inTx(ctx) {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func inTx(ctx context.Context) bool {
	v, _ := ctx.Value(txCtxKey{}).(bool)
	return v
}

// WithTx runs fn while holding the store lock and restores the previous state when fn fails.
func (s *Store) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if inTx(ctx) {
		return fn(ctx)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	committed := false
	defer func() {
		if !committed {
			s.restore(snap)
		}
	}()

	if err := fn(context.WithValue(ctx, txCtxKey{}, true)); err != nil {
		return err
	}
	committed = true
	return nil
}

var _ portsrepo.TransactionManager = (*Store)(nil)

// NewRepositoryProvider wires every memory repository to one fresh store.
func NewRepositoryProvider() portsrepo.RepositoryProvider {
	return NewStore().RepositoryProvider()
}

// RepositoryProvider exposes the store through the repository ports.
func (s *Store) RepositoryProvider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:     &AccountRepository{store: s},
		TransactionRepo: &TransactionRepository{store: s},
		UserRepo:        &UserRepository{store: s},
		TxManager:       s,
	}
}
