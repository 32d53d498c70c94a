package memory

import (
	"context"
	"fmt"

	"github.com/SscSPs/banking_app/internal/apperrors"
	"github.com/SscSPs/banking_app/internal/core/domain"
	portsrepo "github.com/SscSPs/banking_app/internal/core/ports/repositories"
)

type UserRepository struct {
	store *Store
}

var _ portsrepo.UserRepositoryFacade = (*UserRepository)(nil)

func (r *UserRepository) SaveUser(ctx context.Context, user domain.User) error {
	defer r.store.lock(ctx)()
	if _, ok := r.store.users[user.UserID]; ok {
		return fmt.Errorf("%w: user %s already exists", apperrors.ErrDuplicate, user.UserID)
	}
	for _, u := range r.store.users {
		if u.LocalID == user.LocalID {
			return fmt.Errorf("%w: user with local id %s already exists", apperrors.ErrDuplicate, user.LocalID)
		}
	}
	r.store.users[user.UserID] = user
	return nil
}

func (r *UserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	defer r.store.lock(ctx)()
	u, ok := r.store.users[userID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &u, nil
}

func (r *UserRepository) FindUserByLocalID(ctx context.Context, localID string) (*domain.User, error) {
	defer r.store.lock(ctx)()
	for _, u := range r.store.users {
		if u.LocalID == localID {
			return &u, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *UserRepository) UpdateEmail(ctx context.Context, userID string, email string) (int64, error) {
	defer r.store.lock(ctx)()
	u, ok := r.store.users[userID]
	if !ok {
		return 0, nil
	}
	u.Email = email
	r.store.users[userID] = u
	return 1, nil
}
