package services

import (
	"context"

	"github.com/SscSPs/banking_app/internal/core/domain"
	"github.com/SscSPs/banking_app/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// ResolveOwnerID maps an identity provider uid to the owner identifier used by accounts.
	ResolveOwnerID(ctx context.Context, localID string) (string, error)
}

// UserAuthSvc defines the operations delegated to the identity provider
type UserAuthSvc interface {
	SignUp(ctx context.Context, req dto.SignUpRequest) (*domain.User, error)
	SignIn(ctx context.Context, req dto.SignInRequest) (*dto.SignInResponse, error)
	ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) (*dto.EditUserResponse, error)
	ChangeEmail(ctx context.Context, userID string, req dto.ChangeEmailRequest) (*dto.EditUserResponse, error)
}

// UserSvcFacade combines all user-related service interfaces
type UserSvcFacade interface {
	UserReaderSvc
	UserAuthSvc
}
