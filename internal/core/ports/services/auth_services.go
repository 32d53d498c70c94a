package services

import (
	"context"
	"time"

	"github.com/SscSPs/banking_app/internal/core/domain"
)

// TokenSvcFacade issues the access tokens checked by the auth middleware.
type TokenSvcFacade interface {
	GenerateAccessToken(ctx context.Context, subject string) (string, time.Time, error)
}

// IdentityUser is what the identity provider returns after a successful call.
type IdentityUser struct {
	LocalID string
	Email   string
	IdToken string
}

// IdentityProvider owns user credentials.
type IdentityProvider interface {
	SignUp(ctx context.Context, email, password string) (*IdentityUser, error)
	SignIn(ctx context.Context, email, password string) (*IdentityUser, error)
	ChangePassword(ctx context.Context, idToken, newPassword string) (*IdentityUser, error)
	ChangeEmail(ctx context.Context, idToken, newEmail string) (*IdentityUser, error)
}

// EventPublisher announces committed money movements to other systems.
type EventPublisher interface {
	PublishMoneyMoved(ctx context.Context, event domain.MoneyMovedEvent) error
}
