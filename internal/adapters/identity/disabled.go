package identity

import (
	"context"

	"github.com/SscSPs/banking_app/internal/apperrors"
	portssvc "github.com/SscSPs/banking_app/internal/core/ports/services"
)

// Disabled is used when no API key is configured. Every call fails with KindIdentityProvider.
type Disabled struct{}

var _ portssvc.IdentityProvider = Disabled{}

var errNotConfigured = apperrors.NewAppError(apperrors.KindIdentityProvider, "identity provider is not configured", nil)

func (Disabled) SignUp(context.Context, string, string) (*portssvc.IdentityUser, error) {
	return nil, errNotConfigured
}

func (Disabled) SignIn(context.Context, string, string) (*portssvc.IdentityUser, error) {
	return nil, errNotConfigured
}

func (Disabled) ChangePassword(context.Context, string, string) (*portssvc.IdentityUser, error) {
	return nil, errNotConfigured
}

func (Disabled) ChangeEmail(context.Context, string, string) (*portssvc.IdentityUser, error) {
	return nil, errNotConfigured
}
