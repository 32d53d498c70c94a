package identity

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/SscSPs/banking_app/internal/apperrors"
	portssvc "github.com/SscSPs/banking_app/internal/core/ports/services"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/identitytoolkit/v3"
	"google.golang.org/api/option"
)

// IdentityToolkitClient delegates credentials to the Identity Toolkit relying party API
// (the REST surface behind Firebase email/password auth).
type IdentityToolkitClient struct {
	relyingParty *identitytoolkit.RelyingpartyService
}

var _ portssvc.IdentityProvider = (*IdentityToolkitClient)(nil)

// NewIdentityToolkitClient builds the client. An empty endpoint uses the public Google endpoint;
// set it to point at the auth emulator.
func NewIdentityToolkitClient(ctx context.Context, apiKey, endpoint string, opts ...option.ClientOption) (*IdentityToolkitClient, error) {
	if apiKey == "" {
		return nil, errors.New("identity provider API key is required")
	}
	clientOpts := []option.ClientOption{option.WithAPIKey(apiKey)}
	if endpoint != "" {
		clientOpts = append(clientOpts, option.WithEndpoint(endpoint))
	}
	clientOpts = append(clientOpts, opts...)

	svc, err := identitytoolkit.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create identity toolkit service: %w", err)
	}
	return &IdentityToolkitClient{relyingParty: svc.Relyingparty}, nil
}

func (c *IdentityToolkitClient) SignUp(ctx context.Context, email, password string) (*portssvc.IdentityUser, error) {
	resp, err := c.relyingParty.SignupNewUser(&identitytoolkit.IdentitytoolkitRelyingpartySignupNewUserRequest{
		Email:    email,
		Password: password,
	}).Context(ctx).Do()
	if err != nil {
		return nil, mapProviderError("sign up", err)
	}
	return &portssvc.IdentityUser{LocalID: resp.LocalId, Email: resp.Email, IdToken: resp.IdToken}, nil
}

func (c *IdentityToolkitClient) SignIn(ctx context.Context, email, password string) (*portssvc.IdentityUser, error) {
	resp, err := c.relyingParty.VerifyPassword(&identitytoolkit.IdentitytoolkitRelyingpartyVerifyPasswordRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	}).Context(ctx).Do()
	if err != nil {
		return nil, mapProviderError("sign in", err)
	}
	return &portssvc.IdentityUser{LocalID: resp.LocalId, Email: resp.Email, IdToken: resp.IdToken}, nil
}

func (c *IdentityToolkitClient) ChangePassword(ctx context.Context, idToken, newPassword string) (*portssvc.IdentityUser, error) {
	return c.setAccountInfo(ctx, "change password", &identitytoolkit.IdentitytoolkitRelyingpartySetAccountInfoRequest{
		IdToken:           idToken,
		Password:          newPassword,
		ReturnSecureToken: true,
	})
}

func (c *IdentityToolkitClient) ChangeEmail(ctx context.Context, idToken, newEmail string) (*portssvc.IdentityUser, error) {
	return c.setAccountInfo(ctx, "change email", &identitytoolkit.IdentitytoolkitRelyingpartySetAccountInfoRequest{
		IdToken:           idToken,
		Email:             newEmail,
		ReturnSecureToken: true,
	})
}

func (c *IdentityToolkitClient) setAccountInfo(ctx context.Context, op string, req *identitytoolkit.IdentitytoolkitRelyingpartySetAccountInfoRequest) (*portssvc.IdentityUser, error) {
	resp, err := c.relyingParty.SetAccountInfo(req).Context(ctx).Do()
	if err != nil {
		return nil, mapProviderError(op, err)
	}
	return &portssvc.IdentityUser{LocalID: resp.LocalId, Email: resp.Email, IdToken: resp.IdToken}, nil
}

// mapProviderError turns provider rejections into caller errors and everything else into
// KindIdentityProvider. The provider reports the reason as an upper-case code in the message.
func mapProviderError(op string, err error) error {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return apperrors.NewAppError(apperrors.KindIdentityProvider, fmt.Sprintf("identity provider %s failed", op), err)
	}

	reason := providerReason(apiErr)
	switch {
	case apiErr.Code >= http.StatusInternalServerError:
		return apperrors.NewAppError(apperrors.KindIdentityProvider, fmt.Sprintf("identity provider %s failed", op), err)
	case reason == "EMAIL_EXISTS":
		return apperrors.NewAppError(apperrors.KindDuplicate, "Email is already registered", err)
	case strings.HasPrefix(reason, "WEAK_PASSWORD"), reason == "INVALID_EMAIL", reason == "MISSING_PASSWORD":
		return apperrors.NewAppError(apperrors.KindValidation, reason, err)
	case apiErr.Code == http.StatusBadRequest, apiErr.Code == http.StatusUnauthorized, apiErr.Code == http.StatusForbidden:
		return apperrors.NewAppError(apperrors.KindUnauthorized, "Invalid credentials", err)
	default:
		return apperrors.NewAppError(apperrors.KindIdentityProvider, fmt.Sprintf("identity provider %s failed", op), err)
	}
}

func providerReason(apiErr *googleapi.Error) string {
	msg := apiErr.Message
	if msg == "" && len(apiErr.Errors) > 0 {
		msg = apiErr.Errors[0].Message
	}
	// e.g. "WEAK_PASSWORD : Password should be at least 6 characters"
	if i := strings.Index(msg, " "); i > 0 {
		msg = msg[:i]
	}
	return msg
}
