package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/banking_app/internal/apperrors"
	portssvc "github.com/SscSPs/banking_app/internal/core/ports/services"
	"github.com/SscSPs/banking_app/internal/core/services"
	"github.com/SscSPs/banking_app/internal/dto"
	"github.com/SscSPs/banking_app/internal/platform/config"
	"github.com/SscSPs/banking_app/internal/repositories/memory"
	"github.com/SscSPs/banking_app/internal/utils"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockIdentityProvider struct {
	mock.Mock
}

func (m *MockIdentityProvider) SignUp(ctx context.Context, email, password string) (*portssvc.IdentityUser, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.IdentityUser), args.Error(1)
}

func (m *MockIdentityProvider) SignIn(ctx context.Context, email, password string) (*portssvc.IdentityUser, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.IdentityUser), args.Error(1)
}

func (m *MockIdentityProvider) ChangePassword(ctx context.Context, idToken, newPassword string) (*portssvc.IdentityUser, error) {
	args := m.Called(ctx, idToken, newPassword)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.IdentityUser), args.Error(1)
}

func (m *MockIdentityProvider) ChangeEmail(ctx context.Context, idToken, newEmail string) (*portssvc.IdentityUser, error) {
	args := m.Called(ctx, idToken, newEmail)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portssvc.IdentityUser), args.Error(1)
}

var _ portssvc.IdentityProvider = (*MockIdentityProvider)(nil)

type UserServiceTestSuite struct {
	suite.Suite
	provider *MockIdentityProvider
	cfg      *config.Config
	service  portssvc.UserSvcFacade
	ctx      context.Context
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.provider = new(MockIdentityProvider)
	suite.cfg = &config.Config{
		JWTSecret:         "user-service-test-secret",
		JWTExpiryDuration: time.Hour,
		JWTIssuer:         "bank-test",
	}
	repos := memory.NewRepositoryProvider()
	suite.service = services.NewUserService(repos.UserRepo, suite.provider, services.NewTokenService(suite.cfg))
	suite.ctx = context.Background()
}

func (suite *UserServiceTestSuite) signUp(email, localID string) string {
	suite.provider.On("SignUp", mock.Anything, email, "secret1").
		Return(&portssvc.IdentityUser{LocalID: localID, Email: email, IdToken: "id-" + localID}, nil).Once()
	user, err := suite.service.SignUp(suite.ctx, dto.SignUpRequest{Email: email, Password: "secret1"})
	suite.Require().NoError(err)
	return user.UserID
}

func (suite *UserServiceTestSuite) TestSignUp_StoresLocalUser() {
	userID := suite.signUp("a@b.lt", "uid-1")

	user, err := suite.service.GetUserByID(suite.ctx, userID)
	suite.Require().NoError(err)
	suite.Equal("a@b.lt", user.Email)
	suite.Equal("uid-1", user.LocalID)
	suite.False(user.DateCreated.IsZero())

	ownerID, err := suite.service.ResolveOwnerID(suite.ctx, "uid-1")
	suite.Require().NoError(err)
	suite.Equal(userID, ownerID)
}

func (suite *UserServiceTestSuite) TestSignUp_ProviderErrorStoresNothing() {
	suite.provider.On("SignUp", mock.Anything, "a@b.lt", "secret1").
		Return(nil, apperrors.NewAppError(apperrors.KindDuplicate, "EMAIL_EXISTS", nil)).Once()

	_, err := suite.service.SignUp(suite.ctx, dto.SignUpRequest{Email: "a@b.lt", Password: "secret1"})

	suite.ErrorIs(err, apperrors.ErrDuplicate)
	_, err = suite.service.ResolveOwnerID(suite.ctx, "uid-1")
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *UserServiceTestSuite) TestSignIn_IssuesTokenForLocalID() {
	suite.signUp("a@b.lt", "uid-1")
	suite.provider.On("SignIn", mock.Anything, "a@b.lt", "secret1").
		Return(&portssvc.IdentityUser{LocalID: "uid-1", Email: "a@b.lt", IdToken: "id-token"}, nil).Once()

	resp, err := suite.service.SignIn(suite.ctx, dto.SignInRequest{Email: "a@b.lt", Password: "secret1"})

	suite.Require().NoError(err)
	suite.Equal("id-token", resp.IdToken)
	suite.True(resp.ExpiresAt.After(time.Now()))
	claims, err := utils.ParseAndValidateJWT(resp.AccessToken, suite.cfg.JWTSecret, suite.cfg.JWTIssuer)
	suite.Require().NoError(err)
	suite.Equal("uid-1", claims.Subject)
}

func (suite *UserServiceTestSuite) TestSignIn_UnknownLocalUser() {
	suite.provider.On("SignIn", mock.Anything, "ghost@b.lt", "secret1").
		Return(&portssvc.IdentityUser{LocalID: "uid-ghost", Email: "ghost@b.lt"}, nil).Once()

	_, err := suite.service.SignIn(suite.ctx, dto.SignInRequest{Email: "ghost@b.lt", Password: "secret1"})

	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.Equal(apperrors.KindUnauthorized, apperrors.KindOf(err))
}

func (suite *UserServiceTestSuite) TestChangeEmail_UpdatesLocalRecordFirst() {
	userID := suite.signUp("a@b.lt", "uid-1")
	suite.provider.On("ChangeEmail", mock.Anything, "id-token", "new@b.lt").
		Return(&portssvc.IdentityUser{LocalID: "uid-1", Email: "new@b.lt", IdToken: "fresh"}, nil).Once()

	resp, err := suite.service.ChangeEmail(suite.ctx, userID, dto.ChangeEmailRequest{IdToken: "id-token", NewEmail: "new@b.lt"})

	suite.Require().NoError(err)
	suite.Equal("new@b.lt", resp.Email)
	user, err := suite.service.GetUserByID(suite.ctx, userID)
	suite.Require().NoError(err)
	suite.Equal("new@b.lt", user.Email)
}

func (suite *UserServiceTestSuite) TestChangeEmail_UnknownUserSkipsProvider() {
	_, err := suite.service.ChangeEmail(suite.ctx, "missing", dto.ChangeEmailRequest{IdToken: "id-token", NewEmail: "new@b.lt"})

	suite.ErrorIs(err, apperrors.ErrStoreFailure)
	suite.Equal("Error while changing user email", err.Error())
	suite.provider.AssertNotCalled(suite.T(), "ChangeEmail", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestChangePassword_PassesThroughProviderErrors() {
	suite.provider.On("ChangePassword", mock.Anything, "expired", "newsecret").
		Return(nil, apperrors.NewAppError(apperrors.KindUnauthorized, "INVALID_ID_TOKEN", nil)).Once()

	_, err := suite.service.ChangePassword(suite.ctx, dto.ChangePasswordRequest{IdToken: "expired", NewPassword: "newsecret"})

	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func TestUserService(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
