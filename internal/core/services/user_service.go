package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/banking_app/internal/apperrors"
	"github.com/SscSPs/banking_app/internal/core/domain"
	portsrepo "github.com/SscSPs/banking_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/banking_app/internal/core/ports/services"
	"github.com/SscSPs/banking_app/internal/dto"
	"github.com/google/uuid"
)

// userService keeps the local user table in step with the identity provider.
type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
	provider portssvc.IdentityProvider
	tokens   portssvc.TokenSvcFacade
	now      func() time.Time
}

// NewUserService creates a user service.
func NewUserService(userRepo portsrepo.UserRepositoryFacade, provider portssvc.IdentityProvider, tokens portssvc.TokenSvcFacade) portssvc.UserSvcFacade {
	return &userService{
		userRepo: userRepo,
		provider: provider,
		tokens:   tokens,
		now:      time.Now,
	}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) SignUp(ctx context.Context, req dto.SignUpRequest) (*domain.User, error) {
	identity, err := s.provider.SignUp(ctx, req.Email, req.Password)
	if err != nil {
		s.LogError(ctx, err, "Identity provider sign up failed")
		return nil, err
	}

	user := domain.User{
		UserID:      uuid.NewString(),
		Email:       identity.Email,
		LocalID:     identity.LocalID,
		DateCreated: s.now().UTC(),
	}
	if user.Email == "" {
		user.Email = req.Email
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		s.LogError(ctx, err, "Failed to save signed up user", slog.String("local_id", user.LocalID))
		return nil, storeFailure("failed to save user", err)
	}

	s.LogInfo(ctx, "User signed up", slog.String("user_id", user.UserID))
	return &user, nil
}

func (s *userService) SignIn(ctx context.Context, req dto.SignInRequest) (*dto.SignInResponse, error) {
	identity, err := s.provider.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		s.LogDebug(ctx, "Identity provider sign in failed", slog.String("error", err.Error()))
		return nil, err
	}

	if _, err := s.userRepo.FindUserByLocalID(ctx, identity.LocalID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogWarn(ctx, "Signed in identity has no local user", slog.String("local_id", identity.LocalID))
			return nil, apperrors.NewAppError(apperrors.KindUnauthorized, "User is not registered", err)
		}
		s.LogError(ctx, err, "Failed to load user on sign in")
		return nil, storeFailure("failed to load user", err)
	}

	accessToken, expiresAt, err := s.tokens.GenerateAccessToken(ctx, identity.LocalID)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate access token")
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &dto.SignInResponse{
		Email:       identity.Email,
		IdToken:     identity.IdToken,
		AccessToken: accessToken,
		ExpiresAt:   expiresAt,
	}, nil
}

func (s *userService) ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) (*dto.EditUserResponse, error) {
	identity, err := s.provider.ChangePassword(ctx, req.IdToken, req.NewPassword)
	if err != nil {
		s.LogError(ctx, err, "Identity provider password change failed")
		return nil, err
	}
	return toEditUserResponse(identity), nil
}

// ChangeEmail updates the local record first; the provider is only called once that succeeded.
func (s *userService) ChangeEmail(ctx context.Context, userID string, req dto.ChangeEmailRequest) (*dto.EditUserResponse, error) {
	rows, err := s.userRepo.UpdateEmail(ctx, userID, req.NewEmail)
	if err != nil {
		s.LogError(ctx, err, "Failed to update user email", slog.String("user_id", userID))
		return nil, apperrors.NewStoreFailure("Error while changing user email", err)
	}
	if rows == 0 {
		return nil, apperrors.NewStoreFailure("Error while changing user email", nil)
	}

	identity, err := s.provider.ChangeEmail(ctx, req.IdToken, req.NewEmail)
	if err != nil {
		s.LogError(ctx, err, "Identity provider email change failed", slog.String("user_id", userID))
		return nil, err
	}
	return toEditUserResponse(identity), nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get user", slog.String("user_id", userID))
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) ResolveOwnerID(ctx context.Context, localID string) (string, error) {
	user, err := s.userRepo.FindUserByLocalID(ctx, localID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to resolve owner", slog.String("local_id", localID))
		}
		return "", err
	}
	return user.UserID, nil
}

func toEditUserResponse(identity *portssvc.IdentityUser) *dto.EditUserResponse {
	return &dto.EditUserResponse{
		Email:   identity.Email,
		LocalID: identity.LocalID,
		IdToken: identity.IdToken,
	}
}
