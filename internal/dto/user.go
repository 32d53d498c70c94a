package dto

import (
	"time"

	"github.com/SscSPs/banking_app/internal/core/domain"
)

// SignUpRequest registers a new user with the identity provider.
type SignUpRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// SignInRequest holds the credentials checked by the identity provider.
type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// SignInResponse carries our access token and the identity provider token.
// IdToken is needed for ChangePassword and ChangeEmail.
type SignInResponse struct {
	Email       string    `json:"email"`
	IdToken     string    `json:"idToken"`
	AccessToken string    `json:"accessToken"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// ChangePasswordRequest updates the password held by the identity provider.
type ChangePasswordRequest struct {
	IdToken     string `json:"idToken" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

// ChangeEmailRequest updates the email both locally and at the identity provider.
type ChangeEmailRequest struct {
	IdToken  string `json:"idToken" binding:"required"`
	NewEmail string `json:"newEmail" binding:"required,email"`
}

// EditUserResponse is returned by the identity provider after a credentials change.
type EditUserResponse struct {
	Email   string `json:"email"`
	LocalID string `json:"localId"`
	IdToken string `json:"idToken"`
}

// UserResponse defines the data returned for a user.
type UserResponse struct {
	UserID      string    `json:"userId"`
	Email       string    `json:"email"`
	LocalID     string    `json:"localId"`
	DateCreated time.Time `json:"dateCreated"`
}

// ToUserResponse converts a domain.User to UserResponse DTO
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:      user.UserID,
		Email:       user.Email,
		LocalID:     user.LocalID,
		DateCreated: user.DateCreated,
	}
}
