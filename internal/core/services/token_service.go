package services

import (
	"context"
	"log/slog"
	"time"

	portssvc "github.com/SscSPs/banking_app/internal/core/ports/services"
	"github.com/SscSPs/banking_app/internal/platform/config"
	"github.com/SscSPs/banking_app/internal/utils"
)

// tokenService implements the TokenSvcFacade for handling JWT access tokens.
type tokenService struct {
	BaseService
	cfg *config.Config
	now func() time.Time
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config) portssvc.TokenSvcFacade {
	return &tokenService{cfg: cfg, now: time.Now}
}

// GenerateAccessToken creates a new JWT access token whose subject is the identity provider uid.
func (s *tokenService) GenerateAccessToken(ctx context.Context, subject string) (string, time.Time, error) {
	token, expiresAt, err := utils.GenerateJWT(subject, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer, s.now())
	if err != nil {
		s.LogError(ctx, err, "Failed to sign access token", slog.String("subject", subject))
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}
