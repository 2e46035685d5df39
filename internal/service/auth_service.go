package service

import (
	"context"
	"strings"

	"fitchallenge/internal/identity"
	"fitchallenge/internal/logger"

	"go.uber.org/zap"
)

// AuthService fronts the external identity provider. Passwords never touch this
// service's storage.
type AuthService interface {
	Register(ctx context.Context, email, password string) (*identity.Session, error)
	Login(ctx context.Context, email, password string) (*identity.Session, error)
	Logout(ctx context.Context, idToken string) error
}

// authService implements the AuthService interface.
type authService struct {
	provider identity.Provider
	logger   *logger.LogMiddleware
}

// NewAuthService creates a new instance of authService.
func NewAuthService(provider identity.Provider, log *logger.LogMiddleware) AuthService {
	return &authService{provider: provider, logger: log}
}

func (s *authService) Register(ctx context.Context, email, password string) (*identity.Session, error) {
	if err := requireCredentials(email, password); err != nil {
		return nil, err
	}
	session, err := s.provider.SignUp(ctx, strings.TrimSpace(email), password)
	if err != nil {
		s.logger.Logger(ctx).Warn("[Auth] registration failed", zap.Error(err))
		return nil, err
	}
	return session, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*identity.Session, error) {
	if err := requireCredentials(email, password); err != nil {
		return nil, err
	}
	session, err := s.provider.SignIn(ctx, strings.TrimSpace(email), password)
	if err != nil {
		s.logger.Logger(ctx).Warn("[Auth] login failed", zap.Error(err))
		return nil, err
	}
	return session, nil
}

// Logout signs the token's owner out at the provider. Without a token it only
// confirms, since the session lives on the client.
func (s *authService) Logout(ctx context.Context, idToken string) error {
	return s.provider.SignOut(ctx, idToken)
}

func requireCredentials(email, password string) error {
	if strings.TrimSpace(email) == "" {
		return validationError("correo is required")
	}
	if password == "" {
		return validationError("contrasena is required")
	}
	return nil
}
