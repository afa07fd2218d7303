// Package identity handles authentication against the backend and the
// lifecycle of the local session.
package identity

import (
	"context"

	"go.uber.org/zap"

	"github.com/softpan/console/internal/infrastructure/api"
	"github.com/softpan/console/internal/infrastructure/session"
	"github.com/softpan/console/internal/infrastructure/validation"
)

// Known backend roles
const (
	RoleAdmin  = "Admin"
	RoleSeller = "Vendedor"
	RoleTeller = "Cajero"
)

// AuthService authenticates the operator and manages the session store
type AuthService struct {
	gateway  *api.Client
	sessions *session.Store
	logger   *zap.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(gateway *api.Client, sessions *session.Store, logger *zap.Logger) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		gateway:  gateway,
		sessions: sessions,
		logger:   logger,
	}
}

// Login authenticates against the backend and persists the session
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*session.Credentials, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	var resp AuthResponse
	if err := s.gateway.Post(ctx, "/auth/login", req, &resp); err != nil {
		return nil, err
	}

	creds := credentialsFrom(resp)
	if err := s.sessions.Set(creds); err != nil {
		return nil, err
	}
	s.logger.Info("logged in", zap.String("email", creds.Email))
	return creds, nil
}

// Register creates an account and persists the resulting session
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*session.Credentials, error) {
	if err := validation.Struct(req); err != nil {
		return nil, err
	}

	var resp AuthResponse
	if err := s.gateway.Post(ctx, "/auth/register", req, &resp); err != nil {
		return nil, err
	}

	creds := credentialsFrom(resp)
	if err := s.sessions.Set(creds); err != nil {
		return nil, err
	}
	s.logger.Info("registered", zap.String("email", creds.Email))
	return creds, nil
}

// Logout clears the local session. The backend keeps no server-side session.
func (s *AuthService) Logout() {
	s.sessions.Clear()
}

func credentialsFrom(resp AuthResponse) *session.Credentials {
	return &session.Credentials{
		Token:     resp.Token,
		Email:     resp.Email,
		FirstName: resp.FirstName,
		LastName:  resp.LastName,
		Roles:     resp.Roles,
	}
}
