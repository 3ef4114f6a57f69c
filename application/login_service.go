package application

import (
	"context"
	"fmt"

	"github.com/rios0rios0/unitypm/domain"
)

// UserAuthenticator authenticates a user against a registry and returns
// the granted token.
type UserAuthenticator interface {
	AddUser(ctx context.Context, registry domain.Registry, username, password, email string) (string, error)
}

// CredentialStore persists registry credentials for later invocations.
type CredentialStore interface {
	// StoreToken records a token credential for a registry.
	StoreToken(url domain.RegistryUrl, token, email string, alwaysAuth bool) error
}

// LoginOptions carries the credentials of one login attempt.
type LoginOptions struct {
	Username   string
	Password   string
	Email      string
	AlwaysAuth bool
}

// LoginService exchanges user credentials for a registry token and
// stores it.
type LoginService struct {
	authenticator UserAuthenticator
	credentials   CredentialStore
}

// NewLoginService creates the login orchestrator.
func NewLoginService(authenticator UserAuthenticator, credentials CredentialStore) *LoginService {
	return &LoginService{authenticator: authenticator, credentials: credentials}
}

// Login authenticates against the registry and persists the granted
// token. Returns the token for display.
func (s *LoginService) Login(
	ctx context.Context,
	registry domain.Registry,
	opts LoginOptions,
) (string, error) {
	token, err := s.authenticator.AddUser(ctx, registry, opts.Username, opts.Password, opts.Email)
	if err != nil {
		return "", fmt.Errorf("authenticating against %s: %w", registry.URL, err)
	}

	if storeErr := s.credentials.StoreToken(registry.URL, token, opts.Email, opts.AlwaysAuth); storeErr != nil {
		return "", fmt.Errorf("storing credentials: %w", storeErr)
	}
	return token, nil
}
