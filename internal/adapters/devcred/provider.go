package devcred

// Package devcred provides a simple, config-driven LoginProvider for local
// development. It short-circuits the federated flow by redirecting straight
// back to our own callback with locally generated state and nonce.

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	domainauth "github.com/launchpath/lp-gateway/internal/domain/auth"
	"github.com/launchpath/lp-gateway/internal/ports"
)

// Config controls the dev login provider identity.
type Config struct {
	UserID string
	Email  string
	Name   string
	Role   domainauth.Role
}

// Provider implements ports.LoginProvider for local development.
// Exchange ignores the code and returns the configured identity.
type Provider struct {
	identity domainauth.Identity
}

// NewProvider constructs a dev login provider from Config.
func NewProvider(cfg Config) (*Provider, error) {
	if cfg.UserID == "" {
		return nil, errors.New("dev auth: UserID is required")
	}
	if cfg.Email == "" {
		return nil, errors.New("dev auth: Email is required")
	}
	role, err := domainauth.ParseRole(string(cfg.Role))
	if err != nil {
		return nil, fmt.Errorf("dev auth: %w", err)
	}
	return &Provider{
		identity: domainauth.Identity{
			ID:          cfg.UserID,
			Email:       cfg.Email,
			Role:        role,
			DisplayName: cfg.Name,
		},
	}, nil
}

// Begin returns a local callback URL and cryptographically secure state and nonce.
func (p *Provider) Begin(_ context.Context, _ ports.BeginInput) (string, string, string, error) {
	state, err := randomString(24)
	if err != nil {
		return "", "", "", fmt.Errorf("generate state: %w", err)
	}
	nonce, err := randomString(24)
	if err != nil {
		return "", "", "", fmt.Errorf("generate nonce: %w", err)
	}
	// The standard handler expects GET /auth/callback?code=...&state=...
	authURL := "/auth/callback?code=dev&state=" + state
	return authURL, state, nonce, nil
}

// Exchange ignores the provided code/state/nonce (validation handled by the
// handler) and returns the dev identity.
func (p *Provider) Exchange(_ context.Context, _ ports.ExchangeInput) (domainauth.Identity, error) {
	return p.identity, nil
}

func randomString(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b)[:n], nil
}
