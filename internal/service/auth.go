package service

import (
	"context"
	"errors"
	"fmt"

	domainauth "github.com/launchpath/lp-gateway/internal/domain/auth"
	"github.com/launchpath/lp-gateway/internal/ports"
)

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Provider ports.LoginProvider
	Issuer   ports.CredentialIssuer
}

// AuthService orchestrates the federated login flow: it delegates the
// handshake to the provider and mints the first-party credential the gateway
// verifies on subsequent requests.
type AuthService struct {
	provider ports.LoginProvider
	issuer   ports.CredentialIssuer
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	return &AuthService{provider: opts.Provider, issuer: opts.Issuer}
}

// BeginLoginResult contains the result of beginning a login flow.
type BeginLoginResult struct {
	AuthURL string
	State   string
	Nonce   string
}

// BeginLogin initiates a login flow and returns the provider auth URL with state and nonce.
func (s *AuthService) BeginLogin(ctx context.Context, redirectURL string) (*BeginLoginResult, error) {
	if redirectURL == "" {
		return nil, errors.New("redirect URL is required")
	}

	authURL, state, nonce, err := s.provider.Begin(ctx, ports.BeginInput{RedirectURL: redirectURL})
	if err != nil {
		return nil, fmt.Errorf("begin login flow: %w", err)
	}

	return &BeginLoginResult{AuthURL: authURL, State: state, Nonce: nonce}, nil
}

// CompleteLoginInput groups parameters for completing a login flow.
type CompleteLoginInput struct {
	Code  string
	State string
	Nonce string
}

// CompleteLoginResult contains the result of completing a login flow.
type CompleteLoginResult struct {
	Identity   domainauth.Identity
	Credential string
}

// CompleteLogin exchanges the authorization code for an identity and mints
// the signed credential carried by subsequent requests.
func (s *AuthService) CompleteLogin(ctx context.Context, input CompleteLoginInput) (*CompleteLoginResult, error) {
	if input.Code == "" {
		return nil, errors.New("authorization code is required")
	}
	if input.State == "" {
		return nil, errors.New("state parameter is required")
	}
	if input.Nonce == "" {
		return nil, errors.New("nonce parameter is required")
	}

	identity, err := s.provider.Exchange(ctx, ports.ExchangeInput{
		Code:  input.Code,
		State: input.State,
		Nonce: input.Nonce,
	})
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}

	credential, err := s.issuer.Issue(ctx, identity)
	if err != nil {
		return nil, fmt.Errorf("issue credential: %w", err)
	}

	return &CompleteLoginResult{Identity: identity, Credential: credential}, nil
}
