package ports

// Package ports defines interfaces (hexagonal ports) for the gateway's
// collaborators. Implementations live in internal/adapters; orchestration in
// internal/service.

import (
	"context"
	"errors"

	domainauth "github.com/launchpath/lp-gateway/internal/domain/auth"
)

// ErrNoCredential is returned by CredentialVerifier when the request carries
// no credential at all. It is a normal outcome, not a failure.
var ErrNoCredential = errors.New("no credential")

// CredentialVerifier checks a raw signed credential and produces the identity
// it encodes.
//
// Error contract:
//   - ErrNoCredential when raw is empty
//   - an unauthorized AppError when the credential is malformed, tampered, or expired
//   - an unavailable AppError when verification infrastructure cannot be reached
type CredentialVerifier interface {
	Verify(ctx context.Context, raw string) (domainauth.Identity, error)
}

// CredentialIssuer mints a signed credential for an identity, used after a
// successful federated login.
type CredentialIssuer interface {
	Issue(ctx context.Context, identity domainauth.Identity) (string, error)
}

// BeginInput carries inputs for initiating a federated login flow.
type BeginInput struct {
	RedirectURL string
}

// ExchangeInput groups parameters for the code/token exchange.
type ExchangeInput struct {
	Code  string
	State string
	Nonce string
}

// LoginProvider initiates and completes a federated login against an IdP.
type LoginProvider interface {
	// Begin starts the login flow and returns the provider auth URL, an opaque state, and a nonce.
	Begin(ctx context.Context, in BeginInput) (authURL, state, nonce string, err error)

	// Exchange completes the login flow, verifying state and nonce, and returns the authenticated identity.
	Exchange(ctx context.Context, in ExchangeInput) (domainauth.Identity, error)
}
