package auth

// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"errors"
	"fmt"

	domainauth "github.com/launchpath/lp-gateway/internal/domain/auth"
	apperrors "github.com/launchpath/lp-gateway/internal/errors"
	"github.com/launchpath/lp-gateway/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.CredentialVerifier = (*StaticVerifier)(nil)
	_ ports.CredentialIssuer   = (*StaticIssuer)(nil)
	_ ports.LoginProvider      = (*MockLoginProvider)(nil)
)

// StaticVerifier resolves a fixed set of raw credentials to identities.
// Unknown credentials fail verification; an empty credential reports
// ports.ErrNoCredential like the real adapters.
type StaticVerifier struct {
	// Identities maps a raw credential to the identity it encodes.
	Identities map[string]domainauth.Identity
	// Err, when set, is returned for every non-empty credential. Use it to
	// simulate a validator outage.
	Err error
}

// NewStaticVerifier creates a StaticVerifier that accepts the given
// credential/identity pair.
func NewStaticVerifier(raw string, identity domainauth.Identity) *StaticVerifier {
	return &StaticVerifier{Identities: map[string]domainauth.Identity{raw: identity}}
}

func (v *StaticVerifier) Verify(_ context.Context, raw string) (domainauth.Identity, error) {
	if raw == "" {
		return domainauth.Identity{}, ports.ErrNoCredential
	}
	if v.Err != nil {
		return domainauth.Identity{}, v.Err
	}
	identity, ok := v.Identities[raw]
	if !ok {
		return domainauth.Identity{}, apperrors.Unauthorized("unknown credential")
	}
	return identity, nil
}

// StaticIssuer mints predictable credentials of the form "cred-<id>".
type StaticIssuer struct {
	Err error
}

func (i *StaticIssuer) Issue(_ context.Context, identity domainauth.Identity) (string, error) {
	if i.Err != nil {
		return "", i.Err
	}
	return "cred-" + identity.ID, nil
}

// MockLoginProvider simulates an IdP for tests with deterministic state/nonce handling.
type MockLoginProvider struct {
	BeginFunc    func(ctx context.Context, in ports.BeginInput) (authURL, state, nonce string, err error)
	ExchangeFunc func(ctx context.Context, in ports.ExchangeInput) (domainauth.Identity, error)

	// Deterministic values for predictable testing
	AuthURL     string
	StatePrefix string
	NoncePrefix string
	DefaultUser domainauth.Identity

	callCount int
}

// NewMockLoginProvider creates a MockLoginProvider with sensible defaults.
func NewMockLoginProvider() *MockLoginProvider {
	return &MockLoginProvider{
		AuthURL:     "https://mock-idp/auth",
		StatePrefix: "state",
		NoncePrefix: "nonce",
		DefaultUser: domainauth.Identity{
			ID:          "mock-user-1",
			Email:       "mock.user@example.com",
			Role:        domainauth.RoleEntrepreneur,
			DisplayName: "Mock User",
		},
	}
}

func (m *MockLoginProvider) Begin(ctx context.Context, in ports.BeginInput) (string, string, string, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx, in)
	}
	m.callCount++
	state := fmt.Sprintf("%s-%d", m.StatePrefix, m.callCount)
	nonce := fmt.Sprintf("%s-%d", m.NoncePrefix, m.callCount)
	return m.AuthURL + "?state=" + state, state, nonce, nil
}

func (m *MockLoginProvider) Exchange(ctx context.Context, in ports.ExchangeInput) (domainauth.Identity, error) {
	if m.ExchangeFunc != nil {
		return m.ExchangeFunc(ctx, in)
	}
	if in.Code == "" {
		return domainauth.Identity{}, errors.New("code is required")
	}
	return m.DefaultUser, nil
}
