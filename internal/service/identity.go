package service

import (
	"context"
	"errors"
	"log/slog"

	domainauth "github.com/launchpath/lp-gateway/internal/domain/auth"
	apperrors "github.com/launchpath/lp-gateway/internal/errors"
	"github.com/launchpath/lp-gateway/internal/ports"
)

// IdentityServiceOptions groups dependencies for IdentityService.
type IdentityServiceOptions struct {
	Verifier ports.CredentialVerifier
	Logger   *slog.Logger
}

// IdentityService resolves the caller's identity from a raw request
// credential. Identity is reconstructed fresh on every request; nothing is
// cached across invocations.
type IdentityService struct {
	verifier ports.CredentialVerifier
	logger   *slog.Logger
}

// NewIdentityService constructs a new IdentityService.
func NewIdentityService(opts IdentityServiceOptions) *IdentityService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &IdentityService{verifier: opts.Verifier, logger: logger}
}

// Resolve verifies the raw credential and returns the identity it encodes.
// Absent and rejected credentials both resolve to (nil, nil): anonymous is a
// normal outcome the policy handles, not an error. A verifier that cannot be
// reached is different — that error propagates so a transient outage is never
// reported as "logged out".
func (s *IdentityService) Resolve(ctx context.Context, raw string) (*domainauth.Identity, error) {
	identity, err := s.verifier.Verify(ctx, raw)
	if err != nil {
		if errors.Is(err, ports.ErrNoCredential) {
			return nil, nil
		}
		if apperrors.IsUnauthorized(err) {
			s.logger.DebugContext(ctx, "credential rejected", "error", err)
			return nil, nil
		}
		return nil, err
	}
	return &identity, nil
}

// Resolver adapts the service to the policy's lazy resolver signature for a
// single request's credential.
func (s *IdentityService) Resolver(raw string) func(context.Context) (*domainauth.Identity, error) {
	return func(ctx context.Context) (*domainauth.Identity, error) {
		return s.Resolve(ctx, raw)
	}
}
