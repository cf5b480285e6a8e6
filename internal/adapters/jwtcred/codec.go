package jwtcred

// Package jwtcred signs and verifies the first-party credential cookie as a
// compact HS256 JWT keyed by the server-held secret.

import (
	"context"
	"errors"
	"fmt"
	"time"

	jose "github.com/go-jose/go-jose/v4"
	"github.com/go-jose/go-jose/v4/jwt"

	domainauth "github.com/launchpath/lp-gateway/internal/domain/auth"
	apperrors "github.com/launchpath/lp-gateway/internal/errors"
	"github.com/launchpath/lp-gateway/internal/ports"
)

const defaultTTL = 30 * 24 * time.Hour

// Config controls credential issuing and verification.
type Config struct {
	// Secret is the HMAC signing key. Required.
	Secret []byte
	// Issuer is the iss claim to stamp and expect. Defaults to "lp-gateway".
	Issuer string
	// TTL is the credential lifetime. Defaults to 30 days.
	TTL time.Duration
	// Now overrides the clock, for tests.
	Now func() time.Time
}

// Codec implements ports.CredentialIssuer and ports.CredentialVerifier with a
// shared symmetric key. Verification is purely local; it has no transport
// failure mode.
type Codec struct {
	signer jose.Signer
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// claims is the JWT payload for the first-party credential.
type claims struct {
	jwt.Claims
	Email               string `json:"email"`
	Role                string `json:"role,omitempty"`
	Name                string `json:"name,omitempty"`
	Picture             string `json:"picture,omitempty"`
	OnboardingCompleted bool   `json:"onboarding_completed,omitempty"`
}

// NewCodec constructs a Codec from Config.
func NewCodec(cfg Config) (*Codec, error) {
	if len(cfg.Secret) == 0 {
		return nil, errors.New("jwtcred: secret is required")
	}

	signer, err := jose.NewSigner(
		jose.SigningKey{Algorithm: jose.HS256, Key: cfg.Secret},
		(&jose.SignerOptions{}).WithType("JWT"),
	)
	if err != nil {
		return nil, fmt.Errorf("jwtcred: new signer: %w", err)
	}

	c := &Codec{
		signer: signer,
		secret: cfg.Secret,
		issuer: cfg.Issuer,
		ttl:    cfg.TTL,
		now:    cfg.Now,
	}
	if c.issuer == "" {
		c.issuer = "lp-gateway"
	}
	if c.ttl <= 0 {
		c.ttl = defaultTTL
	}
	if c.now == nil {
		c.now = time.Now
	}
	return c, nil
}

// Issue mints a signed credential for the identity.
func (c *Codec) Issue(_ context.Context, identity domainauth.Identity) (string, error) {
	if err := identity.Validate(); err != nil {
		return "", fmt.Errorf("issue credential: %w", err)
	}

	now := c.now()
	cl := claims{
		Claims: jwt.Claims{
			Issuer:    c.issuer,
			Subject:   identity.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			Expiry:    jwt.NewNumericDate(now.Add(c.ttl)),
		},
		Email:               identity.Email,
		Role:                string(identity.Role),
		Name:                identity.DisplayName,
		Picture:             identity.AvatarURL,
		OnboardingCompleted: identity.OnboardingCompleted,
	}

	raw, err := jwt.Signed(c.signer).Claims(cl).Serialize()
	if err != nil {
		return "", fmt.Errorf("sign credential: %w", err)
	}
	return raw, nil
}

// Verify checks the signature and claims of a raw credential and returns the
// identity it encodes. Missing credential is a normal outcome reported as
// ports.ErrNoCredential; everything else that fails resolves to an
// unauthorized error, never a panic or a false identity.
func (c *Codec) Verify(_ context.Context, raw string) (domainauth.Identity, error) {
	if raw == "" {
		return domainauth.Identity{}, ports.ErrNoCredential
	}

	tok, err := jwt.ParseSigned(raw, []jose.SignatureAlgorithm{jose.HS256})
	if err != nil {
		return domainauth.Identity{}, apperrors.Wrap(err, apperrors.ErrCodeUnauthorized, "malformed credential")
	}

	var cl claims
	if err := tok.Claims(c.secret, &cl); err != nil {
		return domainauth.Identity{}, apperrors.Wrap(err, apperrors.ErrCodeUnauthorized, "credential verification failed")
	}

	if err := cl.Validate(jwt.Expected{Issuer: c.issuer, Time: c.now()}); err != nil {
		return domainauth.Identity{}, apperrors.Wrap(err, apperrors.ErrCodeUnauthorized, "credential claims rejected")
	}

	role, err := domainauth.ParseRole(cl.Role)
	if err != nil {
		return domainauth.Identity{}, apperrors.Wrap(err, apperrors.ErrCodeUnauthorized, "credential role rejected")
	}

	identity := domainauth.Identity{
		ID:                  cl.Subject,
		Email:               cl.Email,
		Role:                role,
		DisplayName:         cl.Name,
		AvatarURL:           cl.Picture,
		OnboardingCompleted: cl.OnboardingCompleted,
	}
	if err := identity.Validate(); err != nil {
		return domainauth.Identity{}, apperrors.Wrap(err, apperrors.ErrCodeUnauthorized, "credential payload rejected")
	}
	return identity, nil
}
