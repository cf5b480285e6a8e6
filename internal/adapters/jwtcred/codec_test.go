package jwtcred

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/launchpath/lp-gateway/internal/domain/auth"
	apperrors "github.com/launchpath/lp-gateway/internal/errors"
	"github.com/launchpath/lp-gateway/internal/ports"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func newTestCodec(t *testing.T, cfg Config) *Codec {
	t.Helper()
	if cfg.Secret == nil {
		cfg.Secret = testSecret
	}
	c, err := NewCodec(cfg)
	require.NoError(t, err)
	return c
}

func TestCodec_IssueVerifyRoundTrip(t *testing.T) {
	c := newTestCodec(t, Config{})
	ctx := context.Background()

	identity := domainauth.Identity{
		ID:                  "u1",
		Email:               "founder@example.com",
		Role:                domainauth.RoleEntrepreneur,
		DisplayName:         "Founder One",
		AvatarURL:           "https://cdn.example.com/u1.png",
		OnboardingCompleted: true,
	}

	raw, err := c.Issue(ctx, identity)
	require.NoError(t, err)
	require.NotEmpty(t, raw)

	got, err := c.Verify(ctx, raw)
	require.NoError(t, err)
	assert.Equal(t, identity, got)
}

func TestCodec_VerifyEmptyCredential(t *testing.T) {
	c := newTestCodec(t, Config{})

	_, err := c.Verify(context.Background(), "")
	assert.ErrorIs(t, err, ports.ErrNoCredential)
}

func TestCodec_VerifyGarbage(t *testing.T) {
	c := newTestCodec(t, Config{})

	_, err := c.Verify(context.Background(), "not-a-jwt")
	assert.True(t, apperrors.IsUnauthorized(err), "expected unauthorized, got %v", err)
}

func TestCodec_VerifyTamperedSignature(t *testing.T) {
	c := newTestCodec(t, Config{})
	other := newTestCodec(t, Config{Secret: []byte("another-secret-another-secret-xx")})
	ctx := context.Background()

	raw, err := other.Issue(ctx, domainauth.Identity{
		ID: "u1", Email: "e@example.com", Role: domainauth.RoleAdmin,
	})
	require.NoError(t, err)

	_, err = c.Verify(ctx, raw)
	assert.True(t, apperrors.IsUnauthorized(err), "expected unauthorized, got %v", err)
}

func TestCodec_VerifyExpired(t *testing.T) {
	issuedAt := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	issuer := newTestCodec(t, Config{TTL: time.Hour, Now: func() time.Time { return issuedAt }})
	verifier := newTestCodec(t, Config{Now: func() time.Time { return issuedAt.Add(2 * time.Hour) }})
	ctx := context.Background()

	raw, err := issuer.Issue(ctx, domainauth.Identity{
		ID: "u1", Email: "e@example.com", Role: domainauth.RoleAdmin,
	})
	require.NoError(t, err)

	_, err = verifier.Verify(ctx, raw)
	assert.True(t, apperrors.IsUnauthorized(err), "expected unauthorized, got %v", err)
}

func TestCodec_VerifyWrongIssuer(t *testing.T) {
	issuer := newTestCodec(t, Config{Issuer: "someone-else"})
	verifier := newTestCodec(t, Config{})
	ctx := context.Background()

	raw, err := issuer.Issue(ctx, domainauth.Identity{
		ID: "u1", Email: "e@example.com", Role: domainauth.RoleAdmin,
	})
	require.NoError(t, err)

	_, err = verifier.Verify(ctx, raw)
	assert.True(t, apperrors.IsUnauthorized(err), "expected unauthorized, got %v", err)
}

func TestCodec_RoleDefaultsWhenAbsent(t *testing.T) {
	c := newTestCodec(t, Config{})
	ctx := context.Background()

	// Credentials minted before roles existed carry no role claim; they
	// resolve to the entrepreneur role rather than failing verification.
	raw, err := c.Issue(ctx, domainauth.Identity{ID: "u1", Email: "e@example.com"})
	require.NoError(t, err)

	got, err := c.Verify(ctx, raw)
	require.NoError(t, err)
	assert.Equal(t, domainauth.RoleEntrepreneur, got.Role)
}

func TestCodec_IssueRejectsInvalidIdentity(t *testing.T) {
	c := newTestCodec(t, Config{})

	_, err := c.Issue(context.Background(), domainauth.Identity{Email: "e@example.com"})
	assert.Error(t, err)
}

func TestNewCodec_RequiresSecret(t *testing.T) {
	_, err := NewCodec(Config{})
	assert.Error(t, err)
}
