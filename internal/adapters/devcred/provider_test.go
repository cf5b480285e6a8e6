package devcred

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/launchpath/lp-gateway/internal/domain/auth"
	"github.com/launchpath/lp-gateway/internal/ports"
)

func TestNewProvider_Validation(t *testing.T) {
	_, err := NewProvider(Config{Email: "dev@example.com"})
	assert.Error(t, err)

	_, err = NewProvider(Config{UserID: "dev-user"})
	assert.Error(t, err)

	_, err = NewProvider(Config{UserID: "dev-user", Email: "dev@example.com", Role: "root"})
	assert.Error(t, err)
}

func TestProvider_BeginReturnsLocalCallback(t *testing.T) {
	p, err := NewProvider(Config{UserID: "dev-user", Email: "dev@example.com"})
	require.NoError(t, err)

	authURL, state, nonce, err := p.Begin(context.Background(), ports.BeginInput{RedirectURL: "/"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(authURL, "/auth/callback?code=dev&state="), "unexpected auth URL %q", authURL)
	assert.Len(t, state, 24)
	assert.Len(t, nonce, 24)
	assert.NotEqual(t, state, nonce)
}

func TestProvider_ExchangeReturnsConfiguredIdentity(t *testing.T) {
	p, err := NewProvider(Config{UserID: "dev-user", Email: "dev@example.com", Name: "Dev User", Role: domainauth.RoleAdmin})
	require.NoError(t, err)

	identity, err := p.Exchange(context.Background(), ports.ExchangeInput{Code: "dev", State: "s", Nonce: "n"})
	require.NoError(t, err)
	assert.Equal(t, "dev-user", identity.ID)
	assert.Equal(t, "Dev User", identity.DisplayName)
	assert.Equal(t, domainauth.RoleAdmin, identity.Role)
}

func TestProvider_RoleDefaultsToEntrepreneur(t *testing.T) {
	p, err := NewProvider(Config{UserID: "dev-user", Email: "dev@example.com"})
	require.NoError(t, err)

	identity, err := p.Exchange(context.Background(), ports.ExchangeInput{})
	require.NoError(t, err)
	assert.Equal(t, domainauth.RoleEntrepreneur, identity.Role)
}
