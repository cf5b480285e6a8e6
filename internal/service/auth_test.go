package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/launchpath/lp-gateway/internal/domain/auth"
	apperrors "github.com/launchpath/lp-gateway/internal/errors"
	mockauth "github.com/launchpath/lp-gateway/internal/mocks/auth"
	"github.com/launchpath/lp-gateway/internal/ports"
)

func TestAuthService_BeginLogin(t *testing.T) {
	ctx := context.Background()
	provider := mockauth.NewMockLoginProvider()
	svc := NewAuthService(AuthServiceOptions{Provider: provider, Issuer: &mockauth.StaticIssuer{}})

	result, err := svc.BeginLogin(ctx, "https://app.example.com/auth/callback")
	require.NoError(t, err)
	assert.NotEmpty(t, result.AuthURL)
	assert.NotEmpty(t, result.State)
	assert.NotEmpty(t, result.Nonce)
}

func TestAuthService_BeginLogin_RequiresRedirectURL(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(AuthServiceOptions{Provider: mockauth.NewMockLoginProvider(), Issuer: &mockauth.StaticIssuer{}})

	_, err := svc.BeginLogin(ctx, "")
	require.Error(t, err)
}

func TestAuthService_CompleteLogin_MintsCredential(t *testing.T) {
	ctx := context.Background()
	provider := mockauth.NewMockLoginProvider()
	provider.DefaultUser = domainauth.Identity{ID: "user-42", Email: "founder@example.com", Role: domainauth.RoleEntrepreneur}
	svc := NewAuthService(AuthServiceOptions{Provider: provider, Issuer: &mockauth.StaticIssuer{}})

	result, err := svc.CompleteLogin(ctx, CompleteLoginInput{Code: "code-1", State: "state-1", Nonce: "nonce-1"})
	require.NoError(t, err)
	assert.Equal(t, "user-42", result.Identity.ID)
	assert.Equal(t, "cred-user-42", result.Credential)
}

func TestAuthService_CompleteLogin_InputValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewAuthService(AuthServiceOptions{Provider: mockauth.NewMockLoginProvider(), Issuer: &mockauth.StaticIssuer{}})

	tests := []struct {
		name  string
		input CompleteLoginInput
	}{
		{"missing code", CompleteLoginInput{State: "s", Nonce: "n"}},
		{"missing state", CompleteLoginInput{Code: "c", Nonce: "n"}},
		{"missing nonce", CompleteLoginInput{Code: "c", State: "s"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CompleteLogin(ctx, tt.input)
			require.Error(t, err)
		})
	}
}

func TestAuthService_CompleteLogin_ExchangeFailure(t *testing.T) {
	ctx := context.Background()
	provider := mockauth.NewMockLoginProvider()
	provider.ExchangeFunc = func(context.Context, ports.ExchangeInput) (domainauth.Identity, error) {
		return domainauth.Identity{}, apperrors.Unauthorized("nonce mismatch")
	}
	svc := NewAuthService(AuthServiceOptions{Provider: provider, Issuer: &mockauth.StaticIssuer{}})

	_, err := svc.CompleteLogin(ctx, CompleteLoginInput{Code: "c", State: "s", Nonce: "n"})
	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthorized(err))
}

func TestAuthService_CompleteLogin_IssueFailure(t *testing.T) {
	ctx := context.Background()
	issuer := &mockauth.StaticIssuer{Err: apperrors.Internal("signing key missing")}
	svc := NewAuthService(AuthServiceOptions{Provider: mockauth.NewMockLoginProvider(), Issuer: issuer})

	_, err := svc.CompleteLogin(ctx, CompleteLoginInput{Code: "c", State: "s", Nonce: "n"})
	require.Error(t, err)
	assert.True(t, apperrors.IsInternal(err))
}
