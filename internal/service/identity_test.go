package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/launchpath/lp-gateway/internal/domain/auth"
	apperrors "github.com/launchpath/lp-gateway/internal/errors"
	mockauth "github.com/launchpath/lp-gateway/internal/mocks/auth"
)

var testIdentity = domainauth.Identity{
	ID:    "user-1",
	Email: "founder@example.com",
	Role:  domainauth.RoleEntrepreneur,
}

func TestIdentityService_Resolve_ValidCredential(t *testing.T) {
	ctx := context.Background()
	svc := NewIdentityService(IdentityServiceOptions{
		Verifier: mockauth.NewStaticVerifier("good-token", testIdentity),
	})

	identity, err := svc.Resolve(ctx, "good-token")
	require.NoError(t, err)
	require.NotNil(t, identity)
	assert.Equal(t, testIdentity, *identity)
}

func TestIdentityService_Resolve_AbsentCredentialIsAnonymous(t *testing.T) {
	ctx := context.Background()
	svc := NewIdentityService(IdentityServiceOptions{
		Verifier: mockauth.NewStaticVerifier("good-token", testIdentity),
	})

	identity, err := svc.Resolve(ctx, "")
	require.NoError(t, err)
	assert.Nil(t, identity)
}

func TestIdentityService_Resolve_RejectedCredentialIsAnonymous(t *testing.T) {
	ctx := context.Background()
	svc := NewIdentityService(IdentityServiceOptions{
		Verifier: mockauth.NewStaticVerifier("good-token", testIdentity),
	})

	identity, err := svc.Resolve(ctx, "tampered-token")
	require.NoError(t, err)
	assert.Nil(t, identity)
}

func TestIdentityService_Resolve_VerifierOutagePropagates(t *testing.T) {
	ctx := context.Background()
	verifier := mockauth.NewStaticVerifier("good-token", testIdentity)
	verifier.Err = apperrors.Unavailable("validator unreachable")
	svc := NewIdentityService(IdentityServiceOptions{Verifier: verifier})

	identity, err := svc.Resolve(ctx, "good-token")
	require.Error(t, err)
	assert.True(t, apperrors.IsUnavailable(err))
	assert.Nil(t, identity)
}

func TestIdentityService_Resolver_ClosesOverCredential(t *testing.T) {
	ctx := context.Background()
	svc := NewIdentityService(IdentityServiceOptions{
		Verifier: mockauth.NewStaticVerifier("good-token", testIdentity),
	})

	identity, err := svc.Resolver("good-token")(ctx)
	require.NoError(t, err)
	require.NotNil(t, identity)
	assert.Equal(t, testIdentity.ID, identity.ID)

	identity, err = svc.Resolver("")(ctx)
	require.NoError(t, err)
	assert.Nil(t, identity)
}
