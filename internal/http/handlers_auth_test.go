package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/launchpath/lp-gateway/internal/domain/auth"
	mockauth "github.com/launchpath/lp-gateway/internal/mocks/auth"
	"github.com/launchpath/lp-gateway/internal/service"
)

func newAuthHandlers(provider *mockauth.MockLoginProvider) *AuthHandlers {
	svc := service.NewAuthService(service.AuthServiceOptions{
		Provider: provider,
		Issuer:   &mockauth.StaticIssuer{},
	})
	return &AuthHandlers{Svc: svc, CookieName: testCookieName}
}

func cookieByName(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestAuthHandlers_Login_RedirectsToProvider(t *testing.T) {
	h := newAuthHandlers(mockauth.NewMockLoginProvider())

	rec := httptest.NewRecorder()
	h.Login(rec, httptest.NewRequest(http.MethodGet, "/auth/login?callbackUrl=/onboarding", nil))

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Contains(t, rec.Header().Get("Location"), "https://mock-idp/auth")

	state := cookieByName(t, rec, "oauth_state")
	require.NotNil(t, state)
	assert.NotEmpty(t, state.Value)
	assert.True(t, state.HttpOnly)

	nonce := cookieByName(t, rec, "oauth_nonce")
	require.NotNil(t, nonce)
	assert.NotEmpty(t, nonce.Value)

	redirect := cookieByName(t, rec, "oauth_redirect")
	require.NotNil(t, redirect)
	assert.Equal(t, "/onboarding", redirect.Value)
}

func TestAuthHandlers_Login_RejectsOffSiteCallback(t *testing.T) {
	h := newAuthHandlers(mockauth.NewMockLoginProvider())

	rec := httptest.NewRecorder()
	h.Login(rec, httptest.NewRequest(http.MethodGet, "/auth/login?callbackUrl=https://evil.example.com/", nil))

	require.Equal(t, http.StatusFound, rec.Code)
	redirect := cookieByName(t, rec, "oauth_redirect")
	require.NotNil(t, redirect)
	assert.Equal(t, "/", redirect.Value)
}

func TestAuthHandlers_Callback_SetsCredentialCookie(t *testing.T) {
	provider := mockauth.NewMockLoginProvider()
	provider.DefaultUser = domainauth.Identity{ID: "user-7", Email: "x@example.com", Role: domainauth.RoleEntrepreneur}
	h := newAuthHandlers(provider)

	req := httptest.NewRequest(http.MethodGet, "/auth/callback?code=c1&state=s1", nil)
	req.AddCookie(&http.Cookie{Name: "oauth_state", Value: "s1"})
	req.AddCookie(&http.Cookie{Name: "oauth_nonce", Value: "n1"})
	req.AddCookie(&http.Cookie{Name: "oauth_redirect", Value: "/onboarding"})
	rec := httptest.NewRecorder()
	h.Callback(rec, req)

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/onboarding", rec.Header().Get("Location"))

	cred := cookieByName(t, rec, testCookieName)
	require.NotNil(t, cred)
	assert.Equal(t, "cred-user-7", cred.Value)
	assert.True(t, cred.HttpOnly)

	// Temporary OAuth cookies are cleared.
	state := cookieByName(t, rec, "oauth_state")
	require.NotNil(t, state)
	assert.Empty(t, state.Value)
	assert.Negative(t, state.MaxAge)
}

func TestAuthHandlers_Callback_StateMismatch(t *testing.T) {
	h := newAuthHandlers(mockauth.NewMockLoginProvider())

	req := httptest.NewRequest(http.MethodGet, "/auth/callback?code=c1&state=s1", nil)
	req.AddCookie(&http.Cookie{Name: "oauth_state", Value: "different"})
	req.AddCookie(&http.Cookie{Name: "oauth_nonce", Value: "n1"})
	rec := httptest.NewRecorder()
	h.Callback(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, cookieByName(t, rec, testCookieName))
}

func TestAuthHandlers_Callback_MissingParams(t *testing.T) {
	h := newAuthHandlers(mockauth.NewMockLoginProvider())

	tests := []struct {
		name   string
		target string
	}{
		{"missing code", "/auth/callback?state=s1"},
		{"missing state", "/auth/callback?code=c1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.Callback(rec, httptest.NewRequest(http.MethodGet, tt.target, nil))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestAuthHandlers_Logout_ClearsCredential(t *testing.T) {
	h := newAuthHandlers(mockauth.NewMockLoginProvider())

	req := httptest.NewRequest(http.MethodPost, "/auth/logout?callbackUrl=/programs", nil)
	req.AddCookie(&http.Cookie{Name: testCookieName, Value: "cred-user-7"})
	rec := httptest.NewRecorder()
	h.Logout(rec, req)

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/programs", rec.Header().Get("Location"))

	cred := cookieByName(t, rec, testCookieName)
	require.NotNil(t, cred)
	assert.Empty(t, cred.Value)
	assert.Negative(t, cred.MaxAge)
}

func TestAuthHandlers_RoleCheck(t *testing.T) {
	h := newAuthHandlers(mockauth.NewMockLoginProvider())

	asRole := func(role domainauth.Role) *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/api/auth/role-check?role=admin", nil)
		if role != "" {
			req = req.WithContext(SetIdentityInContext(req.Context(), &domainauth.Identity{
				ID: "user-1", Email: "x@example.com", Role: role,
			}))
		}
		return req
	}

	rec := httptest.NewRecorder()
	h.RoleCheck(rec, asRole(domainauth.RoleAdmin))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"is_authorized":true`)
	assert.Contains(t, rec.Body.String(), `"is_loading":false`)

	rec = httptest.NewRecorder()
	h.RoleCheck(rec, asRole(domainauth.RoleEntrepreneur))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"is_authorized":false`)

	// Anonymous caller
	rec = httptest.NewRecorder()
	h.RoleCheck(rec, asRole(""))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"is_authorized":false`)

	// Unknown role
	rec = httptest.NewRecorder()
	h.RoleCheck(rec, httptest.NewRequest(http.MethodGet, "/api/auth/role-check?role=wizard", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthHandlers_Status(t *testing.T) {
	h := newAuthHandlers(mockauth.NewMockLoginProvider())

	// Anonymous
	rec := httptest.NewRecorder()
	h.Status(rec, httptest.NewRequest(http.MethodGet, "/auth/status", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"authenticated":false`)

	// Authenticated
	req := httptest.NewRequest(http.MethodGet, "/auth/status", nil)
	req = req.WithContext(SetIdentityInContext(req.Context(), &domainauth.Identity{
		ID: "user-7", Email: "x@example.com", Role: domainauth.RoleAdmin,
	}))
	rec = httptest.NewRecorder()
	h.Status(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"authenticated":true`)
	assert.Contains(t, rec.Body.String(), `"user-7"`)
}
