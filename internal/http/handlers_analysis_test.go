package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	domainauth "github.com/launchpath/lp-gateway/internal/domain/auth"
	apperrors "github.com/launchpath/lp-gateway/internal/errors"
)

type stubAnalysisService func(ctx context.Context, applicationID string) (string, error)

func (f stubAnalysisService) Analyze(ctx context.Context, applicationID string) (string, error) {
	return f(ctx, applicationID)
}

func analysisRequest(identity *domainauth.Identity) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/applications/app-1/analysis", nil)
	req.SetPathValue("id", "app-1")
	if identity != nil {
		req = req.WithContext(SetIdentityInContext(req.Context(), identity))
	}
	return req
}

func TestAnalysisHandlers_AdminGetsAnalysis(t *testing.T) {
	h := NewAnalysisHandlers(stubAnalysisService(func(_ context.Context, id string) (string, error) {
		assert.Equal(t, "app-1", id)
		return "promising team", nil
	}))

	rec := httptest.NewRecorder()
	h.GetApplicationAnalysis(rec, analysisRequest(&domainauth.Identity{ID: "admin-1", Role: domainauth.RoleAdmin}))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "promising team")
}

func TestAnalysisHandlers_EntrepreneurForbidden(t *testing.T) {
	h := NewAnalysisHandlers(stubAnalysisService(func(context.Context, string) (string, error) {
		t.Fatal("service must not be called")
		return "", nil
	}))

	rec := httptest.NewRecorder()
	h.GetApplicationAnalysis(rec, analysisRequest(&domainauth.Identity{ID: "user-1", Role: domainauth.RoleEntrepreneur}))

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAnalysisHandlers_AnonymousUnauthorized(t *testing.T) {
	h := NewAnalysisHandlers(stubAnalysisService(func(context.Context, string) (string, error) {
		t.Fatal("service must not be called")
		return "", nil
	}))

	rec := httptest.NewRecorder()
	h.GetApplicationAnalysis(rec, analysisRequest(nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAnalysisHandlers_ServiceErrorsMapped(t *testing.T) {
	h := NewAnalysisHandlers(stubAnalysisService(func(context.Context, string) (string, error) {
		return "", apperrors.NotFound("application not found")
	}))

	rec := httptest.NewRecorder()
	h.GetApplicationAnalysis(rec, analysisRequest(&domainauth.Identity{ID: "admin-1", Role: domainauth.RoleAdmin}))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
