package httpx

import (
	"context"
	"errors"
	"net/http"

	domainauth "github.com/launchpath/lp-gateway/internal/domain/auth"
)

// AnalysisServiceInterface defines the analysis operations handlers depend on.
type AnalysisServiceInterface interface {
	Analyze(ctx context.Context, applicationID string) (string, error)
}

// AnalysisHandlers provides HTTP handlers for application analysis.
// Analysis is restricted to admins; applicants should not see raw
// assessments of their own submissions.
type AnalysisHandlers struct {
	Svc  AnalysisServiceInterface
	gate *domainauth.Gate
}

// NewAnalysisHandlers constructs AnalysisHandlers with the admin gate.
func NewAnalysisHandlers(svc AnalysisServiceInterface) *AnalysisHandlers {
	return &AnalysisHandlers{Svc: svc, gate: domainauth.NewGate(domainauth.RoleAdmin)}
}

// GetApplicationAnalysis returns the analysis for an application, computing
// it on first request.
// GET /api/applications/{id}/analysis.
func (h *AnalysisHandlers) GetApplicationAnalysis(w http.ResponseWriter, r *http.Request) {
	if _, ok := GetIdentityFromContext(r.Context()); !ok {
		writeUnauthenticated(w)
		return
	}
	if state := h.gate.Observe(resolutionStatus(r)); !state.Authorized {
		WriteError(w, ErrorParams{
			Code:    http.StatusForbidden,
			ErrCode: "insufficient_permissions",
			Err:     errors.New("admin role required"),
		})
		return
	}

	applicationID := r.PathValue("id")
	if applicationID == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "missing_application_id", Err: errors.New("application ID is required")})
		return
	}

	analysis, err := h.Svc.Analyze(r.Context(), applicationID)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"application_id": applicationID, "analysis": analysis})
}
