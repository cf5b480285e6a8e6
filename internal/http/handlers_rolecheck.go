package httpx

import (
	"errors"
	"net/http"

	domainauth "github.com/launchpath/lp-gateway/internal/domain/auth"
)

// RoleCheck reports whether the current caller holds the requested role.
// The frontend polls this to gate role-restricted sections without embedding
// role logic client-side.
// GET /api/auth/role-check?role=<role>.
func (h *AuthHandlers) RoleCheck(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("role")
	if raw == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "missing_role", Err: errors.New("role is required")})
		return
	}
	role, err := domainauth.ParseRole(raw)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_role", Err: err})
		return
	}

	gate := domainauth.NewGate(role)
	WriteJSON(w, http.StatusOK, gate.Observe(resolutionStatus(r)))
}

// resolutionStatus maps the request context to a gate status. By the time a
// handler runs, resolution has finished, so the phase is never loading here.
func resolutionStatus(r *http.Request) domainauth.Status {
	if identity, ok := GetIdentityFromContext(r.Context()); ok {
		return domainauth.Status{Phase: domainauth.PhaseAuthenticated, Identity: identity}
	}
	return domainauth.Status{Phase: domainauth.PhaseUnauthenticated}
}
