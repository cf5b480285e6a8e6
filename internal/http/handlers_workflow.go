package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
)

// WorkflowServiceInterface defines the workflow state operations handlers depend on.
type WorkflowServiceInterface interface {
	SetOnboardingStep(ctx context.Context, userID, step string) error
	GetOnboardingStep(ctx context.Context, userID string) (string, bool, error)
	SetProgramJoinIntent(ctx context.Context, userID, programID string) error
	GetProgramJoinIntent(ctx context.Context, userID string) (string, bool, error)
	SetSessionDestination(ctx context.Context, sessionID, nextURL string) error
	GetSessionDestination(ctx context.Context, sessionID string) (string, bool, error)
}

// WorkflowHandlers provides HTTP handlers for per-user workflow state.
// Endpoints that read or write state keyed by user require an authenticated
// identity in the request context; the gateway middleware put it there.
type WorkflowHandlers struct {
	Svc    WorkflowServiceInterface
	Logger *slog.Logger
}

// OnboardingStepRequest is the body for updating onboarding progress.
type OnboardingStepRequest struct {
	Step string `json:"step"`
}

// PutOnboardingStep records the step the caller has reached in onboarding.
// PUT /api/workflow/onboarding-step.
func (h *WorkflowHandlers) PutOnboardingStep(w http.ResponseWriter, r *http.Request) {
	identity, ok := GetIdentityFromContext(r.Context())
	if !ok {
		writeUnauthenticated(w)
		return
	}

	var req OnboardingStepRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if req.Step == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "missing_step", Err: errors.New("step is required")})
		return
	}

	if err := h.Svc.SetOnboardingStep(r.Context(), identity.ID, req.Step); err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"step": req.Step})
}

// GetOnboardingStep returns the caller's recorded onboarding step.
// GET /api/workflow/onboarding-step.
func (h *WorkflowHandlers) GetOnboardingStep(w http.ResponseWriter, r *http.Request) {
	identity, ok := GetIdentityFromContext(r.Context())
	if !ok {
		writeUnauthenticated(w)
		return
	}

	step, found, err := h.Svc.GetOnboardingStep(r.Context(), identity.ID)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	if !found {
		WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "not_found", Err: errors.New("no onboarding step recorded")})
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"step": step})
}

// ProgramJoinRequest is the body for recording intent to join a program.
type ProgramJoinRequest struct {
	ProgramID string `json:"program_id"`
}

// PostProgramJoinIntent records which program the caller intends to join.
// POST /api/workflow/join-intent.
func (h *WorkflowHandlers) PostProgramJoinIntent(w http.ResponseWriter, r *http.Request) {
	identity, ok := GetIdentityFromContext(r.Context())
	if !ok {
		writeUnauthenticated(w)
		return
	}

	var req ProgramJoinRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if req.ProgramID == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "missing_program_id", Err: errors.New("program_id is required")})
		return
	}

	if err := h.Svc.SetProgramJoinIntent(r.Context(), identity.ID, req.ProgramID); err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"program_id": req.ProgramID})
}

// GetProgramJoinIntent returns the program the caller intends to join.
// GET /api/workflow/join-intent.
func (h *WorkflowHandlers) GetProgramJoinIntent(w http.ResponseWriter, r *http.Request) {
	identity, ok := GetIdentityFromContext(r.Context())
	if !ok {
		writeUnauthenticated(w)
		return
	}

	programID, found, err := h.Svc.GetProgramJoinIntent(r.Context(), identity.ID)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	if !found {
		WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "not_found", Err: errors.New("no join intent recorded")})
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"program_id": programID})
}

// SessionDestinationRequest is the body for creating a session destination mapping.
type SessionDestinationRequest struct {
	NextURL string `json:"next_url"`
}

// PostSessionDestination mints an opaque session ID mapped to a destination
// URL. The ID is handed to an external flow and redeemed once the user
// returns. Anonymous callers may create mappings; the ID itself is the
// capability.
// POST /api/workflow/session-destination.
func (h *WorkflowHandlers) PostSessionDestination(w http.ResponseWriter, r *http.Request) {
	var req SessionDestinationRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if req.NextURL == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "missing_next_url", Err: errors.New("next_url is required")})
		return
	}

	sessionID := uuid.NewString()
	if err := h.Svc.SetSessionDestination(r.Context(), sessionID, req.NextURL); err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, map[string]string{"session_id": sessionID})
}

// GetSessionDestination redeems a session ID for its destination URL.
// GET /api/workflow/session-destination/{id}.
func (h *WorkflowHandlers) GetSessionDestination(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")
	if sessionID == "" {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "missing_session_id", Err: errors.New("session ID is required")})
		return
	}

	nextURL, found, err := h.Svc.GetSessionDestination(r.Context(), sessionID)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	if !found {
		WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "not_found", Err: errors.New("unknown session ID")})
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"next_url": nextURL})
}

func writeUnauthenticated(w http.ResponseWriter) {
	WriteError(w, ErrorParams{
		Code:    http.StatusUnauthorized,
		ErrCode: "authentication_required",
		Err:     errors.New("authentication required"),
	})
}
