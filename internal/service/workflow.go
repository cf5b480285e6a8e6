package service

import (
	"context"
	"fmt"
	"strings"

	apperrors "github.com/launchpath/lp-gateway/internal/errors"
	"github.com/launchpath/lp-gateway/internal/ports"
)

// Cache namespaces. Keys are "<namespace>:<entityId>"; entity ids must not
// contain the delimiter or keys could collide across namespaces, so the
// service rejects them up front instead of leaving the invariant to callers.
const (
	nsOnboardingStep      = "onboarding-step"
	nsProgramJoinAttempt  = "program-join-attempt"
	nsUniqueSessionID     = "unique-session-id"
	nsApplicationAnalysis = "ai-application-analysis"
)

const keyDelimiter = ":"

// WorkflowStateService persists short-lived per-user workflow state in the
// namespaced cache: onboarding progress, intent-to-join markers,
// session-to-destination mappings, and computed analysis results. Entries
// carry no TTL; they live until overwritten.
//
// Writes are last-write-wins with no conflict resolution; that is acceptable
// for workflow markers but callers on the request path must treat failures as
// best-effort rather than fatal.
type WorkflowStateService struct {
	cache ports.CacheRepository
}

// NewWorkflowStateService constructs a new WorkflowStateService.
func NewWorkflowStateService(cache ports.CacheRepository) *WorkflowStateService {
	return &WorkflowStateService{cache: cache}
}

// SetOnboardingStep records the step a user has reached in onboarding.
func (s *WorkflowStateService) SetOnboardingStep(ctx context.Context, userID, step string) error {
	return s.set(ctx, nsOnboardingStep, userID, step)
}

// GetOnboardingStep returns the recorded onboarding step for a user.
func (s *WorkflowStateService) GetOnboardingStep(ctx context.Context, userID string) (string, bool, error) {
	return s.get(ctx, nsOnboardingStep, userID)
}

// SetProgramJoinIntent records which program a user intends to join.
func (s *WorkflowStateService) SetProgramJoinIntent(ctx context.Context, userID, programID string) error {
	return s.set(ctx, nsProgramJoinAttempt, userID, programID)
}

// GetProgramJoinIntent returns the program a user intends to join.
func (s *WorkflowStateService) GetProgramJoinIntent(ctx context.Context, userID string) (string, bool, error) {
	return s.get(ctx, nsProgramJoinAttempt, userID)
}

// SetSessionDestination maps an opaque session ID to the URL the user should
// land on after completing a flow.
func (s *WorkflowStateService) SetSessionDestination(ctx context.Context, sessionID, nextURL string) error {
	return s.set(ctx, nsUniqueSessionID, sessionID, nextURL)
}

// GetSessionDestination returns the destination URL mapped to a session ID.
func (s *WorkflowStateService) GetSessionDestination(ctx context.Context, sessionID string) (string, bool, error) {
	return s.get(ctx, nsUniqueSessionID, sessionID)
}

// SetApplicationAnalysis stores the computed analysis for an application.
func (s *WorkflowStateService) SetApplicationAnalysis(ctx context.Context, applicationID, analysis string) error {
	return s.set(ctx, nsApplicationAnalysis, applicationID, analysis)
}

// GetApplicationAnalysis returns the stored analysis for an application.
func (s *WorkflowStateService) GetApplicationAnalysis(ctx context.Context, applicationID string) (string, bool, error) {
	return s.get(ctx, nsApplicationAnalysis, applicationID)
}

func (s *WorkflowStateService) set(ctx context.Context, namespace, entityID, value string) error {
	key, err := cacheKey(namespace, entityID)
	if err != nil {
		return err
	}
	if err := s.cache.Set(ctx, key, []byte(value), 0); err != nil {
		return fmt.Errorf("set %s: %w", namespace, err)
	}
	return nil
}

func (s *WorkflowStateService) get(ctx context.Context, namespace, entityID string) (string, bool, error) {
	key, err := cacheKey(namespace, entityID)
	if err != nil {
		return "", false, err
	}
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		return "", false, fmt.Errorf("get %s: %w", namespace, err)
	}
	if data == nil {
		return "", false, nil
	}
	return string(data), true, nil
}

func cacheKey(namespace, entityID string) (string, error) {
	if entityID == "" {
		return "", apperrors.Validation("entity ID is required")
	}
	if strings.Contains(entityID, keyDelimiter) {
		return "", apperrors.Validationf("entity ID %q must not contain %q", entityID, keyDelimiter)
	}
	return namespace + keyDelimiter + entityID, nil
}
