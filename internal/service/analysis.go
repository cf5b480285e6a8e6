package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/launchpath/lp-gateway/internal/domain/model"
	"github.com/launchpath/lp-gateway/internal/ports"
)

// ApplicationAnalysisServiceOptions groups dependencies for ApplicationAnalysisService.
type ApplicationAnalysisServiceOptions struct {
	Workflow     *WorkflowStateService
	Applications ports.ApplicationRepository
	Generator    ports.TextGenerator
	Logger       *slog.Logger
}

// ApplicationAnalysisService produces a text analysis of a program
// application, caching results in the workflow cache. Cache access is
// best-effort: a failed read falls through to generation and a failed write
// only loses the cached copy, never the response.
type ApplicationAnalysisService struct {
	workflow     *WorkflowStateService
	applications ports.ApplicationRepository
	generator    ports.TextGenerator
	logger       *slog.Logger
}

// NewApplicationAnalysisService constructs a new ApplicationAnalysisService.
func NewApplicationAnalysisService(opts ApplicationAnalysisServiceOptions) *ApplicationAnalysisService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &ApplicationAnalysisService{
		workflow:     opts.Workflow,
		applications: opts.Applications,
		generator:    opts.Generator,
		logger:       logger,
	}
}

// Analyze returns the analysis for an application, generating and caching it
// on first request.
func (s *ApplicationAnalysisService) Analyze(ctx context.Context, applicationID string) (string, error) {
	cached, ok, err := s.workflow.GetApplicationAnalysis(ctx, applicationID)
	if err != nil {
		s.logger.WarnContext(ctx, "analysis cache read failed", "application_id", applicationID, "error", err)
	}
	if ok {
		return cached, nil
	}

	app, err := s.applications.GetByID(ctx, applicationID)
	if err != nil {
		return "", fmt.Errorf("load application: %w", err)
	}

	analysis, err := s.generator.Generate(ctx, analysisPrompt(app))
	if err != nil {
		return "", fmt.Errorf("generate analysis: %w", err)
	}

	if err := s.workflow.SetApplicationAnalysis(ctx, applicationID, analysis); err != nil {
		s.logger.WarnContext(ctx, "analysis cache write failed", "application_id", applicationID, "error", err)
	}

	return analysis, nil
}

func analysisPrompt(app model.Application) string {
	return fmt.Sprintf(
		"Assess the following startup program application.\n\nCompany: %s\nPitch: %s\n\n"+
			"Summarize the strengths and risks in a short paragraph.",
		app.Company, app.Pitch,
	)
}
