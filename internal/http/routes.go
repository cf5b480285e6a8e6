package httpx

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/launchpath/lp-gateway/internal/ports"
	"github.com/launchpath/lp-gateway/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Auth     *service.AuthService
	Identity *service.IdentityService
	Workflow *service.WorkflowStateService
	Analysis *service.ApplicationAnalysisService
	Cache    ports.CacheRepository
	// Cookie settings shared with the gateway middleware.
	CookieName   string
	CookieDomain string
	CookieTTL    time.Duration
	Logger       *slog.Logger
}

// NewRouter creates and configures the HTTP router. Access control happens in
// the Gateway middleware before requests reach these handlers; the router
// only wires endpoints.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	// API routes bypass the page gateway, so they resolve the caller
	// themselves via OptionalAuth.
	withAuth := func(h http.Handler) http.Handler { return h }
	if services.Identity != nil {
		withAuth = OptionalAuth(services.Identity, services.CookieName)
	}

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("GET /readyz", readyHandler(services.Cache))

	if services.Auth != nil {
		authHandlers := &AuthHandlers{
			Svc:          services.Auth,
			CookieName:   services.CookieName,
			CookieDomain: services.CookieDomain,
			CookieTTL:    services.CookieTTL,
			Logger:       services.Logger,
		}
		registerAuthRoutes(mux, authHandlers, withAuth)
	}

	if services.Workflow != nil {
		workflowHandlers := &WorkflowHandlers{Svc: services.Workflow, Logger: services.Logger}
		registerWorkflowRoutes(mux, workflowHandlers, withAuth)
	}

	if services.Analysis != nil {
		analysisHandlers := NewAnalysisHandlers(services.Analysis)
		mux.Handle("GET /api/applications/{id}/analysis", withAuth(http.HandlerFunc(analysisHandlers.GetApplicationAnalysis)))
	}

	return mux
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers, withAuth func(http.Handler) http.Handler) {
	mux.Handle("GET /auth/login", http.HandlerFunc(h.Login))
	mux.Handle("GET /auth/callback", http.HandlerFunc(h.Callback))
	mux.Handle("POST /auth/logout", http.HandlerFunc(h.Logout))
	mux.Handle("GET /auth/status", withAuth(http.HandlerFunc(h.Status)))
	mux.Handle("GET /api/auth/role-check", withAuth(http.HandlerFunc(h.RoleCheck)))
}

func registerWorkflowRoutes(mux *http.ServeMux, h *WorkflowHandlers, withAuth func(http.Handler) http.Handler) {
	mux.Handle("PUT /api/workflow/onboarding-step", withAuth(http.HandlerFunc(h.PutOnboardingStep)))
	mux.Handle("GET /api/workflow/onboarding-step", withAuth(http.HandlerFunc(h.GetOnboardingStep)))
	mux.Handle("POST /api/workflow/join-intent", withAuth(http.HandlerFunc(h.PostProgramJoinIntent)))
	mux.Handle("GET /api/workflow/join-intent", withAuth(http.HandlerFunc(h.GetProgramJoinIntent)))
	mux.Handle("POST /api/workflow/session-destination", http.HandlerFunc(h.PostSessionDestination))
	mux.Handle("GET /api/workflow/session-destination/{id}", http.HandlerFunc(h.GetSessionDestination))
}
