package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/launchpath/lp-gateway/config"
	"github.com/launchpath/lp-gateway/internal/adapters/devcred"
	"github.com/launchpath/lp-gateway/internal/adapters/jwtcred"
	"github.com/launchpath/lp-gateway/internal/adapters/oidccred"
	"github.com/launchpath/lp-gateway/internal/adapters/postgres"
	redisadapter "github.com/launchpath/lp-gateway/internal/adapters/redis"
	"github.com/launchpath/lp-gateway/internal/adapters/textgen"
	domainauth "github.com/launchpath/lp-gateway/internal/domain/auth"
	"github.com/launchpath/lp-gateway/internal/ports"
	"github.com/launchpath/lp-gateway/internal/service"
)

// ServiceDeps contains dependencies needed to construct services.
type ServiceDeps struct {
	Config      *config.AppConfig
	Pool        *pgxpool.Pool
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// ServiceContainer holds the constructed application services.
type ServiceContainer struct {
	Cache    ports.CacheRepository
	Identity *service.IdentityService
	Auth     *service.AuthService
	Workflow *service.WorkflowStateService
	Analysis *service.ApplicationAnalysisService
}

// NewServices constructs the service graph from infrastructure dependencies.
func NewServices(deps *ServiceDeps) (*ServiceContainer, error) {
	cfg := deps.Config
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	cacheRepo := redisadapter.NewCacheRepo(deps.RedisClient)
	workflow := service.NewWorkflowStateService(cacheRepo)

	codec, err := jwtcred.NewCodec(jwtcred.Config{
		Secret: []byte(cfg.Auth.CredentialSecret),
		TTL:    cfg.Auth.CredentialTTL,
	})
	if err != nil {
		return nil, fmt.Errorf("credential codec: %w", err)
	}

	provider, err := newLoginProvider(cfg)
	if err != nil {
		return nil, fmt.Errorf("login provider: %w", err)
	}

	container := &ServiceContainer{
		Cache:    cacheRepo,
		Identity: service.NewIdentityService(service.IdentityServiceOptions{Verifier: codec, Logger: logger}),
		Auth:     service.NewAuthService(service.AuthServiceOptions{Provider: provider, Issuer: codec}),
		Workflow: workflow,
	}

	if cfg.Analysis.Enabled {
		generator, gerr := textgen.NewClient(textgen.Config{
			APIKey:     cfg.Analysis.APIKey,
			Endpoint:   cfg.Analysis.Endpoint,
			Model:      cfg.Analysis.Model,
			ResultPath: cfg.Analysis.ResultPath,
		})
		if gerr != nil {
			return nil, fmt.Errorf("text generator: %w", gerr)
		}
		container.Analysis = service.NewApplicationAnalysisService(service.ApplicationAnalysisServiceOptions{
			Workflow:     workflow,
			Applications: postgres.NewApplicationRepo(deps.Pool),
			Generator:    generator,
			Logger:       logger,
		})
	}

	return container, nil
}

// newLoginProvider selects the login provider for the configured auth mode.
//
//nolint:ireturn // the provider is consumed through the LoginProvider port.
func newLoginProvider(cfg *config.AppConfig) (ports.LoginProvider, error) {
	switch cfg.Auth.Mode {
	case config.AuthModeMock:
		return devcred.NewProvider(devcred.Config{
			UserID: cfg.Auth.DevAuth.UserID,
			Email:  cfg.Auth.DevAuth.Email,
			Name:   cfg.Auth.DevAuth.Name,
			Role:   domainauth.Role(cfg.Auth.DevAuth.Role),
		})
	case config.AuthModeOIDC:
		return oidccred.NewProvider(oidccred.ProviderConfig{
			ClientID:     cfg.Auth.OIDC.ClientID,
			ClientSecret: cfg.Auth.OIDC.ClientSecret,
			RedirectURL:  cfg.Auth.OIDC.RedirectURL,
			Scope:        cfg.Auth.OIDC.Scope,
			DiscoveryURL: cfg.Auth.OIDC.DiscoveryURL,
			AdminEmails:  cfg.Auth.AdminEmails,
		})
	default:
		return nil, fmt.Errorf("unknown auth mode %q", cfg.Auth.Mode)
	}
}
