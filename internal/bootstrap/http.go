package bootstrap

import (
	"context"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/launchpath/lp-gateway/config"
	"github.com/launchpath/lp-gateway/internal/domain/route"
	httpx "github.com/launchpath/lp-gateway/internal/http"
)

// HTTPServerConfig contains configuration for HTTP server.
type HTTPServerConfig struct {
	Config   *config.AppConfig
	Services *ServiceContainer
	Logger   *slog.Logger
}

// BuildHTTPHandler assembles the full request chain.
// Order: Recover -> Logging -> Gateway -> Router.
func BuildHTTPHandler(cfg *HTTPServerConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	appCfg := cfg.Config
	services := cfg.Services

	router := httpx.NewRouter(httpx.RouterServices{
		Auth:         services.Auth,
		Identity:     services.Identity,
		Workflow:     services.Workflow,
		Analysis:     services.Analysis,
		Cache:        services.Cache,
		CookieName:   appCfg.Auth.CookieName,
		CookieDomain: appCfg.HTTP.CookieDomain,
		CookieTTL:    appCfg.Auth.CredentialTTL,
		Logger:       logger,
	})

	h := httpx.Gateway(httpx.GatewayOptions{
		Identity:   services.Identity,
		Policy:     route.NewPolicy(route.DefaultRules()...),
		Bypass:     route.DefaultBypass(),
		CookieName: appCfg.Auth.CookieName,
		Logger:     logger,
	})(router)
	h = httpx.Logging(logger)(h)
	h = httpx.Recover(logger)(h)

	return h
}

// RunHTTPServer starts the HTTP server and blocks until the context is
// canceled or the server fails, then shuts down gracefully.
func RunHTTPServer(ctx context.Context, cfg *HTTPServerConfig) error {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	addr := cfg.Config.HTTP.Addr
	if addr == "" {
		addr = ":8080"
	}

	server := &http.Server{
		Addr:         addr,
		Handler:      BuildHTTPHandler(cfg),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("HTTP server stopped")
	return nil
}
