package config

import (
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
)

func TestAuthMode_UnmarshalText(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		expected    AuthMode
		expectError bool
	}{
		{name: "oidc", input: "oidc", expected: AuthModeOIDC},
		{name: "mock", input: "mock", expected: AuthModeMock},
		{name: "uppercase", input: "OIDC", expected: AuthModeOIDC},
		{name: "invalid", input: "saml", expectError: true},
		{name: "empty", input: "", expectError: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var mode AuthMode
			err := mode.UnmarshalText([]byte(tt.input))
			if tt.expectError {
				if err == nil {
					t.Fatalf("expected error for %q, got mode %q", tt.input, mode)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if mode != tt.expected {
				t.Fatalf("expected %q, got %q", tt.expected, mode)
			}
		})
	}
}

func TestAppConfig_Defaults(t *testing.T) {
	t.Setenv("CREDENTIAL_SECRET", "test-secret")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	cfg.Sanitize()

	if cfg.HTTP.Addr != ":8080" {
		t.Errorf("expected default addr :8080, got %q", cfg.HTTP.Addr)
	}
	if cfg.Auth.Mode != AuthModeOIDC {
		t.Errorf("expected default auth mode oidc, got %q", cfg.Auth.Mode)
	}
	if cfg.Auth.CookieName != "lp_session" {
		t.Errorf("expected default cookie name lp_session, got %q", cfg.Auth.CookieName)
	}
	if cfg.Auth.CredentialTTL != 720*time.Hour {
		t.Errorf("expected default credential TTL 720h, got %s", cfg.Auth.CredentialTTL)
	}
	if cfg.Redis.Addr != "localhost:6379" {
		t.Errorf("expected default redis addr localhost:6379, got %q", cfg.Redis.Addr)
	}
	if cfg.Analysis.Enabled {
		t.Error("analysis should be disabled by default")
	}
}

func TestAppConfig_RequiresCredentialSecret(t *testing.T) {
	var cfg AppConfig
	if err := env.Parse(&cfg); err == nil {
		t.Fatal("expected error when CREDENTIAL_SECRET is unset")
	}
}

func TestAppConfig_AdminEmails(t *testing.T) {
	t.Setenv("CREDENTIAL_SECRET", "test-secret")
	t.Setenv("ADMIN_EMAILS", "ops@launchpath.io;ceo@launchpath.io")

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if len(cfg.Auth.AdminEmails) != 2 {
		t.Fatalf("expected 2 admin emails, got %d", len(cfg.Auth.AdminEmails))
	}
}

func TestAuthConfig_SanitizeGuardrails(t *testing.T) {
	a := AuthConfig{CredentialTTL: -time.Hour}
	a.Sanitize()
	if a.CookieName != "lp_session" {
		t.Errorf("expected cookie name fallback, got %q", a.CookieName)
	}
	if a.CredentialTTL != 720*time.Hour {
		t.Errorf("expected TTL fallback, got %s", a.CredentialTTL)
	}
}
