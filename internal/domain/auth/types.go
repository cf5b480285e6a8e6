package auth

// Package auth contains domain-level types for identity and authorization.
// It is pure and free of framework/adapter concerns.

import "fmt"

// Role represents an application's authorization role.
// Keep string form for easy persistence and cookies.
// Valid values are defined as constants below.
type Role string

const (
	RoleAdmin        Role = "admin"
	RoleEntrepreneur Role = "entrepreneur"
)

// ParseRole validates a raw role string against the closed enumeration.
// An empty string defaults to RoleEntrepreneur, matching credentials that
// carry no explicit role claim.
func ParseRole(raw string) (Role, error) {
	switch Role(raw) {
	case RoleAdmin, RoleEntrepreneur:
		return Role(raw), nil
	case "":
		return RoleEntrepreneur, nil
	default:
		return "", fmt.Errorf("invalid role: %q", raw)
	}
}

// Identity represents the authenticated principal derived from a verified
// credential. It is constructed once at the credential-resolution boundary
// and never re-validated downstream.
type Identity struct {
	ID                  string `json:"id"`
	Email               string `json:"email"`
	Role                Role   `json:"role"`
	DisplayName         string `json:"display_name,omitempty"`
	AvatarURL           string `json:"avatar_url,omitempty"`
	OnboardingCompleted bool   `json:"onboarding_completed,omitempty"`
}

// Validate checks the invariants an Identity must hold after resolution.
func (i Identity) Validate() error {
	if i.ID == "" {
		return fmt.Errorf("identity: ID is required")
	}
	if i.Email == "" {
		return fmt.Errorf("identity: email is required")
	}
	if _, err := ParseRole(string(i.Role)); err != nil {
		return fmt.Errorf("identity: %w", err)
	}
	return nil
}

// IsAdmin reports whether the identity carries the admin role.
func (i Identity) IsAdmin() bool { return i.Role == RoleAdmin }
