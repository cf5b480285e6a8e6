package route

import (
	"context"
	"strings"

	domainauth "github.com/launchpath/lp-gateway/internal/domain/auth"
)

// Decision is the terminal outcome of evaluating one request against policy.
type Decision struct {
	// Allowed means the request may proceed to the downstream handler with its
	// headers unchanged.
	Allowed bool
	// RedirectTo is the target URL when Allowed is false.
	RedirectTo string
}

// Allow builds an allow-through decision.
func Allow() Decision { return Decision{Allowed: true} }

// Redirect builds a redirect decision.
func Redirect(target string) Decision { return Decision{RedirectTo: target} }

// Requirement describes what a matched route demands from the caller.
// The zero value demands nothing.
type Requirement struct {
	// Identity requires a resolved identity.
	Identity bool
	// Roles, when non-empty, requires the identity's role to be a member.
	// Implies Identity.
	Roles []domainauth.Role
	// RedirectTarget is where callers failing the requirement are sent.
	RedirectTarget string
}

// Rule binds a path prefix to a requirement. Rules are data, not branches:
// protecting another route means appending a Rule, not writing code.
type Rule struct {
	Prefix      string
	Requirement Requirement
}

// IdentityResolver lazily resolves the caller's identity. The policy invokes
// it only when a matched rule requires identity, so public routes never pay
// the verification cost. A nil identity with a nil error means anonymous;
// an error means resolution itself failed (e.g. the remote validator was
// unreachable) and must not be mistaken for "logged out".
type IdentityResolver func(ctx context.Context) (*domainauth.Identity, error)

// LoginPath is the default redirect target for routes requiring identity.
const LoginPath = "/login"

// DefaultRules returns the built-in protected route table.
func DefaultRules() []Rule {
	return []Rule{
		{Prefix: "/onboarding", Requirement: Requirement{Identity: true, RedirectTarget: LoginPath}},
	}
}

// Policy evaluates routing facts against a declarative rule table.
// It is stateless across requests; each evaluation is independent.
type Policy struct {
	rules []Rule
}

// NewPolicy creates a policy from the given rules. With no rules every
// request is allowed.
func NewPolicy(rules ...Rule) *Policy {
	return &Policy{rules: rules}
}

// Evaluate classifies a single request. The resolver is consulted at most
// once, and only for routes whose matched rule requires identity. Resolver
// errors propagate unchanged so transient verifier outages are not
// misreported as anonymous callers.
func (p *Policy) Evaluate(ctx context.Context, facts Facts, resolve IdentityResolver) (Decision, error) {
	rule, ok := p.match(facts.Path)
	if !ok {
		return Allow(), nil
	}

	req := rule.Requirement
	if !req.Identity && len(req.Roles) == 0 {
		return Allow(), nil
	}

	target := req.RedirectTarget
	if target == "" {
		target = LoginPath
	}

	if resolve == nil {
		return Redirect(target), nil
	}
	identity, err := resolve(ctx)
	if err != nil {
		return Decision{}, err
	}
	if identity == nil {
		return Redirect(target), nil
	}
	if len(req.Roles) > 0 && !roleMember(identity.Role, req.Roles) {
		return Redirect(target), nil
	}
	return Allow(), nil
}

func (p *Policy) match(path string) (Rule, bool) {
	for _, r := range p.rules {
		if pathHasPrefix(path, r.Prefix) {
			return r, true
		}
	}
	return Rule{}, false
}

// pathHasPrefix matches on segment boundaries: "/onboarding" matches
// "/onboarding" and "/onboarding/team" but not "/onboardingx".
func pathHasPrefix(path, prefix string) bool {
	if !strings.HasPrefix(path, prefix) {
		return false
	}
	rest := path[len(prefix):]
	return rest == "" || strings.HasPrefix(rest, "/")
}

func roleMember(role domainauth.Role, roles []domainauth.Role) bool {
	for _, r := range roles {
		if role == r {
			return true
		}
	}
	return false
}

// Bypass describes URL patterns excluded from the gateway entirely: the
// request reaches its handler without facts extraction or policy evaluation.
type Bypass struct {
	prefixes []string
	exact    map[string]struct{}
}

// NewBypass creates a bypass matcher from path prefixes (without leading
// separator) and exact file names.
func NewBypass(prefixes []string, exact []string) Bypass {
	b := Bypass{
		prefixes: append([]string(nil), prefixes...),
		exact:    make(map[string]struct{}, len(exact)),
	}
	for _, e := range exact {
		b.exact[e] = struct{}{}
	}
	return b
}

// DefaultBypass returns the standard exclusion set: API routes, internal
// framework routes, proxy routes, and well-known static metadata files.
func DefaultBypass() Bypass {
	return NewBypass(
		[]string{"api/", "_next/", "_proxy/"},
		[]string{"favicon.ico", "sitemap.xml", "robots.txt", "manifest.webmanifest"},
	)
}

// Match reports whether the given request path is excluded from the gateway.
func (b Bypass) Match(path string) bool {
	trimmed := strings.TrimPrefix(path, "/")
	if _, ok := b.exact[trimmed]; ok {
		return true
	}
	for _, p := range b.prefixes {
		if strings.HasPrefix(trimmed, p) {
			return true
		}
	}
	return false
}
