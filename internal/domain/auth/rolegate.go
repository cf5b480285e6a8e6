package auth

import "sync"

// ResolutionPhase describes where identity resolution currently stands for a
// consumer observing it asynchronously.
type ResolutionPhase int

const (
	// PhaseLoading means resolution is still pending.
	PhaseLoading ResolutionPhase = iota
	// PhaseAuthenticated means resolution finished with an identity.
	PhaseAuthenticated
	// PhaseUnauthenticated means resolution finished without an identity.
	PhaseUnauthenticated
)

// Status is a snapshot of identity resolution fed into a Gate.
// Identity is only meaningful when Phase is PhaseAuthenticated.
type Status struct {
	Phase    ResolutionPhase
	Identity *Identity
}

// CheckState is the observable output of a Gate.
// Consumers must check Loading before trusting Authorized.
type CheckState struct {
	Authorized bool `json:"is_authorized"`
	Loading    bool `json:"is_loading"`
}

// Gate is a reusable role predicate: given a required role set and a stream of
// resolution status updates, it maintains the derived CheckState. It never
// reports authorized while resolution is pending, so consumers cannot observe
// a flicker from authorized to unauthorized.
type Gate struct {
	mu       sync.RWMutex
	required map[Role]struct{}
	last     Status
	state    CheckState
}

// NewGate creates a Gate requiring any of the given roles. A single role is
// treated as a one-element set.
func NewGate(required ...Role) *Gate {
	g := &Gate{}
	g.SetRequired(required...)
	return g
}

// SetRequired replaces the required role set and re-evaluates against the most
// recent status.
func (g *Gate) SetRequired(required ...Role) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.required = make(map[Role]struct{}, len(required))
	for _, r := range required {
		g.required[r] = struct{}{}
	}
	g.state = g.evaluate(g.last)
}

// Observe records a resolution status update and returns the derived state.
func (g *Gate) Observe(s Status) CheckState {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.last = s
	g.state = g.evaluate(s)
	return g.state
}

// State returns the current derived state.
func (g *Gate) State() CheckState {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.state
}

func (g *Gate) evaluate(s Status) CheckState {
	switch s.Phase {
	case PhaseAuthenticated:
		if s.Identity == nil {
			return CheckState{Authorized: false, Loading: false}
		}
		_, ok := g.required[s.Identity.Role]
		return CheckState{Authorized: ok, Loading: false}
	case PhaseUnauthenticated:
		return CheckState{Authorized: false, Loading: false}
	case PhaseLoading:
		return CheckState{Authorized: false, Loading: true}
	default:
		return CheckState{Authorized: false, Loading: true}
	}
}
