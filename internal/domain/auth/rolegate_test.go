package auth

import "testing"

func TestGate_LoadingBeforeFirstStatus(t *testing.T) {
	g := NewGate(RoleAdmin)
	state := g.State()
	if state.Authorized || !state.Loading {
		t.Fatalf("expected loading state, got %+v", state)
	}
}

func TestGate_LoadingPhase(t *testing.T) {
	g := NewGate(RoleAdmin)
	state := g.Observe(Status{Phase: PhaseLoading})
	if state.Authorized || !state.Loading {
		t.Fatalf("expected loading state, got %+v", state)
	}
}

func TestGate_AuthenticatedMatchingRole(t *testing.T) {
	g := NewGate(RoleAdmin)
	state := g.Observe(Status{
		Phase:    PhaseAuthenticated,
		Identity: &Identity{ID: "u1", Email: "e", Role: RoleAdmin},
	})
	if !state.Authorized || state.Loading {
		t.Fatalf("expected authorized state, got %+v", state)
	}
}

func TestGate_AuthenticatedWrongRole(t *testing.T) {
	g := NewGate(RoleAdmin)
	state := g.Observe(Status{
		Phase:    PhaseAuthenticated,
		Identity: &Identity{ID: "u1", Email: "e", Role: RoleEntrepreneur},
	})
	if state.Authorized || state.Loading {
		t.Fatalf("expected unauthorized resolved state, got %+v", state)
	}
}

func TestGate_Unauthenticated(t *testing.T) {
	g := NewGate(RoleAdmin, RoleEntrepreneur)
	state := g.Observe(Status{Phase: PhaseUnauthenticated})
	if state.Authorized || state.Loading {
		t.Fatalf("expected unauthorized resolved state, got %+v", state)
	}
}

func TestGate_RoleSet(t *testing.T) {
	g := NewGate(RoleAdmin, RoleEntrepreneur)
	state := g.Observe(Status{
		Phase:    PhaseAuthenticated,
		Identity: &Identity{ID: "u1", Email: "e", Role: RoleEntrepreneur},
	})
	if !state.Authorized {
		t.Fatalf("expected membership in role set, got %+v", state)
	}
}

func TestGate_SetRequiredReevaluates(t *testing.T) {
	g := NewGate(RoleAdmin)
	g.Observe(Status{
		Phase:    PhaseAuthenticated,
		Identity: &Identity{ID: "u1", Email: "e", Role: RoleEntrepreneur},
	})
	if g.State().Authorized {
		t.Fatalf("expected unauthorized before requirement change")
	}

	// Changing the requirement re-runs the check against the last status.
	g.SetRequired(RoleEntrepreneur)
	if !g.State().Authorized {
		t.Fatalf("expected authorized after requirement change")
	}
}

func TestGate_AuthenticatedWithoutIdentity(t *testing.T) {
	g := NewGate(RoleAdmin)
	state := g.Observe(Status{Phase: PhaseAuthenticated})
	if state.Authorized || state.Loading {
		t.Fatalf("expected unauthorized resolved state, got %+v", state)
	}
}
