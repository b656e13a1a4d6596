package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/munidigital/portalctl/internal/session"
)

func TestStateFor(t *testing.T) {
	tests := []struct {
		name      string
		sess      session.Session
		hydrating bool
		expected  State
	}{
		{
			name:      "hydration in progress",
			sess:      session.Session{},
			hydrating: true,
			expected:  StateLoading,
		},
		{
			name:     "empty session",
			sess:     session.Session{},
			expected: StateUnauthenticated,
		},
		{
			name:     "authenticated non-admin",
			sess:     session.Session{IsAuth: true, User: &session.User{ID: 1, Username: "bob"}},
			expected: StateUser,
		},
		{
			name:     "authenticated admin",
			sess:     session.Session{IsAuth: true, IsAdmin: true, User: &session.User{ID: 2, Username: "root"}},
			expected: StateAdmin,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StateFor(tt.sess, tt.hydrating))
		})
	}
}

func TestResolveIn(t *testing.T) {
	tests := []struct {
		name     string
		state    State
		path     string
		expected Outcome
	}{
		// Unauthenticated tree
		{"home is public", StateUnauthenticated, "/", OutcomeAllowed},
		{"login reachable when logged out", StateUnauthenticated, "/login", OutcomeAllowed},
		{"registration reachable when logged out", StateUnauthenticated, "/register", OutcomeAllowed},
		{"recovery reachable when logged out", StateUnauthenticated, "/recover-account", OutcomeAllowed},
		{"credit titles are public", StateUnauthenticated, "/credit-titles", OutcomeAllowed},
		{"credit title pages are public", StateUnauthenticated, "/credit-titles/page/3", OutcomeAllowed},
		{"user list needs a session", StateUnauthenticated, "/users", OutcomeNotFound},
		{"admin route hidden when logged out", StateUnauthenticated, "/users/selectRegister", OutcomeNotFound},
		{"terms management hidden when logged out", StateUnauthenticated, "/terms", OutcomeNotFound},
		{"unknown path", StateUnauthenticated, "/no/such/page", OutcomeNotFound},

		// Authenticated non-admin tree
		{"user list reachable", StateUser, "/users", OutcomeAllowed},
		{"user list pages reachable", StateUser, "/users/page/2", OutcomeAllowed},
		{"login unmounted once authenticated", StateUser, "/login", OutcomeNotFound},
		{"recovery unmounted once authenticated", StateUser, "/recover-account", OutcomeNotFound},
		{"select register hidden from non-admin", StateUser, "/users/selectRegister", OutcomeNotFound},
		{"user edit hidden from non-admin", StateUser, "/users/edit/5", OutcomeNotFound},
		{"terms management hidden from non-admin", StateUser, "/terms", OutcomeNotFound},
		{"credit titles still reachable", StateUser, "/credit-titles", OutcomeAllowed},

		// Admin tree
		{"select register visible to admin", StateAdmin, "/users/selectRegister", OutcomeAllowed},
		{"user edit visible to admin", StateAdmin, "/users/edit/5", OutcomeAllowed},
		{"terms management visible to admin", StateAdmin, "/terms", OutcomeAllowed},
		{"taxpayer pages visible to admin", StateAdmin, "/taxpayers/page/0", OutcomeAllowed},
		{"login unmounted for admin too", StateAdmin, "/login", OutcomeNotFound},
		{"unknown path for admin", StateAdmin, "/does-not-exist", OutcomeNotFound},

		// Loading
		{"everything pending while loading", StateLoading, "/users", OutcomePending},
		{"even public routes pending while loading", StateLoading, "/", OutcomePending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ResolveIn(tt.state, tt.path))
		})
	}
}

func TestResolveIn_TrailingSlash(t *testing.T) {
	assert.Equal(t, OutcomeAllowed, ResolveIn(StateUser, "/users/"))
	assert.Equal(t, OutcomeAllowed, ResolveIn(StateUnauthenticated, "/credit-titles/page/1/"))
}

func TestGate_FollowsSessionTransitions(t *testing.T) {
	store, err := session.NewStore(t.TempDir())
	require.NoError(t, err)

	gate := New(store)

	// Unauthenticated: admin route unreachable.
	assert.Equal(t, StateUnauthenticated, gate.State())
	assert.Equal(t, OutcomeNotFound, gate.Resolve("/users/selectRegister"))

	// Non-admin login: still unreachable.
	require.NoError(t, store.SetAuthenticated(session.User{ID: 1, Username: "bob"}, false, "tok"))
	assert.Equal(t, StateUser, gate.State())
	assert.Equal(t, OutcomeNotFound, gate.Resolve("/users/selectRegister"))
	assert.Equal(t, OutcomeAllowed, gate.Resolve("/users"))

	// Admin login: reachable.
	require.NoError(t, store.SetAuthenticated(session.User{ID: 2, Username: "root"}, true, "tok"))
	assert.Equal(t, StateAdmin, gate.State())
	assert.Equal(t, OutcomeAllowed, gate.Resolve("/users/selectRegister"))

	// Logout drops back to the unauthenticated tree.
	require.NoError(t, store.Clear())
	assert.Equal(t, StateUnauthenticated, gate.State())
	assert.Equal(t, OutcomeNotFound, gate.Resolve("/users"))
	assert.Equal(t, OutcomeAllowed, gate.Resolve("/login"))
}
