// Package authz decides which portal routes are reachable for the current
// session. Resolution is pure: a route is either mounted for the session
// state or it is not, there is no dedicated denial page.
package authz

import (
	"strings"

	"github.com/munidigital/portalctl/internal/session"
)

// State is the position of the session machine the gate evaluates against.
type State int

const (
	// StateLoading means hydration is still in progress, nothing resolves.
	StateLoading State = iota
	StateUnauthenticated
	StateUser
	StateAdmin
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateUnauthenticated:
		return "unauthenticated"
	case StateUser:
		return "authenticated"
	case StateAdmin:
		return "admin"
	default:
		return "unknown"
	}
}

// Capability is the access level a route requires.
type Capability int

const (
	CapabilityNone Capability = iota
	CapabilityAuthenticated
	CapabilityAdmin
)

// Outcome is the result of resolving a path.
type Outcome int

const (
	// OutcomeNotFound covers both unknown paths and routes that are not
	// mounted for the current state.
	OutcomeNotFound Outcome = iota
	OutcomeAllowed
	// OutcomePending is returned for every path while hydration runs.
	OutcomePending
)

// Rule maps a path pattern to the capability it requires. Pattern segments
// wrapped in braces match any single segment. PublicOnly routes (login,
// registration, recovery) are mounted only in the unauthenticated tree.
type Rule struct {
	Pattern    string
	Requires   Capability
	PublicOnly bool
}

// Routes is the rule table, mirroring the portal's two route trees.
var Routes = []Rule{
	{Pattern: "/", Requires: CapabilityNone},
	{Pattern: "/login", Requires: CapabilityNone, PublicOnly: true},
	{Pattern: "/register", Requires: CapabilityNone, PublicOnly: true},
	{Pattern: "/recover-account", Requires: CapabilityNone, PublicOnly: true},
	{Pattern: "/credit-titles", Requires: CapabilityNone},
	{Pattern: "/credit-titles/page/{page}", Requires: CapabilityNone},
	{Pattern: "/users", Requires: CapabilityAuthenticated},
	{Pattern: "/users/page/{page}", Requires: CapabilityAuthenticated},
	{Pattern: "/users/selectRegister", Requires: CapabilityAdmin},
	{Pattern: "/users/edit/{id}", Requires: CapabilityAdmin},
	{Pattern: "/taxpayers", Requires: CapabilityAdmin},
	{Pattern: "/taxpayers/page/{page}", Requires: CapabilityAdmin},
	{Pattern: "/terms", Requires: CapabilityAdmin},
}

// SessionSource reads the current session. Satisfied by *session.Store.
type SessionSource interface {
	Current() session.Session
}

// Gate resolves paths against the rule table for the current session.
type Gate struct {
	sessions SessionSource
	rules    []Rule
}

func New(sessions SessionSource) *Gate {
	return &Gate{sessions: sessions, rules: Routes}
}

// State maps the current session onto a gate state. Store hydration is
// synchronous, so a constructed gate is never loading.
func (g *Gate) State() State {
	return StateFor(g.sessions.Current(), false)
}

// Resolve reports whether path is reachable right now.
func (g *Gate) Resolve(path string) Outcome {
	return resolve(g.rules, g.State(), path)
}

// StateFor maps a session (and whether hydration is still pending) onto a
// gate state.
func StateFor(sess session.Session, hydrating bool) State {
	switch {
	case hydrating:
		return StateLoading
	case !sess.IsAuth:
		return StateUnauthenticated
	case sess.IsAdmin:
		return StateAdmin
	default:
		return StateUser
	}
}

// ResolveIn evaluates a path against the default rule table for a given
// state. Evaluation is total: every path yields exactly one outcome.
func ResolveIn(state State, path string) Outcome {
	return resolve(Routes, state, path)
}

func resolve(rules []Rule, state State, path string) Outcome {
	if state == StateLoading {
		return OutcomePending
	}

	for _, rule := range rules {
		if !matches(rule.Pattern, path) {
			continue
		}
		if reachable(rule, state) {
			return OutcomeAllowed
		}
		return OutcomeNotFound
	}

	return OutcomeNotFound
}

func reachable(rule Rule, state State) bool {
	switch state {
	case StateUnauthenticated:
		return rule.Requires == CapabilityNone
	case StateUser:
		return !rule.PublicOnly && rule.Requires <= CapabilityAuthenticated
	case StateAdmin:
		return !rule.PublicOnly
	default:
		return false
	}
}

// matches compares path against a pattern segment by segment. A "{name}"
// segment matches any single non-empty segment.
func matches(pattern, path string) bool {
	want := splitPath(pattern)
	got := splitPath(path)
	if len(want) != len(got) {
		return false
	}

	for i, seg := range want {
		if strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") {
			if got[i] == "" {
				return false
			}
			continue
		}
		if seg != got[i] {
			return false
		}
	}

	return true
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}
