package guard

import (
	"context"

	"github.com/sabastianrafa/powergym-ag-system/internal/client/models"
)

type Decision int

const (
	DecisionLoading Decision = iota
	DecisionRedirectLogin
	DecisionAccessDenied
	DecisionRender
)

func (d Decision) String() string {
	switch d {
	case DecisionLoading:
		return "loading"
	case DecisionRedirectLogin:
		return "redirect-login"
	case DecisionAccessDenied:
		return "access-denied"
	case DecisionRender:
		return "render"
	default:
		return "unknown"
	}
}

// Decide is the guard decision table. The first matching rule wins:
// still initializing, then not signed in, then missing capabilities.
func (p Policy) Decide(state models.SessionState, required ...Capability) Decision {
	switch {
	case state.Initializing:
		return DecisionLoading
	case state.Identity == nil:
		return DecisionRedirectLogin
	case len(required) > 0 && !p.Has(state.Identity.Role, required...):
		return DecisionAccessDenied
	default:
		return DecisionRender
	}
}

// Decide applies DefaultPolicy.
func Decide(state models.SessionState, required ...Capability) Decision {
	return DefaultPolicy.Decide(state, required...)
}

// StateSource supplies the current session state.
type StateSource interface {
	State() models.SessionState
}

// Navigator performs the login redirect.
type Navigator interface {
	RedirectToLogin(ctx context.Context)
}

// Guard wires the decision table to a live session and a navigator.
type Guard struct {
	policy  Policy
	session StateSource
	nav     Navigator
}

// New returns a guard using DefaultPolicy when policy is nil.
func New(session StateSource, nav Navigator, policy Policy) *Guard {
	if policy == nil {
		policy = DefaultPolicy
	}
	return &Guard{policy: policy, session: session, nav: nav}
}

// Enter decides whether view may be shown. On DecisionRedirectLogin the
// navigator is asked to show the login prompt before Enter returns.
// Public views render as soon as the session has settled.
func (g *Guard) Enter(ctx context.Context, view View) Decision {
	st := g.session.State()
	if view.Public {
		if st.Initializing {
			return DecisionLoading
		}
		return DecisionRender
	}

	d := g.policy.Decide(st, view.Requires...)
	if d == DecisionRedirectLogin && g.nav != nil {
		g.nav.RedirectToLogin(ctx)
	}
	return d
}

// Allows reports whether the signed-in identity holds required. It is
// false while nobody is signed in.
func (g *Guard) Allows(required ...Capability) bool {
	st := g.session.State()
	return st.Identity != nil && g.policy.Has(st.Identity.Role, required...)
}
