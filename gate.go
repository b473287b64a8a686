package finpulse

import "strings"

// DecisionKind says what the gate wants done with a request
type DecisionKind int

const (
	DecisionAllow DecisionKind = iota
	DecisionRedirect
)

// Decision is the outcome of one gate evaluation
type Decision struct {
	Kind   DecisionKind
	Target string
}

func Allow() Decision {
	return Decision{Kind: DecisionAllow}
}

func RedirectTo(target string) Decision {
	return Decision{Kind: DecisionRedirect, Target: target}
}

func (d Decision) Allowed() bool {
	return d.Kind == DecisionAllow
}

// Routes is the static route classification the gate evaluates against.
// Public and Onboarding entries match exactly or as path prefixes; Excluded
// entries are infrastructure prefixes (health checks, auth callbacks, static
// assets) that bypass the onboarded redirect. Every path that matches
// nothing is protected.
type Routes struct {
	Public     []string
	Onboarding []string
	Excluded   []string

	Login           string
	Dashboard       string
	OnboardingStart string
}

// DefaultRoutes mirrors the FinPulse page map
func DefaultRoutes() Routes {
	return Routes{
		Public:     []string{"/", "/login", "/register"},
		Onboarding: []string{"/onboarding"},
		Excluded:   []string{"/api/auth", "/logout", "/healthz", "/static", "/favicon.ico", "/manifest.json"},

		Login:           "/login",
		Dashboard:       "/dashboard",
		OnboardingStart: "/onboarding",
	}
}

// Gate decides, per request path and session state, whether to let the
// request through or where to send it instead. It holds no mutable state;
// evaluating the same (path, session) pair twice yields the same decision.
type Gate struct {
	routes Routes
}

func NewGate(routes Routes) *Gate {
	return &Gate{routes: routes}
}

func (g *Gate) Routes() Routes {
	return g.routes
}

// Evaluate runs the decision procedure. A nil session means anonymous; a
// token that failed validation must be passed in as nil by the caller.
func (g *Gate) Evaluate(path string, session Session) Decision {
	authenticated := session != nil

	if matchRoute(g.routes.Public, path) {
		if authenticated {
			return RedirectTo(g.routes.Dashboard)
		}
		return Allow()
	}

	if !authenticated {
		return RedirectTo(g.routes.Login)
	}

	onboardingPath := matchRoute(g.routes.Onboarding, path)

	if onboardingPath && session.GetOnboarded() {
		return RedirectTo(g.routes.Dashboard)
	}

	if !onboardingPath && !matchPrefix(g.routes.Excluded, path) && !session.GetOnboarded() {
		return RedirectTo(g.routes.OnboardingStart)
	}

	return Allow()
}

// matchRoute reports whether path is the entry itself or nested under it.
// The bare root entry "/" only matches exactly, otherwise it would swallow
// every path.
func matchRoute(routes []string, path string) bool {
	for _, r := range routes {
		if path == r {
			return true
		}
		if r != "/" && strings.HasPrefix(path, r+"/") {
			return true
		}
	}
	return false
}

func matchPrefix(prefixes []string, path string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}
