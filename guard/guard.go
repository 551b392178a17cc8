// Package guard decides whether a session may see a gated view.
//
// The check is advisory and exists for navigation only: the backend
// authorizes every API call on its own, so nothing here is a security
// boundary. Checks are synchronous, read the already established session
// and never call the network.
package guard

import (
	"github.com/jrsteele09/restaurant-console/roles"
	"github.com/jrsteele09/restaurant-console/sessions"
)

// Default destinations used by the guard and the root redirect
const (
	LoginPath             = "/login"
	UnauthorizedPath      = "/unauthorized"
	AdminDashboardPath    = "/admin/dashboard"
	SubAdminDashboardPath = "/subadmin/dashboard"
)

// Outcome is the result of a guard check
type Outcome int

const (
	Allow Outcome = iota
	RedirectLogin
	RedirectUnauthorized
)

func (o Outcome) String() string {
	switch o {
	case Allow:
		return "allow"
	case RedirectLogin:
		return "redirect_login"
	case RedirectUnauthorized:
		return "redirect_unauthorized"
	default:
		return "unknown"
	}
}

// Decision pairs an outcome with the path to redirect to, Location is empty for Allow
type Decision struct {
	Outcome  Outcome
	Location string
}

// Check compares the required role against the session.
// ok reports whether a complete session is present.
func Check(required roles.Role, s sessions.Session, ok bool) Decision {
	if !ok || !s.Complete() {
		return Decision{Outcome: RedirectLogin, Location: LoginPath}
	}
	if s.Role != required {
		return Decision{Outcome: RedirectUnauthorized, Location: UnauthorizedPath}
	}
	return Decision{Outcome: Allow}
}

// RootDestination picks where "/" sends the browser
func RootDestination(s sessions.Session, ok bool) string {
	if !ok || !s.Complete() {
		return LoginPath
	}
	return DashboardFor(s.Role)
}

// DashboardFor returns the landing page of a role
func DashboardFor(r roles.Role) string {
	switch r {
	case roles.Admin:
		return AdminDashboardPath
	case roles.SubAdmin:
		return SubAdminDashboardPath
	default:
		return LoginPath
	}
}
