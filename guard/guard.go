// Package guard decides whether the current session may enter a role-gated
// view, and where to send it otherwise.
package guard

import "servicehub/models"

// State is the guard's verdict for an access attempt.
type State int

const (
	// StateLoading means session restore is still in flight; render nothing
	// and do not redirect yet.
	StateLoading State = iota
	// StateUnauthenticated sends the visitor to the login view.
	StateUnauthenticated
	// StateWrongRole sends an authenticated user to their own dashboard.
	StateWrongRole
	// StateAuthorized admits the user.
	StateAuthorized
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateUnauthenticated:
		return "unauthenticated"
	case StateWrongRole:
		return "wrong-role"
	case StateAuthorized:
		return "authorized"
	default:
		return "unknown"
	}
}

// LoginPath is where unauthenticated visitors land.
const LoginPath = "/login"

// Decision is the guard's outcome. RedirectTo is empty when no redirect is
// needed. PreserveFrom carries the originally requested path so the login
// flow can return there afterwards.
type Decision struct {
	State        State
	RedirectTo   string
	PreserveFrom string
}

// Resolve gates access to a view. restoring reports whether session restore
// is still running; user is the restored user, nil when there is none;
// requiredRole is empty for views any authenticated user may enter; from is
// the path being attempted.
func Resolve(restoring bool, user *models.User, requiredRole, from string) Decision {
	if restoring {
		return Decision{State: StateLoading}
	}
	if user == nil {
		return Decision{State: StateUnauthenticated, RedirectTo: LoginPath, PreserveFrom: from}
	}
	if requiredRole != "" && user.Role != requiredRole {
		return Decision{State: StateWrongRole, RedirectTo: DashboardPath(user.Role)}
	}
	return Decision{State: StateAuthorized}
}

// DashboardPath maps a role to its home dashboard. Unknown roles fall back
// to the root path.
func DashboardPath(role string) string {
	switch role {
	case models.RoleCustomer:
		return "/dashboard"
	case models.RoleProvider:
		return "/provider-dashboard"
	case models.RoleAdmin:
		return "/admin-dashboard"
	default:
		return "/"
	}
}
