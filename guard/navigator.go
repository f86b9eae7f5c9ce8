package guard

import "sync"

// Navigator tracks the path the user is currently on and applies the
// session-expiry redirect rule: an unauthorized response sends the user to
// the login view unless they are already there, so an expired session on
// the login view itself never loops.
type Navigator struct {
	mu      sync.Mutex
	current string

	// OnRedirect, when set, observes each forced redirect with the
	// destination and the path the user was on.
	OnRedirect func(to, from string)
}

// NewNavigator starts tracking from the given path.
func NewNavigator(start string) *Navigator {
	return &Navigator{current: start}
}

// Visit records a navigation.
func (n *Navigator) Visit(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.current = path
}

// Current returns the tracked path.
func (n *Navigator) Current() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

// HandleUnauthorized applies the redirect rule and reports whether a
// redirect happened.
func (n *Navigator) HandleUnauthorized() bool {
	n.mu.Lock()
	if n.current == LoginPath {
		n.mu.Unlock()
		return false
	}
	from := n.current
	n.current = LoginPath
	onRedirect := n.OnRedirect
	n.mu.Unlock()

	if onRedirect != nil {
		onRedirect(LoginPath, from)
	}
	return true
}

// UnauthorizedHook adapts HandleUnauthorized to the api client's hook shape.
func (n *Navigator) UnauthorizedHook() func() {
	return func() { n.HandleUnauthorized() }
}
