package session

import (
	"errors"
	"fmt"
)

// minPasswordLen matches the backend's password policy; checked before any
// network call.
const minPasswordLen = 6

var (
	// ErrAdminUnsupported rejects admin login/registration before any
	// network call; the backend has no admin auth surface.
	ErrAdminUnsupported = errors.New("admin accounts are not supported")

	// ErrPasswordTooShort rejects passwords under the minimum length.
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")

	// ErrInvalidAuthResponse signals a login response missing the token or
	// the user object.
	ErrInvalidAuthResponse = errors.New("invalid response from authentication service")

	// ErrProfessionRequired rejects provider registration without a
	// profession before any network call.
	ErrProfessionRequired = errors.New("profession is required for provider registration")

	// ErrNotAuthenticated is returned by operations that need a session.
	ErrNotAuthenticated = errors.New("not authenticated")
)

// RoleMismatchError signals that the role selected on the login form
// disagrees with the role the backend assigned.
type RoleMismatchError struct {
	Expected string
	Actual   string
}

func (e RoleMismatchError) Error() string {
	return fmt.Sprintf("account role is %q, not %q; sign in with the correct role", e.Actual, e.Expected)
}
