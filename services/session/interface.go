package session

import (
	"context"
	"sync"

	"servicehub/api"
	"servicehub/models"
	"servicehub/storage"
)

// RegistrationInput is the registration form. UserType maps to the backend
// role; Profession is only meaningful for providers.
type RegistrationInput struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Phone      string `json:"phone,omitempty"`
	Address    string `json:"address,omitempty"`
	UserType   string `json:"userType"`
	Profession string `json:"profession,omitempty"`
}

// SessionService owns the authenticated user and bearer token, and keeps
// durable storage in lockstep with every in-memory mutation.
type SessionService interface {
	// Login authenticates with the backend. A non-empty roleHint that
	// disagrees with the backend-assigned role fails with RoleMismatchError.
	Login(ctx context.Context, email, password, roleHint string) (*models.User, error)
	// Register creates an account and returns the created user. It does not
	// log the user in; the caller navigates to login.
	Register(ctx context.Context, input RegistrationInput) (*models.User, error)
	// CompleteOAuthLogin finishes a redirect-based OAuth flow from its token.
	CompleteOAuthLogin(ctx context.Context, token string) (*models.User, error)
	// Restore rebuilds the session from durable storage on startup,
	// revalidating the token against the backend and falling back to the
	// last cached user when revalidation fails. A missing token resolves
	// immediately with no user and no error.
	Restore(ctx context.Context) (*models.User, error)
	// UpdateProfile shallow-merges client-local profile edits and persists.
	UpdateProfile(ctx context.Context, updates models.ProfileUpdate) (*models.User, error)
	// UpdateRole switches the cached user's role client-side and persists.
	UpdateRole(ctx context.Context, role string) (*models.User, error)
	// Logout clears the persisted token and user unconditionally.
	Logout(ctx context.Context) error
	// Current returns the in-memory session, nil when logged out.
	Current() *models.Session
}

// DefaultSessionService is the production implementation.
type DefaultSessionService struct {
	Store storage.Store
	API   *api.Client

	mu      sync.Mutex
	session *models.Session
}
