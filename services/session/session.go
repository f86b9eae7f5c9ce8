package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"servicehub/api"
	"servicehub/models"
	"servicehub/storage"
	"servicehub/utils"

	"go.uber.org/zap"
)

// Login authenticates against the backend and persists the session.
func (s *DefaultSessionService) Login(ctx context.Context, email, password, roleHint string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("email and password are required")
	}
	if len(password) < minPasswordLen {
		return nil, ErrPasswordTooShort
	}
	if roleHint == models.RoleAdmin {
		return nil, ErrAdminUnsupported
	}

	payload, err := s.API.Login(ctx, email, password)
	if err != nil {
		utils.GetLogger().Warn("login failed", zap.String("email", email), zap.Error(err))
		return nil, err
	}
	if payload.Token == "" || payload.User == nil {
		return nil, ErrInvalidAuthResponse
	}
	if roleHint != "" && payload.User.Role != roleHint {
		return nil, RoleMismatchError{Expected: roleHint, Actual: payload.User.Role}
	}

	if err := s.persist(ctx, payload.Token, payload.User); err != nil {
		return nil, err
	}
	return payload.User, nil
}

// Register creates an account. The caller must navigate to login afterwards;
// no session is established here.
func (s *DefaultSessionService) Register(ctx context.Context, input RegistrationInput) (*models.User, error) {
	if input.Name == "" || input.Email == "" || input.Password == "" {
		return nil, fmt.Errorf("name, email and password are required")
	}
	if len(input.Password) < minPasswordLen {
		return nil, ErrPasswordTooShort
	}

	switch input.UserType {
	case models.RoleAdmin:
		return nil, ErrAdminUnsupported
	case models.RoleProvider:
		if input.Profession == "" {
			return nil, ErrProfessionRequired
		}
		return s.API.RegisterProvider(ctx, registerProviderInput(input))
	default:
		// Anything else registers as a customer, matching the backend role
		// mapping for the userType field.
		return s.API.RegisterCustomer(ctx, registerCustomerInput(input))
	}
}

// CompleteOAuthLogin stores the redirect token optimistically, then resolves
// the user behind it. A failed resolution clears the session again.
func (s *DefaultSessionService) CompleteOAuthLogin(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, fmt.Errorf("missing OAuth token")
	}
	if err := s.Store.Set(ctx, storage.KeyToken, []byte(token)); err != nil {
		return nil, fmt.Errorf("failed to store token: %w", err)
	}

	user, err := s.API.Me(ctx)
	if err != nil {
		s.clear(ctx)
		return nil, fmt.Errorf("OAuth login failed: %w", err)
	}

	if err := s.persist(ctx, token, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Restore rebuilds the session on startup. Availability wins over freshness:
// when revalidation fails but a cached user exists, the stale user is kept.
func (s *DefaultSessionService) Restore(ctx context.Context) (*models.User, error) {
	tokenBytes, err := s.Store.Get(ctx, storage.KeyToken)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read stored token: %w", err)
	}
	token := string(tokenBytes)

	// A visibly expired token is not worth a round-trip.
	if utils.TokenExpired(token) {
		utils.GetLogger().Debug("stored token expired, clearing session")
		s.clear(ctx)
		return nil, nil
	}

	user, err := s.API.Me(ctx)
	if err == nil {
		if persistErr := s.persist(ctx, token, user); persistErr != nil {
			return nil, persistErr
		}
		return user, nil
	}
	utils.GetLogger().Warn("session revalidation failed, trying cached user", zap.Error(err))

	cached, cacheErr := s.cachedUser(ctx)
	if cacheErr != nil || cached == nil {
		// No cache to fall back on; never fabricate a user.
		s.clear(ctx)
		return nil, nil
	}

	s.setSession(&models.Session{User: cached, Token: token})
	return cached, nil
}

// UpdateProfile shallow-merges edits into the cached user. Client-local only;
// there is no backend round-trip in this revision.
func (s *DefaultSessionService) UpdateProfile(ctx context.Context, updates models.ProfileUpdate) (*models.User, error) {
	current := s.Current()
	if current == nil || current.User == nil {
		return nil, ErrNotAuthenticated
	}

	user := *current.User
	user.Merge(updates)
	if err := s.persist(ctx, current.Token, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateRole switches the cached user's role client-side.
func (s *DefaultSessionService) UpdateRole(ctx context.Context, role string) (*models.User, error) {
	current := s.Current()
	if current == nil || current.User == nil {
		return nil, ErrNotAuthenticated
	}

	user := *current.User
	user.Role = role
	if err := s.persist(ctx, current.Token, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout clears both durable keys unconditionally.
func (s *DefaultSessionService) Logout(ctx context.Context) error {
	s.clear(ctx)
	return nil
}

// Current returns the in-memory session, nil when logged out.
func (s *DefaultSessionService) Current() *models.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

// persist writes the full session to durable storage and swaps the in-memory
// copy in the same step.
func (s *DefaultSessionService) persist(ctx context.Context, token string, user *models.User) error {
	if err := s.Store.Set(ctx, storage.KeyToken, []byte(token)); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode user: %w", err)
	}
	if err := s.Store.Set(ctx, storage.KeyUser, data); err != nil {
		return fmt.Errorf("failed to store user: %w", err)
	}
	s.setSession(&models.Session{User: user, Token: token})
	return nil
}

func (s *DefaultSessionService) cachedUser(ctx context.Context) (*models.User, error) {
	data, err := s.Store.Get(ctx, storage.KeyUser)
	if err != nil {
		return nil, err
	}
	var user models.User
	if err := json.Unmarshal(data, &user); err != nil {
		utils.GetLogger().Error("cached user is corrupt, discarding", zap.Error(err))
		return nil, err
	}
	return &user, nil
}

func (s *DefaultSessionService) clear(ctx context.Context) {
	if err := s.Store.Delete(ctx, storage.KeyToken); err != nil {
		utils.GetLogger().Error("failed to clear stored token", zap.Error(err))
	}
	if err := s.Store.Delete(ctx, storage.KeyUser); err != nil {
		utils.GetLogger().Error("failed to clear stored user", zap.Error(err))
	}
	s.setSession(nil)
}

func (s *DefaultSessionService) setSession(sess *models.Session) {
	s.mu.Lock()
	s.session = sess
	s.mu.Unlock()
}

func registerCustomerInput(input RegistrationInput) api.RegisterCustomerInput {
	return api.RegisterCustomerInput{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
		Phone:    input.Phone,
		Address:  input.Address,
	}
}

func registerProviderInput(input RegistrationInput) api.RegisterProviderInput {
	return api.RegisterProviderInput{
		RegisterCustomerInput: registerCustomerInput(input),
		Profession:            input.Profession,
	}
}
