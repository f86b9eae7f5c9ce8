package session

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"servicehub/api"
	"servicehub/models"
	"servicehub/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type backendStub struct {
	mux      *http.ServeMux
	requests atomic.Int64
}

func newBackendStub() *backendStub {
	return &backendStub{mux: http.NewServeMux()}
}

func (b *backendStub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.requests.Add(1)
	b.mux.ServeHTTP(w, r)
}

func newService(t *testing.T, backend *backendStub) (*DefaultSessionService, storage.Store) {
	t.Helper()
	server := httptest.NewServer(backend)
	t.Cleanup(server.Close)
	store := storage.NewMemoryStore()
	return &DefaultSessionService{Store: store, API: api.New(server.URL, store)}, store
}

func writeUser(w http.ResponseWriter, user models.User) {
	json.NewEncoder(w).Encode(map[string]any{"data": user})
}

// makeToken builds an unsigned JWT-shaped token; the client only ever
// inspects claims unverified.
func makeToken(t *testing.T, claims map[string]any) string {
	t.Helper()
	header, err := json.Marshal(map[string]string{"alg": "HS256", "typ": "JWT"})
	require.NoError(t, err)
	payload, err := json.Marshal(claims)
	require.NoError(t, err)
	enc := base64.RawURLEncoding
	return fmt.Sprintf("%s.%s.sig", enc.EncodeToString(header), enc.EncodeToString(payload))
}

func TestLoginValidation(t *testing.T) {
	backend := newBackendStub()
	svc, _ := newService(t, backend)
	ctx := context.Background()

	_, err := svc.Login(ctx, "", "secret123", "")
	assert.Error(t, err)

	_, err = svc.Login(ctx, "a@b.com", "", "")
	assert.Error(t, err)

	_, err = svc.Login(ctx, "a@b.com", "short", "")
	assert.ErrorIs(t, err, ErrPasswordTooShort)

	_, err = svc.Login(ctx, "a@b.com", "secret123", models.RoleAdmin)
	assert.ErrorIs(t, err, ErrAdminUnsupported)

	assert.Zero(t, backend.requests.Load(), "validation failures must not reach the network")
}

func TestLoginSuccessPersistsSession(t *testing.T) {
	backend := newBackendStub()
	backend.mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{
			"token": "tok-1",
			"user":  models.User{ID: "u1", Email: "a@b.com", Role: models.RoleCustomer},
		}})
	})
	svc, store := newService(t, backend)
	ctx := context.Background()

	user, err := svc.Login(ctx, "a@b.com", "secret123", models.RoleCustomer)
	require.NoError(t, err)
	assert.Equal(t, models.RoleCustomer, user.Role)

	token, err := store.Get(ctx, storage.KeyToken)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", string(token))

	cached, err := store.Get(ctx, storage.KeyUser)
	require.NoError(t, err)
	assert.Contains(t, string(cached), `"u1"`)

	require.NotNil(t, svc.Current())
	assert.Equal(t, "tok-1", svc.Current().Token)
}

func TestLoginRoleMismatch(t *testing.T) {
	backend := newBackendStub()
	backend.mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{
			"token": "tok-1",
			"user":  models.User{ID: "u1", Role: models.RoleProvider},
		}})
	})
	svc, store := newService(t, backend)

	_, err := svc.Login(context.Background(), "a@b.com", "secret123", models.RoleCustomer)
	var mismatch RoleMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, models.RoleCustomer, mismatch.Expected)
	assert.Equal(t, models.RoleProvider, mismatch.Actual)

	// The mismatched session must not be persisted.
	_, err = store.Get(context.Background(), storage.KeyToken)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestLoginInvalidResponse(t *testing.T) {
	backend := newBackendStub()
	backend.mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{"token": "tok-only"}})
	})
	svc, _ := newService(t, backend)

	_, err := svc.Login(context.Background(), "a@b.com", "secret123", "")
	assert.ErrorIs(t, err, ErrInvalidAuthResponse)
}

func TestRegisterRoleMapping(t *testing.T) {
	backend := newBackendStub()
	var hitPath string
	handler := func(w http.ResponseWriter, r *http.Request) {
		hitPath = r.URL.Path
		writeUser(w, models.User{ID: "u2"})
	}
	backend.mux.HandleFunc("POST /auth/register/customer", handler)
	backend.mux.HandleFunc("POST /auth/register/provider", handler)
	svc, store := newService(t, backend)
	ctx := context.Background()

	t.Run("short password rejected before network", func(t *testing.T) {
		before := backend.requests.Load()
		_, err := svc.Register(ctx, RegistrationInput{Name: "A", Email: "a@b.com", Password: "abc"})
		assert.ErrorIs(t, err, ErrPasswordTooShort)
		assert.Equal(t, before, backend.requests.Load())
	})

	t.Run("admin rejected outright", func(t *testing.T) {
		_, err := svc.Register(ctx, RegistrationInput{Name: "A", Email: "a@b.com", Password: "secret123", UserType: models.RoleAdmin})
		assert.ErrorIs(t, err, ErrAdminUnsupported)
	})

	t.Run("provider requires profession before network", func(t *testing.T) {
		before := backend.requests.Load()
		_, err := svc.Register(ctx, RegistrationInput{Name: "P", Email: "p@b.com", Password: "secret123", UserType: models.RoleProvider})
		assert.ErrorIs(t, err, ErrProfessionRequired)
		assert.Equal(t, before, backend.requests.Load())
	})

	t.Run("provider with profession", func(t *testing.T) {
		_, err := svc.Register(ctx, RegistrationInput{Name: "P", Email: "p@b.com", Password: "secret123", UserType: models.RoleProvider, Profession: "Plumbing"})
		require.NoError(t, err)
		assert.Equal(t, "/auth/register/provider", hitPath)
	})

	t.Run("default maps to customer", func(t *testing.T) {
		_, err := svc.Register(ctx, RegistrationInput{Name: "C", Email: "c@b.com", Password: "secret123"})
		require.NoError(t, err)
		assert.Equal(t, "/auth/register/customer", hitPath)
	})

	t.Run("no auto-login", func(t *testing.T) {
		assert.Nil(t, svc.Current())
		_, err := store.Get(ctx, storage.KeyToken)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func TestCompleteOAuthLogin(t *testing.T) {
	t.Run("success persists token and user", func(t *testing.T) {
		backend := newBackendStub()
		backend.mux.HandleFunc("GET /auth/me", func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer oauth-tok", r.Header.Get("Authorization"))
			writeUser(w, models.User{ID: "u3", Role: models.RoleCustomer})
		})
		svc, store := newService(t, backend)

		user, err := svc.CompleteOAuthLogin(context.Background(), "oauth-tok")
		require.NoError(t, err)
		assert.Equal(t, "u3", user.ID)

		token, err := store.Get(context.Background(), storage.KeyToken)
		require.NoError(t, err)
		assert.Equal(t, "oauth-tok", string(token))
	})

	t.Run("failure clears the optimistic token", func(t *testing.T) {
		backend := newBackendStub()
		backend.mux.HandleFunc("GET /auth/me", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})
		svc, store := newService(t, backend)

		_, err := svc.CompleteOAuthLogin(context.Background(), "oauth-tok")
		require.Error(t, err)

		_, err = store.Get(context.Background(), storage.KeyToken)
		assert.ErrorIs(t, err, storage.ErrNotFound)
		assert.Nil(t, svc.Current())
	})

	t.Run("empty token rejected", func(t *testing.T) {
		svc, _ := newService(t, newBackendStub())
		_, err := svc.CompleteOAuthLogin(context.Background(), "")
		assert.Error(t, err)
	})
}

func TestRestore(t *testing.T) {
	ctx := context.Background()

	t.Run("no stored token resolves with no user", func(t *testing.T) {
		backend := newBackendStub()
		svc, _ := newService(t, backend)
		user, err := svc.Restore(ctx)
		require.NoError(t, err)
		assert.Nil(t, user)
		assert.Zero(t, backend.requests.Load())
	})

	t.Run("revalidation success replaces cached user", func(t *testing.T) {
		backend := newBackendStub()
		backend.mux.HandleFunc("GET /auth/me", func(w http.ResponseWriter, r *http.Request) {
			writeUser(w, models.User{ID: "u1", Name: "Fresh", Role: models.RoleCustomer})
		})
		svc, store := newService(t, backend)
		require.NoError(t, store.Set(ctx, storage.KeyToken, []byte("tok")))
		require.NoError(t, store.Set(ctx, storage.KeyUser, []byte(`{"id":"u1","name":"Stale"}`)))

		user, err := svc.Restore(ctx)
		require.NoError(t, err)
		assert.Equal(t, "Fresh", user.Name)

		cached, err := store.Get(ctx, storage.KeyUser)
		require.NoError(t, err)
		assert.Contains(t, string(cached), "Fresh")
	})

	t.Run("revalidation failure falls back to cached user", func(t *testing.T) {
		backend := newBackendStub()
		backend.mux.HandleFunc("GET /auth/me", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
		svc, _ := newService(t, backend)
		store := svc.Store
		require.NoError(t, store.Set(ctx, storage.KeyToken, []byte("tok")))
		require.NoError(t, store.Set(ctx, storage.KeyUser, []byte(`{"id":"u1","name":"Cached","role":"customer"}`)))

		user, err := svc.Restore(ctx)
		require.NoError(t, err)
		require.NotNil(t, user, "stay logged in with stale data when backend is unreachable")
		assert.Equal(t, "Cached", user.Name)
	})

	t.Run("revalidation failure without cache clears session", func(t *testing.T) {
		backend := newBackendStub()
		backend.mux.HandleFunc("GET /auth/me", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
		svc, store := newService(t, backend)
		require.NoError(t, store.Set(ctx, storage.KeyToken, []byte("tok")))

		user, err := svc.Restore(ctx)
		require.NoError(t, err)
		assert.Nil(t, user, "never fabricate a user")
		_, err = store.Get(ctx, storage.KeyToken)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("expired token short-circuits without a network call", func(t *testing.T) {
		backend := newBackendStub()
		svc, store := newService(t, backend)
		expired := makeToken(t, map[string]any{"sub": "u1", "exp": time.Now().Add(-time.Hour).Unix()})
		require.NoError(t, store.Set(ctx, storage.KeyToken, []byte(expired)))

		user, err := svc.Restore(ctx)
		require.NoError(t, err)
		assert.Nil(t, user)
		assert.Zero(t, backend.requests.Load())
	})
}

func TestUpdateProfileMergesAndPersists(t *testing.T) {
	backend := newBackendStub()
	backend.mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{
			"token": "tok-1",
			"user":  models.User{ID: "u1", Name: "Before", Phone: "111", Role: models.RoleCustomer},
		}})
	})
	svc, store := newService(t, backend)
	ctx := context.Background()
	_, err := svc.Login(ctx, "a@b.com", "secret123", "")
	require.NoError(t, err)

	requestsAfterLogin := backend.requests.Load()
	user, err := svc.UpdateProfile(ctx, models.ProfileUpdate{Name: "After"})
	require.NoError(t, err)
	assert.Equal(t, "After", user.Name)
	assert.Equal(t, "111", user.Phone, "unset fields survive the merge")
	assert.Equal(t, requestsAfterLogin, backend.requests.Load(), "profile update is client-local")

	cached, err := store.Get(ctx, storage.KeyUser)
	require.NoError(t, err)
	assert.Contains(t, string(cached), "After")
}

func TestUpdateProfileRequiresSession(t *testing.T) {
	svc, _ := newService(t, newBackendStub())
	_, err := svc.UpdateProfile(context.Background(), models.ProfileUpdate{Name: "X"})
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestLogoutClearsEverything(t *testing.T) {
	svc, store := newService(t, newBackendStub())
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, storage.KeyToken, []byte("tok")))
	require.NoError(t, store.Set(ctx, storage.KeyUser, []byte(`{"id":"u1"}`)))

	require.NoError(t, svc.Logout(ctx))
	_, err := store.Get(ctx, storage.KeyToken)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = store.Get(ctx, storage.KeyUser)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.Nil(t, svc.Current())
}
