package session

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"servicehub/config"
	"servicehub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAwaitOAuthCallback(t *testing.T) {
	backend := newBackendStub()
	backend.mux.HandleFunc("GET /auth/me", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer redirect-tok", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]any{"data": models.User{ID: "u7", Role: models.RoleCustomer}})
	})
	svc, _ := newService(t, backend)

	config.AppConfig.OAuthCallbackPort = "18931"
	t.Cleanup(func() { config.AppConfig.OAuthCallbackPort = "" })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	type result struct {
		user *models.User
		err  error
	}
	done := make(chan result, 1)
	go func() {
		user, err := svc.AwaitOAuthCallback(ctx)
		done <- result{user, err}
	}()

	// Poll until the loopback server answers the redirect.
	require.Eventually(t, func() bool {
		resp, err := http.Get("http://127.0.0.1:18931/callback?token=redirect-tok")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 3*time.Second, 50*time.Millisecond)

	res := <-done
	require.NoError(t, res.err)
	assert.Equal(t, "u7", res.user.ID)
}

func TestAwaitOAuthCallbackCancelled(t *testing.T) {
	svc, _ := newService(t, newBackendStub())
	config.AppConfig.OAuthCallbackPort = "18932"
	t.Cleanup(func() { config.AppConfig.OAuthCallbackPort = "" })

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	_, err := svc.AwaitOAuthCallback(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
