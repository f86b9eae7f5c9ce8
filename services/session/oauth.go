package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"servicehub/config"
	"servicehub/models"
	"servicehub/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AwaitOAuthCallback runs a loopback HTTP server catching the token that the
// backend's redirect-based OAuth entry (`/auth/google`) hands back, then
// completes the login with it. It blocks until the redirect arrives or ctx
// is done.
func (s *DefaultSessionService) AwaitOAuthCallback(ctx context.Context) (*models.User, error) {
	port := config.AppConfig.OAuthCallbackPort
	if port == "" {
		port = "8765"
	}

	tokenCh := make(chan string, 1)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.GET("/callback", func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			c.String(http.StatusBadRequest, "missing token")
			return
		}
		select {
		case tokenCh <- token:
		default:
			// A second redirect races the first; first one wins.
		}
		c.String(http.StatusOK, "Signed in. You can close this window.")
	})

	server := &http.Server{Addr: "127.0.0.1:" + port, Handler: router}
	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			utils.GetLogger().Warn("OAuth callback server shutdown failed", zap.Error(err))
		}
	}()

	utils.GetLogger().Info("waiting for OAuth redirect",
		zap.String("loginURL", s.API.GoogleLoginURL()),
		zap.String("callback", "http://127.0.0.1:"+port+"/callback"))

	select {
	case token := <-tokenCh:
		return s.CompleteOAuthLogin(ctx, token)
	case err := <-errCh:
		return nil, fmt.Errorf("OAuth callback server failed: %w", err)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
