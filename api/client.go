package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"servicehub/config"
	"servicehub/storage"
	"servicehub/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Client is the single gateway to the marketplace backend. Every request
// attaches the bearer token held in durable storage when one is present; a
// 401 on any response clears the persisted session and fires the
// unauthorized hook, whatever endpoint produced it.
type Client struct {
	baseURL string
	http    *http.Client
	store   storage.Store
	limiter *rate.Limiter

	// onUnauthorized runs after a 401 has cleared the session keys.
	// Navigation to the login screen is the caller's business.
	onUnauthorized func()
}

// New builds a client against baseURL using the configured timeout and
// outbound request ceiling.
func New(baseURL string, store storage.Store) *Client {
	timeout := time.Duration(config.AppConfig.HTTPTimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	perMin := config.AppConfig.MaxRequestsPerMin
	if perMin <= 0 {
		perMin = 120
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		store:   store,
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMin)), perMin),
	}
}

// SetUnauthorizedHook registers the callback invoked after any 401 response.
func (c *Client) SetUnauthorizedHook(fn func()) {
	c.onUnauthorized = fn
}

// BaseURL returns the backend base URL the client was built against.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// envelope is the backend response wrapper. Error responses put the
// structured message under error.message; some put a bare message field.
type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("request not sent: %w", err)
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())

	// A missing token sends the request unauthenticated; the backend decides.
	if token, err := c.store.Get(ctx, storage.KeyToken); err == nil && len(token) > 0 {
		req.Header.Set("Authorization", "Bearer "+string(token))
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	var env envelope
	if len(raw) > 0 {
		// A non-JSON body is not fatal; the status code still drives handling.
		_ = json.Unmarshal(raw, &env)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.clearSession(ctx)
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
	}

	if resp.StatusCode >= 400 {
		apiErr := &Error{StatusCode: resp.StatusCode, Message: env.Message}
		if env.Error != nil {
			apiErr.ErrMessage = env.Error.Message
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	payload := env.Data
	if len(payload) == 0 || string(payload) == "null" {
		// Backends without the envelope return the resource directly.
		payload = raw
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// clearSession drops the persisted token and user. Called on 401 only; a
// deliberate logout goes through the session service.
func (c *Client) clearSession(ctx context.Context) {
	if err := c.store.Delete(ctx, storage.KeyToken); err != nil {
		utils.GetLogger().Error("failed to clear token after 401", zap.Error(err))
	}
	if err := c.store.Delete(ctx, storage.KeyUser); err != nil {
		utils.GetLogger().Error("failed to clear cached user after 401", zap.Error(err))
	}
}
