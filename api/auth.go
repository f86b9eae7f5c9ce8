package api

import (
	"context"

	"servicehub/models"
)

// Login exchanges credentials for a token and the backend-assigned user.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthPayload, error) {
	body := map[string]string{"email": email, "password": password}
	var payload AuthPayload
	if err := c.do(ctx, "POST", "/auth/login", body, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// RegisterCustomer creates a customer account and returns the created user.
func (c *Client) RegisterCustomer(ctx context.Context, input RegisterCustomerInput) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, "POST", "/auth/register/customer", input, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// RegisterProvider creates a provider account and returns the created user.
func (c *Client) RegisterProvider(ctx context.Context, input RegisterProviderInput) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, "POST", "/auth/register/provider", input, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Me fetches the profile of the bearer-token owner.
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, "GET", "/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GoogleLoginURL is the redirect-based OAuth entry point. The flow finishes
// out-of-band; the callback token reaches the session service.
func (c *Client) GoogleLoginURL() string {
	return c.baseURL + "/auth/google"
}
