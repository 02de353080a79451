package api

import (
	"context"
	"fmt"

	"github.com/squarelake/paydesk/pkg/domain"
)

// LoginRequest is the credential payload for the login endpoint.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login exchanges credentials for a bearer token. It does not store the
// token; that is the session store's job.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var resp struct {
		Token string `json:"token"`
	}
	if err := c.post(ctx, "/api/auth/login", LoginRequest{Username: username, Password: password}, &resp); err != nil {
		return "", fmt.Errorf("api.Login: %w", err)
	}
	if resp.Token == "" {
		return "", fmt.Errorf("api.Login: empty token in response")
	}
	return resp.Token, nil
}

// Logout invalidates the server-side session. Callers treat failure as
// non-fatal; local teardown happens regardless.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.post(ctx, "/api/auth/logout", nil, nil); err != nil {
		return fmt.Errorf("api.Logout: %w", err)
	}
	return nil
}

// Me returns the authenticated user's profile.
func (c *Client) Me(ctx context.Context) (*domain.Session, error) {
	var s domain.Session
	if err := c.get(ctx, "/api/me", &s); err != nil {
		return nil, fmt.Errorf("api.Me: %w", err)
	}
	return &s, nil
}
