package client

import (
	"context"
)

type messageResponse struct {
	Message string `json:"message"`
}

// Register creates an account. The returned token is not persisted; call
// Session.Login to sign in.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	var resp AuthResult
	if err := c.post(ctx, "/auth/register", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Me returns the user behind the stored token
func (c *Client) Me(ctx context.Context) (*User, error) {
	var resp struct {
		User User `json:"user"`
	}
	if err := c.get(ctx, "/auth/me", nil, &resp); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// ForgotPassword requests a reset mail. The server answers the same way
// whether or not the account exists.
func (c *Client) ForgotPassword(ctx context.Context, email string) (string, error) {
	var resp messageResponse
	err := c.post(ctx, "/auth/forgot-password", map[string]string{"email": email}, &resp)
	return resp.Message, err
}

// ResetPassword sets a new password with a mailed token
func (c *Client) ResetPassword(ctx context.Context, token, password string) (string, error) {
	var resp messageResponse
	err := c.post(ctx, "/auth/reset-password", map[string]string{"token": token, "password": password}, &resp)
	return resp.Message, err
}
