package storyapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"storydesk/internal/domain"
)

// loginPayload is the data shape of a successful login response.
type loginPayload struct {
	Admin       domain.Admin `json:"admin"`
	AccessToken string       `json:"accessToken"`
}

// Login authenticates an admin and returns the identity and bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (*domain.Admin, string, error) {
	body := map[string]string{"email": email, "password": password}

	env, err := c.doRequest(ctx, http.MethodPost, "/admin/login", nil, body)
	if err != nil {
		return nil, "", err
	}
	if !env.Success {
		return nil, "", &domain.ServerError{Message: env.Message}
	}

	var payload loginPayload
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		return nil, "", fmt.Errorf("failed to parse login payload: %w", err)
	}
	return &payload.Admin, payload.AccessToken, nil
}

// Logout invalidates the current session server-side. The session store
// clears local state regardless of this call's outcome.
func (c *Client) Logout(ctx context.Context) error {
	env, err := c.doRequest(ctx, http.MethodPost, "/admin/logout", nil, nil)
	if err != nil {
		return err
	}
	if !env.Success {
		return &domain.ServerError{Message: env.Message}
	}
	return nil
}

// ChangePassword rotates the password of the authenticated admin.
func (c *Client) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	body := map[string]string{"oldPassword": oldPassword, "newPassword": newPassword}
	return c.simpleAuthCall(ctx, http.MethodPut, "/admin/change-password", body)
}

// ForgotPassword triggers OTP dispatch to the given email.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	return c.simpleAuthCall(ctx, http.MethodPost, "/admin/forgot-password", map[string]string{"email": email})
}

// VerifyOTP checks a one-time code sent by ForgotPassword.
func (c *Client) VerifyOTP(ctx context.Context, email, otp string) error {
	body := map[string]string{"email": email, "otp": otp}
	return c.simpleAuthCall(ctx, http.MethodPost, "/admin/verify-otp", body)
}

// ResetPassword sets a new password after OTP verification.
func (c *Client) ResetPassword(ctx context.Context, email, newPassword string) error {
	body := map[string]string{"email": email, "newPassword": newPassword}
	return c.simpleAuthCall(ctx, http.MethodPost, "/admin/reset-password", body)
}

func (c *Client) simpleAuthCall(ctx context.Context, method, path string, body map[string]string) error {
	env, err := c.doRequest(ctx, method, path, nil, body)
	if err != nil {
		return err
	}
	if !env.Success {
		return &domain.ServerError{Message: env.Message}
	}
	return nil
}
