package api

import (
	"context"
	"net/http"
	"net/url"
)

// AuthService wraps the /auth endpoints. These requests never enter the
// refresh flow; a 401 here is final.
type AuthService struct {
	client *Client
}

func NewAuthService(client *Client) *AuthService {
	return &AuthService{client: client}
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Registration struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

func (s *AuthService) Login(ctx context.Context, creds Credentials) (*AuthResponse, error) {
	var resp AuthResponse
	if err := s.client.postJSON(ctx, "/auth/login", creds, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *AuthService) Logout(ctx context.Context) error {
	return s.client.postJSON(ctx, "/auth/logout", nil, nil)
}

func (s *AuthService) Register(ctx context.Context, reg Registration) (*AuthResponse, error) {
	var resp AuthResponse
	if err := s.client.postJSON(ctx, "/auth/register", reg, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *AuthService) Me(ctx context.Context) (*Identity, error) {
	var id Identity
	if err := s.client.get(ctx, "/auth/me", nil, &id); err != nil {
		return nil, err
	}
	return &id, nil
}

func (s *AuthService) Refresh(ctx context.Context) (*AuthResponse, error) {
	var resp AuthResponse
	if err := s.client.postJSON(ctx, refreshPath, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *AuthService) Activate(ctx context.Context, token string) error {
	return s.client.get(ctx, "/auth/activate", url.Values{"token": {token}}, nil)
}

func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	return s.client.postJSON(ctx, "/auth/reset-password", body, nil)
}

func (s *AuthService) ValidateResetToken(ctx context.Context, token string) error {
	return s.client.get(ctx, "/auth/reset-password", url.Values{"token": {token}}, nil)
}

type PasswordReset struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

func (s *AuthService) ConfirmPasswordReset(ctx context.Context, reset PasswordReset) error {
	return s.client.postJSON(ctx, "/auth/reset-password/confirm", reset, nil)
}

func (s *AuthService) ResetPassword(ctx context.Context, reset PasswordReset) error {
	return s.client.sendJSON(ctx, http.MethodPut, "/auth/reset-password", nil, reset, nil)
}
