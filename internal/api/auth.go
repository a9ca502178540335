package api

import (
	"context"
	"net/http"

	"github.com/padhusmiler/mstex/internal/domain"
)

// TokenResponse is what register and login return.
type TokenResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

type registerRequest struct {
	domain.Profile
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *Client) Register(ctx context.Context, profile domain.Profile, password string) (*TokenResponse, error) {
	var out TokenResponse
	err := c.do(ctx, http.MethodPost, "/auth/register", "", nil, registerRequest{Profile: profile, Password: password}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*TokenResponse, error) {
	var out TokenResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", "", nil, loginRequest{Email: email, Password: password}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Profile(ctx context.Context, token string) (*domain.User, error) {
	var out domain.User
	if err := c.do(ctx, http.MethodGet, "/auth/profile", token, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProfile(ctx context.Context, token string, profile domain.Profile) (*domain.User, error) {
	var out domain.User
	if err := c.do(ctx, http.MethodPut, "/auth/profile", token, nil, profile, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
