package platform

import (
	"context"

	"github.com/wardenhq/wardenctl/internal/access"
)

// LoginRequest carries credentials to the authentication endpoint.
type LoginRequest struct {
	UsernameOrEmail string `json:"usernameOrEmail"`
	Password        string `json:"password"`
}

// TokenPair is the payload of a successful authentication or refresh.
// It carries only tokens; the user profile comes from CurrentUser.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	TokenType    string `json:"tokenType"`
	ExpiresIn    int64  `json:"expiresIn"`
}

// Tenant is the organization context a session is scoped to.
type Tenant struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Slug   string `json:"slug"`
	Domain string `json:"domain,omitempty"`
}

// Profile is the full record of the authenticated user as returned by the
// current-user endpoint.
type Profile struct {
	ID           string         `json:"id"`
	Username     string         `json:"username"`
	Email        string         `json:"email"`
	FullName     string         `json:"fullName"`
	Tenant       Tenant         `json:"tenant"`
	Permissions  []access.Grant `json:"permissions"`
	Roles        []string       `json:"roles"`
	AccessGroups []string       `json:"accessGroups"`
}

// Login authenticates with credentials and returns the token pair.
// It does not set the client token; session establishment decides when the
// token becomes active.
func (c *Client) Login(ctx context.Context, usernameOrEmail, password string) (*TokenPair, error) {
	req := LoginRequest{
		UsernameOrEmail: usernameOrEmail,
		Password:        password,
	}

	resp, err := c.doRequest(ctx, "POST", "/api/auth/login", req)
	if err != nil {
		return nil, err
	}

	var pair TokenPair
	if err := decodeResponse(resp, &pair); err != nil {
		return nil, err
	}
	return &pair, nil
}

// CurrentUser retrieves the profile of the bearer-authenticated user.
func (c *Client) CurrentUser(ctx context.Context) (*Profile, error) {
	resp, err := c.doRequest(ctx, "GET", "/api/auth/me", nil)
	if err != nil {
		return nil, err
	}

	var profile Profile
	if err := decodeResponse(resp, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Refresh exchanges a refresh token for a new token pair.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	req := map[string]string{"refreshToken": refreshToken}

	resp, err := c.doRequest(ctx, "POST", "/api/auth/refresh", req)
	if err != nil {
		return nil, err
	}

	var pair TokenPair
	if err := decodeResponse(resp, &pair); err != nil {
		return nil, err
	}
	return &pair, nil
}
