package api

import (
	"context"
	"net/http"
)

// Role is a backend user role. It decides which command groups a session may
// reach; the backend enforces the same boundary server-side.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleBpoAgent Role = "BPO_AGENT"
	RoleCustomer Role = "CUSTOMER"
)

// User is the profile attached to an authenticated session.
type User struct {
	UserID   string `json:"userId,omitempty"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"fullName,omitempty"`
	Role     Role   `json:"role"`
}

// LoginRequest authenticates by username and password.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest creates a new customer account.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName,omitempty"`
}

// AuthResponse is returned by login and register: the bearer token plus the
// authenticated user's profile.
type AuthResponse struct {
	JwtToken string `json:"jwtToken"`
	User     User   `json:"user"`
}

// Login exchanges credentials for a session token.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates an account and returns a ready-to-use session.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Profile returns the profile of the current session's user.
func (c *Client) Profile(ctx context.Context) (*User, error) {
	var user User
	if err := c.get(ctx, "/api/auth/profile", &user); err != nil {
		return nil, err
	}
	return &user, nil
}
