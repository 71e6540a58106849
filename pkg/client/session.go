package client

import (
	"context"
	"sync"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role,omitempty"`
}

// Session holds the logged-in user. Tokens never refresh; an expired token
// surfaces as a 401 on the next request.
type Session struct {
	client *Client

	mu   sync.RWMutex
	user *User
}

// NewSession restores the user persisted in the client's store, if any.
func NewSession(c *Client) *Session {
	return &Session{client: c, user: c.store.User()}
}

// Login authenticates and persists the token and user. It returns the role
// the account logged in with.
func (s *Session) Login(ctx context.Context, email, password string, role Role) (Role, error) {
	var resp AuthResult
	if err := s.client.post(ctx, "/auth/login", loginRequest{Email: email, Password: password, Role: role}, &resp); err != nil {
		return "", err
	}
	if err := SaveSession(s.client.store, resp.Token, &resp.User); err != nil {
		return "", err
	}

	s.mu.Lock()
	user := resp.User
	s.user = &user
	s.mu.Unlock()
	return resp.User.Role, nil
}

// Logout forgets the token and the user.
func (s *Session) Logout() error {
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
	return ClearSession(s.client.store)
}

// User returns the current user or nil.
func (s *Session) User() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// LoggedIn reports whether a user is set
func (s *Session) LoggedIn() bool {
	return s.User() != nil
}
