package api

import "context"

type loginRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

// Login exchanges credentials for a session. The identifier may be an email
// address or a normalized phone number; the platform accepts both.
func (c *Client) Login(ctx context.Context, identifier, password string) (*Session, error) {
	var session Session
	if err := c.post(ctx, "/api/v1/auth/login", loginRequest{
		Identifier: identifier,
		Password:   password,
	}, &session); err != nil {
		return nil, err
	}

	c.SetToken(session.Token)
	return &session, nil
}

// Me returns the member behind the current token.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	if err := c.get(ctx, "/api/v1/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Logout revokes the current token server-side. The client keeps working for
// unauthenticated calls afterwards.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.post(ctx, "/api/v1/auth/logout", nil, nil); err != nil {
		return err
	}
	c.token = ""
	return nil
}
