package backend

import (
	"context"

	"github.com/learnx/learnx/core/session"
)

var _ session.Api = (*Client)(nil)

// SessionLogin exchanges a provider ID token for the session cookie.
func (c *Client) SessionLogin(ctx context.Context, idToken string) error {
	in := struct {
		IDToken string `json:"idToken"`
	}{IDToken: idToken}
	return c.post(ctx, "/sessionLogin", in, nil)
}

func (c *Client) SessionLogout(ctx context.Context) error {
	return c.post(ctx, "/sessionLogout", nil, nil)
}

// Me resolves the identity behind the session cookie.
func (c *Client) Me(ctx context.Context) (session.Me, error) {
	var me session.Me
	err := c.get(ctx, "/me", &me)
	return me, err
}

type registration struct {
	IDToken    string `json:"idToken"`
	Email      string `json:"email"`
	Name       string `json:"name,omitempty"`
	University string `json:"university,omitempty"`
}

func (c *Client) RegisterStudent(ctx context.Context, reg session.NewRegistration, idToken string) error {
	in := registration{IDToken: idToken, Email: reg.Email, Name: reg.Name, University: reg.University}
	return c.post(ctx, "/register/student", in, nil)
}

func (c *Client) RegisterInstructor(ctx context.Context, reg session.NewRegistration, idToken string) error {
	in := registration{IDToken: idToken, Email: reg.Email, Name: reg.Name, University: reg.University}
	return c.post(ctx, "/register/instructor", in, nil)
}
