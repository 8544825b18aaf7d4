package backend

import (
	"context"

	"github.com/learnx/learnx/core/profile"
)

var _ profile.Api = (*Client)(nil)

func (c *Client) StudentProfile(ctx context.Context) (profile.Profile, error) {
	var p profile.Profile
	err := c.get(ctx, "/student/profile", &p)
	return p, err
}

func (c *Client) CreateStudentProfile(ctx context.Context, np profile.NewProfile) (profile.Profile, error) {
	var p profile.Profile
	err := c.post(ctx, "/student/profile", np, &p)
	return p, err
}

// UpdateStudentProfile patches only the given fields; the backend merges.
func (c *Client) UpdateStudentProfile(ctx context.Context, fields map[string]interface{}) error {
	return c.patch(ctx, "/student/profile", fields, nil)
}

func (c *Client) Onboarding(ctx context.Context) (profile.Onboarding, error) {
	var o profile.Onboarding
	err := c.get(ctx, "/onboarding", &o)
	return o, err
}
