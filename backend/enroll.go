package backend

import (
	"context"
	"fmt"

	"github.com/learnx/learnx/core/enroll"
)

var _ enroll.Api = (*Client)(nil)

func (c *Client) Enroll(ctx context.Context, jc enroll.JoinCourse) (enroll.Enrollment, error) {
	var e enroll.Enrollment
	err := c.post(ctx, "/student/enrollments", jc, &e)
	return e, err
}

func (c *Client) ListEnrollments(ctx context.Context) ([]enroll.Enrollment, error) {
	var ens []enroll.Enrollment
	err := c.get(ctx, "/student/enrollments", &ens)
	return ens, err
}

func (c *Client) Unenroll(ctx context.Context, enrollmentID string) error {
	return c.delete(ctx, fmt.Sprintf("/student/enrollments/%s", enrollmentID))
}

func (c *Client) Classmates(ctx context.Context, courseID string) ([]enroll.Classmate, error) {
	var mates []enroll.Classmate
	err := c.get(ctx, fmt.Sprintf("/student/courses/%s/classmates", courseID), &mates)
	return mates, err
}
