package backend

import (
	"context"
	"fmt"

	"github.com/learnx/learnx/core/course"
)

var (
	_ course.InstructorApi = (*Client)(nil)
	_ course.StudentApi    = (*Client)(nil)
)

func (c *Client) ListCourses(ctx context.Context) ([]course.Course, error) {
	var courses []course.Course
	err := c.get(ctx, "/instructor/courses", &courses)
	return courses, err
}

func (c *Client) CreateCourse(ctx context.Context, nc course.NewCourse) (course.Created, error) {
	var created course.Created
	err := c.post(ctx, "/instructor/courses", nc, &created)
	return created, err
}

func (c *Client) UpdateCourse(ctx context.Context, id string, uc course.UpdateCourse) error {
	return c.patch(ctx, fmt.Sprintf("/instructor/courses/%s", id), uc, nil)
}

// SetCoursePublished flips only the published flag; the backend PATCH merges
// fields, so nothing else is sent.
func (c *Client) SetCoursePublished(ctx context.Context, id string, published bool) error {
	in := struct {
		Published bool `json:"published"`
	}{Published: published}
	return c.patch(ctx, fmt.Sprintf("/instructor/courses/%s", id), in, nil)
}

func (c *Client) DeleteCourse(ctx context.Context, id string) error {
	return c.delete(ctx, fmt.Sprintf("/instructor/courses/%s", id))
}

func (c *Client) CourseDetails(ctx context.Context, id string) (course.Details, error) {
	var details course.Details
	err := c.get(ctx, fmt.Sprintf("/instructor/courses/%s/details", id), &details)
	return details, err
}

func (c *Client) CourseStudents(ctx context.Context, id string) ([]course.EnrolledStudent, error) {
	var students []course.EnrolledStudent
	err := c.get(ctx, fmt.Sprintf("/instructor/courses/%s/students", id), &students)
	return students, err
}

func (c *Client) UnenrollStudent(ctx context.Context, enrollmentID string) error {
	return c.delete(ctx, fmt.Sprintf("/instructor/enrollments/%s", enrollmentID))
}

func (c *Client) ListStudentCourses(ctx context.Context) ([]course.Course, error) {
	var courses []course.Course
	err := c.get(ctx, "/student/courses", &courses)
	return courses, err
}
