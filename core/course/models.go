package course

import (
	"strings"

	"github.com/learnx/learnx/core"
)

// Course as returned by the course list endpoints. The backend owns it; the
// client only ever holds a refetchable copy.
type Course struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Code        string `json:"code"`
	Term        string `json:"term,omitempty"`
	Published   bool   `json:"published"`
	LastUpdated string `json:"last_updated,omitempty"`
}

// Details is the richer single-course shape; note the backend switches to
// camelCase here and adds the access code and the enrolled head count.
type Details struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Code        string `json:"code"`
	Term        string `json:"term,omitempty"`
	Published   bool   `json:"published"`
	LastUpdated string `json:"lastUpdated,omitempty"`
	AccessCode  string `json:"accessCode,omitempty"`
	Students    int    `json:"students"`
}

// Created is the POST /instructor/courses response; the generated access code
// only travels back here and on the details endpoint.
type Created struct {
	ID         string `json:"id"`
	AccessCode string `json:"accessCode"`
}

// EnrolledStudent is one row of the instructor "people" tab.
type EnrolledStudent struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	EnrolledAt   string `json:"enrolledAt"`
	EnrollmentID string `json:"enrollmentId"`
}

// NewCourse contains information needed to create a new Course.
type NewCourse struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Code        string `json:"code" validate:"required"`
	Term        string `json:"term" validate:"required"`
	Published   bool   `json:"published"`
}

func (nc *NewCourse) Validate() error {
	nc.Title = core.CleanString(nc.Title)
	nc.Description = core.CleanString(nc.Description)
	nc.Code = core.CleanString(nc.Code)
	nc.Term = core.CleanString(nc.Term)
	return core.Validate.Struct(nc)
}

// UpdateCourse defines what may be provided to modify an existing Course.
// The backend PATCH takes the full editable field set.
type UpdateCourse struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Code        string `json:"code" validate:"required"`
	Term        string `json:"term" validate:"required"`
	Published   bool   `json:"published"`
}

func (uc *UpdateCourse) Validate() error {
	uc.Title = core.CleanString(uc.Title)
	uc.Description = core.CleanString(uc.Description)
	uc.Code = core.CleanString(uc.Code)
	uc.Term = core.CleanString(uc.Term)
	return core.Validate.Struct(uc)
}

// Filter returns the courses whose title or code contains `query`
// case-insensitively. Entries without a title and code are dropped the way
// the original view drops malformed rows.
func Filter(courses []Course, query string) []Course {
	query = strings.ToLower(core.CleanString(query))
	out := make([]Course, 0, len(courses))
	for _, c := range courses {
		if c.Title == "" && c.Code == "" {
			continue
		}
		if query == "" ||
			strings.Contains(strings.ToLower(c.Title), query) ||
			strings.Contains(strings.ToLower(c.Code), query) {
			out = append(out, c)
		}
	}
	return out
}
