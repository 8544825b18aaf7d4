package enroll

import "github.com/learnx/learnx/core"

// Enrollment links the student to a course. Deleting it removes the link,
// never the course.
type Enrollment struct {
	ID         string `json:"id"`
	CourseID   string `json:"courseId"`
	EnrolledAt string `json:"enrolledAt"`
}

// Classmate is the anonymized "people" row students see of each other.
type Classmate struct {
	Name string `json:"name"`
}

// JoinCourse carries the shared-secret access code a student submits to
// create an enrollment.
type JoinCourse struct {
	AccessCode string `json:"accessCode" validate:"required,accesscode"`
}

func (jc *JoinCourse) Validate() error {
	jc.AccessCode = core.CleanString(jc.AccessCode)
	return core.Validate.Struct(jc)
}
