package course

import (
	"context"
	"errors"

	"github.com/learnx/learnx/core"
)

var ErrNotFound = errors.New("course not found")

type (
	// InstructorApi is the slice of the backend the instructor course views
	// consume.
	InstructorApi interface {
		ListCourses(ctx context.Context) ([]Course, error)
		CreateCourse(ctx context.Context, nc NewCourse) (Created, error)
		UpdateCourse(ctx context.Context, id string, uc UpdateCourse) error
		SetCoursePublished(ctx context.Context, id string, published bool) error
		DeleteCourse(ctx context.Context, id string) error
		CourseDetails(ctx context.Context, id string) (Details, error)
		CourseStudents(ctx context.Context, id string) ([]EnrolledStudent, error)
		UnenrollStudent(ctx context.Context, enrollmentID string) error
	}

	// InstructorService is the instructor dashboard view-model: fetch on
	// mount, filter in memory, mutate via REST and re-fetch. Re-fetch after
	// every mutation is the normalized contract; nothing is patched locally.
	InstructorService struct {
		api      InstructorApi
		notifier core.Notifier
		logger   core.Logger

		courses []Course
		query   string
	}
)

func NewInstructorService(api InstructorApi, notifier core.Notifier, logger core.Logger) *InstructorService {
	return &InstructorService{api: api, notifier: notifier, logger: logger}
}

// Load fetches the course collection. On failure the previous copy is kept
// and a notice surfaces; there is no retry.
func (svc *InstructorService) Load(ctx context.Context) error {
	courses, err := svc.api.ListCourses(ctx)
	if err != nil {
		svc.logger.Error("fetching courses", err)
		svc.notifier.Error("Could not load courses")
		return err
	}
	svc.courses = courses
	return nil
}

// Courses returns the loaded collection filtered by the current search query.
func (svc *InstructorService) Courses() []Course {
	return Filter(svc.courses, svc.query)
}

func (svc *InstructorService) SetQuery(query string) { svc.query = query }

func (svc *InstructorService) Get(id string) (Course, error) {
	for _, c := range svc.courses {
		if c.ID == id {
			return c, nil
		}
	}
	return Course{}, ErrNotFound
}

func (svc *InstructorService) Create(ctx context.Context, nc NewCourse) (Created, error) {
	if err := nc.Validate(); err != nil {
		return Created{}, err
	}
	created, err := svc.api.CreateCourse(ctx, nc)
	if err != nil {
		svc.logger.Error("creating course", err)
		svc.notifier.Error("Could not create course")
		return Created{}, err
	}
	svc.notifier.Success("Course created")
	return created, svc.Load(ctx)
}

func (svc *InstructorService) Update(ctx context.Context, id string, uc UpdateCourse) error {
	if err := uc.Validate(); err != nil {
		return err
	}
	if err := svc.api.UpdateCourse(ctx, id, uc); err != nil {
		svc.logger.Error("updating course", err)
		svc.notifier.Error("Could not update course")
		return err
	}
	svc.notifier.Success("Course updated")
	return svc.Load(ctx)
}

// TogglePublish flips the published flag of a loaded course.
func (svc *InstructorService) TogglePublish(ctx context.Context, id string) error {
	c, err := svc.Get(id)
	if err != nil {
		return err
	}
	if err := svc.api.SetCoursePublished(ctx, id, !c.Published); err != nil {
		svc.logger.Error("updating publish status", err)
		svc.notifier.Error("Could not update publish status")
		return err
	}
	return svc.Load(ctx)
}

func (svc *InstructorService) Delete(ctx context.Context, id string) error {
	if err := svc.api.DeleteCourse(ctx, id); err != nil {
		svc.logger.Error("deleting course", err)
		svc.notifier.Error("Could not delete course")
		return err
	}
	return svc.Load(ctx)
}

func (svc *InstructorService) Details(ctx context.Context, id string) (Details, error) {
	details, err := svc.api.CourseDetails(ctx, id)
	if err != nil {
		svc.logger.Error("fetching course details", err)
		return Details{}, err
	}
	return details, nil
}

// Students fetches the enrolled students of a course. A malformed response
// falls back to an empty list.
func (svc *InstructorService) Students(ctx context.Context, id string) ([]EnrolledStudent, error) {
	students, err := svc.api.CourseStudents(ctx, id)
	if err != nil {
		svc.logger.Error("fetching enrolled students", err)
		svc.notifier.Error("Could not load students")
		return nil, err
	}
	return students, nil
}

// Unenroll removes a student's enrollment link; the course itself survives.
func (svc *InstructorService) Unenroll(ctx context.Context, enrollmentID string) error {
	if err := svc.api.UnenrollStudent(ctx, enrollmentID); err != nil {
		svc.logger.Error("unenrolling student", err)
		svc.notifier.Error("Could not remove student")
		return err
	}
	svc.notifier.Success("Student removed")
	return nil
}

type (
	// StudentApi is the slice of the backend the student course views consume.
	StudentApi interface {
		ListStudentCourses(ctx context.Context) ([]Course, error)
	}

	// StudentService lists the courses a student is enrolled in. Only
	// published courses render.
	StudentService struct {
		api      StudentApi
		notifier core.Notifier
		logger   core.Logger

		courses []Course
		query   string
	}
)

func NewStudentService(api StudentApi, notifier core.Notifier, logger core.Logger) *StudentService {
	return &StudentService{api: api, notifier: notifier, logger: logger}
}

func (svc *StudentService) Load(ctx context.Context) error {
	courses, err := svc.api.ListStudentCourses(ctx)
	if err != nil {
		svc.logger.Error("fetching courses", err)
		svc.notifier.Error("Could not load courses")
		return err
	}
	svc.courses = courses
	return nil
}

func (svc *StudentService) SetQuery(query string) { svc.query = query }

func (svc *StudentService) Courses() []Course {
	published := make([]Course, 0, len(svc.courses))
	for _, c := range svc.courses {
		if c.Published {
			published = append(published, c)
		}
	}
	return Filter(published, svc.query)
}

func (svc *StudentService) Get(id string) (Course, error) {
	for _, c := range svc.courses {
		if c.ID == id {
			return c, nil
		}
	}
	return Course{}, ErrNotFound
}
