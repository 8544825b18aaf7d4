package enroll

import (
	"context"

	"github.com/learnx/learnx/core"
)

type (
	// Api is the slice of the backend the enrollment views consume.
	Api interface {
		Enroll(ctx context.Context, jc JoinCourse) (Enrollment, error)
		ListEnrollments(ctx context.Context) ([]Enrollment, error)
		Unenroll(ctx context.Context, enrollmentID string) error
		Classmates(ctx context.Context, courseID string) ([]Classmate, error)
	}

	Service struct {
		api      Api
		notifier core.Notifier
		logger   core.Logger
	}
)

func NewService(api Api, notifier core.Notifier, logger core.Logger) *Service {
	return &Service{api: api, notifier: notifier, logger: logger}
}

// Join submits an access code. The caller re-fetches the student course list
// afterwards; nothing is patched locally.
func (svc *Service) Join(ctx context.Context, jc JoinCourse) (Enrollment, error) {
	if err := jc.Validate(); err != nil {
		return Enrollment{}, err
	}
	e, err := svc.api.Enroll(ctx, jc)
	if err != nil {
		svc.logger.Error("enrolling", err)
		svc.notifier.Error("Invalid access code")
		return Enrollment{}, err
	}
	svc.notifier.Success("Enrolled!")
	return e, nil
}

func (svc *Service) List(ctx context.Context) ([]Enrollment, error) {
	ens, err := svc.api.ListEnrollments(ctx)
	if err != nil {
		svc.logger.Error("fetching enrollments", err)
		return nil, err
	}
	return ens, nil
}

func (svc *Service) Leave(ctx context.Context, enrollmentID string) error {
	if err := svc.api.Unenroll(ctx, enrollmentID); err != nil {
		svc.logger.Error("unenrolling", err)
		svc.notifier.Error("Could not leave course")
		return err
	}
	svc.notifier.Success("Unenrolled")
	return nil
}

// Classmates falls back to an empty list on failure so the people tab
// renders instead of wedging.
func (svc *Service) Classmates(ctx context.Context, courseID string) ([]Classmate, error) {
	mates, err := svc.api.Classmates(ctx, courseID)
	if err != nil {
		svc.logger.Error("fetching classmates", err)
		return []Classmate{}, err
	}
	return mates, nil
}
