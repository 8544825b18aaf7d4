package profile

import (
	"context"
	"errors"

	"github.com/learnx/learnx/core"
)

var ErrNoProfile = errors.New("no profile on record")

type (
	// Api is the slice of the backend the profile/onboarding views consume.
	Api interface {
		StudentProfile(ctx context.Context) (Profile, error)
		CreateStudentProfile(ctx context.Context, np NewProfile) (Profile, error)
		UpdateStudentProfile(ctx context.Context, fields map[string]interface{}) error
		Onboarding(ctx context.Context) (Onboarding, error)
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

// Get reads the profile once per dashboard mount.
func (svc *Service) Get(ctx context.Context) (Profile, error) {
	p, err := svc.api.StudentProfile(ctx)
	if err != nil {
		svc.logger.Error("loading profile", err)
		return Profile{}, ErrNoProfile
	}
	return p, nil
}

// Submit saves the onboarding answers (first-time POST).
func (svc *Service) Submit(ctx context.Context, np NewProfile) (Profile, error) {
	if err := np.Validate(); err != nil {
		return Profile{}, err
	}
	p, err := svc.api.CreateStudentProfile(ctx, np)
	if err != nil {
		svc.logger.Error("saving onboarding", err)
		svc.notifier.Error("Could not save your answers")
		return Profile{}, err
	}
	svc.notifier.Success("Profile saved")
	return p, nil
}

// Update patches individual profile fields from the settings form. The
// backend merges only what is sent; the caller re-reads afterwards if it
// needs the merged copy.
func (svc *Service) Update(ctx context.Context, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	if name, ok := fields["name"].(string); ok {
		fields["name"] = core.CleanString(name)
	}
	if err := svc.api.UpdateStudentProfile(ctx, fields); err != nil {
		svc.logger.Error("updating profile", err)
		svc.notifier.Error("Could not update profile")
		return err
	}
	svc.notifier.Success("Profile updated")
	return nil
}

// OnboardingAnswers reads the answers-array shape used by the learn views.
func (svc *Service) OnboardingAnswers(ctx context.Context) (Onboarding, error) {
	o, err := svc.api.Onboarding(ctx)
	if err != nil {
		svc.logger.Error("loading onboarding data", err)
		return Onboarding{}, err
	}
	return o, nil
}
