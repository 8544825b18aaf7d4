package learn

import (
	"context"
	"errors"
	"fmt"

	"github.com/learnx/learnx/core"
	"github.com/learnx/learnx/core/profile"
)

var ErrNotFound = errors.New("personalized file not found")

type (
	// Api is the slice of the backend the personalized-learning views
	// consume.
	Api interface {
		ListPersonalizedFiles(ctx context.Context) ([]PersonalizedFile, error)
		PersonalizedFileContent(ctx context.Context, id string) (PersonalizedFile, []byte, error)
		GeneratePersonalizedFile(ctx context.Context, req GenerateRequest) (PersonalizedFile, error)
	}

	Service struct {
		api      Api
		profiles *profile.Service
		notifier core.Notifier
		logger   core.Logger
	}
)

func NewService(api Api, profiles *profile.Service, notifier core.Notifier, logger core.Logger) *Service {
	return &Service{api: api, profiles: profiles, notifier: notifier, logger: logger}
}

// List returns the student's generated files, newest semantics left to the
// backend's ordering.
func (svc *Service) List(ctx context.Context) ([]PersonalizedFile, error) {
	files, err := svc.api.ListPersonalizedFiles(ctx)
	if err != nil {
		svc.logger.Error("fetching personalized files", err)
		return nil, err
	}
	return files, nil
}

// Read fetches one generated file and parses its content.
func (svc *Service) Read(ctx context.Context, id string) (PersonalizedFile, Content, error) {
	pf, raw, err := svc.api.PersonalizedFileContent(ctx, id)
	if err != nil {
		svc.logger.Error("fetching personalized file", err)
		return PersonalizedFile{}, Content{}, err
	}
	return pf, ParseContent(raw), nil
}

// Personalize returns the generated rendition of a course file, reusing an
// existing one when the student already generated it. Generation runs under
// ctx; cancelling before the backend responds leaves no file behind on the
// client side and surfaces ctx's error.
func (svc *Service) Personalize(ctx context.Context, fileID, fileName string) (PersonalizedFile, error) {
	existing, err := svc.api.ListPersonalizedFiles(ctx)
	if err != nil {
		svc.logger.Error("checking existing personalized files", err)
		return PersonalizedFile{}, err
	}
	for _, pf := range existing {
		if pf.OriginalFileID == fileID {
			return pf, nil
		}
	}

	p, err := svc.profiles.Get(ctx)
	if err != nil {
		svc.notifier.Error("Complete onboarding first")
		return PersonalizedFile{}, err
	}

	req := GenerateRequest{
		Name:   fileName,
		FileID: fileID,
		Message: fmt.Sprintf(
			"Personalize this document for %s, who learns best with a %s approach.",
			p.Name, p.OnboardAnswers.LearningStyle,
		),
		UserProfile: UserProfile{
			Role:            p.OnboardAnswers.Job,
			Traits:          p.OnboardAnswers.Traits,
			LearningStyle:   p.OnboardAnswers.LearningStyle,
			Depth:           p.OnboardAnswers.Depth,
			Interests:       p.OnboardAnswers.Interests,
			Personalization: p.OnboardAnswers.Topics,
			Schedule:        p.OnboardAnswers.Schedule,
		},
	}

	svc.notifier.Info("Personalizing…")
	pf, err := svc.api.GeneratePersonalizedFile(ctx, req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			svc.notifier.Info("Personalization cancelled")
		} else {
			svc.logger.Error("generating personalized file", err)
			svc.notifier.Error("Personalization failed")
		}
		return PersonalizedFile{}, err
	}
	svc.notifier.Success("Ready!")
	return pf, nil
}
