package profile

import "github.com/learnx/learnx/core"

// OnboardingAnswers are the personalization answers collected at onboarding.
type OnboardingAnswers struct {
	Job           string `json:"job"`
	Traits        string `json:"traits"`
	LearningStyle string `json:"learningStyle"`
	Depth         string `json:"depth"`
	Topics        string `json:"topics"`
	Interests     string `json:"interests"`
	Schedule      string `json:"schedule"`
}

// Profile is the student profile as stored by the backend.
type Profile struct {
	UserID          string            `json:"user_id"`
	Name            string            `json:"name"`
	OnboardAnswers  OnboardingAnswers `json:"onboard_answers"`
	WantQuizzes     bool              `json:"want_quizzes"`
	ModelPreference string            `json:"model_preference,omitempty"`
}

// NewProfile contains the onboarding submission.
type NewProfile struct {
	Name           string            `json:"name" validate:"required"`
	OnboardAnswers OnboardingAnswers `json:"onboard_answers"`
	WantQuizzes    bool              `json:"want_quizzes"`
}

func (np *NewProfile) Validate() error {
	np.Name = core.CleanString(np.Name)
	return core.Validate.Struct(np)
}

// Onboarding is the GET /onboarding shape: the answers travel as a
// positional array.
type Onboarding struct {
	Name    string   `json:"name"`
	Answers []string `json:"answers"`
	Quizzes bool     `json:"quizzes"`
}

// ToAnswers maps the positional answers array onto named fields; missing
// positions default to empty strings.
func (o Onboarding) ToAnswers() OnboardingAnswers {
	at := func(i int) string {
		if i < len(o.Answers) {
			return o.Answers[i]
		}
		return ""
	}
	return OnboardingAnswers{
		Job:           at(0),
		Traits:        at(1),
		LearningStyle: at(2),
		Depth:         at(3),
		Topics:        at(4),
		Interests:     at(5),
		Schedule:      at(6),
	}
}
