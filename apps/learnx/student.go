package main

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/learnx/learnx/core"
	"github.com/learnx/learnx/core/chat"
	"github.com/learnx/learnx/core/enroll"
	"github.com/learnx/learnx/core/profile"
)

func (cli *commandLine) joinCmd(ctx context.Context, args []string) error {
	cmd := newFlagSet("join")
	code := cmd.String("code", "", "Course access code")
	if err := cmd.Parse(args); err != nil {
		return err
	}
	if *code == "" {
		cmd.Usage()
		return errHelp
	}
	if _, err := cli.requireAccount(ctx); err != nil {
		return err
	}

	e, err := cli.enrolls.Join(ctx, enroll.JoinCourse{AccessCode: *code})
	if err != nil {
		for fld, msg := range core.TranslateError(err) {
			fmt.Printf("  %s: %s\n", fld, msg)
		}
		return err
	}
	fmt.Printf("Enrolled (enrollment %s)\n", e.ID)

	// courses render from a fresh fetch, not a local patch
	svc := cli.newStudentCourses()
	if err := svc.Load(ctx); err != nil {
		return err
	}
	for _, c := range svc.Courses() {
		printCourse(c)
	}
	return nil
}

func (cli *commandLine) leaveCmd(ctx context.Context, args []string) error {
	cmd := newFlagSet("leave")
	id := cmd.String("id", "", "Enrollment ID")
	if err := cmd.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		cmd.Usage()
		return errHelp
	}
	if _, err := cli.requireAccount(ctx); err != nil {
		return err
	}
	return cli.enrolls.Leave(ctx, *id)
}

func (cli *commandLine) classmatesCmd(ctx context.Context, args []string) error {
	cmd := newFlagSet("classmates")
	courseID := cmd.String("course", "", "Course ID")
	if err := cmd.Parse(args); err != nil {
		return err
	}
	if *courseID == "" {
		cmd.Usage()
		return errHelp
	}
	if _, err := cli.requireAccount(ctx); err != nil {
		return err
	}

	mates, err := cli.enrolls.Classmates(ctx, *courseID)
	if err != nil {
		return err
	}
	for _, m := range mates {
		fmt.Printf("  %s\n", m.Name)
	}
	return nil
}

// The question set is the client's own; GET /onboarding returns the
// student's previously saved answers (a positional array), not questions.
var onboardingQuestions = []string{
	"What do you do?",
	"How would you describe yourself?",
	"How do you learn best?",
	"How deep should explanations go?",
	"Which topics matter most to you?",
	"What are you interested in outside class?",
	"When do you usually study?",
}

// onboardCmd walks the onboarding questionnaire and saves the answers as the
// student profile. On a re-run the saved answers prefill the prompts; an
// empty input keeps the saved answer.
func (cli *commandLine) onboardCmd(ctx context.Context) error {
	acct, err := cli.requireAccount(ctx)
	if err != nil {
		return err
	}

	var saved profile.Onboarding
	if prev, err := cli.profiles.OnboardingAnswers(ctx); err == nil {
		saved = prev
	}

	reader := bufio.NewReader(stdin)
	ask := func(q, def string) string {
		if def != "" {
			fmt.Fprintf(stdout, "%s [%s]\n> ", q, def)
		} else {
			fmt.Fprintf(stdout, "%s\n> ", q)
		}
		line, _ := reader.ReadString('\n')
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
		return def
	}

	name := acct.Name
	if name == "" {
		name = saved.Name
	}
	if name == "" {
		name = ask("What is your name?", "")
	}
	answers := make([]string, 0, len(onboardingQuestions))
	for i, q := range onboardingQuestions {
		def := ""
		if i < len(saved.Answers) {
			def = saved.Answers[i]
		}
		answers = append(answers, ask(q, def))
	}
	quizDef := "n"
	if saved.Quizzes {
		quizDef = "y"
	}
	wantQuizzes := strings.HasPrefix(strings.ToLower(ask("Do you want quizzes? (y/n)", quizDef)), "y")

	np := profile.NewProfile{
		Name:           name,
		OnboardAnswers: profile.Onboarding{Answers: answers}.ToAnswers(),
		WantQuizzes:    wantQuizzes,
	}
	if _, err := cli.profiles.Submit(ctx, np); err != nil {
		return err
	}
	return nil
}

func (cli *commandLine) profileCmd(ctx context.Context) error {
	if _, err := cli.requireAccount(ctx); err != nil {
		return err
	}
	p, err := cli.profiles.Get(ctx)
	if err != nil {
		fmt.Println("No profile yet. Run: learnx onboard")
		return err
	}
	fmt.Printf("Name:           %s\n", p.Name)
	fmt.Printf("Role:           %s\n", p.OnboardAnswers.Job)
	fmt.Printf("Learning style: %s\n", p.OnboardAnswers.LearningStyle)
	fmt.Printf("Depth:          %s\n", p.OnboardAnswers.Depth)
	fmt.Printf("Interests:      %s\n", p.OnboardAnswers.Interests)
	fmt.Printf("Quizzes:        %t\n", p.WantQuizzes)
	if p.ModelPreference != "" {
		fmt.Printf("Model:          %s\n", p.ModelPreference)
	}
	return nil
}

// chatCmd sends one message to the assistant, resuming the user's remembered
// conversation.
func (cli *commandLine) chatCmd(ctx context.Context, args []string) error {
	cmd := newFlagSet("chat")
	fileID := cmd.String("file", "", "File ID to anchor a new conversation")
	message := cmd.String("m", "", "Message to send")
	if err := cmd.Parse(args); err != nil {
		return err
	}
	if *message == "" {
		cmd.Usage()
		return errHelp
	}
	acct, err := cli.requireAccount(ctx)
	if err != nil {
		return err
	}

	if err := cli.chats.Mount(ctx, acct.UID, *fileID); err != nil {
		return err
	}
	for _, m := range cli.chats.Messages() {
		fmt.Printf("%s: %s\n", m.Role, m.Content)
	}

	if _, err := cli.chats.Send(ctx, *message); err != nil {
		return err
	}
	msgs := cli.chats.Messages()
	if len(msgs) > 0 {
		last := msgs[len(msgs)-1]
		if last.Role == chat.RoleAssistant {
			fmt.Printf("%s: %s\n", last.Role, last.Content)
		}
	}
	return nil
}

func (cli *commandLine) personalizeCmd(ctx context.Context, args []string) error {
	cmd := newFlagSet("personalize")
	fileID := cmd.String("file", "", "Course file ID")
	name := cmd.String("name", "", "Display name of the file")
	if err := cmd.Parse(args); err != nil {
		return err
	}
	if *fileID == "" {
		cmd.Usage()
		return errHelp
	}
	if _, err := cli.requireAccount(ctx); err != nil {
		return err
	}

	pf, err := cli.learning.Personalize(ctx, *fileID, *name)
	if err != nil {
		return err
	}
	_, parsed, err := cli.learning.Read(ctx, pf.ID)
	if err != nil {
		return err
	}
	for _, ch := range parsed.Chapters {
		if ch.Title != "" {
			fmt.Printf("# %s\n", ch.Title)
		}
		if ch.Summary != "" {
			fmt.Println(ch.Summary)
		}
		for _, sub := range ch.Subsections {
			if sub.Title != "" {
				fmt.Printf("## %s\n", sub.Title)
			}
			fmt.Println(sub.Text)
		}
	}
	return nil
}
