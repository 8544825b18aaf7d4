package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"syscall"

	"golang.org/x/term"

	"github.com/learnx/learnx/backend"
	"github.com/learnx/learnx/core"
	"github.com/learnx/learnx/core/chat"
	"github.com/learnx/learnx/core/course"
	"github.com/learnx/learnx/core/enroll"
	"github.com/learnx/learnx/core/learn"
	"github.com/learnx/learnx/core/profile"
	"github.com/learnx/learnx/core/session"
	"github.com/learnx/learnx/core/suggest"
	notifsvc "github.com/learnx/learnx/services/notifier"
	previewsvc "github.com/learnx/learnx/services/preview"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	// prompt I/O, swapped out by tests
	stdin  io.Reader = os.Stdin
	stdout io.Writer = os.Stdout

	errHelp = errors.New("help provided")
)

type commandLine struct {
	api      *backend.Client
	store    core.KVStore
	notifier *notifsvc.ConsoleService
	sessions *session.Service
	profiles *profile.Service
	chats    *chat.Service
	learning *learn.Service
	enrolls  *enroll.Service
	overlays *suggest.Service
	previews previewsvc.Server

	newInstructorCourses func() *course.InstructorService
	newStudentCourses    func() *course.StudentService
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  login -email EMAIL                          - sign in (password prompted)")
	fmt.Println("  logout                                      - sign out and drop the saved session")
	fmt.Println("  register -role student|instructor -email EMAIL [-name NAME] [-university UNIVERSITY]")
	fmt.Println("  me                                          - show the signed-in account")
	fmt.Println("  dashboard                                   - open the role's dashboard")
	fmt.Println("  courses [-q QUERY]                          - list courses")
	fmt.Println("  course -id ID [-students]                   - course details (instructor)")
	fmt.Println("  addcourse -title TITLE -code CODE -term TERM [-description DESC] [-publish]")
	fmt.Println("  publish -id ID                              - toggle a course's published flag")
	fmt.Println("  delcourse -id ID                            - delete a course")
	fmt.Println("  modules -course ID                          - list a course's modules and files")
	fmt.Println("  addmodule -course ID -title TITLE           - add a module")
	fmt.Println("  delmodule -id ID                            - delete a module")
	fmt.Println("  upload -module ID -path PATH [-title TITLE] - upload a file")
	fmt.Println("  delfile -module ID -id ID                   - delete a file")
	fmt.Println("  preview -file ID                            - serve a file over loopback")
	fmt.Println("  join -code ACCESSCODE                       - enroll with an access code")
	fmt.Println("  leave -id ENROLLMENTID                      - drop an enrollment")
	fmt.Println("  classmates -course ID                       - list classmates")
	fmt.Println("  onboard                                     - answer the onboarding questions")
	fmt.Println("  profile                                     - show the student profile")
	fmt.Println("  chat [-file ID] -m MESSAGE                  - talk to the course assistant")
	fmt.Println("  personalize -file ID -name NAME             - generate a personalized rendition")
	fmt.Println("  suggestions -file PERSONALIZEDFILEID        - review suggested edits")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	ctx, cancel := context.WithTimeout(context.Background(), core.Conf.Backend.RequestTimeout)
	defer cancel()

	switch args[1] {
	case "login":
		return cli.loginCmd(ctx, args[2:])
	case "logout":
		return cli.logoutCmd(ctx)
	case "register":
		return cli.registerCmd(ctx, args[2:])
	case "me":
		return cli.meCmd(ctx)
	case "dashboard":
		return cli.dashboardCmd(ctx)
	case "courses":
		return cli.coursesCmd(ctx, args[2:])
	case "course":
		return cli.courseCmd(ctx, args[2:])
	case "addcourse":
		return cli.addCourseCmd(ctx, args[2:])
	case "publish":
		return cli.publishCmd(ctx, args[2:])
	case "delcourse":
		return cli.delCourseCmd(ctx, args[2:])
	case "modules":
		return cli.modulesCmd(ctx, args[2:])
	case "addmodule":
		return cli.addModuleCmd(ctx, args[2:])
	case "delmodule":
		return cli.delModuleCmd(ctx, args[2:])
	case "upload":
		return cli.uploadCmd(ctx, args[2:])
	case "delfile":
		return cli.delFileCmd(ctx, args[2:])
	case "preview":
		return cli.previewCmd(ctx, args[2:])
	case "join":
		return cli.joinCmd(ctx, args[2:])
	case "leave":
		return cli.leaveCmd(ctx, args[2:])
	case "classmates":
		return cli.classmatesCmd(ctx, args[2:])
	case "onboard":
		return cli.onboardCmd(ctx)
	case "profile":
		return cli.profileCmd(ctx)
	case "chat":
		return cli.chatCmd(ctx, args[2:])
	case "personalize":
		return cli.personalizeCmd(ctx, args[2:])
	case "suggestions":
		return cli.suggestionsCmd(ctx, args[2:])
	default:
		cli.printUsage()
		return errHelp
	}
}

// requireAccount resumes the saved session; without one every gated command
// routes to the login hint, the CLI's stand-in for the login redirect.
func (cli *commandLine) requireAccount(ctx context.Context) (session.Account, error) {
	acct, err := cli.sessions.Resume(ctx)
	if err != nil {
		if errors.Is(err, session.ErrNotAuthenticated) {
			fmt.Println("Not signed in. Run: learnx login -email EMAIL")
		}
		return session.Account{}, err
	}
	return acct, nil
}

func promptPassword() (string, error) {
	fmt.Print("Enter password:")
	pwd, err := readPasswordFunc(syscall.Stdin)
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(pwd), nil
}

func newFlagSet(name string) *flag.FlagSet {
	return flag.NewFlagSet(name, flag.ExitOnError)
}
