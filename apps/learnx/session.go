package main

import (
	"context"
	"fmt"

	"github.com/learnx/learnx/core"
	"github.com/learnx/learnx/core/session"
)

func (cli *commandLine) loginCmd(ctx context.Context, args []string) error {
	cmd := newFlagSet("login")
	email := cmd.String("email", "", "The account's email. The password will be prompted next.")
	if err := cmd.Parse(args); err != nil {
		return err
	}
	if *email == "" {
		cmd.Usage()
		return errHelp
	}
	pwd, err := promptPassword()
	if err != nil {
		return err
	}
	if pwd == "" {
		cmd.Usage()
		return errHelp
	}

	acct, err := cli.sessions.Login(ctx, *email, pwd)
	if err != nil {
		return err
	}
	fmt.Printf("Signed in as %s (%s)\n", acct.Email, acct.Role)
	return nil
}

func (cli *commandLine) logoutCmd(ctx context.Context) error {
	if err := cli.sessions.Logout(ctx); err != nil {
		return err
	}
	fmt.Println("Signed out")
	return nil
}

func (cli *commandLine) registerCmd(ctx context.Context, args []string) error {
	cmd := newFlagSet("register")
	role := cmd.String("role", "", "student or instructor")
	email := cmd.String("email", "", "The account's email. The password will be prompted next.")
	name := cmd.String("name", "", "Display name (required for instructors)")
	university := cmd.String("university", "", "University (instructors)")
	if err := cmd.Parse(args); err != nil {
		return err
	}
	if *role == "" || *email == "" {
		cmd.Usage()
		return errHelp
	}
	pwd, err := promptPassword()
	if err != nil {
		return err
	}

	reg := session.NewRegistration{
		Email:      *email,
		Password:   pwd,
		Role:       session.ParseRole(*role),
		Name:       *name,
		University: *university,
	}
	acct, err := cli.sessions.Register(ctx, reg)
	if err != nil {
		if fldErrs := core.TranslateError(err); len(fldErrs) > 0 {
			for fld, msg := range fldErrs {
				fmt.Printf("  %s: %s\n", fld, msg)
			}
		}
		return err
	}
	fmt.Printf("Registered %s as %s\n", acct.Email, acct.Role)
	return nil
}

func (cli *commandLine) meCmd(ctx context.Context) error {
	acct, err := cli.requireAccount(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("ID:    %s\n", acct.ID)
	fmt.Printf("Email: %s\n", acct.Email)
	fmt.Printf("Role:  %s\n", acct.Role)
	if acct.Name != "" {
		fmt.Printf("Name:  %s\n", acct.Name)
	}
	return nil
}

// dashboardCmd renders exactly one view per role; an unknown role renders
// none of them and routes back to login.
func (cli *commandLine) dashboardCmd(ctx context.Context) error {
	acct, err := cli.requireAccount(ctx)
	if err != nil {
		return err
	}

	switch acct.Role {
	case session.RoleInstructor:
		return cli.instructorDashboard(ctx)
	case session.RoleStudent:
		return cli.studentDashboard(ctx)
	case session.RoleAdmin:
		fmt.Println("Admin accounts are managed on the backend; no dashboard here.")
		return nil
	case session.RoleUnknown:
		fmt.Println("Account has no recognized role. Run: learnx login -email EMAIL")
		return session.ErrNotAuthenticated
	}
	return nil
}

func (cli *commandLine) instructorDashboard(ctx context.Context) error {
	svc := cli.newInstructorCourses()
	if err := svc.Load(ctx); err != nil {
		return err
	}
	courses := svc.Courses()
	fmt.Printf("Your courses (%d):\n", len(courses))
	for _, c := range courses {
		printCourse(c)
	}
	return nil
}

func (cli *commandLine) studentDashboard(ctx context.Context) error {
	svc := cli.newStudentCourses()
	if err := svc.Load(ctx); err != nil {
		return err
	}
	courses := svc.Courses()
	fmt.Printf("Enrolled courses (%d):\n", len(courses))
	for _, c := range courses {
		printCourse(c)
	}
	return nil
}
