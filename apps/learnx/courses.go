package main

import (
	"context"
	"fmt"

	"github.com/learnx/learnx/core"
	"github.com/learnx/learnx/core/course"
	"github.com/learnx/learnx/core/session"
)

func printCourse(c course.Course) {
	status := "draft"
	if c.Published {
		status = "published"
	}
	fmt.Printf("  %s  %-10s %-30s [%s]\n", c.ID, c.Code, c.Title, status)
}

func (cli *commandLine) coursesCmd(ctx context.Context, args []string) error {
	cmd := newFlagSet("courses")
	query := cmd.String("q", "", "Filter by title or code (case-insensitive substring)")
	if err := cmd.Parse(args); err != nil {
		return err
	}
	acct, err := cli.requireAccount(ctx)
	if err != nil {
		return err
	}

	switch acct.Role {
	case session.RoleInstructor:
		svc := cli.newInstructorCourses()
		if err := svc.Load(ctx); err != nil {
			return err
		}
		svc.SetQuery(*query)
		for _, c := range svc.Courses() {
			printCourse(c)
		}
	case session.RoleStudent:
		svc := cli.newStudentCourses()
		if err := svc.Load(ctx); err != nil {
			return err
		}
		svc.SetQuery(*query)
		for _, c := range svc.Courses() {
			printCourse(c)
		}
	case session.RoleAdmin, session.RoleUnknown:
		fmt.Println("No course view for this role.")
	}
	return nil
}

func (cli *commandLine) courseCmd(ctx context.Context, args []string) error {
	cmd := newFlagSet("course")
	id := cmd.String("id", "", "Course ID")
	students := cmd.Bool("students", false, "List enrolled students")
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

	svc := cli.newInstructorCourses()
	details, err := svc.Details(ctx, *id)
	if err != nil {
		return err
	}
	fmt.Printf("%s (%s) - %s, %s\n", details.Title, details.Code, details.Term, details.LastUpdated)
	if details.Description != "" {
		fmt.Println(details.Description)
	}
	fmt.Printf("Access code: %s\n", details.AccessCode)
	fmt.Printf("Students:    %d\n", details.Students)

	if *students {
		rows, err := svc.Students(ctx, *id)
		if err != nil {
			return err
		}
		for _, s := range rows {
			fmt.Printf("  %s  %-25s %-30s enrolled %s (enrollment %s)\n",
				s.ID, s.Name, s.Email, s.EnrolledAt, s.EnrollmentID)
		}
	}
	return nil
}

func (cli *commandLine) addCourseCmd(ctx context.Context, args []string) error {
	cmd := newFlagSet("addcourse")
	title := cmd.String("title", "", "Course title")
	code := cmd.String("code", "", "Course code")
	term := cmd.String("term", "", "Term, e.g. \"Fall 2026\"")
	description := cmd.String("description", "", "Description")
	publish := cmd.Bool("publish", false, "Publish immediately")
	if err := cmd.Parse(args); err != nil {
		return err
	}
	if _, err := cli.requireAccount(ctx); err != nil {
		return err
	}

	svc := cli.newInstructorCourses()
	if err := svc.Load(ctx); err != nil {
		return err
	}
	created, err := svc.Create(ctx, course.NewCourse{
		Title:       *title,
		Code:        *code,
		Term:        *term,
		Description: *description,
		Published:   *publish,
	})
	if err != nil {
		for fld, msg := range core.TranslateError(err) {
			fmt.Printf("  %s: %s\n", fld, msg)
		}
		return err
	}
	fmt.Printf("Created course %s; access code %s\n", created.ID, created.AccessCode)
	return nil
}

func (cli *commandLine) publishCmd(ctx context.Context, args []string) error {
	cmd := newFlagSet("publish")
	id := cmd.String("id", "", "Course ID")
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

	svc := cli.newInstructorCourses()
	if err := svc.Load(ctx); err != nil {
		return err
	}
	if err := svc.TogglePublish(ctx, *id); err != nil {
		return err
	}
	c, err := svc.Get(*id)
	if err != nil {
		return err
	}
	printCourse(c)
	return nil
}

func (cli *commandLine) delCourseCmd(ctx context.Context, args []string) error {
	cmd := newFlagSet("delcourse")
	id := cmd.String("id", "", "Course ID")
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

	svc := cli.newInstructorCourses()
	if err := svc.Load(ctx); err != nil {
		return err
	}
	if err := svc.Delete(ctx, *id); err != nil {
		return err
	}
	fmt.Println("Deleted")
	return nil
}
