package main

import (
	"log"
	"os"

	"github.com/learnx/learnx/backend"
	"github.com/learnx/learnx/core"
	"github.com/learnx/learnx/core/chat"
	"github.com/learnx/learnx/core/course"
	"github.com/learnx/learnx/core/enroll"
	"github.com/learnx/learnx/core/learn"
	"github.com/learnx/learnx/core/profile"
	"github.com/learnx/learnx/core/session"
	"github.com/learnx/learnx/core/suggest"
	idsvc "github.com/learnx/learnx/services/identity"
	logsvc "github.com/learnx/learnx/services/logger"
	notifsvc "github.com/learnx/learnx/services/notifier"
	previewsvc "github.com/learnx/learnx/services/preview"
	statestore "github.com/learnx/learnx/storage/state"
)

var logger core.Logger

func main() {
	defer os.Exit(0)

	std := log.New(os.Stdout, "LEARNX : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	roll := logsvc.NewRollbarLogger(std, core.Conf)
	roll.Enable(core.Conf.RollbarToken != "")
	logger = roll

	store, err := statestore.NewFileStore(core.Conf.StateFile)
	errAndDie(err)

	api, err := backend.NewClient(core.Conf.Backend)
	errAndDie(err)

	notifier := notifsvc.NewConsoleService()
	sessions := session.NewService(idsvc.NewService(core.Conf.Identity), api, store, logger)
	profiles := profile.NewService(api, notifier, logger)

	cli := commandLine{
		api:       api,
		store:     store,
		notifier:  notifier,
		sessions:  sessions,
		profiles:  profiles,
		chats:     chat.NewService(api, store, notifier, logger),
		learning:  learn.NewService(api, profiles, notifier, logger),
		enrolls:   enroll.NewService(api, notifier, logger),
		overlays:  suggest.NewService(api, logger),
		previews:  previewsvc.NewServer(core.Conf.Preview),
		newInstructorCourses: func() *course.InstructorService {
			return course.NewInstructorService(api, notifier, logger)
		},
		newStudentCourses: func() *course.StudentService {
			return course.NewStudentService(api, notifier, logger)
		},
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			std.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err.Error())
	}
}
