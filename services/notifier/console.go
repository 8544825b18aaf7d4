package notifsvc

import (
	"log"
	"sync"

	"github.com/learnx/learnx/core"
)

// Notice is one toast the way the UI would have flashed it.
type Notice struct {
	Level   string
	Message string
}

type ConsoleService struct {
	prefix        string
	disableOutput bool

	mu      sync.Mutex
	notices []Notice
}

var _ core.Notifier = (*ConsoleService)(nil)

func NewConsoleService() *ConsoleService {
	return &ConsoleService{prefix: "[" + core.Conf.AppName + "] "}
}

// NewSilentService records notices without printing; used in tests.
func NewSilentService() *ConsoleService {
	return &ConsoleService{prefix: "[" + core.Conf.AppName + "] ", disableOutput: true}
}

func (svc *ConsoleService) notify(level, msg string) {
	svc.mu.Lock()
	svc.notices = append(svc.notices, Notice{Level: level, Message: msg})
	svc.mu.Unlock()
	if !svc.disableOutput {
		log.Printf("%s%s: %s", svc.prefix, level, msg)
	}
}

func (svc *ConsoleService) Success(msg string) { svc.notify("success", msg) }
func (svc *ConsoleService) Info(msg string)    { svc.notify("info", msg) }
func (svc *ConsoleService) Error(msg string)   { svc.notify("error", msg) }

// Notices returns everything flashed so far, oldest first.
func (svc *ConsoleService) Notices() []Notice {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	out := make([]Notice, len(svc.notices))
	copy(out, svc.notices)
	return out
}

// Reset clears recorded notices between test cases.
func (svc *ConsoleService) Reset() {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	svc.notices = nil
}
