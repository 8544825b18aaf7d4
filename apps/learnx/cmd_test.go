package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learnx/learnx/core"
	"github.com/learnx/learnx/core/chat"
	"github.com/learnx/learnx/core/course"
	"github.com/learnx/learnx/core/enroll"
	"github.com/learnx/learnx/core/learn"
	"github.com/learnx/learnx/core/profile"
	"github.com/learnx/learnx/core/session"
	"github.com/learnx/learnx/core/suggest"
	dummyid "github.com/learnx/learnx/services/identity/dummy"
	logsvc "github.com/learnx/learnx/services/logger"
	notifsvc "github.com/learnx/learnx/services/notifier"
	previewsvc "github.com/learnx/learnx/services/preview"
	statestore "github.com/learnx/learnx/storage/state"
	testutil "github.com/learnx/learnx/tests"
)

func setup(t *testing.T, handler http.Handler) (*commandLine, *dummyid.Service) {
	t.Helper()
	if logger == nil {
		logger = logsvc.NewNopLogger()
	}

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	api := testutil.NewBackendClient(t, srv)

	store := statestore.NewInMemStore()
	notifier := notifsvc.NewSilentService()
	idp := dummyid.NewService()
	sessions := session.NewService(idp, api, store, logger)
	profiles := profile.NewService(api, notifier, logger)

	return &commandLine{
		api:      api,
		store:    store,
		notifier: notifier,
		sessions: sessions,
		profiles: profiles,
		chats:    chat.NewService(api, store, notifier, logger),
		learning: learn.NewService(api, profiles, notifier, logger),
		enrolls:  enroll.NewService(api, notifier, logger),
		overlays: suggest.NewService(api, logger),
		previews: previewsvc.NewServer(core.Conf.Preview),
		newInstructorCourses: func() *course.InstructorService {
			return course.NewInstructorService(api, notifier, logger)
		},
		newStudentCourses: func() *course.StudentService {
			return course.NewStudentService(api, notifier, logger)
		},
	}, idp
}

// loginAs seeds the identity provider and signs in through the login command.
// The handler behind cli must serve /sessionLogin and /me.
func loginAs(t *testing.T, cli *commandLine, idp *dummyid.Service, email string) {
	t.Helper()
	cred, err := session.ParseCredential(
		testutil.MakeIDToken(t, "uid-1", email, time.Now().Add(time.Hour)), "")
	require.NoError(t, err)
	idp.Seed(email, "secret", cred)

	restore := readPasswordFunc
	readPasswordFunc = func(int) ([]byte, error) { return []byte("secret"), nil }
	t.Cleanup(func() { readPasswordFunc = restore })

	require.NoError(t, cli.run([]string{"learnx", "login", "-email", email}))
}

type cliTest struct {
	name    string
	args    []string // without program name
	wantErr error
}

func Test_commandLine_help(t *testing.T) {
	cli, _ := setup(t, http.NewServeMux())

	tests := []cliTest{
		{name: "no subcommand", args: []string{}, wantErr: errHelp},
		{name: "unknown subcommand", args: []string{"lol"}, wantErr: errHelp},
		{name: "login: no email", args: []string{"login"}, wantErr: errHelp},
		{name: "join: no code", args: []string{"join"}, wantErr: errHelp},
		{name: "course: no id", args: []string{"course"}, wantErr: errHelp},
		{name: "upload: no module", args: []string{"upload", "-path", "x.pdf"}, wantErr: errHelp},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := cli.run(append([]string{"learnx"}, tt.args...))
			assert.Equal(t, tt.wantErr, err)
		})
	}
}

func Test_commandLine_gatedWithoutSession(t *testing.T) {
	cli, _ := setup(t, http.NewServeMux())

	for _, args := range [][]string{
		{"me"}, {"dashboard"}, {"courses"},
		{"modules", "-course", "c1"},
		{"join", "-code", "AB-12"},
		{"profile"},
		{"chat", "-m", "hi"},
	} {
		t.Run(args[0], func(t *testing.T) {
			err := cli.run(append([]string{"learnx"}, args...))
			assert.Equal(t, session.ErrNotAuthenticated, err)
		})
	}
}

func Test_commandLine_loginThenMe(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/sessionLogin", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "session", Value: "cookie-1"})
	})
	mux.HandleFunc("/me", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id":"u1","email":"ada@test.cd","role":"instructor","profile":{"name":"Ada"}}`)
	})
	mux.HandleFunc("/instructor/courses", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"id":"c1","title":"Finance 101","code":"FIN101","published":true}]`)
	})
	cli, idp := setup(t, mux)

	cred, err := session.ParseCredential(
		testutil.MakeIDToken(t, "uid-1", "ada@test.cd", time.Now().Add(time.Hour)), "")
	require.NoError(t, err)
	idp.Seed("ada@test.cd", "secret", cred)

	restore := readPasswordFunc
	readPasswordFunc = func(int) ([]byte, error) { return []byte("secret"), nil }
	t.Cleanup(func() { readPasswordFunc = restore })

	require.NoError(t, cli.run([]string{"learnx", "login", "-email", "ada@test.cd"}))
	require.NoError(t, cli.run([]string{"learnx", "me"}))
	require.NoError(t, cli.run([]string{"learnx", "dashboard"}))
}

// one dashboard variant per role value, none for an unrecognized role
func Test_commandLine_dashboardPerRole(t *testing.T) {
	tests := []struct {
		role     string
		wantPath string
		wantErr  error
	}{
		{role: "instructor", wantPath: "/instructor/courses"},
		{role: "student", wantPath: "/student/courses"},
		{role: "admin"},
		{role: "wizard", wantErr: session.ErrNotAuthenticated},
	}
	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			var hits []string
			mux := http.NewServeMux()
			mux.HandleFunc("/sessionLogin", func(w http.ResponseWriter, r *http.Request) {})
			mux.HandleFunc("/me", func(w http.ResponseWriter, r *http.Request) {
				fmt.Fprintf(w, `{"id":"u1","email":"ada@test.cd","role":%q}`, tt.role)
			})
			for _, path := range []string{"/instructor/courses", "/student/courses"} {
				path := path
				mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
					hits = append(hits, path)
					fmt.Fprint(w, `[]`)
				})
			}
			cli, idp := setup(t, mux)
			loginAs(t, cli, idp, "ada@test.cd")

			err := cli.run([]string{"learnx", "dashboard"})
			if tt.wantErr != nil {
				assert.Equal(t, tt.wantErr, err)
			} else {
				require.NoError(t, err)
			}
			if tt.wantPath == "" {
				assert.Empty(t, hits)
			} else {
				assert.Equal(t, []string{tt.wantPath}, hits)
			}
		})
	}
}

// the onboarding prompts are the fixed question set; previously saved answers
// returned by GET /onboarding only prefill them
func Test_commandLine_onboardPrefillsSavedAnswers(t *testing.T) {
	var created map[string]interface{}
	mux := http.NewServeMux()
	mux.HandleFunc("/sessionLogin", func(w http.ResponseWriter, r *http.Request) {})
	mux.HandleFunc("/me", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id":"u1","email":"ada@test.cd","role":"student","profile":{"name":"Ada"}}`)
	})
	mux.HandleFunc("/onboarding", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"name":"Ada","answers":["software engineer","curious"],"quizzes":true}`)
	})
	mux.HandleFunc("/student/profile", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&created))
		fmt.Fprint(w, `{"user_id":"u1","name":"Ada"}`)
	})
	cli, idp := setup(t, mux)
	loginAs(t, cli, idp, "ada@test.cd")

	// blank input keeps the saved answer; the third question gets a new one
	var out bytes.Buffer
	restoreIn, restoreOut := stdin, stdout
	stdin = strings.NewReader("\n\nby doing\n\n\n\n\n\n")
	stdout = &out
	t.Cleanup(func() { stdin, stdout = restoreIn, restoreOut })

	require.NoError(t, cli.run([]string{"learnx", "onboard"}))

	assert.Contains(t, out.String(), "What do you do? [software engineer]")
	assert.Contains(t, out.String(), "How would you describe yourself? [curious]")
	assert.NotContains(t, out.String(), "software engineer\n> ")
	assert.Contains(t, out.String(), "Do you want quizzes? (y/n) [y]")

	require.NotNil(t, created)
	answers, ok := created["onboard_answers"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "software engineer", answers["job"])
	assert.Equal(t, "curious", answers["traits"])
	assert.Equal(t, "by doing", answers["learningStyle"])
	assert.Equal(t, true, created["want_quizzes"])
}

func Test_commandLine_loginBadPassword(t *testing.T) {
	cli, idp := setup(t, http.NewServeMux())

	cred, err := session.ParseCredential(
		testutil.MakeIDToken(t, "uid-1", "ada@test.cd", time.Now().Add(time.Hour)), "")
	require.NoError(t, err)
	idp.Seed("ada@test.cd", "secret", cred)

	restore := readPasswordFunc
	readPasswordFunc = func(int) ([]byte, error) { return []byte("wrong"), nil }
	t.Cleanup(func() { readPasswordFunc = restore })

	err = cli.run([]string{"learnx", "login", "-email", "ada@test.cd"})
	assert.Error(t, err)
}
