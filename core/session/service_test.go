package session_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learnx/learnx/core/session"
	logsvc "github.com/learnx/learnx/services/logger"
	statestore "github.com/learnx/learnx/storage/state"
	testutil "github.com/learnx/learnx/tests"
)

type fakeIdp struct {
	cred    session.Credential
	err     error
	signUps int
}

func (f *fakeIdp) SignIn(context.Context, string, string) (session.Credential, error) {
	return f.cred, f.err
}

func (f *fakeIdp) SignUp(context.Context, string, string) (session.Credential, error) {
	f.signUps++
	return f.cred, f.err
}

type fakeApi struct {
	me        session.Me
	meErr     error
	logins    []string
	logouts   int
	regs      []string // role path used
}

func (f *fakeApi) SessionLogin(_ context.Context, idToken string) error {
	f.logins = append(f.logins, idToken)
	return nil
}

func (f *fakeApi) SessionLogout(context.Context) error {
	f.logouts++
	return nil
}

func (f *fakeApi) Me(context.Context) (session.Me, error) {
	return f.me, f.meErr
}

func (f *fakeApi) RegisterStudent(context.Context, session.NewRegistration, string) error {
	f.regs = append(f.regs, "student")
	return nil
}

func (f *fakeApi) RegisterInstructor(context.Context, session.NewRegistration, string) error {
	f.regs = append(f.regs, "instructor")
	return nil
}

func makeCred(t *testing.T, uid, email string, exp time.Time) session.Credential {
	t.Helper()
	cred, err := session.ParseCredential(testutil.MakeIDToken(t, uid, email, exp), "")
	require.NoError(t, err)
	return cred
}

func TestService_LoginBootstraps(t *testing.T) {
	cred := makeCred(t, "uid-1", "ada@test.cd", time.Now().Add(time.Hour))
	idp := &fakeIdp{cred: cred}
	api := &fakeApi{me: session.Me{
		ID:      "u1",
		Email:   "ada@test.cd",
		Role:    session.RoleStudent,
		Profile: map[string]interface{}{"name": "Ada"},
	}}
	svc := session.NewService(idp, api, statestore.NewInMemStore(), logsvc.NewNopLogger())

	acct, err := svc.Login(context.Background(), "Ada@Test.cd ", "secret")
	require.NoError(t, err)
	assert.Equal(t, "u1", acct.ID)
	assert.Equal(t, session.RoleStudent, acct.Role)
	assert.Equal(t, "uid-1", acct.UID)
	assert.Equal(t, "Ada", acct.Name)
	assert.Equal(t, []string{cred.IDToken}, api.logins)

	got, ok := svc.Account()
	assert.True(t, ok)
	assert.Equal(t, acct, got)
}

func TestService_BootstrapFailureIsTerminal(t *testing.T) {
	cred := makeCred(t, "uid-1", "ada@test.cd", time.Now().Add(time.Hour))
	idp := &fakeIdp{cred: cred}
	api := &fakeApi{meErr: errors.New("401")}
	svc := session.NewService(idp, api, statestore.NewInMemStore(), logsvc.NewNopLogger())

	_, err := svc.Login(context.Background(), "ada@test.cd", "secret")
	assert.Equal(t, session.ErrNotAuthenticated, err)

	_, ok := svc.Account()
	assert.False(t, ok, "no account renders while unauthenticated")
}

func TestService_ResumeWithoutSavedCredential(t *testing.T) {
	svc := session.NewService(&fakeIdp{}, &fakeApi{}, statestore.NewInMemStore(), logsvc.NewNopLogger())
	_, err := svc.Resume(context.Background())
	assert.Equal(t, session.ErrNotAuthenticated, err)
}

func TestService_ResumeExpiredCredential(t *testing.T) {
	cred := makeCred(t, "uid-1", "ada@test.cd", time.Now().Add(-time.Hour))
	idp := &fakeIdp{cred: cred}
	api := &fakeApi{me: session.Me{ID: "u1", Role: session.RoleStudent}}
	store := statestore.NewInMemStore()
	svc := session.NewService(idp, api, store, logsvc.NewNopLogger())

	// login persists the credential even though it is already stale
	_, err := svc.Login(context.Background(), "ada@test.cd", "secret")
	require.NoError(t, err)

	svc2 := session.NewService(idp, api, store, logsvc.NewNopLogger())
	_, err = svc2.Resume(context.Background())
	assert.Equal(t, session.ErrNotAuthenticated, err)
}

func TestService_ResumeRoundTrip(t *testing.T) {
	cred := makeCred(t, "uid-1", "ada@test.cd", time.Now().Add(time.Hour))
	idp := &fakeIdp{cred: cred}
	api := &fakeApi{me: session.Me{ID: "u1", Email: "ada@test.cd", Role: session.RoleInstructor}}
	store := statestore.NewInMemStore()

	svc := session.NewService(idp, api, store, logsvc.NewNopLogger())
	_, err := svc.Login(context.Background(), "ada@test.cd", "secret")
	require.NoError(t, err)

	// a fresh service (new process) resumes from the saved credential
	svc2 := session.NewService(idp, api, store, logsvc.NewNopLogger())
	acct, err := svc2.Resume(context.Background())
	require.NoError(t, err)
	assert.Equal(t, session.RoleInstructor, acct.Role)
}

func TestService_LogoutDropsCredential(t *testing.T) {
	cred := makeCred(t, "uid-1", "ada@test.cd", time.Now().Add(time.Hour))
	idp := &fakeIdp{cred: cred}
	api := &fakeApi{me: session.Me{ID: "u1", Role: session.RoleStudent}}
	store := statestore.NewInMemStore()
	svc := session.NewService(idp, api, store, logsvc.NewNopLogger())

	_, err := svc.Login(context.Background(), "ada@test.cd", "secret")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background()))
	assert.Equal(t, 1, api.logouts)

	_, ok := svc.Account()
	assert.False(t, ok)

	_, err = svc.Resume(context.Background())
	assert.Equal(t, session.ErrNotAuthenticated, err)
}

func TestService_RegisterRoles(t *testing.T) {
	tests := []struct {
		name     string
		reg      session.NewRegistration
		wantErr  error
		wantPath string
	}{
		{
			name:     "student",
			reg:      session.NewRegistration{Email: "s@test.cd", Password: "secret1", Role: session.RoleStudent},
			wantPath: "student",
		},
		{
			name:     "instructor",
			reg:      session.NewRegistration{Email: "i@test.cd", Password: "secret1", Role: session.RoleInstructor, Name: "Prof"},
			wantPath: "instructor",
		},
		{
			name:    "instructor without name",
			reg:     session.NewRegistration{Email: "i@test.cd", Password: "secret1", Role: session.RoleInstructor},
			wantErr: session.ErrNameRequired,
		},
		{
			name:    "admin refused",
			reg:     session.NewRegistration{Email: "a@test.cd", Password: "secret1", Role: session.RoleAdmin},
			wantErr: session.ErrBadRegistrationRole,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cred := makeCred(t, "uid-1", tt.reg.Email, time.Now().Add(time.Hour))
			idp := &fakeIdp{cred: cred}
			api := &fakeApi{me: session.Me{ID: "u1", Role: tt.reg.Role}}
			svc := session.NewService(idp, api, statestore.NewInMemStore(), logsvc.NewNopLogger())

			_, err := svc.Register(context.Background(), tt.reg)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v, want %v", err, tt.wantErr)
				assert.Empty(t, api.regs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []string{tt.wantPath}, api.regs)
		})
	}
}
