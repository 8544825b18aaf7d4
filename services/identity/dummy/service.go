package dummyid

import (
	"context"
	"sync"
	"time"

	"github.com/learnx/learnx/core/session"
	idsvc "github.com/learnx/learnx/services/identity"
)

// Service is an in-memory identity provider for tests: accounts sign up and
// back in without any network, and the "token" is whatever the test seeded.
type Service struct {
	mu       sync.Mutex
	accounts map[string]account
}

type account struct {
	password string
	cred     session.Credential
}

var _ session.IdentityProvider = (*Service)(nil)

func NewService() *Service {
	return &Service{accounts: make(map[string]account)}
}

// Seed registers an account with a ready-made credential.
func (svc *Service) Seed(email, password string, cred session.Credential) {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	svc.accounts[email] = account{password: password, cred: cred}
}

func (svc *Service) SignIn(_ context.Context, email, password string) (session.Credential, error) {
	svc.mu.Lock()
	defer svc.mu.Unlock()
	acct, ok := svc.accounts[email]
	if !ok || acct.password != password {
		return session.Credential{}, idsvc.ErrBadCredentials
	}
	return acct.cred, nil
}

func (svc *Service) SignUp(ctx context.Context, email, password string) (session.Credential, error) {
	svc.mu.Lock()
	cred := session.Credential{
		IDToken:   "token-" + email,
		UID:       "uid-" + email,
		Email:     email,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	svc.accounts[email] = account{password: password, cred: cred}
	svc.mu.Unlock()
	return cred, nil
}
