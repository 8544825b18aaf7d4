package session

import (
	"context"
	"errors"

	pkgerrors "github.com/pkg/errors"

	"github.com/learnx/learnx/core"
)

var (
	// errors
	ErrNotAuthenticated    = errors.New("not authenticated")
	ErrBadRegistrationRole = errors.New("registration must be for a student or an instructor")
	ErrNameRequired        = errors.New("name is required for instructors")
)

const credentialStateKey = "credential"

type (
	// IdentityProvider exchanges raw credentials for signed ID tokens. The
	// backend only ever sees the token.
	IdentityProvider interface {
		SignIn(ctx context.Context, email, password string) (Credential, error)
		SignUp(ctx context.Context, email, password string) (Credential, error)
	}

	// Api is the slice of the backend the session flow needs.
	Api interface {
		SessionLogin(ctx context.Context, idToken string) error
		SessionLogout(ctx context.Context) error
		Me(ctx context.Context) (Me, error)
		RegisterStudent(ctx context.Context, reg NewRegistration, idToken string) error
		RegisterInstructor(ctx context.Context, reg NewRegistration, idToken string) error
	}

	Service struct {
		idp    IdentityProvider
		api    Api
		store  core.KVStore
		logger core.Logger

		account *Account
		cred    Credential
	}
)

func NewService(idp IdentityProvider, api Api, store core.KVStore, logger core.Logger) *Service {
	return &Service{idp: idp, api: api, store: store, logger: logger}
}

// Login signs in with the identity provider, exchanges the ID token for a
// backend session cookie and resolves the account.
func (svc *Service) Login(ctx context.Context, email, password string) (Account, error) {
	email = core.CleanString(email, true /* lower */)

	cred, err := svc.idp.SignIn(ctx, email, password)
	if err != nil {
		return Account{}, err
	}
	return svc.establish(ctx, cred)
}

// Register creates the account with the identity provider and the backend,
// then establishes a session, matching the original sign-up flow.
func (svc *Service) Register(ctx context.Context, reg NewRegistration) (Account, error) {
	if err := reg.Validate(); err != nil {
		return Account{}, err
	}

	cred, err := svc.idp.SignUp(ctx, reg.Email, reg.Password)
	if err != nil {
		return Account{}, err
	}

	switch reg.Role {
	case RoleStudent:
		err = svc.api.RegisterStudent(ctx, reg, cred.IDToken)
	case RoleInstructor:
		err = svc.api.RegisterInstructor(ctx, reg, cred.IDToken)
	case RoleAdmin, RoleUnknown:
		return Account{}, ErrBadRegistrationRole
	}
	if err != nil {
		return Account{}, pkgerrors.Wrap(err, "registering account")
	}
	return svc.establish(ctx, cred)
}

func (svc *Service) establish(ctx context.Context, cred Credential) (Account, error) {
	if err := svc.api.SessionLogin(ctx, cred.IDToken); err != nil {
		return Account{}, pkgerrors.Wrap(err, "establishing session")
	}
	svc.cred = cred
	if err := svc.saveCredential(cred); err != nil {
		svc.logger.Warn("saving credential", err)
	}
	return svc.Bootstrap(ctx)
}

// Bootstrap resolves the current identity (/me). A single failed attempt is
// terminal for this load: the caller routes to the login view on
// ErrNotAuthenticated. No retry.
func (svc *Service) Bootstrap(ctx context.Context) (Account, error) {
	me, err := svc.api.Me(ctx)
	if err != nil {
		svc.account = nil
		svc.logger.Debug("session bootstrap failed", err)
		return Account{}, ErrNotAuthenticated
	}

	acct := Account{
		ID:    me.ID,
		Email: me.Email,
		Role:  me.Role,
		UID:   svc.cred.UID,
	}
	if name, ok := me.Profile["name"].(string); ok {
		acct.Name = name
	}
	svc.account = &acct
	return acct, nil
}

// Resume restores a saved credential (if any) so Bootstrap can run without a
// fresh login. The session cookie itself lives in the HTTP client's jar; an
// expired one simply makes Bootstrap fail into the login flow.
func (svc *Service) Resume(ctx context.Context) (Account, error) {
	cred, ok, err := svc.loadCredential()
	if err != nil {
		return Account{}, err
	}
	if !ok || cred.IsZero() {
		return Account{}, ErrNotAuthenticated
	}
	if cred.IsExpired() {
		return Account{}, ErrNotAuthenticated
	}
	return svc.establish(ctx, cred)
}

// Logout destroys the backend session and drops the saved credential. The
// chat-id cache is deliberately left alone; it is keyed per uid and reused on
// the next login.
func (svc *Service) Logout(ctx context.Context) error {
	if err := svc.api.SessionLogout(ctx); err != nil {
		svc.logger.Warn("backend logout failed", err)
	}
	svc.account = nil
	svc.cred = Credential{}
	return svc.store.Delete("", credentialStateKey)
}

// Account returns the resolved account, or false before a successful
// Bootstrap (the "unknown / loading" state).
func (svc *Service) Account() (Account, bool) {
	if svc.account == nil {
		return Account{}, false
	}
	return *svc.account, true
}

func (svc *Service) Credential() Credential { return svc.cred }

func (svc *Service) saveCredential(cred Credential) error {
	data, err := marshalCredential(cred)
	if err != nil {
		return err
	}
	return svc.store.Set("", credentialStateKey, data)
}

func (svc *Service) loadCredential() (Credential, bool, error) {
	data, ok, err := svc.store.Get("", credentialStateKey)
	if err != nil || !ok {
		return Credential{}, false, err
	}
	cred, err := unmarshalCredential(data)
	if err != nil {
		// a corrupt entry is as good as no entry
		svc.logger.Warn("dropping corrupt saved credential", err)
		_ = svc.store.Delete("", credentialStateKey)
		return Credential{}, false, nil
	}
	return cred, true, nil
}
