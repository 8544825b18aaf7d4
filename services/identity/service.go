package idsvc

import (
	"bytes"
	"context"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/learnx/learnx/core"
	"github.com/learnx/learnx/core/session"
)

// ErrBadCredentials covers every provider rejection; the UI shows one generic
// message rather than leaking which part was wrong.
var ErrBadCredentials = errors.New("invalid email or password")

// service exchanges email/password for signed ID tokens against the identity
// provider's REST API.
type service struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

var _ session.IdentityProvider = (*service)(nil)

func NewService(conf core.IdentityConfig) session.IdentityProvider {
	return &service{
		baseURL: conf.BaseURL,
		apiKey:  conf.APIKey,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

func (svc *service) SignIn(ctx context.Context, email, password string) (session.Credential, error) {
	return svc.exchange(ctx, "accounts:signInWithPassword", email, password)
}

func (svc *service) SignUp(ctx context.Context, email, password string) (session.Credential, error) {
	return svc.exchange(ctx, "accounts:signUp", email, password)
}

func (svc *service) exchange(ctx context.Context, action, email, password string) (session.Credential, error) {
	in := struct {
		Email             string `json:"email"`
		Password          string `json:"password"`
		ReturnSecureToken bool   `json:"returnSecureToken"`
	}{Email: email, Password: password, ReturnSecureToken: true}
	data, err := json.Marshal(in)
	if err != nil {
		return session.Credential{}, errors.Wrap(err, "encoding request")
	}

	endpoint := svc.baseURL + "/" + action + "?key=" + url.QueryEscape(svc.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(data))
	if err != nil {
		return session.Credential{}, errors.Wrap(err, "creating request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := svc.http.Do(req)
	if err != nil {
		return session.Credential{}, err
	}
	defer resp.Body.Close()
	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return session.Credential{}, errors.Wrap(err, "reading response")
	}
	if resp.StatusCode != http.StatusOK {
		return session.Credential{}, ErrBadCredentials
	}

	var out struct {
		IDToken      string `json:"idToken"`
		RefreshToken string `json:"refreshToken"`
		ExpiresIn    string `json:"expiresIn"`
		LocalID      string `json:"localId"`
		Email        string `json:"email"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return session.Credential{}, errors.Wrap(err, "decoding response")
	}

	cred, err := session.ParseCredential(out.IDToken, out.RefreshToken)
	if err != nil {
		// provider tokens are opaque to us on failure; fall back to the
		// response fields
		cred = session.Credential{IDToken: out.IDToken, RefreshToken: out.RefreshToken}
	}
	if cred.UID == "" {
		cred.UID = out.LocalID
	}
	if cred.Email == "" {
		cred.Email = out.Email
	}
	if cred.ExpiresAt.IsZero() {
		if secs, err := strconv.Atoi(out.ExpiresIn); err == nil && secs > 0 {
			cred.ExpiresAt = time.Now().Add(time.Duration(secs) * time.Second)
		}
	}
	return cred, nil
}
