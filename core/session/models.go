package session

import (
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/pkg/errors"

	"github.com/learnx/learnx/core"
)

// Credential is an identity-provider token pair. The IDToken is exchanged for
// a backend session cookie; the client never verifies it, it only reads the
// public claims (the provider signed it, the backend verifies it).
type Credential struct {
	IDToken      string    `json:"idToken"`
	RefreshToken string    `json:"refreshToken,omitempty"`
	UID          string    `json:"uid"`
	Email        string    `json:"email"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

func (c Credential) IsZero() bool { return c.IDToken == "" }

func (c Credential) IsExpired() bool {
	return !c.ExpiresAt.IsZero() && time.Now().After(c.ExpiresAt)
}

// idTokenClaims are the claims we care about in a provider ID token.
type idTokenClaims struct {
	jwt.StandardClaims
	UserID string `json:"user_id,omitempty"`
	Email  string `json:"email,omitempty"`
}

// ParseCredential fills UID/Email/ExpiresAt from the ID token claims.
func ParseCredential(idToken, refreshToken string) (Credential, error) {
	cred := Credential{IDToken: idToken, RefreshToken: refreshToken}

	claims := new(idTokenClaims)
	if _, _, err := new(jwt.Parser).ParseUnverified(idToken, claims); err != nil {
		return Credential{}, errors.Wrap(err, "parsing id token")
	}
	cred.UID = claims.UserID
	if cred.UID == "" {
		cred.UID = claims.Subject
	}
	cred.Email = claims.Email
	if claims.ExpiresAt > 0 {
		cred.ExpiresAt = time.Unix(claims.ExpiresAt, 0)
	}
	return cred, nil
}

// Account is the resolved identity of the signed-in user as the backend sees
// it, plus the provider uid that keys local state.
type Account struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
	UID   string `json:"-"`
	Name  string `json:"-"`
}

// Profile piggybacks on /me; its shape depends on the role, so it is kept
// loose and read defensively.
type Me struct {
	ID      string                 `json:"id"`
	Email   string                 `json:"email"`
	Role    Role                   `json:"role"`
	Profile map[string]interface{} `json:"profile"`
}

// NewRegistration contains information needed to create a new account.
type NewRegistration struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=6"`
	Role       Role   `json:"-"`
	Name       string `json:"name"`
	University string `json:"university"`
}

func (nr *NewRegistration) Validate() error {
	nr.Email = core.CleanString(nr.Email, true /* lower */)
	nr.Name = core.CleanString(nr.Name)
	nr.University = core.CleanString(nr.University)

	switch nr.Role {
	case RoleStudent, RoleInstructor: // pass
	case RoleAdmin, RoleUnknown:
		return core.NewValidationError(ErrBadRegistrationRole,
			core.FieldError{Field: "role", Error: ErrBadRegistrationRole.Error()})
	}
	if nr.Role == RoleInstructor && nr.Name == "" {
		return core.NewValidationError(ErrNameRequired,
			core.FieldError{Field: "name", Error: ErrNameRequired.Error()})
	}
	return core.Validate.Struct(nr)
}
