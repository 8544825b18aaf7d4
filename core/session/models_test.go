package session_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/learnx/learnx/core/session"
	testutil "github.com/learnx/learnx/tests"
)

func TestParseCredential(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token := testutil.MakeIDToken(t, "uid-42", "ada@test.cd", exp)

	cred, err := session.ParseCredential(token, "refresh-1")
	require.NoError(t, err)
	assert.Equal(t, "uid-42", cred.UID)
	assert.Equal(t, "ada@test.cd", cred.Email)
	assert.Equal(t, "refresh-1", cred.RefreshToken)
	assert.Equal(t, exp.Unix(), cred.ExpiresAt.Unix())
	assert.False(t, cred.IsZero())
	assert.False(t, cred.IsExpired())
}

func TestParseCredential_Garbage(t *testing.T) {
	_, err := session.ParseCredential("not-a-token", "")
	assert.Error(t, err)
}

func TestCredential_IsExpired(t *testing.T) {
	assert.False(t, session.Credential{IDToken: "x"}.IsExpired(), "no expiry means not expired")
	assert.True(t, session.Credential{IDToken: "x", ExpiresAt: time.Now().Add(-time.Minute)}.IsExpired())
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		in   string
		want session.Role
	}{
		{"student", session.RoleStudent},
		{"instructor", session.RoleInstructor},
		{"admin", session.RoleAdmin},
		{"", session.RoleUnknown},
		{"superuser", session.RoleUnknown},
		{"Student", session.RoleUnknown}, // backend roles are lowercase
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, session.ParseRole(tt.in), "ParseRole(%q)", tt.in)
	}
}

func TestRole_JSON(t *testing.T) {
	data, err := json.Marshal(session.RoleInstructor)
	require.NoError(t, err)
	assert.Equal(t, `"instructor"`, string(data))

	var r session.Role
	require.NoError(t, json.Unmarshal([]byte(`"student"`), &r))
	assert.Equal(t, session.RoleStudent, r)

	require.NoError(t, json.Unmarshal([]byte(`"proctor"`), &r))
	assert.Equal(t, session.RoleUnknown, r)
}
