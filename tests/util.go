package testutil

import (
	"encoding/base64"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/learnx/learnx/backend"
	"github.com/learnx/learnx/core"
)

// NewBackendClient points a real backend client at a test server so tests
// exercise the actual wire paths and shapes.
func NewBackendClient(t *testing.T, srv *httptest.Server) *backend.Client {
	t.Helper()
	client, err := backend.NewClient(core.BackendConfig{
		BaseURL:        srv.URL,
		RequestTimeout: 5 * time.Second,
	})
	if err != nil {
		t.Fatalf("NewBackendClient() failed: %v", err)
	}
	return client
}

// MakeIDToken builds an unsigned provider token with the claims the client
// reads; the client never verifies signatures, so an empty one is fine.
func MakeIDToken(t *testing.T, uid, email string, expiresAt time.Time) string {
	t.Helper()
	encode := func(v interface{}) string {
		data, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("MakeIDToken() failed: %v", err)
		}
		return base64.RawURLEncoding.EncodeToString(data)
	}
	header := encode(map[string]string{"alg": "none", "typ": "JWT"})
	claims := encode(map[string]interface{}{
		"user_id": uid,
		"email":   email,
		"exp":     expiresAt.Unix(),
	})
	return header + "." + claims + "."
}
