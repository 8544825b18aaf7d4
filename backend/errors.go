package backend

import (
	"encoding/json"
	"fmt"
	"net/http"

	pkgerrors "github.com/pkg/errors"
)

// Error is a non-2xx answer from the Learn-X API. Bodies are {"error": "..."}
// JSON; anything else is kept verbatim as the message.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("learnx: %s", http.StatusText(e.StatusCode))
	}
	return fmt.Sprintf("learnx: %s (%s)", e.Message, http.StatusText(e.StatusCode))
}

func (e *Error) IsAuthFailure() bool { return e.StatusCode == http.StatusUnauthorized }
func (e *Error) IsForbidden() bool   { return e.StatusCode == http.StatusForbidden }
func (e *Error) IsNotFound() bool    { return e.StatusCode == http.StatusNotFound }
func (e *Error) IsValidation() bool  { return e.StatusCode == http.StatusBadRequest }

func newError(statusCode int, body []byte) *Error {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	msg := ""
	if err := json.Unmarshal(body, &payload); err == nil {
		msg = payload.Error
		if msg == "" {
			msg = payload.Message
		}
	}
	if msg == "" {
		msg = string(body)
	}
	return &Error{StatusCode: statusCode, Message: msg}
}

// IsAuthFailure reports whether err is a backend 401, the signal that routes
// the app back to the login view. Wrapped errors are unwrapped to their cause.
func IsAuthFailure(err error) bool {
	e, ok := pkgerrors.Cause(err).(*Error)
	return ok && e.IsAuthFailure()
}

// IsNotFound reports whether err is a backend 404.
func IsNotFound(err error) bool {
	e, ok := pkgerrors.Cause(err).(*Error)
	return ok && e.IsNotFound()
}
