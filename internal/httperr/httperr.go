// Package httperr defines the error taxonomy used across handlers and maps
// each kind to an HTTP response exactly once. Handlers classify failures
// into a kind instead of matching driver error strings at every call site.
package httperr

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Kind enumerates the failure classes the API distinguishes.
type Kind int

const (
	Validation     Kind = iota // bad or missing input
	Unauthorized               // missing, invalid or expired credentials
	Forbidden                  // authenticated but not allowed
	NotFound                   // no row for an id-based operation
	Conflict                   // duplicate unique key
	Infrastructure             // DB unreachable, unexpected failure
)

// Error carries a kind and a client-safe message. The underlying cause is
// kept for logs but never serialized.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// New builds an Error with a client-facing message.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap attaches an underlying cause to a classified error.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// status maps kinds to HTTP status codes. Conflict deliberately returns 400
// rather than 409: the original API reported duplicate signups as 400 and
// clients depend on it.
func status(k Kind) int {
	switch k {
	case Validation, Conflict:
		return http.StatusBadRequest
	case Unauthorized:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Write serializes an error as the standard {"error": msg} body. Anything
// that is not an *Error is treated as infrastructure failure and hidden
// behind a generic message.
func Write(c echo.Context, err error) error {
	var e *Error
	if !errors.As(err, &e) {
		e = &Error{Kind: Infrastructure, Message: "Internal server error", Err: err}
	}
	return c.JSON(status(e.Kind), echo.Map{"error": e.Message})
}
