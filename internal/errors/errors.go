// Package errors defines typed errors with categories for user-friendly reporting.
// It provides a structured approach to error handling with machine-readable error kinds
// and human-friendly messages, so that callers can tell a dropped connection apart from
// a rejected request or an expired session without parsing strings.
//
// The package supports wrapping underlying errors while maintaining error kind information.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind is a machine-readable error category.
type Kind string

const (
	// Transport indicates the request never produced a response (DNS, timeout, reset, TLS).
	Transport Kind = "transport"
	// Server indicates the backend answered with a non-success status or envelope code.
	Server Kind = "server"
	// AuthExpired indicates the backend signalled that the session is no longer valid.
	AuthExpired Kind = "auth_expired"
	// Decode indicates the response body could not be understood.
	Decode Kind = "decode"
	// Config indicates invalid local configuration.
	Config Kind = "config"
)

// E wraps an error with kind, optional status code and human-friendly message.
type E struct {
	Kind    Kind
	Code    int
	Message string
	Err     error
}

func (e *E) Error() string {
	head := string(e.Kind)
	if e.Code != 0 {
		head = fmt.Sprintf("%s (code %d)", e.Kind, e.Code)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", head, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", head, e.Message)
}

func (e *E) Unwrap() error { return e.Err }

func Wrap(kind Kind, msg string, err error) *E { return &E{Kind: kind, Message: msg, Err: err} }
func New(kind Kind, msg string) *E             { return &E{Kind: kind, Message: msg} }

// WithCode builds an error carrying the status code reported by the backend.
func WithCode(kind Kind, code int, msg string) *E {
	return &E{Kind: kind, Code: code, Message: msg}
}

// KindOf returns the kind of the first *E in err's chain, or "" when there is none.
func KindOf(err error) Kind {
	var e *E
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// CodeOf returns the status code of the first *E in err's chain.
func CodeOf(err error) int {
	var e *E
	if stderrors.As(err, &e) {
		return e.Code
	}
	return 0
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
