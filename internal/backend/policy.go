package backend

import (
	"fmt"
	"strings"

	apperrors "userportal/cli/internal/errors"
)

// Policy decides which decoded envelopes are returned and which are rejected.
type Policy int

const (
	// PolicyPassthrough returns every decoded envelope unchanged. Only the
	// sentinel code has a side effect (the session flag).
	PolicyPassthrough Policy = iota
	// PolicyStrict rejects every envelope whose code is not CodeOK.
	PolicyStrict
)

func (p Policy) String() string {
	if p == PolicyStrict {
		return "strict"
	}
	return "passthrough"
}

// ParsePolicy parses "passthrough" or "strict". An empty string is passthrough.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "passthrough":
		return PolicyPassthrough, nil
	case "strict":
		return PolicyStrict, nil
	default:
		return PolicyPassthrough, apperrors.New(apperrors.Config, fmt.Sprintf("unknown response policy %q", s))
	}
}

// check applies the policy to a decoded envelope.
func (p Policy) check(env *Envelope) error {
	if p != PolicyStrict || env.OK() {
		return nil
	}
	msg := env.Message
	if msg == "" {
		msg = "request failed"
	}
	if env.NotLoggedIn() {
		return apperrors.WithCode(apperrors.AuthExpired, env.Code, msg)
	}
	return apperrors.WithCode(apperrors.Server, env.Code, msg)
}
