package backend

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"userportal/cli/internal/authstate"
	"userportal/cli/internal/keychain"
	"userportal/cli/internal/logging"
)

// RequestInterceptor may modify an outgoing request. A non-nil error aborts the call.
type RequestInterceptor func(req *http.Request) error

// ResponseInterceptor observes a decoded response. A non-nil error is returned
// to the caller in place of the envelope.
type ResponseInterceptor func(resp *http.Response, env *Envelope) error

// SkipList holds path substrings for which no credential token is attached.
type SkipList []string

// Match reports whether path contains any non-empty entry.
func (s SkipList) Match(path string) bool {
	for _, entry := range s {
		if entry != "" && strings.Contains(path, entry) {
			return true
		}
	}
	return false
}

// HeaderRequestID carries a per-request identifier for correlating client and server logs.
const HeaderRequestID = "X-Request-ID"

// RequestIDInterceptor stamps each request with a random X-Request-ID unless
// one is already set.
func RequestIDInterceptor() RequestInterceptor {
	return func(req *http.Request) error {
		if req.Header.Get(HeaderRequestID) == "" {
			req.Header.Set(HeaderRequestID, uuid.NewString())
		}
		return nil
	}
}

// AuthInterceptor attaches the stored token as a bearer Authorization header.
// Requests whose path is on the skip list are sent unmodified. When no token is
// stored the session is marked as not logged in and the request goes out
// without credentials.
func AuthInterceptor(skip SkipList, tokens keychain.TokenStore, flags *authstate.Store, log zerolog.Logger) RequestInterceptor {
	return func(req *http.Request) error {
		path := req.URL.Path
		if skip.Match(path) {
			log.Debug().Str("path", path).Msg("path on skip list, sending without token")
			return nil
		}

		token, err := tokens.LoadToken()
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("could not read stored token")
			token = ""
		}
		if token == "" {
			log.Debug().Str("path", path).Msg("no stored token, marking session as not logged in")
			flags.SetNotLogin()
			return nil
		}

		req.Header.Set("Authorization", "Bearer "+token)
		log.Debug().Str("path", path).Str("authorization", logging.Mask(req.Header.Get("Authorization"))).Msg("attached token")
		return nil
	}
}

// SentinelInterceptor marks the session as not logged in whenever the envelope
// carries CodeNotLoggedIn.
func SentinelInterceptor(flags *authstate.Store, log zerolog.Logger) ResponseInterceptor {
	return func(resp *http.Response, env *Envelope) error {
		if env.NotLoggedIn() {
			path := ""
			if resp != nil && resp.Request != nil {
				path = resp.Request.URL.Path
			}
			log.Warn().Str("path", path).Int("code", env.Code).Msg("session is not logged in")
			flags.SetNotLogin()
		}
		return nil
	}
}
