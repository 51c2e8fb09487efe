package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"userportal/cli/internal/authstate"
	apperrors "userportal/cli/internal/errors"
	"userportal/cli/internal/httperrors"
	"userportal/cli/internal/keychain"
	"userportal/cli/internal/logging"
	"userportal/cli/internal/manifest"
)

// DefaultTimeout bounds each request when Options.Timeout is zero.
const DefaultTimeout = 5 * time.Second

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 4 << 20

// Options configures an HTTP client.
type Options struct {
	// BaseURL is prefixed to every request path (e.g., "https://portal.example.com").
	BaseURL string
	// Timeout bounds each request. Zero means DefaultTimeout.
	Timeout time.Duration
	// Endpoints maps operations to paths. Empty paths fall back to the defaults.
	Endpoints manifest.HTTPEndpoints
	// SkipList holds path substrings sent without a token.
	SkipList SkipList
	// Policy decides which envelopes are rejected.
	Policy Policy
	// Tokens supplies the credential token. Nil means no token is ever attached.
	Tokens keychain.TokenStore
	// Flags receives login/authorization updates. Nil gets a private store.
	Flags *authstate.Store
	// Logger receives failure and debug logs. The zero value discards everything.
	Logger zerolog.Logger
	// Client overrides the underlying HTTP client. Its Timeout is replaced.
	Client *http.Client
}

// Request describes one backend call.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	// Body is JSON-encoded unless it is already []byte or json.RawMessage.
	Body any
}

// HTTP implements API over REST endpoints with axios-style interceptors.
type HTTP struct {
	// baseURL is the base URL for all HTTP requests
	baseURL string
	// endpoints contains the URL paths for each operation
	endpoints manifest.HTTPEndpoints
	// client is the underlying HTTP client with configured timeout
	client *http.Client
	policy Policy
	flags  *authstate.Store
	log    zerolog.Logger

	requestInterceptors  []RequestInterceptor
	responseInterceptors []ResponseInterceptor
}

// New creates a client with the default interceptors installed: token
// attachment on requests and sentinel detection on responses.
func New(opts Options) *HTTP {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	client := &http.Client{}
	if opts.Client != nil {
		c := *opts.Client
		client = &c
	}
	client.Timeout = timeout

	flags := opts.Flags
	if flags == nil {
		flags = authstate.New()
	}
	tokens := opts.Tokens
	if tokens == nil {
		tokens = keychain.NewMemoryStore("")
	}

	h := &HTTP{
		baseURL:   strings.TrimRight(opts.BaseURL, "/"),
		endpoints: opts.Endpoints.WithDefaults(),
		client:    client,
		policy:    opts.Policy,
		flags:     flags,
		log:       opts.Logger,
	}
	h.UseRequest(AuthInterceptor(opts.SkipList, tokens, flags, h.log))
	h.UseResponse(SentinelInterceptor(flags, h.log))
	return h
}

// UseRequest appends request interceptors. They run in the order added.
func (h *HTTP) UseRequest(ics ...RequestInterceptor) {
	h.requestInterceptors = append(h.requestInterceptors, ics...)
}

// UseResponse appends response interceptors. They run in the order added.
func (h *HTTP) UseResponse(ics ...ResponseInterceptor) {
	h.responseInterceptors = append(h.responseInterceptors, ics...)
}

// Flags returns the store the client reports session changes to.
func (h *HTTP) Flags() *authstate.Store { return h.flags }

// Endpoints returns the resolved endpoint table.
func (h *HTTP) Endpoints() manifest.HTTPEndpoints { return h.endpoints }

// Do sends r and returns the decoded envelope.
//
// Errors are *apperrors.E values: Transport when no response arrived, Server
// for non-2xx HTTP statuses (and, under PolicyStrict, non-success envelope
// codes), AuthExpired for the sentinel under PolicyStrict, Decode for 2xx
// bodies that are not an envelope. Every error is logged before it is returned.
func (h *HTTP) Do(ctx context.Context, r Request) (*Envelope, error) {
	req, err := h.newRequest(ctx, r)
	if err != nil {
		h.log.Error().Err(err).Str("method", r.Method).Str("path", r.Path).Msg("failed to build request")
		return nil, err
	}

	for _, ic := range h.requestInterceptors {
		if err := ic(req); err != nil {
			h.log.Error().Err(err).Str("method", req.Method).Str("path", req.URL.Path).Msg("request interceptor failed")
			return nil, err
		}
	}

	start := time.Now()
	resp, err := h.client.Do(req)
	if err != nil {
		class := httperrors.Classify(err)
		h.log.Error().
			Str("error", logging.Mask(err.Error())).
			Str("class", class.String()).
			Str("request_id", req.Header.Get(HeaderRequestID)).
			Str("method", req.Method).
			Str("path", req.URL.Path).
			Dur("elapsed", time.Since(start)).
			Msg("request failed")
		return nil, apperrors.Wrap(apperrors.Transport, fmt.Sprintf("%s %s", req.Method, req.URL.Path), err)
	}
	defer resp.Body.Close()

	env, err := h.handleResponse(resp)
	if err != nil {
		h.log.Error().
			Err(err).
			Str("request_id", req.Header.Get(HeaderRequestID)).
			Str("method", req.Method).
			Str("path", req.URL.Path).
			Int("status", resp.StatusCode).
			Msg("request rejected")
		return env, err
	}

	h.log.Debug().
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Int("status", resp.StatusCode).
		Int("code", env.Code).
		Dur("elapsed", time.Since(start)).
		Msg("request completed")
	return env, nil
}

func (h *HTTP) newRequest(ctx context.Context, r Request) (*http.Request, error) {
	method := r.Method
	if method == "" {
		method = http.MethodGet
	}

	target := h.baseURL + r.Path
	if len(r.Query) > 0 {
		target += "?" + r.Query.Encode()
	}

	var body io.Reader
	if r.Body != nil {
		var b []byte
		switch v := r.Body.(type) {
		case json.RawMessage:
			b = v
		case []byte:
			b = v
		default:
			var err error
			if b, err = json.Marshal(v); err != nil {
				return nil, fmt.Errorf("failed to marshal request: %w", err)
			}
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// handleResponse decodes the envelope, runs the response interceptors and
// applies the policy. The envelope is returned alongside policy errors so
// callers can still inspect it.
func (h *HTTP) handleResponse(resp *http.Response) (*Envelope, error) {
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.Transport, "failed to read response", err)
	}
	success := resp.StatusCode >= 200 && resp.StatusCode < 300

	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		if !success {
			return nil, apperrors.WithCode(apperrors.Server, resp.StatusCode, statusMessage(resp.StatusCode, raw))
		}
		return nil, apperrors.Wrap(apperrors.Decode, "response is not an envelope", err)
	}
	env.Status = resp.StatusCode
	env.Header = resp.Header

	for _, ic := range h.responseInterceptors {
		if err := ic(resp, &env); err != nil {
			return &env, err
		}
	}

	if !success {
		msg := env.Message
		if msg == "" {
			msg = statusMessage(resp.StatusCode, nil)
		}
		if env.NotLoggedIn() {
			return &env, apperrors.WithCode(apperrors.AuthExpired, env.Code, msg)
		}
		return &env, apperrors.WithCode(apperrors.Server, resp.StatusCode, msg)
	}

	if err := h.policy.check(&env); err != nil {
		return &env, err
	}
	return &env, nil
}

func statusMessage(status int, body []byte) string {
	msg := http.StatusText(status)
	if text := strings.TrimSpace(string(body)); text != "" {
		if len(text) > 200 {
			text = text[:200] + "..."
		}
		msg = fmt.Sprintf("%s: %s", msg, logging.Mask(text))
	}
	return msg
}
