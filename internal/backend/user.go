package backend

import (
	"context"
	"net/http"
)

// Register calls POST /user/register with data as the JSON body.
func (h *HTTP) Register(ctx context.Context, data any) (*Envelope, error) {
	return h.call(ctx, "register", Request{Method: http.MethodPost, Path: h.endpoints.Register, Body: data})
}

// Login calls POST /user/login with data as the JSON body.
// Storing the returned token is left to the caller.
func (h *HTTP) Login(ctx context.Context, data any) (*Envelope, error) {
	return h.call(ctx, "login", Request{Method: http.MethodPost, Path: h.endpoints.Login, Body: data})
}

// UpdateAuth calls GET /user/auth. When the envelope carries the success code
// its payload is read as a boolean and stored as the authorization flag;
// any other payload counts as false. Other envelopes leave the flag untouched.
func (h *HTTP) UpdateAuth(ctx context.Context) (*Envelope, error) {
	env, err := h.call(ctx, "update_auth", Request{Method: http.MethodGet, Path: h.endpoints.Auth})
	if err != nil {
		return env, err
	}
	if env.OK() {
		h.flags.SetAuthStatus(env.Bool())
	}
	return env, nil
}

// call runs r and logs failures under the operation name.
func (h *HTTP) call(ctx context.Context, op string, r Request) (*Envelope, error) {
	env, err := h.Do(ctx, r)
	if err != nil {
		h.log.Warn().Err(err).Str("op", op).Msg("backend call failed")
	}
	return env, err
}

var _ API = (*HTTP)(nil)
