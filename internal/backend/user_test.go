package backend

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"userportal/cli/internal/authstate"
	"userportal/cli/internal/keychain"
)

func TestLogin_WithoutTokenScenario(t *testing.T) {
	fb, srv := newFakeBackend(t)
	const body = `{"code":200,"message":"welcome","data":{"token":"new-token"}}`
	fb.on("/user/login", http.StatusOK, body)

	flags := authstate.New()
	flags.SetLogin()
	c := newTestClient(srv, keychain.NewMemoryStore(""), flags)

	env, err := c.Login(context.Background(), map[string]string{"user": "a", "pass": "b"})
	require.NoError(t, err)

	got := fb.last()
	assert.Equal(t, http.MethodPost, got.Method)
	assert.Equal(t, "/user/login", got.Path)
	assert.False(t, got.HasAuth)
	assert.JSONEq(t, `{"user":"a","pass":"b"}`, got.Body)
	assert.False(t, flags.LoginStatus())

	assert.Equal(t, CodeOK, env.Code)
	assert.Equal(t, "welcome", env.Message)
	assert.JSONEq(t, `{"token":"new-token"}`, string(env.Data))
}

func TestUpdateAuth(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		initial    bool
		wantStatus bool
	}{
		{name: "granted", body: `{"code":200,"data":true}`, initial: false, wantStatus: true},
		{name: "denied", body: `{"code":200,"data":false}`, initial: true, wantStatus: false},
		{name: "non boolean payload", body: `{"code":200,"data":"yes"}`, initial: true, wantStatus: false},
		{name: "missing payload", body: `{"code":200}`, initial: true, wantStatus: false},
		{name: "failure envelope leaves flag", body: `{"code":500,"data":true}`, initial: true, wantStatus: true},
		{name: "sentinel leaves flag", body: `{"code":600502}`, initial: true, wantStatus: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb, srv := newFakeBackend(t)
			fb.on("/user/auth", http.StatusOK, tt.body)

			flags := authstate.New()
			flags.SetAuthStatus(tt.initial)
			c := newTestClient(srv, keychain.NewMemoryStore("tok"), flags)

			_, err := c.UpdateAuth(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, flags.AuthStatus())
			assert.Equal(t, "Bearer tok", fb.last().Authorization)
		})
	}
}

func TestUpdateAuth_StrictFailureLeavesFlag(t *testing.T) {
	fb, srv := newFakeBackend(t)
	fb.on("/user/auth", http.StatusOK, `{"code":403,"data":true}`)

	flags := authstate.New()
	c := newTestClient(srv, keychain.NewMemoryStore("tok"), flags, func(o *Options) { o.Policy = PolicyStrict })

	_, err := c.UpdateAuth(context.Background())
	require.Error(t, err)
	assert.False(t, flags.AuthStatus())
}

func TestGetData(t *testing.T) {
	fb, srv := newFakeBackend(t)
	fb.on("/api/data", http.StatusOK, `{"code":200,"data":{"items":["a","b"]}}`)
	c := newTestClient(srv, keychain.NewMemoryStore("tok"), authstate.New())

	env, err := c.GetData(context.Background())
	require.NoError(t, err)
	assert.Equal(t, http.MethodGet, fb.last().Method)

	var payload struct {
		Items []string `json:"items"`
	}
	require.NoError(t, env.DecodeData(&payload))
	assert.Equal(t, []string{"a", "b"}, payload.Items)
}

func TestEnvelope_Helpers(t *testing.T) {
	var nilEnv *Envelope
	assert.False(t, nilEnv.OK())
	assert.False(t, nilEnv.NotLoggedIn())
	assert.False(t, nilEnv.Bool())
	assert.NoError(t, nilEnv.DecodeData(&struct{}{}))

	env := &Envelope{Code: CodeOK, Data: []byte(" true ")}
	assert.True(t, env.OK())
	assert.True(t, env.Bool())
}
