package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "userportal/cli/internal/errors"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestLoadFrom_MissingFileYieldsDefaults(t *testing.T) {
	c, err := LoadFrom(filepath.Join(t.TempDir(), "config.json"), envMap(nil))
	require.NoError(t, err)

	assert.Equal(t, Default(), c)
	assert.Equal(t, 5*time.Second, c.Timeout())
	require.NoError(t, c.Validate())
}

func TestLoadFrom_FileThenEnv(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(p, []byte(`{
		"base_url": "https://file.example.com",
		"timeout_ms": 2000,
		"log_level": "debug",
		"endpoints": {"login": "/v2/login"}
	}`), 0o600))

	c, err := LoadFrom(p, envMap(map[string]string{
		EnvBaseURL:        "https://env.example.com",
		EnvTimeout:        "750ms",
		EnvResponsePolicy: " STRICT ",
		EnvSkipList:       "/user/register, /user/login,,",
	}))
	require.NoError(t, err)

	assert.Equal(t, "https://env.example.com", c.BaseURL)
	assert.Equal(t, 750, c.TimeoutMS)
	assert.Equal(t, "debug", c.LogLevel)
	assert.Equal(t, PolicyStrict, c.ResponsePolicy)
	assert.Equal(t, []string{"/user/register", "/user/login"}, c.SkipList)
	assert.Equal(t, "/v2/login", c.Endpoints.Login)
	assert.Equal(t, "/user/auth", c.Endpoints.Auth, "missing endpoints fall back to defaults")
}

func TestLoadFrom_ClearSkipList(t *testing.T) {
	c, err := LoadFrom(filepath.Join(t.TempDir(), "none.json"), envMap(map[string]string{EnvSkipList: "-"}))
	require.NoError(t, err)
	assert.Empty(t, c.SkipList)
}

func TestLoadFrom_BadTimeout(t *testing.T) {
	_, err := LoadFrom(filepath.Join(t.TempDir(), "none.json"), envMap(map[string]string{EnvTimeout: "soon"}))
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.Config))
}

func TestLoadFrom_BadJSON(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(p, []byte("{"), 0o600))

	_, err := LoadFrom(p, envMap(nil))
	assert.Error(t, err)
}

func TestParseTimeout(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{in: "5000", want: 5 * time.Second},
		{in: "2s", want: 2 * time.Second},
		{in: "1500ms", want: 1500 * time.Millisecond},
		{in: "0", wantErr: true},
		{in: "-1s", wantErr: true},
		{in: "abc", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTimeout(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "empty base", mutate: func(c *Config) { c.BaseURL = "" }},
		{name: "bad scheme", mutate: func(c *Config) { c.BaseURL = "ws://example.com" }},
		{name: "zero timeout", mutate: func(c *Config) { c.TimeoutMS = 0 }},
		{name: "unknown policy", mutate: func(c *Config) { c.ResponsePolicy = "lenient" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Default()
			tt.mutate(&c)
			err := c.Validate()
			require.Error(t, err)
			assert.True(t, apperrors.Is(err, apperrors.Config))
		})
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	c := Default()
	c.BaseURL = "https://saved.example.com"
	require.NoError(t, Save(c))

	p, err := Path()
	require.NoError(t, err)
	info, err := os.Stat(p)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := LoadFrom(p, envMap(nil))
	require.NoError(t, err)
	assert.Equal(t, "https://saved.example.com", loaded.BaseURL)
}

func TestLoadFrom_PolicyFromFileIsNormalized(t *testing.T) {
	tests := map[string]string{
		`"Strict"`:        PolicyStrict,
		`" PASSTHROUGH "`: PolicyPassthrough,
		`""`:              PolicyPassthrough,
	}
	for raw, want := range tests {
		t.Run(raw, func(t *testing.T) {
			p := filepath.Join(t.TempDir(), "config.json")
			require.NoError(t, os.WriteFile(p, []byte(`{"response_policy": `+raw+`}`), 0o600))

			c, err := LoadFrom(p, envMap(nil))
			require.NoError(t, err)
			assert.Equal(t, want, c.ResponsePolicy)
			assert.NoError(t, c.Validate())
		})
	}

	c := Default()
	c.ResponsePolicy = "Strict"
	assert.NoError(t, c.Validate())
}
