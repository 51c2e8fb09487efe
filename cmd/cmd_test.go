package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"userportal/cli/internal/backend"
	"userportal/cli/internal/config"
	"userportal/cli/internal/terminal"
)

func TestReadPayload(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "doc.json")
	require.NoError(t, os.WriteFile(file, []byte(" {\"a\":1}\n"), 0o600))

	tests := []struct {
		name    string
		stdin   string
		args    []string
		file    string
		want    string
		wantErr string
	}{
		{name: "argument", args: []string{`{"a":1}`}, want: `{"a":1}`},
		{name: "stdin", stdin: "[1,2]\n", args: []string{"-"}, want: `[1,2]`},
		{name: "file", file: file, want: `{"a":1}`},
		{name: "both", file: file, args: []string{"{}"}, wantErr: "not both"},
		{name: "missing", wantErr: "required"},
		{name: "invalid", args: []string{"{nope"}, wantErr: "not valid JSON"},
		{name: "unreadable file", file: filepath.Join(dir, "absent.json"), wantErr: "failed to read"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := readPayload(strings.NewReader(tt.stdin), tt.args, tt.file)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(got))
		})
	}
}

func TestFormatData(t *testing.T) {
	assert.Empty(t, formatData(nil))
	assert.Empty(t, formatData(json.RawMessage(" null ")))
	assert.Equal(t, "  true", formatData(json.RawMessage("true")))
	assert.Equal(t, "  {\n    \"a\": 1\n  }", formatData(json.RawMessage(`{"a":1}`)))
}

func TestPrintEnvelope(t *testing.T) {
	pterm.DisableColor()
	defer pterm.EnableColor()

	var out bytes.Buffer
	printEnvelope(&out, &backend.Envelope{Code: 600502, Message: "not logged in"})
	assert.Contains(t, out.String(), "600502")
	assert.Contains(t, out.String(), "not logged in")
	assert.NotContains(t, out.String(), "Data:")

	out.Reset()
	printEnvelope(&out, nil)
	assert.Empty(t, out.String())
}

func TestCredentialFlags_Resolve(t *testing.T) {
	t.Setenv(envUser, "")
	t.Setenv(envPassword, "")

	f := credentialFlags{password: "pw"}
	creds, err := f.resolve(terminal.NewPrompterFrom(strings.NewReader("alice\n"), &bytes.Buffer{}))
	require.NoError(t, err)
	assert.Equal(t, "alice", creds.User)
	assert.Equal(t, "pw", creds.Pass)

	t.Setenv(envUser, "bob")
	t.Setenv(envPassword, "env-pw")
	creds, err = (&credentialFlags{}).resolve(terminal.NewPrompterFrom(strings.NewReader(""), &bytes.Buffer{}))
	require.NoError(t, err)
	assert.Equal(t, "bob", creds.User)
	assert.Equal(t, "env-pw", creds.Pass)
}

func TestCredentialFlags_PasswordNeedsTerminal(t *testing.T) {
	t.Setenv(envUser, "")
	t.Setenv(envPassword, "")

	f := credentialFlags{user: "alice"}
	_, err := f.resolve(terminal.NewPrompterFrom(strings.NewReader("pw\n"), &bytes.Buffer{}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-interactive")
}

func TestLoadConfig_FlagOverrides(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("USERPORTAL_BASE_URL", "http://env.example:9000")
	t.Setenv("USERPORTAL_TIMEOUT", "")
	t.Setenv("USERPORTAL_LOG_LEVEL", "")
	t.Setenv("USERPORTAL_RESPONSE_POLICY", "")

	flagBaseURL, flagTimeout, flagVerbose = "https://flag.example/", "2s", true
	t.Cleanup(func() { flagBaseURL, flagTimeout, flagVerbose = "", "", false })

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "https://flag.example", cfg.BaseURL)
	assert.Equal(t, 2000, cfg.TimeoutMS)
	assert.Equal(t, "debug", cfg.LogLevel)

	flagTimeout = "soon"
	_, err = loadConfig()
	assert.Error(t, err)
}

func TestWriteConfig(t *testing.T) {
	cfg := config.Default()

	var out bytes.Buffer
	require.NoError(t, writeConfig(&out, cfg, "yaml"))
	assert.Contains(t, out.String(), "base_url: http://localhost:8080")
	assert.Contains(t, out.String(), "response_policy: passthrough")
	assert.Contains(t, out.String(), "  login: /user/login")

	out.Reset()
	require.NoError(t, writeConfig(&out, cfg, "json"))
	assert.Contains(t, out.String(), `"timeout_ms": 5000`)

	assert.Error(t, writeConfig(&out, cfg, "toml"))
}
