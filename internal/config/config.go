// Package config loads and stores CLI configuration in the XDG config dir.
// Only non-secret settings are kept here; the credential token goes to the OS keychain.
//
// Values are layered: built-in defaults, then config.json, then environment
// variables (optionally loaded from .env files), then command-line flags applied
// by the caller.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	apperrors "userportal/cli/internal/errors"
	"userportal/cli/internal/manifest"
	"userportal/cli/internal/xdg"
)

// Response policies understood by the HTTP client.
const (
	PolicyPassthrough = "passthrough"
	PolicyStrict      = "strict"
)

// Environment variables read by Load.
const (
	EnvBaseURL        = "USERPORTAL_BASE_URL"
	EnvTimeout        = "USERPORTAL_TIMEOUT"
	EnvLogLevel       = "USERPORTAL_LOG_LEVEL"
	EnvLogFormat      = "USERPORTAL_LOG_FORMAT"
	EnvResponsePolicy = "USERPORTAL_RESPONSE_POLICY"
	EnvSkipList       = "USERPORTAL_SKIP_LIST"
)

// Config holds non-sensitive CLI settings.
type Config struct {
	BaseURL        string                 `json:"base_url" yaml:"base_url"`
	TimeoutMS      int                    `json:"timeout_ms" yaml:"timeout_ms"`
	LogLevel       string                 `json:"log_level" yaml:"log_level"`
	LogFormat      string                 `json:"log_format" yaml:"log_format"`
	ResponsePolicy string                 `json:"response_policy" yaml:"response_policy"`
	SkipList       []string               `json:"skip_list" yaml:"skip_list"`
	Endpoints      manifest.HTTPEndpoints `json:"endpoints" yaml:"endpoints"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		BaseURL:        "http://localhost:8080",
		TimeoutMS:      5000,
		LogLevel:       "info",
		LogFormat:      "console",
		ResponsePolicy: PolicyPassthrough,
		SkipList:       []string{"/user/register"},
		Endpoints:      manifest.DefaultEndpoints(),
	}
}

// Timeout returns the per-request timeout.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutMS) * time.Millisecond
}

// Path returns the path to the config file.
func Path() (string, error) {
	dir, err := xdg.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads configuration from the default path, .env files and the environment.
func Load() (Config, error) {
	p, err := Path()
	if err != nil {
		return Config{}, err
	}

	// .env files are optional; existing environment variables win.
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	return LoadFrom(p, os.Getenv)
}

// LoadFrom reads configuration from path (a missing file yields defaults) and
// overlays the variables returned by getenv.
func LoadFrom(path string, getenv func(string) string) (Config, error) {
	c := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return c, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := json.Unmarshal(data, &c); err != nil {
			return c, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := applyEnv(&c, getenv); err != nil {
		return c, err
	}
	c.ResponsePolicy = normalizePolicy(c.ResponsePolicy)
	c.Endpoints = c.Endpoints.WithDefaults()
	return c, nil
}

// normalizePolicy lowercases and trims a response policy name. Blank means passthrough.
func normalizePolicy(p string) string {
	p = strings.ToLower(strings.TrimSpace(p))
	if p == "" {
		return PolicyPassthrough
	}
	return p
}

func applyEnv(c *Config, getenv func(string) string) error {
	if v := getenv(EnvBaseURL); v != "" {
		c.BaseURL = v
	}
	if v := getenv(EnvTimeout); v != "" {
		d, err := ParseTimeout(v)
		if err != nil {
			return apperrors.Wrap(apperrors.Config, EnvTimeout, err)
		}
		c.TimeoutMS = int(d / time.Millisecond)
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := getenv(EnvLogFormat); v != "" {
		c.LogFormat = v
	}
	if v := getenv(EnvResponsePolicy); v != "" {
		c.ResponsePolicy = v
	}
	if v, ok := lookup(getenv, EnvSkipList); ok {
		c.SkipList = SplitList(v)
	}
	return nil
}

// lookup distinguishes "unset" from "set to a blank list" for variables where the
// difference matters. A value of "-" clears the list.
func lookup(getenv func(string) string, key string) (string, bool) {
	v := getenv(key)
	if v == "" {
		return "", false
	}
	if strings.TrimSpace(v) == "-" {
		return "", true
	}
	return v, true
}

// ParseTimeout accepts a Go duration ("5s", "1500ms") or a bare number of milliseconds.
func ParseTimeout(v string) (time.Duration, error) {
	v = strings.TrimSpace(v)
	if ms, err := strconv.Atoi(v); err == nil {
		if ms <= 0 {
			return 0, fmt.Errorf("timeout must be positive, got %d", ms)
		}
		return time.Duration(ms) * time.Millisecond, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", v, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("timeout must be positive, got %s", d)
	}
	return d, nil
}

// SplitList splits a comma separated list, dropping blanks.
func SplitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Validate reports configuration the client cannot work with.
func (c Config) Validate() error {
	base, err := manifest.NormalizeBaseURL(c.BaseURL)
	if err != nil {
		return apperrors.Wrap(apperrors.Config, "base_url", err)
	}
	if base == "" {
		return apperrors.New(apperrors.Config, "base_url is empty")
	}
	if c.TimeoutMS <= 0 {
		return apperrors.New(apperrors.Config, fmt.Sprintf("timeout_ms must be positive, got %d", c.TimeoutMS))
	}
	switch normalizePolicy(c.ResponsePolicy) {
	case PolicyPassthrough, PolicyStrict:
	default:
		return apperrors.New(apperrors.Config, fmt.Sprintf("unknown response_policy %q", c.ResponsePolicy))
	}
	return nil
}

// Save writes configuration with 0600 permissions.
func Save(c Config) error {
	p, err := Path()
	if err != nil {
		return err
	}
	return SaveTo(p, c)
}

// SaveTo writes configuration to path with 0600 permissions.
func SaveTo(path string, c Config) error {
	b, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o600)
}
