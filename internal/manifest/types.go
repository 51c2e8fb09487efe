// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package manifest describes where the backend lives and which paths serve each operation.
package manifest

import (
	"fmt"
	"net/url"
	"strings"
)

// HTTPEndpoints contains REST API endpoint paths.
type HTTPEndpoints struct {
	Register string `json:"register,omitempty" yaml:"register,omitempty"` // e.g., "/user/register"
	Login    string `json:"login,omitempty" yaml:"login,omitempty"`       // e.g., "/user/login"
	Auth     string `json:"auth,omitempty" yaml:"auth,omitempty"`         // e.g., "/user/auth"
	Data     string `json:"data,omitempty" yaml:"data,omitempty"`         // e.g., "/api/data"
	Submit   string `json:"submit,omitempty" yaml:"submit,omitempty"`     // e.g., "/api/submit"
}

// DefaultEndpoints returns the paths the backend serves out of the box.
func DefaultEndpoints() HTTPEndpoints {
	return HTTPEndpoints{
		Register: "/user/register",
		Login:    "/user/login",
		Auth:     "/user/auth",
		Data:     "/api/data",
		Submit:   "/api/submit",
	}
}

// WithDefaults fills every empty path from DefaultEndpoints.
func (e HTTPEndpoints) WithDefaults() HTTPEndpoints {
	d := DefaultEndpoints()
	pick := func(v, def string) string {
		if strings.TrimSpace(v) == "" {
			return def
		}
		return v
	}
	return HTTPEndpoints{
		Register: pick(e.Register, d.Register),
		Login:    pick(e.Login, d.Login),
		Auth:     pick(e.Auth, d.Auth),
		Data:     pick(e.Data, d.Data),
		Submit:   pick(e.Submit, d.Submit),
	}
}

// NormalizeBaseURL validates raw as an absolute http(s) URL and strips trailing slashes.
// An empty base is allowed and means paths are used as-is.
func NormalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid base url %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("invalid base url %q: scheme must be http or https", raw)
	}
	if u.Host == "" {
		return "", fmt.Errorf("invalid base url %q: missing host", raw)
	}
	return strings.TrimRight(raw, "/"), nil
}
