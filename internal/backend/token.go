// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"encoding/json"
	"maps"
	"net/http"
	"slices"
	"strings"
)

// ExtractToken finds the credential token a successful login returned.
// The payload is searched first (a bare string, or an object with a token-like
// field at any depth), then the response headers.
func ExtractToken(env *Envelope) string {
	if env == nil {
		return ""
	}
	if len(env.Data) > 0 {
		var payload any
		if err := json.Unmarshal(env.Data, &payload); err == nil {
			if s, ok := payload.(string); ok {
				if t := strings.TrimSpace(s); t != "" {
					return t
				}
			}
			var access string
			walkJSON(payload, &access)
			if access != "" {
				return access
			}
		}
	}
	return findBearerTokenInHeaders(env.Header)
}

// parseBearerToken extracts token from a value like "Bearer <token>" case-insensitively.
// Returns the token string without the "Bearer " prefix, or empty string if invalid format.
func parseBearerToken(value string) string {
	v := strings.TrimSpace(value)
	if len(v) < 7 {
		return ""
	}
	if strings.EqualFold(v[0:6], "bearer") && (v[6] == ' ' || v[6] == '\t') {
		return strings.TrimSpace(v[6:])
	}
	return ""
}

// HeaderAccessToken is the only header besides Authorization read for a token.
const HeaderAccessToken = "X-Access-Token"

// tokenFields lists payload keys holding a token, highest priority first.
// Keys are compared lowercased with underscores removed.
var tokenFields = []string{"accesstoken", "token", "jwt", "bearer"}

// findBearerTokenInHeaders reads a Bearer token from Authorization, then
// X-Access-Token (which may also carry the bare token). Other headers such as
// WWW-Authenticate are never consulted.
func findBearerTokenInHeaders(h http.Header) string {
	if t := parseBearerToken(h.Get("Authorization")); t != "" {
		return t
	}
	v := strings.TrimSpace(h.Get(HeaderAccessToken))
	if t := parseBearerToken(v); t != "" {
		return t
	}
	if v != "" && !strings.ContainsAny(v, " \t") {
		return v
	}
	return ""
}

// walkJSON recursively searches a JSON structure for an access token.
// Direct fields win over nested ones; among direct fields tokenFields decides,
// and ties and nested objects are resolved in key order so the result is stable.
func walkJSON(node any, access *string) {
	if *access != "" {
		return
	}

	switch v := node.(type) {
	case map[string]any:
		keys := slices.Sorted(maps.Keys(v))
		for _, want := range tokenFields {
			for _, k := range keys {
				if normalizeKey(k) != want {
					continue
				}
				if s, ok := v[k].(string); ok && strings.TrimSpace(s) != "" {
					*access = strings.TrimSpace(s)
					return
				}
			}
		}
		for _, k := range keys {
			if normalizeKey(k) != "authorization" {
				continue
			}
			if s, ok := v[k].(string); ok {
				if t := parseBearerToken(s); t != "" {
					*access = t
					return
				}
			}
		}
		for _, k := range keys {
			walkJSON(v[k], access)
			if *access != "" {
				return
			}
		}
	case []any:
		for _, e := range v {
			walkJSON(e, access)
			if *access != "" {
				return
			}
		}
	}
}

func normalizeKey(k string) string {
	return strings.ToLower(strings.ReplaceAll(k, "_", ""))
}
