package backend

import (
	"bytes"
	"encoding/json"
	"net/http"
)

const (
	// CodeOK is the envelope code of a successful call.
	CodeOK = 200
	// CodeNotLoggedIn is the sentinel code the backend uses when the session is
	// missing or no longer valid.
	CodeNotLoggedIn = 600502
)

// Envelope is the structured body every backend response is wrapped in.
type Envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`

	// Status is the HTTP status of the response that carried the envelope.
	Status int `json:"-"`
	// Header holds the response headers.
	Header http.Header `json:"-"`
}

// OK reports whether the envelope carries the success code.
func (e *Envelope) OK() bool {
	return e != nil && e.Code == CodeOK
}

// NotLoggedIn reports whether the envelope carries the session sentinel.
func (e *Envelope) NotLoggedIn() bool {
	return e != nil && e.Code == CodeNotLoggedIn
}

// DecodeData unmarshals the payload into v. A missing payload leaves v untouched.
func (e *Envelope) DecodeData(v any) error {
	if e == nil || len(e.Data) == 0 {
		return nil
	}
	return json.Unmarshal(e.Data, v)
}

// Bool interprets the payload as a boolean. Anything other than JSON true is false.
func (e *Envelope) Bool() bool {
	if e == nil {
		return false
	}
	return bytes.Equal(bytes.TrimSpace(e.Data), []byte("true"))
}
