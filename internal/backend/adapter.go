// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package backend provides the HTTP client for the user-portal backend.
// It wraps net/http with request and response interceptors that attach the stored
// credential token and watch for the "not logged in" sentinel code, and exposes one
// function per backend operation.
package backend

import "context"

// API defines backend operations the CLI depends on.
// Implementations may call real HTTP endpoints or provide mocks for tests.
// Every method returns the backend's envelope unchanged; failures are logged
// by the client before they are returned.
type API interface {
	// Register creates an account. No credential token is required.
	Register(ctx context.Context, data any) (*Envelope, error)
	// Login exchanges credentials for a session.
	Login(ctx context.Context, data any) (*Envelope, error)
	// UpdateAuth fetches whether the current user may edit and records the answer
	// in the auth flag store.
	UpdateAuth(ctx context.Context) (*Envelope, error)
	// GetData fetches the example data resource.
	GetData(ctx context.Context) (*Envelope, error)
	// SubmitData posts to the example submit resource.
	SubmitData(ctx context.Context, data any) (*Envelope, error)
}
