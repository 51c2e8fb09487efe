// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package auth provides authentication services for the userportal CLI.
// It ties the backend calls to the stored credential token and to the auth flag
// store: a successful login writes the token and marks the session active,
// logout forgets both, and status asks the backend for the current permission.
package auth

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"userportal/cli/internal/authstate"
	"userportal/cli/internal/backend"
	apperrors "userportal/cli/internal/errors"
	"userportal/cli/internal/keychain"
)

// Credentials is the body sent to the register and login endpoints.
type Credentials struct {
	User string `json:"user"`
	Pass string `json:"pass"`
}

// Service centralizes authentication-related operations against the backend
// and local secure storage/state.
type Service struct {
	be     backend.API
	tokens keychain.TokenStore
	flags  *authstate.Store
	log    zerolog.Logger
}

// NewService constructs an auth Service.
func NewService(be backend.API, tokens keychain.TokenStore, flags *authstate.Store, log zerolog.Logger) *Service {
	return &Service{be: be, tokens: tokens, flags: flags, log: log}
}

// Register creates an account. The envelope is returned as the backend sent it;
// a non-success code is reported as a server error.
func (s *Service) Register(ctx context.Context, creds Credentials) (*backend.Envelope, error) {
	env, err := s.be.Register(ctx, creds)
	if err != nil {
		return env, err
	}
	if !env.OK() {
		return env, rejected(env, "registration failed")
	}
	return env, nil
}

// Login exchanges credentials for a token, stores it and marks the session active.
func (s *Service) Login(ctx context.Context, creds Credentials) (*backend.Envelope, error) {
	env, err := s.be.Login(ctx, creds)
	if err != nil {
		return env, err
	}
	if !env.OK() {
		return env, rejected(env, "login failed")
	}

	token := backend.ExtractToken(env)
	if token == "" {
		s.log.Error().Str("user", creds.User).Msg("login response carried no token")
		return env, apperrors.New(apperrors.Decode, "login response carried no token")
	}
	if err := s.tokens.SaveToken(token); err != nil {
		s.log.Error().Err(err).Msg("failed to store token")
		return env, fmt.Errorf("failed to store token: %w", err)
	}

	s.flags.SetLogin()
	s.log.Info().Str("user", creds.User).Msg("logged in")
	return env, nil
}

// Logout forgets the stored token and resets both flags. There is no logout
// endpoint, so nothing is sent to the backend.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.tokens.ClearToken(); err != nil {
		s.log.Error().Err(err).Msg("failed to clear token")
		return err
	}
	s.flags.SetNotLogin()
	s.flags.SetAuthStatus(false)
	return nil
}

// Status asks the backend for the current permission and returns the flags.
// A stored token and a success envelope together mean the session is active;
// a missing token or the sentinel code leave it inactive.
func (s *Service) Status(ctx context.Context) (authstate.Flags, error) {
	token, err := s.tokens.LoadToken()
	if err != nil {
		s.log.Warn().Err(err).Msg("could not read stored token")
	}

	env, err := s.be.UpdateAuth(ctx)
	if err != nil {
		return s.flags.Snapshot(), err
	}
	if token != "" && env.OK() {
		s.flags.SetLogin()
	}
	return s.flags.Snapshot(), nil
}

// HasToken reports whether a credential token is stored.
func (s *Service) HasToken() bool {
	token, err := s.tokens.LoadToken()
	return err == nil && token != ""
}

func rejected(env *backend.Envelope, fallback string) error {
	msg := env.Message
	if msg == "" {
		msg = fallback
	}
	if env.NotLoggedIn() {
		return apperrors.WithCode(apperrors.AuthExpired, env.Code, msg)
	}
	return apperrors.WithCode(apperrors.Server, env.Code, msg)
}
