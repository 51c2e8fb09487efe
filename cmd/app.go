package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"userportal/cli/internal/auth"
	"userportal/cli/internal/authstate"
	"userportal/cli/internal/backend"
	"userportal/cli/internal/config"
	"userportal/cli/internal/keychain"
	"userportal/cli/internal/logging"
	"userportal/cli/internal/manifest"
)

// envToken supplies the token when the keychain is bypassed.
const envToken = "USERPORTAL_TOKEN"

// currentBaseURL is the base URL of the running invocation, for error messages.
var currentBaseURL string

// app holds the collaborators shared by the subcommands of one invocation.
type app struct {
	cfg    config.Config
	log    zerolog.Logger
	flags  *authstate.Store
	tokens keychain.TokenStore
	be     *backend.HTTP
	auth   *auth.Service
}

// loadConfig resolves the configuration file, environment and global flags.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}
	if flagBaseURL != "" {
		cfg.BaseURL = flagBaseURL
	}
	if flagTimeout != "" {
		d, err := config.ParseTimeout(flagTimeout)
		if err != nil {
			return cfg, fmt.Errorf("invalid --timeout: %w", err)
		}
		cfg.TimeoutMS = int(d.Milliseconds())
	}
	if flagVerbose {
		cfg.LogLevel = "debug"
	}
	if cfg.BaseURL, err = manifest.NormalizeBaseURL(cfg.BaseURL); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// newApp wires config, logging, token storage, the flag store and the backend.
func newApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	policy, err := backend.ParsePolicy(cfg.ResponsePolicy)
	if err != nil {
		return nil, err
	}

	currentBaseURL = cfg.BaseURL
	log := logging.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)

	var tokens keychain.TokenStore
	if flagNoKeyring {
		tokens = keychain.NewMemoryStore(os.Getenv(envToken))
	} else {
		km, err := keychain.GetManager()
		if err != nil {
			return nil, fmt.Errorf("secure storage unavailable (use --no-keyring with %s): %w", envToken, err)
		}
		tokens = km
	}

	flags := authstate.New()
	flags.Subscribe(func(f authstate.Flags) {
		log.Debug().Bool("login_status", f.LoggedIn).Bool("auth_status", f.Authorized).Msg("auth flags changed")
	})

	be := backend.New(backend.Options{
		BaseURL:   cfg.BaseURL,
		Timeout:   cfg.Timeout(),
		Endpoints: cfg.Endpoints,
		SkipList:  backend.SkipList(cfg.SkipList),
		Policy:    policy,
		Tokens:    tokens,
		Flags:     flags,
		Logger:    log,
	})
	be.UseRequest(backend.RequestIDInterceptor())

	return &app{
		cfg:    cfg,
		log:    log,
		flags:  flags,
		tokens: tokens,
		be:     be,
		auth:   auth.NewService(be, tokens, flags, log),
	}, nil
}
