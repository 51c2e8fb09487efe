// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package keychain provides centralized, thread-safe storage for the credential token.
// The token is kept in the OS keychain/credential store under a single fixed key,
// playing the role browser local storage plays for a web front-end.
//
// The package supports macOS Keychain, Windows Credential Manager, the freedesktop
// Secret Service, KWallet and pass, with an encrypted file fallback for headless hosts.
package keychain

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/99designs/keyring"

	"userportal/cli/internal/xdg"
)

// Global keychain manager instance
var (
	globalManager *Manager
	mu            sync.Mutex
)

// ServiceName identifies our keychain/credential store namespace.
const ServiceName = "userportal"

// KeyToken is the fixed key the credential token is stored under.
const KeyToken = "token"

// PasswordEnv names the variable holding the passphrase for the file backend.
// The file backend is only offered when it is set.
const PasswordEnv = "USERPORTAL_KEYRING_PASSWORD"

// TokenStore reads and writes the credential token.
// A missing token is reported as "" with a nil error.
type TokenStore interface {
	LoadToken() (string, error)
	SaveToken(token string) error
	ClearToken() error
}

// Manager provides thread-safe token operations on the OS keychain.
type Manager struct {
	mu   sync.RWMutex
	ring keyring.Keyring
}

// NewManager creates a new keychain manager with the OS keyring initialized.
func NewManager() (*Manager, error) {
	ring, err := openRing()
	if err != nil {
		return nil, err
	}
	return NewManagerWithRing(ring), nil
}

// NewManagerWithRing wraps an already opened keyring.
func NewManagerWithRing(ring keyring.Keyring) *Manager {
	return &Manager{ring: ring}
}

// GetManager returns the global keychain manager instance.
// If not initialized, it will be created on first call.
// If initialization fails, it will retry on subsequent calls.
func GetManager() (*Manager, error) {
	mu.Lock()
	defer mu.Unlock()

	if globalManager != nil {
		return globalManager, nil
	}

	m, err := NewManager()
	if err != nil {
		return nil, err
	}
	globalManager = m
	return globalManager, nil
}

// openRing opens the OS keyring with the backends that make sense on this platform.
func openRing() (keyring.Keyring, error) {
	cfg := keyring.Config{
		ServiceName:              ServiceName,
		AllowedBackends:          allowedBackends(os.Getenv(PasswordEnv) != ""),
		KeychainTrustApplication: true,
		PassPrefix:               ServiceName,
		WinCredPrefix:            ServiceName,
		LibSecretCollectionName:  ServiceName,
		KWalletAppID:             ServiceName,
		KWalletFolder:            ServiceName,
		FilePasswordFunc:         filePassword,
	}

	if dir, err := xdg.StateDir(); err == nil {
		cfg.FileDir = filepath.Join(dir, "keyring")
	}

	ring, err := keyring.Open(cfg)
	if err != nil {
		if errors.Is(err, keyring.ErrNoAvailImpl) {
			return nil, fmt.Errorf("no secure storage available; set %s to use the encrypted file store: %w", PasswordEnv, err)
		}
		return nil, err
	}
	return ring, nil
}

// allowedBackends lists native backends first; the file backend comes last and
// only when a passphrase is available.
func allowedBackends(withFile bool) []keyring.BackendType {
	var backends []keyring.BackendType
	switch runtime.GOOS {
	case "darwin":
		backends = []keyring.BackendType{keyring.KeychainBackend, keyring.PassBackend}
	case "windows":
		backends = []keyring.BackendType{keyring.WinCredBackend}
	default:
		backends = []keyring.BackendType{keyring.SecretServiceBackend, keyring.KWalletBackend, keyring.PassBackend}
	}
	if withFile {
		backends = append(backends, keyring.FileBackend)
	}
	return backends
}

func filePassword(string) (string, error) {
	if p := os.Getenv(PasswordEnv); p != "" {
		return p, nil
	}
	return "", fmt.Errorf("%s is not set", PasswordEnv)
}

// LoadToken retrieves the credential token from the keychain.
// This method is thread-safe.
func (m *Manager) LoadToken() (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	it, err := m.ring.Get(KeyToken)
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to load token: %w", err)
	}
	return string(it.Data), nil
}

// SaveToken stores the credential token in the keychain. Saving an empty token
// removes the stored one.
// This method is thread-safe.
func (m *Manager) SaveToken(token string) error {
	if token == "" {
		return m.ClearToken()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.ring.Set(keyring.Item{
		Key:         KeyToken,
		Data:        []byte(token),
		Label:       ServiceName + " token",
		Description: "userportal credential token",
	}); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	return nil
}

// ClearToken removes the credential token. A missing token is not an error.
// This method is thread-safe.
func (m *Manager) ClearToken() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.ring.Remove(KeyToken); err != nil && !errors.Is(err, keyring.ErrKeyNotFound) {
		return fmt.Errorf("failed to clear token: %w", err)
	}
	return nil
}
