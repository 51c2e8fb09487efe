// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package authstate tracks whether a session is active and whether the current
// user may make changes. Commands read the flags to decide what to show; the
// HTTP client flips them when it notices a missing token or an expired session.
//
// Nothing here is persisted. A Store lives as long as the process that created it,
// and each caller (or test) builds its own with New.
package authstate

import "sync"

// Flags is a point-in-time copy of the store.
type Flags struct {
	// LoggedIn reports whether a session is active.
	LoggedIn bool `json:"login_status"`
	// Authorized reports whether edit/write permission is granted.
	Authorized bool `json:"auth_status"`
}

type watcher struct {
	id int
	fn func(Flags)
}

// Store holds the login and authorization flags.
// The zero value is ready to use and reports both flags as false.
type Store struct {
	// notifyMu serializes whole setter calls so observers see changes in the
	// order they were applied.
	notifyMu sync.Mutex
	mu       sync.RWMutex
	flags    Flags
	nextID   int
	watchers []watcher
}

// New returns an empty store.
func New() *Store {
	return &Store{}
}

// SetLoginStatus records whether a session is active.
func (s *Store) SetLoginStatus(status bool) {
	s.update(func(f *Flags) { f.LoggedIn = status })
}

// SetAuthStatus records whether edit/write permission is granted.
func (s *Store) SetAuthStatus(status bool) {
	s.update(func(f *Flags) { f.Authorized = status })
}

// SetLogin marks the session as active.
func (s *Store) SetLogin() { s.SetLoginStatus(true) }

// SetNotLogin marks the session as inactive.
func (s *Store) SetNotLogin() { s.SetLoginStatus(false) }

func (s *Store) LoginStatus() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.flags.LoggedIn
}

func (s *Store) AuthStatus() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.flags.Authorized
}

// Snapshot returns both flags read under one lock.
func (s *Store) Snapshot() Flags {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.flags
}

// Subscribe registers fn to be called with the new flags after every setter call,
// including calls that leave the value unchanged. Observers run synchronously on
// the caller's goroutine, in registration order, after the state lock is released,
// so they may read the store. Notifications from concurrent setters are delivered
// one setter at a time in the order the changes were applied; the last
// notification always matches the final state. Observers must not call setters.
// The returned function removes the observer.
func (s *Store) Subscribe(fn func(Flags)) (cancel func()) {
	s.mu.Lock()
	s.nextID++
	id := s.nextID
	s.watchers = append(s.watchers, watcher{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, w := range s.watchers {
				if w.id == id {
					s.watchers = append(s.watchers[:i:i], s.watchers[i+1:]...)
					return
				}
			}
		})
	}
}

func (s *Store) update(mutate func(*Flags)) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	mutate(&s.flags)
	snap := s.flags
	fns := make([]func(Flags), len(s.watchers))
	for i, w := range s.watchers {
		fns[i] = w.fn
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}
