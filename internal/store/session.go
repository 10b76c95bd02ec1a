package store

import (
	"sync"

	"nexcos/internal/models"
)

// AuthStore caches the signed-in user. It never checks credentials; it only
// records who the identity provider said signed in.
type AuthStore struct {
	mu   sync.RWMutex
	user *models.User
}

// NewAuthStore returns an anonymous session.
func NewAuthStore() *AuthStore {
	return &AuthStore{}
}

// Login records u as the session user, replacing any previous one.
func (s *AuthStore) Login(u models.User) {
	s.mu.Lock()
	s.user = &u
	s.mu.Unlock()
}

// Logout clears the session.
func (s *AuthStore) Logout() {
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()
}

// Current returns the session user, if any.
func (s *AuthStore) Current() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.user == nil {
		return models.User{}, false
	}
	return *s.user, true
}

// IsAuthenticated reports whether a user is signed in.
func (s *AuthStore) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

// ThemeStore holds the light/dark preference. It starts in light mode.
type ThemeStore struct {
	mu    sync.RWMutex
	state models.ThemeState
}

// NewThemeStore returns a store in the given initial state.
func NewThemeStore(initial models.ThemeState) *ThemeStore {
	return &ThemeStore{state: initial}
}

// Toggle flips dark mode and returns the new state.
func (s *ThemeStore) Toggle() models.ThemeState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.IsDarkMode = !s.state.IsDarkMode
	return s.state
}

// State returns the current preference.
func (s *ThemeStore) State() models.ThemeState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}
