package store

import (
	"testing"

	"nexcos/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthStore_Lifecycle(t *testing.T) {
	t.Parallel()

	s := NewAuthStore()
	assert.False(t, s.IsAuthenticated())
	_, ok := s.Current()
	assert.False(t, ok)

	s.Login(models.User{ID: "u1", Name: "Ana"})
	assert.True(t, s.IsAuthenticated())

	s.Login(models.User{ID: "u2", Name: "Ben"})
	u, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, "u2", u.ID, "a second login replaces the session")

	s.Logout()
	assert.False(t, s.IsAuthenticated())
}

func TestThemeStore_Toggle(t *testing.T) {
	t.Parallel()

	s := NewThemeStore(models.ThemeState{})
	assert.False(t, s.State().IsDarkMode)
	assert.True(t, s.Toggle().IsDarkMode)
	assert.False(t, s.Toggle().IsDarkMode)
}
