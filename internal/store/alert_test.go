package store

import (
	"testing"

	"nexcos/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlertStore_AddPrepends(t *testing.T) {
	t.Parallel()

	s := NewAlertStore(nil, WithIDGenerator(NewSequenceIDs("a")))
	a := s.Add(models.AlertInput{Type: models.AlertTypePrep, Title: "a"})
	b := s.Add(models.AlertInput{Type: models.AlertTypeHelp, Title: "b"})

	list := s.List()
	require.Len(t, list, 2)
	assert.Equal(t, b.ID, list[0].ID)
	assert.Equal(t, a.ID, list[1].ID)

	latest, ok := s.Latest()
	require.True(t, ok)
	assert.Equal(t, "b", latest.Title)
}

func TestAlertStore_CreatedUnverifiedByDefault(t *testing.T) {
	t.Parallel()

	s := NewAlertStore(nil)
	a := s.Add(models.AlertInput{Type: models.AlertTypeHelp, Title: "Need sandbags"})
	assert.False(t, a.Verified)
	assert.NotEmpty(t, a.ID)
	assert.NotZero(t, a.CreatedAt)
}

func TestAlertStore_VerifyIsIdempotent(t *testing.T) {
	t.Parallel()

	s := NewAlertStore(nil)
	a := s.Add(models.AlertInput{Type: models.AlertTypeHelp, Title: "x"})

	v1, ok := s.Verify(a.ID)
	require.True(t, ok)
	snapshot := s.List()

	v2, ok := s.Verify(a.ID)
	require.True(t, ok)
	assert.True(t, v1.Verified)
	assert.Equal(t, v1, v2)
	assert.Equal(t, snapshot, s.List())
}

func TestAlertStore_MissingIDsAreNoOps(t *testing.T) {
	t.Parallel()

	s := NewAlertStore([]models.Alert{{ID: "1", Title: "seed"}})
	before := s.List()

	_, ok := s.Verify("404")
	assert.False(t, ok)
	assert.False(t, s.Remove("404"))
	assert.Equal(t, before, s.List())
}

func TestAlertStore_Remove(t *testing.T) {
	t.Parallel()

	s := NewAlertStore([]models.Alert{{ID: "1"}, {ID: "2"}})
	assert.True(t, s.Remove("1"))
	list := s.List()
	require.Len(t, list, 1)
	assert.Equal(t, "2", list[0].ID)

	assert.True(t, s.Remove("2"))
	_, ok := s.Latest()
	assert.False(t, ok)
}
