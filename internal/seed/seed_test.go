package seed

import (
	"testing"
	"time"

	"nexcos/internal/models"
	"nexcos/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	now := time.UnixMilli(1_700_000_000_000)
	data, err := Default(now)
	require.NoError(t, err)

	require.Len(t, data.Resources, 14)
	for i, r := range data.Resources {
		assert.Equal(t, models.ResourceStatusAvailable, r.Status, r.ID)
		assert.True(t, r.Type.Valid(), r.ID)
		assert.NotNil(t, r.Image, r.ID)
		assert.Equal(t, now.UnixMilli(), r.CreatedAt)
		assert.Equal(t, i+1, mustAtoi(t, r.ID))
	}
	assert.Equal(t, "Emergency Water Supply", data.Resources[0].Title)
	assert.Equal(t, "Community Network Hub", data.Resources[13].Title)

	require.Len(t, data.Alerts, 1)
	assert.Equal(t, "Heavy Rain Expected", data.Alerts[0].Title)
	assert.True(t, data.Alerts[0].Verified)
	assert.Equal(t, models.AlertTypePrep, data.Alerts[0].Type)

	require.Len(t, data.ChatGroups, 2)
	assert.Equal(t, "building-a", data.ChatGroups[0].ID)
	assert.Equal(t, []string{"user1", "user3"}, data.ChatGroups[1].Members)

	require.Len(t, data.Notifications, 2)
	assert.Equal(t, now.Add(-time.Hour).UnixMilli(), data.Notifications[0].CreatedAt)
	assert.Equal(t, now.Add(-2*time.Hour).UnixMilli(), data.Notifications[1].CreatedAt)
	assert.False(t, data.Notifications[0].Read)

	assert.Equal(t, models.NotificationSettings{Email: true, Push: true, Sound: true, Desktop: true}, data.NotificationSettings)
}

func TestParse_RejectsUnknownEnums(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
	}{
		{"resource status", "resources:\n  - id: \"1\"\n    type: Tools\n    status: lost\n"},
		{"resource type", "resources:\n  - id: \"1\"\n    type: Boats\n    status: available\n"},
		{"alert type", "alerts:\n  - id: \"1\"\n    type: panic\n"},
		{"notification type", "notifications:\n  - id: \"1\"\n    type: loud\n"},
		{"notification age", "notifications:\n  - id: \"1\"\n    type: info\n    age: yesterday\n"},
		{"malformed yaml", "resources: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc), time.Now())
			assert.Error(t, err)
		})
	}
}

func TestFactory(t *testing.T) {
	t.Parallel()

	f := NewFactory(42)
	for _, in := range f.DemoResources(25) {
		assert.True(t, in.Type.Valid())
		assert.Equal(t, models.ResourceStatusAvailable, in.Status)
		assert.NotEmpty(t, in.Title)
	}

	a := f.AlertInput()
	assert.True(t, a.Type.Valid())
	assert.False(t, a.Verified)

	acct := f.Account()
	assert.NoError(t, validation.ValidateEmail(acct.Email))
	assert.NoError(t, validation.ValidatePassword(acct.Password))
	assert.NoError(t, validation.ValidateDisplayName(acct.DisplayName))
}

func mustAtoi(t *testing.T, s string) int {
	t.Helper()
	n := 0
	for _, r := range s {
		require.True(t, r >= '0' && r <= '9', s)
		n = n*10 + int(r-'0')
	}
	return n
}
