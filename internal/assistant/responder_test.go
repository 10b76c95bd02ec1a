package assistant

import (
	"errors"
	"testing"

	"nexcos/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponder_Classify(t *testing.T) {
	t.Parallel()

	r := NewDefaultResponder()

	tests := []struct {
		name string
		in   string
		want Category
	}{
		{"parking keyword", "My car needs parking", CategoryParking},
		{"repair keyword", "please repair my sink", CategoryMaintenance},
		{"maintenance beats parking", "maintenance for the car park", CategoryMaintenance},
		{"repair beats car", "Repair my CAR", CategoryMaintenance},
		{"parking beats book", "book a parking spot", CategoryParking},
		{"facility keyword", "Which FACILITY is open?", CategoryFacility},
		{"book keyword", "I want to book the hall", CategoryFacility},
		{"substring match", "my scar hurts", CategoryParking},
		{"no keyword", "hello there", CategoryDefault},
		{"empty string", "", CategoryDefault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Classify(tt.in)
			assert.Equal(t, tt.want, got.Category)
			assert.Equal(t, SourceLocal, got.Source)
		})
	}
}

func TestResponder_CannedTexts(t *testing.T) {
	t.Parallel()

	r := NewDefaultResponder()
	assert.Equal(t, MaintenanceResponse, r.Classify("repair").Response)
	assert.Equal(t, ParkingResponse, r.Classify("parking").Response)
	assert.Equal(t, FacilityResponse, r.Classify("facility").Response)
	assert.Equal(t, DefaultResponse, r.Classify("hi").Response)
}

func TestResponder_Deterministic(t *testing.T) {
	t.Parallel()

	r := NewDefaultResponder()
	first := r.Classify("Can I book the gym?")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, r.Classify("Can I book the gym?"))
	}
}

func TestResponder_RespondNilIsInvalidInput(t *testing.T) {
	t.Parallel()

	_, err := NewDefaultResponder().Respond(nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, &models.AppError{Code: models.CodeInvalidInput}))
}

func TestResponder_CustomRulesAreFolded(t *testing.T) {
	t.Parallel()

	r := NewResponder([]Rule{{Category: "pets", Keywords: []string{"DOG"}, Response: "woof"}}, "meh")
	assert.Equal(t, "woof", r.Classify("my dog").Response)
	assert.Equal(t, "meh", r.Classify("my cat").Response)
}

func TestParseRequest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    string
		want    *string
		wantErr bool
	}{
		{"string message", `{"message":"hi"}`, strPtr("hi"), false},
		{"empty string", `{"message":""}`, strPtr(""), false},
		{"missing field", `{}`, nil, false},
		{"null", `{"message":null}`, nil, false},
		{"number", `{"message":42}`, nil, true},
		{"object", `{"message":{"text":"hi"}}`, nil, true},
		{"malformed", `{"message":`, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRequest([]byte(tt.body))
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, models.CodeInvalidInput, models.ErrorCode(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func strPtr(s string) *string { return &s }
