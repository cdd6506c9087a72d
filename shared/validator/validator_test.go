package validator_test

import (
	"roomify/shared/failure"
	"roomify/shared/validator"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type slotRequest struct {
	Title     string    `json:"title"     validate:"required,notblank,max=20"`
	Kind      string    `json:"kind"      validate:"omitempty,oneof=regular club class"`
	Start     time.Time `json:"start"     validate:"required"`
	End       time.Time `json:"end"       validate:"required,gtfield=Start"`
	Equipment []string  `json:"equipment" validate:"omitempty,unique"`
}

func TestValidateStruct(t *testing.T) {
	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		data        slotRequest
		expectError string
	}{
		{
			name: "valid struct",
			data: slotRequest{Title: "Standup", Kind: "regular", Start: start, End: start.Add(time.Hour)},
		},
		{
			name:        "missing title",
			data:        slotRequest{Start: start, End: start.Add(time.Hour)},
			expectError: "title is required",
		},
		{
			name:        "blank title",
			data:        slotRequest{Title: "   ", Start: start, End: start.Add(time.Hour)},
			expectError: "title must not be blank",
		},
		{
			name:        "end before start",
			data:        slotRequest{Title: "Standup", Start: start, End: start.Add(-time.Hour)},
			expectError: "end must be after start",
		},
		{
			name:        "end equal to start",
			data:        slotRequest{Title: "Standup", Start: start, End: start},
			expectError: "end must be after start",
		},
		{
			name:        "unknown kind",
			data:        slotRequest{Title: "Standup", Kind: "party", Start: start, End: start.Add(time.Hour)},
			expectError: "kind must be one of regular club class",
		},
		{
			name:        "duplicate equipment",
			data:        slotRequest{Title: "Standup", Start: start, End: start.Add(time.Hour), Equipment: []string{"a", "a"}},
			expectError: "equipment must not contain duplicates",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.data)

			if tt.expectError == "" {
				assert.NoError(t, err)

				return
			}

			require.Error(t, err)
			assert.True(t, failure.IsValidation(err))
			assert.Equal(t, tt.expectError, err.Error())
		})
	}
}

func TestValidateVar(t *testing.T) {
	assert.NoError(t, validator.ValidateVar("faculty", "oneof=student faculty admin hod"))
	assert.Error(t, validator.ValidateVar("janitor", "oneof=student faculty admin hod"))
	assert.Error(t, validator.ValidateVar("", "required"))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		jsonBody    string
		expectError bool
	}{
		{
			name:     "valid JSON",
			jsonBody: `{"title":"Standup","start":"2024-01-01T10:00:00Z","end":"2024-01-01T11:00:00Z"}`,
		},
		{
			name:        "invalid interval",
			jsonBody:    `{"title":"Standup","start":"2024-01-01T11:00:00Z","end":"2024-01-01T10:00:00Z"}`,
			expectError: true,
		},
		{
			name:        "malformed JSON",
			jsonBody:    `{"title":`,
			expectError: true,
		},
		{
			name:        "empty JSON",
			jsonBody:    `{}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var data slotRequest
			err := validator.Validate(strings.NewReader(tt.jsonBody), &data)

			if tt.expectError {
				assert.True(t, failure.IsValidation(err), "expected validation failure, got %v", err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
