package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator_CustomTags(t *testing.T) {
	InitValidator()

	type probe struct {
		User   string `validate:"userid"`
		Status string `validate:"omitempty,review_status"`
		Kind   string `validate:"notification_kind"`
	}

	tests := []struct {
		name      string
		in        probe
		wantField string
		wantMsg   string
	}{
		{"all valid", probe{User: "3f2b8a4e-5c1d-4e8f-9a6b-7c0d1e2f3a4b", Status: "approved", Kind: "story"}, "", ""},
		{"empty optional values", probe{}, "", ""},
		{"bad user id", probe{User: "seller-7"}, "user", "Invalid user id"},
		{"pending is not a review outcome", probe{Status: "pending"}, "status", "Must be approved or rejected"},
		{"unknown kind", probe{Kind: "sms"}, "kind", "Must be notice or story"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := GetValidator().ValidateStruct(tt.in)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			fields := FormatValidationError(err)
			assert.Equal(t, tt.wantMsg, fields[tt.wantField])
		})
	}
}

func TestFormatValidationError_NonValidatorError(t *testing.T) {
	fields := FormatValidationError(assert.AnError)
	assert.Equal(t, "Invalid request format", fields["error"])
	assert.Nil(t, FormatValidationError(nil))
}
