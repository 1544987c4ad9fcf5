package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeField(t *testing.T) {
	tests := []struct {
		name        string
		field       Field
		value       string
		wantCleaned string
		wantMessage string
	}{
		{
			name:        "strip brackets wins over validation",
			field:       FieldUsername,
			value:       "<b",
			wantCleaned: "b",
			wantMessage: IllegalCharacterNotice,
		},
		{
			name:        "validation message when nothing stripped",
			field:       FieldUsername,
			value:       "ab",
			wantCleaned: "ab",
			wantMessage: ErrUsernameFormat.Error(),
		},
		{
			name:        "valid username trims before validating",
			field:       FieldUsername,
			value:       " alice ",
			wantCleaned: " alice ",
		},
		{
			name:        "email",
			field:       FieldEmail,
			value:       "alice@",
			wantCleaned: "alice@",
			wantMessage: ErrEmailFormat.Error(),
		},
		{
			name:        "password stripped",
			field:       FieldPassword,
			value:       "pass>word",
			wantCleaned: "password",
			wantMessage: IllegalCharacterNotice,
		},
		{
			name:        "password ok",
			field:       FieldPassword,
			value:       "password",
			wantCleaned: "password",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cleaned, msg := SanitizeField(tt.field, tt.value)
			assert.Equal(t, tt.wantCleaned, cleaned)
			assert.Equal(t, tt.wantMessage, msg)
		})
	}
}
