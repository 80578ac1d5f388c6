package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"valid simple", "Alice", nil},
		{"valid with spaces", "Alice B", nil},
		{"valid digits", "Player 2", nil},
		{"valid minimum length", "Al", nil},
		{"valid maximum length", strings.Repeat("a", UsernameMaxLength), nil},
		{"empty", "", ErrNameMissing},
		{"too short", "A", ErrNameTooShort},
		{"too long", strings.Repeat("a", UsernameMaxLength+1), ErrNameTooLong},
		{"punctuation", "Alice!", ErrNameInvalidChars},
		{"emoji", "Alice😀", ErrNameInvalidChars},
		{"only spaces", "   ", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUsername(tt.input)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
