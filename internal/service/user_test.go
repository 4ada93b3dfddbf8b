package service

import (
	"testing"
)

func TestValidateRegistration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		email    string
		phone    string
		password string
		fullName string
		wantErr  error
	}{
		{"valid", "alice@example.com", "+15550001111", "longenough", "Alice", nil},
		{"valid without plus", "alice@example.com", "15550001111", "longenough", "Alice", nil},
		{"bad email", "not-an-email", "+15550001111", "longenough", "Alice", ErrInvalidEmail},
		{"email without domain dot", "alice@example", "+15550001111", "longenough", "Alice", ErrInvalidEmail},
		{"bad phone", "alice@example.com", "555-0001", "longenough", "Alice", ErrInvalidPhone},
		{"phone too short", "alice@example.com", "+123", "longenough", "Alice", ErrInvalidPhone},
		{"short password", "alice@example.com", "+15550001111", "seven77", "Alice", ErrWeakPassword},
		{"missing name", "alice@example.com", "+15550001111", "longenough", "", ErrMissingFullName},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := validateRegistration(tt.email, tt.phone, tt.password, tt.fullName)
			if err != tt.wantErr {
				t.Errorf("validateRegistration() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
