package middleware

import (
	"testing"
)

func TestValidatePasswordStrength(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantOK   bool
	}{
		{"strong password", "Sunrise42", true},
		{"too short", "Ab1", false},
		{"no uppercase", "sunrise42", false},
		{"no lowercase", "SUNRISE42", false},
		{"no digit", "SunriseDay", false},
		{"long mixed", "ComplexPass123WithLength", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, problems := ValidatePasswordStrength(tt.password)
			if ok != tt.wantOK {
				t.Errorf("ValidatePasswordStrength(%q) = %v (%v), want %v", tt.password, ok, problems, tt.wantOK)
			}
			if !ok && len(problems) == 0 {
				t.Error("a rejected password should come with reasons")
			}
		})
	}
}
