package session

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		input   string
		wantErr string
	}{
		{"main", ""},
		{"work-2", ""},
		{"team_chat", ""},
		{"x", ""},
		{strings.Repeat("s", MaxNameLen), ""},
		{"", "empty"},
		{strings.Repeat("s", MaxNameLen+1), "at most 64"},
		{"Main", `'M'`},
		{"my chat", `' '`},
		{"home.dir", `'.'`},
		{"../etc", `'.'`},
		{"чат", `'ч'`},
	}
	for _, tt := range tests {
		err := ValidateName(tt.input)
		if tt.wantErr == "" {
			if err != nil {
				t.Errorf("ValidateName(%q) = %v, want nil", tt.input, err)
			}
			continue
		}
		if !errors.Is(err, ErrInvalidName) {
			t.Errorf("ValidateName(%q) = %v, want ErrInvalidName", tt.input, err)
			continue
		}
		if !strings.Contains(err.Error(), tt.wantErr) {
			t.Errorf("ValidateName(%q) = %q, want it to mention %s", tt.input, err, tt.wantErr)
		}
	}
}
