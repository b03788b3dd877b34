package domain

import (
	"errors"
	"testing"
)

func TestNormalizeIdentifier(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Identifier
	}{
		{"simple", "dark_mode", "dark_mode"},
		{"spaces and punctuation", "  User Management!! ", "user_management"},
		{"mixed case", "Dark Mode", "dark_mode"},
		{"collapses runs", "a -- b...c", "a_b_c"},
		{"leading punctuation", "!flag", "flag"},
		{"trailing punctuation", "flag?", "flag"},
		{"digits survive", "v2 rollout", "v2_rollout"},
		{"already normalized", "user_management", "user_management"},
		{"unicode letters", "Café Mode", "café_mode"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeIdentifier(tt.raw)
			if err != nil {
				t.Fatalf("NormalizeIdentifier(%q): %v", tt.raw, err)
			}
			if got != tt.want {
				t.Errorf("NormalizeIdentifier(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdentifierIdempotent(t *testing.T) {
	inputs := []string{"  User Management!! ", "Dark Mode", "a -- b...c", "x"}
	for _, raw := range inputs {
		first, err := NormalizeIdentifier(raw)
		if err != nil {
			t.Fatalf("first pass %q: %v", raw, err)
		}
		second, err := NormalizeIdentifier(first.String())
		if err != nil {
			t.Fatalf("second pass %q: %v", first, err)
		}
		if second != first {
			t.Errorf("not idempotent: %q -> %q -> %q", raw, first, second)
		}
	}
}

func TestNormalizeIdentifierEmpty(t *testing.T) {
	for _, raw := range []string{"", "   ", "!!!", " -- "} {
		_, err := NormalizeIdentifier(raw)
		if !errors.Is(err, ErrEmptyInput) {
			t.Errorf("NormalizeIdentifier(%q) err = %v, want ErrEmptyInput", raw, err)
		}
	}
}
