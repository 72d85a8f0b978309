package models

import (
	"reflect"
	"testing"
)

func strPtr(s string) *string { return &s }

func TestFAQ_Phrases(t *testing.T) {
	tests := []struct {
		name     string
		faq      FAQ
		expected []string
	}{
		{
			name:     "primary and extra keywords",
			faq:      FAQ{PrimaryKeyword: strPtr("bca-fees"), Keywords: []string{"bca fees", "tuition"}},
			expected: []string{"bca-fees", "bca fees", "tuition"},
		},
		{
			name:     "primary only",
			faq:      FAQ{PrimaryKeyword: strPtr("Hostel")},
			expected: []string{"Hostel"},
		},
		{
			name:     "nil primary",
			faq:      FAQ{Keywords: []string{"library hours"}},
			expected: []string{"library hours"},
		},
		{
			name:     "empty primary is skipped",
			faq:      FAQ{PrimaryKeyword: strPtr(""), Keywords: []string{"x"}},
			expected: []string{"x"},
		},
		{
			name:     "nothing",
			faq:      FAQ{},
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.faq.Phrases(); !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("Phrases() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestFAQ_IsMatchable(t *testing.T) {
	tests := []struct {
		name     string
		faq      FAQ
		expected bool
	}{
		{"primary keyword", FAQ{PrimaryKeyword: strPtr("fees")}, true},
		{"extra keyword", FAQ{Keywords: []string{"fees"}}, true},
		{"blank keywords only", FAQ{Keywords: []string{" ", ""}}, false},
		{"no phrases", FAQ{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.faq.IsMatchable(); got != tt.expected {
				t.Errorf("IsMatchable() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestFAQ_KeywordLabel(t *testing.T) {
	if got := (&FAQ{}).KeywordLabel(); got != "(no keyword)" {
		t.Errorf("KeywordLabel() = %q, want %q", got, "(no keyword)")
	}
	if got := (&FAQ{PrimaryKeyword: strPtr("fees-bca")}).KeywordLabel(); got != "fees-bca" {
		t.Errorf("KeywordLabel() = %q, want %q", got, "fees-bca")
	}
}
