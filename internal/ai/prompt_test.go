package ai

import (
	"strings"
	"testing"
)

func TestInjectContext(t *testing.T) {
	focus := []string{"fee", "fees", "syllabus", "admission", "course", "bca", "bcom", "bba", "msc", "mca"}

	tests := []struct {
		name     string
		prompt   string
		expected string
	}{
		{"already mentions institution", "Where is Nilgiri College located?", "Where is Nilgiri College located?"},
		{"institution lower case", "is nilgiri college good", "is nilgiri college good"},
		{"focus word", "What is the BCA syllabus?", "Regarding Nilgiri College, What is the BCA syllabus?"},
		{"focus substring", "any feedback forms", "Regarding Nilgiri College, any feedback forms"},
		{"generic", "Is there a canteen?", "At Nilgiri College, Is there a canteen?"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := InjectContext(tt.prompt, "Nilgiri College", focus); got != tt.expected {
				t.Errorf("InjectContext(%q) = %q, want %q", tt.prompt, got, tt.expected)
			}
		})
	}
}

func TestInjectContext_NoInstitution(t *testing.T) {
	if got := InjectContext("hello", "", nil); got != "hello" {
		t.Errorf("InjectContext() = %q, want unchanged", got)
	}
}

func TestSystemInstruction(t *testing.T) {
	got := SystemInstruction("Nilgiri College", "https://nilgiricollege.ac.in/")
	for _, want := range []string{"EduNex", "Nilgiri College (https://nilgiricollege.ac.in/)", "official website"} {
		if !strings.Contains(got, want) {
			t.Errorf("SystemInstruction() missing %q", want)
		}
	}
}
