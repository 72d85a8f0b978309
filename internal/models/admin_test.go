package models

import "testing"

func TestAdmin_IsAdmin(t *testing.T) {
	tests := []struct {
		name     string
		role     string
		expected bool
	}{
		{"admin", RoleAdmin, true},
		{"editor", RoleEditor, false},
		{"empty role", "", false},
		{"unknown role", "owner", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &Admin{Role: tt.role}
			if got := a.IsAdmin(); got != tt.expected {
				t.Errorf("IsAdmin() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestAdmin_CanManageFAQs(t *testing.T) {
	tests := []struct {
		name     string
		role     string
		expected bool
	}{
		{"admin", RoleAdmin, true},
		{"editor", RoleEditor, true},
		{"empty role", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &Admin{Role: tt.role}
			if got := a.CanManageFAQs(); got != tt.expected {
				t.Errorf("CanManageFAQs() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestValidRole(t *testing.T) {
	for role, want := range map[string]bool{
		RoleAdmin:  true,
		RoleEditor: true,
		"":         false,
		"root":     false,
	} {
		if got := ValidRole(role); got != want {
			t.Errorf("ValidRole(%q) = %v, want %v", role, got, want)
		}
	}
}
