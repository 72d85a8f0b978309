package models

import "time"

// Role constants
const (
	RoleEditor = "editor"
	RoleAdmin  = "admin"
)

// Admin is a dashboard account. Editors manage FAQs; admins additionally
// manage other admin accounts.
type Admin struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// IsAdmin returns true if the account can manage other admins.
func (a *Admin) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// CanManageFAQs returns true if the account can create, edit and delete FAQs.
func (a *Admin) CanManageFAQs() bool {
	return a.Role == RoleEditor || a.Role == RoleAdmin
}

// ValidRole reports whether role is one of the known admin roles.
func ValidRole(role string) bool {
	return role == RoleEditor || role == RoleAdmin
}
