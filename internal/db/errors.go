package db

import "errors"

// Domain-level database error sentinels.
var (
	// FAQ errors
	ErrFAQNotFound = errors.New("faq not found")

	// Admin errors
	ErrAdminNotFound      = errors.New("admin not found")
	ErrDuplicateAdmin     = errors.New("an admin with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)
