package db

import (
	"context"
	"errors"
	"testing"

	"edunex/internal/models"
)

func TestCreateAdmin_Duplicate(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	a := &models.Admin{Email: "Office@College.edu", PasswordHash: hash}
	if err := db.CreateAdmin(ctx, a); err != nil {
		t.Fatalf("CreateAdmin() error = %v", err)
	}
	if a.Role != models.RoleAdmin {
		t.Errorf("CreateAdmin() role = %q, want %q", a.Role, models.RoleAdmin)
	}
	if a.Email != "office@college.edu" {
		t.Errorf("CreateAdmin() email = %q, want lower-cased", a.Email)
	}

	err = db.CreateAdmin(ctx, &models.Admin{Email: "office@college.edu", PasswordHash: hash})
	if !errors.Is(err, ErrDuplicateAdmin) {
		t.Errorf("CreateAdmin() error = %v, want ErrDuplicateAdmin", err)
	}
}

func TestAuthenticate(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	if err := db.EnsureAdmin(ctx, "admin@college.edu", "correct horse"); err != nil {
		t.Fatalf("EnsureAdmin() error = %v", err)
	}

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"valid", "admin@college.edu", "correct horse", nil},
		{"case-insensitive email", "ADMIN@college.edu", "correct horse", nil},
		{"wrong password", "admin@college.edu", "battery staple", ErrInvalidCredentials},
		{"unknown email", "nobody@college.edu", "correct horse", ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := db.Authenticate(ctx, tt.email, tt.password)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Authenticate() error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && a.Email != "admin@college.edu" {
				t.Errorf("Authenticate() email = %q", a.Email)
			}
		})
	}
}

func TestEnsureAdmin_Idempotent(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := db.EnsureAdmin(ctx, "root@college.edu", "pw-123456"); err != nil {
			t.Fatalf("EnsureAdmin() call %d error = %v", i, err)
		}
	}
	n, err := db.CountAdmins(ctx)
	if err != nil {
		t.Fatalf("CountAdmins() error = %v", err)
	}
	if n != 1 {
		t.Errorf("CountAdmins() = %d, want 1", n)
	}
}

func TestDeleteAdmin(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	a := &models.Admin{Email: "temp@college.edu", PasswordHash: "x", Role: models.RoleEditor}
	if err := db.CreateAdmin(ctx, a); err != nil {
		t.Fatalf("CreateAdmin() error = %v", err)
	}
	if err := db.UpdateAdminRole(ctx, a.ID, models.RoleAdmin); err != nil {
		t.Fatalf("UpdateAdminRole() error = %v", err)
	}
	got, err := db.GetAdminByID(ctx, a.ID)
	if err != nil {
		t.Fatalf("GetAdminByID() error = %v", err)
	}
	if got.Role != models.RoleAdmin {
		t.Errorf("GetAdminByID() role = %q, want %q", got.Role, models.RoleAdmin)
	}

	if err := db.DeleteAdmin(ctx, a.ID); err != nil {
		t.Fatalf("DeleteAdmin() error = %v", err)
	}
	if _, err := db.GetAdminByID(ctx, a.ID); !errors.Is(err, ErrAdminNotFound) {
		t.Errorf("GetAdminByID() after delete error = %v, want ErrAdminNotFound", err)
	}
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("pw")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if hash == "pw" || hash == "" {
		t.Errorf("HashPassword() = %q, want a bcrypt hash", hash)
	}
}
