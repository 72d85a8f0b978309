package db

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"

	"edunex/internal/models"
)

// HashPassword returns the bcrypt hash of password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// scanAdmin scans a row into an Admin struct.
func scanAdmin(row pgx.Row) (*models.Admin, error) {
	var a models.Admin
	err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.Role, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrAdminNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// CreateAdmin inserts a new admin account with an already-hashed password.
func (d *DB) CreateAdmin(ctx context.Context, a *models.Admin) error {
	if a.Role == "" {
		a.Role = models.RoleAdmin
	}
	err := d.Pool.QueryRow(ctx, `
		INSERT INTO admins (email, password_hash, role)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, strings.ToLower(a.Email), a.PasswordHash, a.Role).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateAdmin
		}
		return err
	}
	a.Email = strings.ToLower(a.Email)
	return nil
}

// GetAdminByID retrieves an admin by ID.
func (d *DB) GetAdminByID(ctx context.Context, id int64) (*models.Admin, error) {
	return scanAdmin(d.Pool.QueryRow(ctx, `
		SELECT id, email, password_hash, role, created_at
		FROM admins WHERE id = $1
	`, id))
}

// GetAdminByEmail retrieves an admin by e-mail, case-insensitively.
func (d *DB) GetAdminByEmail(ctx context.Context, email string) (*models.Admin, error) {
	return scanAdmin(d.Pool.QueryRow(ctx, `
		SELECT id, email, password_hash, role, created_at
		FROM admins WHERE LOWER(email) = LOWER($1)
	`, email))
}

// Authenticate checks an e-mail/password pair and returns the admin.
func (d *DB) Authenticate(ctx context.Context, email, password string) (*models.Admin, error) {
	a, err := d.GetAdminByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrAdminNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if a.PasswordHash == "" {
		// SSO-only account
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return a, nil
}

// ListAdmins returns all admins, newest first.
func (d *DB) ListAdmins(ctx context.Context) ([]models.Admin, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT id, email, password_hash, role, created_at
		FROM admins
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var admins []models.Admin
	for rows.Next() {
		var a models.Admin
		if err := rows.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.Role, &a.CreatedAt); err != nil {
			return nil, err
		}
		admins = append(admins, a)
	}
	return admins, rows.Err()
}

// UpdateAdminRole changes an admin's role.
func (d *DB) UpdateAdminRole(ctx context.Context, id int64, role string) error {
	tag, err := d.Pool.Exec(ctx, `UPDATE admins SET role = $1 WHERE id = $2`, role, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAdminNotFound
	}
	return nil
}

// DeleteAdmin removes an admin account.
func (d *DB) DeleteAdmin(ctx context.Context, id int64) error {
	tag, err := d.Pool.Exec(ctx, `DELETE FROM admins WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAdminNotFound
	}
	return nil
}

// CountAdmins returns the number of admin accounts.
func (d *DB) CountAdmins(ctx context.Context) (int64, error) {
	var n int64
	err := d.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM admins`).Scan(&n)
	return n, err
}

// EnsureAdmin creates the admin account if no account with that e-mail exists.
func (d *DB) EnsureAdmin(ctx context.Context, email, password string) error {
	if _, err := d.GetAdminByEmail(ctx, email); err == nil {
		return nil
	} else if !errors.Is(err, ErrAdminNotFound) {
		return err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return err
	}
	err = d.CreateAdmin(ctx, &models.Admin{Email: email, PasswordHash: hash, Role: models.RoleAdmin})
	if errors.Is(err, ErrDuplicateAdmin) {
		return nil
	}
	return err
}
