package db

import (
	"context"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"

	"edunex/migrations"
)

// DB wraps a pgxpool connection pool.
type DB struct {
	Pool *pgxpool.Pool
}

// New creates a new database connection pool.
func New(ctx context.Context, connString string) (*DB, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{Pool: pool}, nil
}

// RunMigrations runs all embedded SQL migrations.
func (d *DB) RunMigrations(connString string) error {
	sourceDriver, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("failed to create migration source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", sourceDriver, connString)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("migration failed: %w", err)
	}

	return nil
}

// Ping checks that the database is reachable.
func (d *DB) Ping(ctx context.Context) error {
	return d.Pool.Ping(ctx)
}

// Close closes the connection pool.
func (d *DB) Close() {
	d.Pool.Close()
}

// SeedDevFAQs inserts sample FAQ rows for development. Skips rows whose
// primary keyword already exists.
func (d *DB) SeedDevFAQs(ctx context.Context) error {
	faqs := []struct {
		keyword  string
		keywords []string
		answer   string
	}{
		{"bca-fees", []string{"bca fees", "tuition"}, "₹50,000/year"},
		{"fees-bca", nil, "The BCA programme fee is ₹50,000 per year, payable in two instalments."},
		{"admission-bcom", nil, "BCom admissions open in May. Apply online through the college website."},
		{"syllabus-bsc", []string{"bsc syllabus"}, "The BSc syllabus is available from the department office and the college website."},
		{"library hours", []string{"library timing"}, "The library is open 8:30 AM to 6:00 PM, Monday to Saturday."},
		{"hostel", []string{"hostel facility", "accommodation"}, "Separate hostels are available for men and women on campus."},
	}

	query := `
		INSERT INTO faqs (keyword, keywords, answer)
		SELECT $1::text, $2::text[], $3::text
		WHERE NOT EXISTS (SELECT 1 FROM faqs WHERE keyword = $1::text)
	`

	for _, f := range faqs {
		keywords := f.keywords
		if keywords == nil {
			keywords = []string{}
		}
		if _, err := d.Pool.Exec(ctx, query, f.keyword, keywords, f.answer); err != nil {
			return fmt.Errorf("failed to seed faq %s: %w", f.keyword, err)
		}
	}

	return nil
}
