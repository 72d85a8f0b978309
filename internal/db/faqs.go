package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"edunex/internal/models"
)

// faqColumns is the standard column list for FAQ queries.
const faqColumns = `id, keyword, keywords, answer, created_at, updated_at`

// scanFAQ scans a row into an FAQ struct.
func scanFAQ(row pgx.Row) (*models.FAQ, error) {
	var f models.FAQ
	err := row.Scan(&f.ID, &f.PrimaryKeyword, &f.Keywords, &f.Answer, &f.CreatedAt, &f.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrFAQNotFound
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// scanFAQs scans multiple rows into a slice of FAQs.
func scanFAQs(rows pgx.Rows) ([]models.FAQ, error) {
	defer rows.Close()

	var faqs []models.FAQ
	for rows.Next() {
		var f models.FAQ
		if err := rows.Scan(&f.ID, &f.PrimaryKeyword, &f.Keywords, &f.Answer, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, err
		}
		faqs = append(faqs, f)
	}
	return faqs, rows.Err()
}

// ListFAQs returns every FAQ row, most recently updated first.
func (d *DB) ListFAQs(ctx context.Context) ([]models.FAQ, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT `+faqColumns+`
		FROM faqs
		ORDER BY updated_at DESC, id DESC
	`)
	if err != nil {
		return nil, err
	}
	return scanFAQs(rows)
}

// GetFAQByID retrieves a single FAQ by ID.
func (d *DB) GetFAQByID(ctx context.Context, id int64) (*models.FAQ, error) {
	return scanFAQ(d.Pool.QueryRow(ctx, `SELECT `+faqColumns+` FROM faqs WHERE id = $1`, id))
}

// GetFAQByPrimaryKeyword returns the row whose primary keyword equals key
// exactly. The lowest id wins if several rows share the key.
func (d *DB) GetFAQByPrimaryKeyword(ctx context.Context, key string) (*models.FAQ, error) {
	return scanFAQ(d.Pool.QueryRow(ctx, `
		SELECT `+faqColumns+`
		FROM faqs
		WHERE keyword = $1
		ORDER BY id ASC
		LIMIT 1
	`, key))
}

// CreateFAQ inserts a new FAQ and fills in its generated fields.
func (d *DB) CreateFAQ(ctx context.Context, f *models.FAQ) error {
	keywords := f.Keywords
	if keywords == nil {
		keywords = []string{}
	}
	return d.Pool.QueryRow(ctx, `
		INSERT INTO faqs (keyword, keywords, answer)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, f.PrimaryKeyword, keywords, f.Answer).Scan(&f.ID, &f.CreatedAt, &f.UpdatedAt)
}

// UpdateFAQ replaces the keywords and answer of an existing FAQ.
func (d *DB) UpdateFAQ(ctx context.Context, f *models.FAQ) error {
	keywords := f.Keywords
	if keywords == nil {
		keywords = []string{}
	}
	err := d.Pool.QueryRow(ctx, `
		UPDATE faqs SET keyword = $1, keywords = $2, answer = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING created_at, updated_at
	`, f.PrimaryKeyword, keywords, f.Answer, f.ID).Scan(&f.CreatedAt, &f.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrFAQNotFound
	}
	return err
}

// DeleteFAQ deletes an FAQ by ID.
func (d *DB) DeleteFAQ(ctx context.Context, id int64) error {
	tag, err := d.Pool.Exec(ctx, `DELETE FROM faqs WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrFAQNotFound
	}
	return nil
}

// CountFAQs returns the number of FAQ rows.
func (d *DB) CountFAQs(ctx context.Context) (int64, error) {
	var n int64
	err := d.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM faqs`).Scan(&n)
	return n, err
}
