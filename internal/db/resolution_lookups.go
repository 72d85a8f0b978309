package db

import (
	"context"

	"edunex/internal/models"
)

// IncrementResolutionLookup upserts a resolution count by outcome and provider.
func (d *DB) IncrementResolutionLookup(ctx context.Context, outcome, provider string) error {
	_, err := d.Pool.Exec(ctx, `
		INSERT INTO resolution_lookups (outcome, provider, count, last_seen_at)
		VALUES ($1, $2, 1, NOW())
		ON CONFLICT (outcome, provider) DO UPDATE
		SET count = resolution_lookups.count + 1, last_seen_at = NOW()
	`, outcome, provider)
	return err
}

// GetAllResolutionLookups returns all resolution lookup rows for metrics export.
func (d *DB) GetAllResolutionLookups(ctx context.Context) ([]models.ResolutionLookup, error) {
	rows, err := d.Pool.Query(ctx, `SELECT outcome, provider, count, last_seen_at FROM resolution_lookups`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lookups []models.ResolutionLookup
	for rows.Next() {
		var l models.ResolutionLookup
		if err := rows.Scan(&l.Outcome, &l.Provider, &l.Count, &l.LastSeenAt); err != nil {
			return nil, err
		}
		lookups = append(lookups, l)
	}
	return lookups, rows.Err()
}
