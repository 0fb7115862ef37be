package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jengzang/studyspots-backend-go/internal/apperror"
	"github.com/jengzang/studyspots-backend-go/internal/models"
)

// spotColumns selects a spot with its rating aggregate. avg_rating and
// review_count are always derived from the reviews table.
const spotColumns = `s.spot_key, s.name, s.category, s.neighborhood, s.address, s.wifi, s.outlets,
		s.noise, s.hours, s.latitude, s.longitude, s.description,
		COALESCE(AVG(r.rating), 0) AS avg_rating, COUNT(r.id) AS review_count`

const spotGroupBy = ` GROUP BY s.spot_key, s.name, s.category, s.neighborhood, s.address, s.wifi, s.outlets,
		s.noise, s.hours, s.latitude, s.longitude, s.description`

// SpotRepository handles database operations for study spots
type SpotRepository struct {
	db *sqlx.DB
}

// NewSpotRepository creates a new spot repository
func NewSpotRepository(db *sqlx.DB) *SpotRepository {
	return &SpotRepository{db: db}
}

// ListAll returns every spot with its rating aggregate, ordered by key
func (r *SpotRepository) ListAll(ctx context.Context) ([]models.StudySpot, error) {
	query := `SELECT ` + spotColumns + ` FROM spots s LEFT JOIN reviews r ON r.spot_key = s.spot_key` +
		spotGroupBy + ` ORDER BY s.spot_key`

	spots := []models.StudySpot{}
	if err := r.db.SelectContext(ctx, &spots, query); err != nil {
		return nil, fmt.Errorf("failed to query spots: %w", err)
	}
	return spots, nil
}

// GetByKey retrieves a single spot
func (r *SpotRepository) GetByKey(ctx context.Context, key string) (*models.StudySpot, error) {
	query := r.db.Rebind(`SELECT ` + spotColumns + ` FROM spots s LEFT JOIN reviews r ON r.spot_key = s.spot_key
		WHERE s.spot_key = ?` + spotGroupBy)

	var spot models.StudySpot
	err := r.db.GetContext(ctx, &spot, query, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NotFound("spot %s", key)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get spot %s: %w", key, err)
	}
	return &spot, nil
}

// GetByKeys retrieves the spots that exist among keys, in no particular order
func (r *SpotRepository) GetByKeys(ctx context.Context, keys []string) ([]models.StudySpot, error) {
	spots := []models.StudySpot{}
	if len(keys) == 0 {
		return spots, nil
	}

	query, args, err := sqlx.In(`SELECT `+spotColumns+` FROM spots s LEFT JOIN reviews r ON r.spot_key = s.spot_key
		WHERE s.spot_key IN (?)`+spotGroupBy, keys)
	if err != nil {
		return nil, fmt.Errorf("failed to build spot query: %w", err)
	}
	if err := r.db.SelectContext(ctx, &spots, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to query spots by key: %w", err)
	}
	return spots, nil
}

// Exists reports whether a spot with key is stored
func (r *SpotRepository) Exists(ctx context.Context, key string) (bool, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, r.db.Rebind(`SELECT COUNT(*) FROM spots WHERE spot_key = ?`), key); err != nil {
		return false, fmt.Errorf("failed to check spot %s: %w", key, err)
	}
	return n > 0, nil
}

// Count returns the number of stored spots
func (r *SpotRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM spots`); err != nil {
		return 0, fmt.Errorf("failed to count spots: %w", err)
	}
	return n, nil
}

// CountIncomplete counts spots missing coordinates or a category
func (r *SpotRepository) CountIncomplete(ctx context.Context) (int, error) {
	var n int
	query := `SELECT COUNT(*) FROM spots WHERE latitude IS NULL OR longitude IS NULL OR category = ''`
	if err := r.db.GetContext(ctx, &n, query); err != nil {
		return 0, fmt.Errorf("failed to count incomplete spots: %w", err)
	}
	return n, nil
}

// Upsert inserts spots or overwrites the stored attributes of existing keys.
// Reviews attached to an existing key are kept.
func (r *SpotRepository) Upsert(ctx context.Context, tx *sqlx.Tx, spots []models.StudySpot) error {
	query := tx.Rebind(`INSERT INTO spots (spot_key, name, category, neighborhood, address, wifi, outlets,
			noise, hours, latitude, longitude, description)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (spot_key) DO UPDATE SET
			name = excluded.name, category = excluded.category, neighborhood = excluded.neighborhood,
			address = excluded.address, wifi = excluded.wifi, outlets = excluded.outlets,
			noise = excluded.noise, hours = excluded.hours, latitude = excluded.latitude,
			longitude = excluded.longitude, description = excluded.description`)

	for _, s := range spots {
		_, err := tx.ExecContext(ctx, query, s.Key, s.Name, s.Category, s.Neighborhood, s.Address, s.WiFi, s.Outlets,
			s.Noise, s.Hours, s.Latitude, s.Longitude, s.Description)
		if err != nil {
			return fmt.Errorf("failed to upsert spot %s: %w", s.Key, err)
		}
	}
	return nil
}
