package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// HistoryRepository handles the per-user list of visited spots
type HistoryRepository struct {
	db *sqlx.DB
}

// NewHistoryRepository creates a new history repository
func NewHistoryRepository(db *sqlx.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Add records a visit. Revisiting a spot keeps the first visit time.
func (r *HistoryRepository) Add(ctx context.Context, userID, spotKey, visitedAt string) error {
	query := r.db.Rebind(`INSERT INTO user_history (user_id, spot_key, visited_at) VALUES (?, ?, ?)
		ON CONFLICT (user_id, spot_key) DO NOTHING`)
	if _, err := r.db.ExecContext(ctx, query, userID, spotKey, visitedAt); err != nil {
		return fmt.Errorf("failed to add history entry: %w", err)
	}
	return nil
}

// List returns the visited spot keys in first-visit order
func (r *HistoryRepository) List(ctx context.Context, userID string) ([]string, error) {
	query := r.db.Rebind(`SELECT spot_key FROM user_history WHERE user_id = ? ORDER BY visited_at, spot_key`)

	keys := []string{}
	if err := r.db.SelectContext(ctx, &keys, query, userID); err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	return keys, nil
}
