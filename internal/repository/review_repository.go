package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jengzang/studyspots-backend-go/internal/apperror"
	"github.com/jengzang/studyspots-backend-go/internal/models"
)

const reviewColumns = `id, spot_key, user_id, user_name, rating, comment, created_at`

// ReviewRepository handles database operations for reviews
type ReviewRepository struct {
	db *sqlx.DB
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(db *sqlx.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Create inserts a review. ID and CreatedAt must already be set.
func (r *ReviewRepository) Create(ctx context.Context, review *models.Review) error {
	query := r.db.Rebind(`INSERT INTO reviews (` + reviewColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	_, err := r.db.ExecContext(ctx, query, review.ID, review.SpotID, review.UserID, review.UserName,
		review.Rating, review.Comment, review.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert review: %w", err)
	}
	return nil
}

// ListBySpot returns the reviews of a spot, newest first
func (r *ReviewRepository) ListBySpot(ctx context.Context, spotKey string) ([]models.Review, error) {
	query := r.db.Rebind(`SELECT ` + reviewColumns + ` FROM reviews WHERE spot_key = ? ORDER BY created_at DESC, id DESC`)

	reviews := []models.Review{}
	if err := r.db.SelectContext(ctx, &reviews, query, spotKey); err != nil {
		return nil, fmt.Errorf("failed to query reviews for %s: %w", spotKey, err)
	}
	return reviews, nil
}

// ListByUser returns a user's reviews, newest first
func (r *ReviewRepository) ListByUser(ctx context.Context, userID string) ([]models.Review, error) {
	query := r.db.Rebind(`SELECT ` + reviewColumns + ` FROM reviews WHERE user_id = ? ORDER BY created_at DESC, id DESC`)

	reviews := []models.Review{}
	if err := r.db.SelectContext(ctx, &reviews, query, userID); err != nil {
		return nil, fmt.Errorf("failed to query reviews for user: %w", err)
	}
	return reviews, nil
}

// Delete removes a review owned by userID. Reviews that are missing or owned
// by someone else are reported as not found.
func (r *ReviewRepository) Delete(ctx context.Context, id, userID string) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(`DELETE FROM reviews WHERE id = ? AND user_id = ?`), id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete review %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete review %s: %w", id, err)
	}
	if n == 0 {
		return apperror.NotFound("review %s", id)
	}
	return nil
}
