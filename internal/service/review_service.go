package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/jengzang/studyspots-backend-go/internal/apperror"
	"github.com/jengzang/studyspots-backend-go/internal/auth"
	"github.com/jengzang/studyspots-backend-go/internal/metrics"
	"github.com/jengzang/studyspots-backend-go/internal/models"
	"github.com/jengzang/studyspots-backend-go/internal/repository"
)

// MaxCommentLength bounds review comments, in characters
const MaxCommentLength = 2000

// Invalidator is told when derived spot data changes
type Invalidator interface {
	Invalidate(ctx context.Context)
}

// ReviewService validates and stores reviews
type ReviewService struct {
	spotRepo    *repository.SpotRepository
	reviewRepo  *repository.ReviewRepository
	invalidator Invalidator
	requireAuth bool
	now         func() time.Time
}

// NewReviewService creates a new review service. With requireAuth set,
// anonymous submissions are refused.
func NewReviewService(spotRepo *repository.SpotRepository, reviewRepo *repository.ReviewRepository,
	invalidator Invalidator, requireAuth bool) *ReviewService {
	return &ReviewService{
		spotRepo:    spotRepo,
		reviewRepo:  reviewRepo,
		invalidator: invalidator,
		requireAuth: requireAuth,
		now:         time.Now,
	}
}

// GetReviews returns a spot's reviews, newest first
func (s *ReviewService) GetReviews(ctx context.Context, spotKey string) ([]models.Review, error) {
	if err := s.ensureSpot(ctx, spotKey); err != nil {
		return nil, err
	}
	reviews, err := s.reviewRepo.ListBySpot(ctx, spotKey)
	if err != nil {
		return nil, fmt.Errorf("failed to get reviews: %w", err)
	}
	return reviews, nil
}

// CreateReview stores a review for spotKey. identity is nil for anonymous callers.
func (s *ReviewService) CreateReview(ctx context.Context, spotKey string, input models.ReviewInput, identity *auth.Identity) (*models.Review, error) {
	if s.requireAuth && identity == nil {
		metrics.ReviewsRejectedTotal.WithLabelValues("unauthorized").Inc()
		return nil, apperror.Unauthorized("please log in to submit a review")
	}
	if input.Rating < models.MinRating || input.Rating > models.MaxRating {
		metrics.ReviewsRejectedTotal.WithLabelValues("rating").Inc()
		return nil, apperror.Validation("rating must be between %d and %d", models.MinRating, models.MaxRating)
	}

	var comment *string
	if input.Comment != nil {
		if c := strings.TrimSpace(*input.Comment); c != "" {
			if utf8.RuneCountInString(c) > MaxCommentLength {
				metrics.ReviewsRejectedTotal.WithLabelValues("comment").Inc()
				return nil, apperror.Validation("comment must be at most %d characters", MaxCommentLength)
			}
			comment = &c
		}
	}

	if err := s.ensureSpot(ctx, spotKey); err != nil {
		metrics.ReviewsRejectedTotal.WithLabelValues("spot").Inc()
		return nil, err
	}

	review := &models.Review{
		ID:        newReviewID(),
		SpotID:    spotKey,
		UserName:  userName(input.UserName, identity),
		Rating:    input.Rating,
		Comment:   comment,
		CreatedAt: s.now().UTC().Format(models.TimeLayout),
	}
	if identity != nil {
		uid := identity.UserID
		review.UserID = &uid
	}

	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	s.invalidator.Invalidate(ctx)
	metrics.ReviewsCreatedTotal.Inc()
	return review, nil
}

// GetUserReviews returns the caller's reviews, newest first
func (s *ReviewService) GetUserReviews(ctx context.Context, userID string) ([]models.Review, error) {
	reviews, err := s.reviewRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user reviews: %w", err)
	}
	return reviews, nil
}

// DeleteReview removes one of the caller's reviews from the store
func (s *ReviewService) DeleteReview(ctx context.Context, userID, reviewID string) error {
	if err := s.reviewRepo.Delete(ctx, reviewID, userID); err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	s.invalidator.Invalidate(ctx)
	return nil
}

func (s *ReviewService) ensureSpot(ctx context.Context, spotKey string) error {
	ok, err := s.spotRepo.Exists(ctx, spotKey)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.NotFound("spot %s", spotKey)
	}
	return nil
}

// newReviewID returns a time-ordered id so reviews created in the same
// millisecond still list newest first
func newReviewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// userName picks the display name. A verified identity always signs with its
// own name; the requested name is only used for anonymous reviews.
func userName(requested *string, identity *auth.Identity) string {
	if identity != nil {
		if identity.Name != "" {
			return identity.Name
		}
		return models.DefaultUserName
	}
	if requested != nil {
		if name := strings.TrimSpace(*requested); name != "" {
			return name
		}
	}
	return models.DefaultUserName
}
