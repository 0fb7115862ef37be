package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/jengzang/studyspots-backend-go/internal/auth"
	"github.com/jengzang/studyspots-backend-go/internal/models"
	"github.com/jengzang/studyspots-backend-go/internal/service"
	"github.com/jengzang/studyspots-backend-go/pkg/response"
)

// ReviewHandler handles HTTP requests for reviews
type ReviewHandler struct {
	reviewService *service.ReviewService
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(reviewService *service.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
	}
}

// GetReviews handles GET /api/v1/spots/:key/reviews
func (h *ReviewHandler) GetReviews(c *gin.Context) {
	reviews, err := h.reviewService.GetReviews(c.Request.Context(), c.Param("key"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, models.ReviewsResponse{Reviews: reviews})
}

// CreateReview handles POST /api/v1/spots/:key/reviews
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	var input models.ReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	var identity *auth.Identity
	if id, ok := auth.FromContext(c.Request.Context()); ok {
		identity = &id
	}

	review, err := h.reviewService.CreateReview(c.Request.Context(), c.Param("key"), input, identity)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Created(c, review)
}

// GetUserReviews handles GET /api/v1/user/reviews
func (h *ReviewHandler) GetUserReviews(c *gin.Context) {
	id, err := auth.Require(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	reviews, err := h.reviewService.GetUserReviews(c.Request.Context(), id.UserID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, models.ReviewsResponse{Reviews: reviews})
}

// DeleteUserReview handles DELETE /api/v1/user/reviews/:id
func (h *ReviewHandler) DeleteUserReview(c *gin.Context) {
	id, err := auth.Require(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	if err := h.reviewService.DeleteReview(c.Request.Context(), id.UserID, c.Param("id")); err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, gin.H{"message": "Review deleted"})
}
