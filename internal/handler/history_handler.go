package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/jengzang/studyspots-backend-go/internal/auth"
	"github.com/jengzang/studyspots-backend-go/internal/models"
	"github.com/jengzang/studyspots-backend-go/internal/service"
	"github.com/jengzang/studyspots-backend-go/pkg/response"
)

// HistoryHandler handles HTTP requests for a user's visit history
type HistoryHandler struct {
	historyService *service.HistoryService
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(historyService *service.HistoryService) *HistoryHandler {
	return &HistoryHandler{
		historyService: historyService,
	}
}

// GetHistory handles GET /api/v1/user/history
func (h *HistoryHandler) GetHistory(c *gin.Context) {
	id, err := auth.Require(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	result, err := h.historyService.GetHistory(c.Request.Context(), id.UserID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, result)
}

// AddHistory handles POST /api/v1/user/history
func (h *HistoryHandler) AddHistory(c *gin.Context) {
	id, err := auth.Require(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	var input models.HistoryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.historyService.AddToHistory(c.Request.Context(), id.UserID, input.SpotID)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, result)
}
