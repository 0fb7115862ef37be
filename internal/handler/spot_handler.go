package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/studyspots-backend-go/internal/models"
	"github.com/jengzang/studyspots-backend-go/internal/service"
	"github.com/jengzang/studyspots-backend-go/pkg/response"
)

// SpotHandler handles HTTP requests for study spots
type SpotHandler struct {
	spotService *service.SpotService
	seedService *service.SeedService
}

// NewSpotHandler creates a new spot handler
func NewSpotHandler(spotService *service.SpotService, seedService *service.SeedService) *SpotHandler {
	return &SpotHandler{
		spotService: spotService,
		seedService: seedService,
	}
}

// GetSpots handles GET /api/v1/spots
func (h *SpotHandler) GetSpots(c *gin.Context) {
	// Malformed numbers fall back to defaults instead of failing the request
	filter := models.SpotFilter{
		Page:     queryInt(c, "page"),
		Limit:    queryInt(c, "limit"),
		Search:   strings.TrimSpace(c.Query("search")),
		Query:    strings.TrimSpace(c.Query("q")),
		Category: c.Query("category"),
		SortBy:   c.DefaultQuery("sortBy", "none"),
		UserLat:  queryFloat(c, "userLat"),
		UserLon:  queryFloat(c, "userLon"),
	}

	result, err := h.spotService.ListSpots(c.Request.Context(), filter)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, result)
}

// GetSpot handles GET /api/v1/spots/:key
func (h *SpotHandler) GetSpot(c *gin.Context) {
	spot, err := h.spotService.GetSpot(c.Request.Context(), c.Param("key"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, spot)
}

// InitSpots handles POST /api/v1/init-spots
func (h *SpotHandler) InitSpots(c *gin.Context) {
	result, err := h.seedService.Seed(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, result)
}

func queryInt(c *gin.Context, name string) int {
	n, err := strconv.Atoi(strings.TrimSpace(c.Query(name)))
	if err != nil {
		return 0
	}
	return n
}

func queryFloat(c *gin.Context, name string) *float64 {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &f
}
