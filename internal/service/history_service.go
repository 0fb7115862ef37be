package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jengzang/studyspots-backend-go/internal/apperror"
	"github.com/jengzang/studyspots-backend-go/internal/models"
	"github.com/jengzang/studyspots-backend-go/internal/repository"
)

// HistoryService tracks which spots a user has visited
type HistoryService struct {
	spotRepo    *repository.SpotRepository
	historyRepo *repository.HistoryRepository
	now         func() time.Time
}

// NewHistoryService creates a new history service
func NewHistoryService(spotRepo *repository.SpotRepository, historyRepo *repository.HistoryRepository) *HistoryService {
	return &HistoryService{spotRepo: spotRepo, historyRepo: historyRepo, now: time.Now}
}

// GetHistory returns the visited keys and the spots among them that still exist,
// both in first-visit order
func (s *HistoryService) GetHistory(ctx context.Context, userID string) (*models.HistoryResponse, error) {
	keys, err := s.historyRepo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get history: %w", err)
	}

	found, err := s.spotRepo.GetByKeys(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("failed to get history spots: %w", err)
	}
	byKey := make(map[string]models.StudySpot, len(found))
	for _, spot := range found {
		byKey[spot.Key] = spot
	}

	spots := make([]models.StudySpot, 0, len(found))
	for _, k := range keys {
		if spot, ok := byKey[k]; ok {
			spots = append(spots, spot)
		}
	}
	return &models.HistoryResponse{History: keys, Spots: spots}, nil
}

// AddToHistory records a visit to spotKey and returns the updated key list
func (s *HistoryService) AddToHistory(ctx context.Context, userID, spotKey string) (*models.HistoryResponse, error) {
	spotKey = strings.TrimSpace(spotKey)
	if spotKey == "" {
		return nil, apperror.Validation("spotId is required")
	}
	ok, err := s.spotRepo.Exists(ctx, spotKey)
	if err != nil {
		return nil, fmt.Errorf("failed to add to history: %w", err)
	}
	if !ok {
		return nil, apperror.NotFound("spot %s", spotKey)
	}

	if err := s.historyRepo.Add(ctx, userID, spotKey, s.now().UTC().Format(models.TimeLayout)); err != nil {
		return nil, fmt.Errorf("failed to add to history: %w", err)
	}
	keys, err := s.historyRepo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get history: %w", err)
	}
	return &models.HistoryResponse{Message: "Added to history", History: keys}, nil
}
