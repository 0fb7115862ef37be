package service

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/jengzang/studyspots-backend-go/internal/catalog"
	"github.com/jengzang/studyspots-backend-go/internal/database"
	"github.com/jengzang/studyspots-backend-go/internal/logger"
	"github.com/jengzang/studyspots-backend-go/internal/models"
	"github.com/jengzang/studyspots-backend-go/internal/repository"
)

// SeedService loads the default catalog into the store
type SeedService struct {
	db          *sqlx.DB
	spotRepo    *repository.SpotRepository
	invalidator Invalidator
}

// NewSeedService creates a new seed service
func NewSeedService(db *sqlx.DB, spotRepo *repository.SpotRepository, invalidator Invalidator) *SeedService {
	return &SeedService{db: db, spotRepo: spotRepo, invalidator: invalidator}
}

// Seed writes the default catalog when the store is empty or any stored spot
// lacks coordinates or a category. Otherwise it leaves the store alone.
func (s *SeedService) Seed(ctx context.Context) (*models.SeedResult, error) {
	total, err := s.spotRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to seed spots: %w", err)
	}
	incomplete, err := s.spotRepo.CountIncomplete(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to seed spots: %w", err)
	}
	if total > 0 && incomplete == 0 {
		return &models.SeedResult{Message: "Spots already exist"}, nil
	}

	spots := catalog.Default()
	err = database.Transaction(s.db, func(tx *sqlx.Tx) error {
		return s.spotRepo.Upsert(ctx, tx, spots)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to seed spots: %w", err)
	}
	s.invalidator.Invalidate(ctx)

	logger.L().Info("seeded default spots", zap.Int("count", len(spots)), zap.Int("incomplete_before", incomplete))
	return &models.SeedResult{Message: "Default spots initialized", Count: len(spots)}, nil
}
