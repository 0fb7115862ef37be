package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/jengzang/studyspots-backend-go/internal/kvstore"
	"github.com/jengzang/studyspots-backend-go/internal/logger"
	"github.com/jengzang/studyspots-backend-go/internal/metrics"
	"github.com/jengzang/studyspots-backend-go/internal/models"
	"github.com/jengzang/studyspots-backend-go/internal/ranking"
	"github.com/jengzang/studyspots-backend-go/internal/repository"
	"github.com/jengzang/studyspots-backend-go/internal/spatial"
)

const (
	versionKey     = "spots:version"
	catalogKeyBase = "spots:catalog:"
)

// SpotServiceConfig holds paging and cache settings
type SpotServiceConfig struct {
	DefaultPageSize int
	MaxPageSize     int
	CacheTTL        time.Duration
}

// SpotService lists and ranks study spots. The full catalog, with rating
// aggregates, is cached under a generation token that every write replaces.
type SpotService struct {
	spotRepo *repository.SpotRepository
	cache    kvstore.Store
	cfg      SpotServiceConfig
	group    singleflight.Group
}

// NewSpotService creates a new spot service
func NewSpotService(spotRepo *repository.SpotRepository, cache kvstore.Store, cfg SpotServiceConfig) *SpotService {
	if cfg.DefaultPageSize < 1 {
		cfg.DefaultPageSize = ranking.DefaultPageSize
	}
	if cfg.MaxPageSize < cfg.DefaultPageSize {
		cfg.MaxPageSize = cfg.DefaultPageSize
	}
	return &SpotService{spotRepo: spotRepo, cache: cache, cfg: cfg}
}

// ListSpots runs the ranking pipeline over the catalog
func (s *SpotService) ListSpots(ctx context.Context, filter models.SpotFilter) (*models.SpotsResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = s.cfg.DefaultPageSize
	}
	if filter.Limit > s.cfg.MaxPageSize {
		filter.Limit = s.cfg.MaxPageSize
	}

	search, category := filter.Search, filter.Category
	var intent *models.SearchIntent
	if filter.Query != "" && filter.Search == "" {
		in := ranking.Classify(filter.Query)
		intent = &models.SearchIntent{Category: in.Category, Search: in.Search}
		search = in.Search
		// any explicit selector, including "all", beats the derived one
		if strings.TrimSpace(filter.Category) == "" {
			category = in.Category
		}
		metrics.IntentTotal.WithLabelValues(in.Category).Inc()
	}

	spots, err := s.catalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load spots: %w", err)
	}

	result := ranking.Run(spots, ranking.Query{
		Search:   search,
		Category: category,
		Sort:     ranking.ParseSortMode(filter.SortBy),
		Page:     filter.Page,
		PageSize: filter.Limit,
		Origin:   origin(filter.UserLat, filter.UserLon),
	})

	return &models.SpotsResponse{
		Spots:      result.Items,
		Total:      result.Total,
		Page:       result.Page,
		Limit:      result.PageSize,
		TotalPages: result.TotalPages,
		Intent:     intent,
	}, nil
}

// GetSpot retrieves a single spot with its current rating aggregate
func (s *SpotService) GetSpot(ctx context.Context, key string) (*models.StudySpot, error) {
	spot, err := s.spotRepo.GetByKey(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to get spot: %w", err)
	}
	return spot, nil
}

// Invalidate starts a new cache generation so the next read hits the store
func (s *SpotService) Invalidate(ctx context.Context) {
	if err := s.cache.Set(ctx, versionKey, []byte(uuid.NewString()), 0); err != nil {
		logger.L().Warn("failed to bump spot cache version", zap.Error(err))
	}
}

func (s *SpotService) catalog(ctx context.Context) ([]models.StudySpot, error) {
	key := catalogKeyBase + s.version(ctx)

	var spots []models.StudySpot
	if err := kvstore.GetJSON(ctx, s.cache, key, &spots); err == nil {
		metrics.CacheHitsTotal.Inc()
		return spots, nil
	} else if !errors.Is(err, kvstore.ErrMiss) {
		logger.L().Warn("spot cache read failed", zap.String("key", key), zap.Error(err))
	}
	metrics.CacheMissesTotal.Inc()

	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		loaded, err := s.spotRepo.ListAll(ctx)
		if err != nil {
			return nil, err
		}
		if err := kvstore.SetJSON(ctx, s.cache, key, loaded, s.cfg.CacheTTL); err != nil {
			logger.L().Warn("spot cache write failed", zap.String("key", key), zap.Error(err))
		}
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]models.StudySpot), nil
}

func (s *SpotService) version(ctx context.Context) string {
	b, err := s.cache.Get(ctx, versionKey)
	if err == nil && len(b) > 0 {
		return string(b)
	}
	if err != nil && !errors.Is(err, kvstore.ErrMiss) {
		logger.L().Warn("spot cache version read failed", zap.Error(err))
		return "nocache"
	}
	v := uuid.NewString()
	if err := s.cache.Set(ctx, versionKey, []byte(v), 0); err != nil {
		logger.L().Warn("failed to set spot cache version", zap.Error(err))
	}
	return v
}

func origin(lat, lon *float64) *spatial.Coordinates {
	if lat == nil || lon == nil {
		return nil
	}
	c := spatial.Coordinates{Latitude: *lat, Longitude: *lon}
	if !c.Valid() {
		return nil
	}
	return &c
}
