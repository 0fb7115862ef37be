package client

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/jengzang/studyspots-backend-go/internal/apperror"
	"github.com/jengzang/studyspots-backend-go/internal/models"
)

// maxParallelFetches bounds concurrent per-spot requests
const maxParallelFetches = 4

// SpotsByKey fetches the spots for keys in parallel and returns them in key
// order. Keys that no longer resolve are skipped; any other failure aborts.
func (c *Client) SpotsByKey(ctx context.Context, keys []string) ([]models.StudySpot, error) {
	results := make([]*models.StudySpot, len(keys))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelFetches)
	for i, key := range keys {
		g.Go(func() error {
			spot, err := c.GetSpot(gctx, key)
			if errors.Is(err, apperror.ErrNotFound) {
				return nil
			}
			if err != nil {
				return err
			}
			results[i] = spot
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	spots := make([]models.StudySpot, 0, len(keys))
	for _, s := range results {
		if s != nil {
			spots = append(spots, *s)
		}
	}
	return spots, nil
}

// LoadHistory returns the caller's visited spots in first-visit order
func (c *Client) LoadHistory(ctx context.Context) ([]models.StudySpot, error) {
	h, err := c.GetHistory(ctx)
	if err != nil {
		return nil, err
	}
	return c.SpotsByKey(ctx, h.History)
}
