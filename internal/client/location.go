package client

import (
	"context"
	"errors"
	"time"

	"github.com/jengzang/studyspots-backend-go/internal/apperror"
	"github.com/jengzang/studyspots-backend-go/internal/kvstore"
	"github.com/jengzang/studyspots-backend-go/internal/spatial"
)

// LocationTTL is how long a remembered position stays usable
const LocationTTL = 7 * 24 * time.Hour

const locationKey = "user:location"

// LocationCache remembers the last known position between sessions
type LocationCache struct {
	store kvstore.Store
}

// NewLocationCache creates a cache backed by store
func NewLocationCache(store kvstore.Store) *LocationCache {
	return &LocationCache{store: store}
}

// Save stores c for LocationTTL
func (l *LocationCache) Save(ctx context.Context, c spatial.Coordinates) error {
	if !c.Valid() {
		return apperror.Validation("invalid coordinates %v,%v", c.Latitude, c.Longitude)
	}
	return kvstore.SetJSON(ctx, l.store, locationKey, c, LocationTTL)
}

// Load returns the remembered position, or nil when there is none.
// Unavailable location is not an error.
func (l *LocationCache) Load(ctx context.Context) (*spatial.Coordinates, error) {
	var c spatial.Coordinates
	err := kvstore.GetJSON(ctx, l.store, locationKey, &c)
	if errors.Is(err, kvstore.ErrMiss) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !c.Valid() {
		return nil, nil
	}
	return &c, nil
}

// Clear forgets the remembered position
func (l *LocationCache) Clear(ctx context.Context) error {
	return l.store.Remove(ctx, locationKey)
}
