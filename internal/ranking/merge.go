package ranking

import (
	"math"
	"slices"

	"github.com/jengzang/studyspots-backend-go/internal/models"
	"github.com/jengzang/studyspots-backend-go/internal/spatial"
)

// Merge places each incoming item into an already sorted list, immediately
// before the first existing entry that compares greater than it. Items equal
// to existing entries land after them. existing is not modified.
func Merge[T any](existing, incoming []T, cmp func(a, b T) int) []T {
	merged := make([]T, len(existing), len(existing)+len(incoming))
	copy(merged, existing)

	for _, item := range incoming {
		at := len(merged)
		for i, current := range merged {
			if cmp(current, item) > 0 {
				at = i
				break
			}
		}
		merged = slices.Insert(merged, at, item)
	}
	return merged
}

// MergePage appends a freshly fetched page to a list that is already on
// screen. Under distance sort the page is merged by distance from origin;
// every other mode is already globally ordered by the server, so it appends.
func MergePage(existing, page []models.StudySpot, mode SortMode, origin *spatial.Coordinates) []models.StudySpot {
	o, ok := validOrigin(origin)
	if mode != SortDistance || !ok {
		merged := make([]models.StudySpot, 0, len(existing)+len(page))
		merged = append(merged, existing...)
		return append(merged, page...)
	}
	return Merge(existing, page, DistanceFrom(o))
}

// DistanceFrom compares spots by their distance from origin. Spots without
// coordinates sort last.
func DistanceFrom(origin spatial.Coordinates) func(a, b models.StudySpot) int {
	return func(a, b models.StudySpot) int {
		return compareFloat(milesFrom(origin, a), milesFrom(origin, b))
	}
}

func milesFrom(origin spatial.Coordinates, s models.StudySpot) float64 {
	coords, ok := s.Coordinates()
	if !ok {
		return math.Inf(1)
	}
	return origin.MilesTo(coords)
}
