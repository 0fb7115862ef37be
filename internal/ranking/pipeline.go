package ranking

import (
	"math"
	"sort"
	"strings"

	"github.com/jengzang/studyspots-backend-go/internal/models"
	"github.com/jengzang/studyspots-backend-go/internal/spatial"
)

// SortMode selects the list ordering
type SortMode string

const (
	SortNone     SortMode = "none" // alphabetical by name
	SortRating   SortMode = "rating"
	SortDistance SortMode = "distance"
)

// DefaultPageSize is used when the caller passes no usable page size
const DefaultPageSize = 50

// ParseSortMode returns the sort mode for s, SortNone for anything unknown
func ParseSortMode(s string) SortMode {
	switch SortMode(strings.ToLower(strings.TrimSpace(s))) {
	case SortRating:
		return SortRating
	case SortDistance:
		return SortDistance
	default:
		return SortNone
	}
}

// Query describes one page request against the spot catalog
type Query struct {
	Search   string
	Category string // UI label or canonical token
	Sort     SortMode
	Page     int // 1-indexed
	PageSize int
	Origin   *spatial.Coordinates
}

// Result is one page of ranked spots
type Result struct {
	Items      []models.StudySpot
	Total      int // post-filter, pre-pagination
	Page       int
	PageSize   int
	TotalPages int
	Sort       SortMode // effective mode after degradation
}

// Run filters, sorts and paginates spots. The input slice is not modified.
func Run(spots []models.StudySpot, q Query) Result {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize < 1 {
		q.PageSize = DefaultPageSize
	}

	origin, hasOrigin := validOrigin(q.Origin)
	mode := q.Sort
	if mode == SortDistance && !hasOrigin {
		mode = SortNone
	}

	search := fold(strings.TrimSpace(q.Search))
	category := Normalize(q.Category)

	filtered := make([]models.StudySpot, 0, len(spots))
	for _, spot := range spots {
		if !matchesText(spot, search) || !matchesCategory(spot, category) {
			continue
		}
		coords, ok := spot.Coordinates()
		if mode == SortDistance && !ok {
			continue
		}
		spot.Distance = nil
		if hasOrigin && ok {
			d := origin.MilesTo(coords)
			spot.Distance = &d
		}
		filtered = append(filtered, spot)
	}

	sortSpots(filtered, mode)

	total := len(filtered)
	start := (q.Page - 1) * q.PageSize
	end := start + q.PageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Result{
		Items:      filtered[start:end],
		Total:      total,
		Page:       q.Page,
		PageSize:   q.PageSize,
		TotalPages: int(math.Ceil(float64(total) / float64(q.PageSize))),
		Sort:       mode,
	}
}

func validOrigin(origin *spatial.Coordinates) (spatial.Coordinates, bool) {
	if origin == nil || !origin.Valid() {
		return spatial.Coordinates{}, false
	}
	return *origin, true
}

func matchesText(spot models.StudySpot, search string) bool {
	if search == "" {
		return true
	}
	if strings.Contains(fold(spot.Name), search) || strings.Contains(fold(spot.Neighborhood), search) {
		return true
	}
	return spot.Description != nil && strings.Contains(fold(*spot.Description), search)
}

func sortSpots(spots []models.StudySpot, mode SortMode) {
	var primary func(a, b models.StudySpot) int
	switch mode {
	case SortRating:
		primary = compareRating
	case SortDistance:
		primary = compareDistance
	}

	sort.SliceStable(spots, func(i, j int) bool {
		if primary != nil {
			if c := primary(spots[i], spots[j]); c != 0 {
				return c < 0
			}
		}
		return compareName(spots[i], spots[j]) < 0
	})
}

// compareName orders by name, then key, so every mode ends in a total order
func compareName(a, b models.StudySpot) int {
	if c := strings.Compare(a.Name, b.Name); c != 0 {
		return c
	}
	return strings.Compare(a.Key, b.Key)
}

func compareRating(a, b models.StudySpot) int {
	switch {
	case a.AvgRating > b.AvgRating:
		return -1
	case a.AvgRating < b.AvgRating:
		return 1
	case a.ReviewCount > b.ReviewCount:
		return -1
	case a.ReviewCount < b.ReviewCount:
		return 1
	}
	return 0
}

func compareDistance(a, b models.StudySpot) int {
	return compareFloat(distanceOf(a), distanceOf(b))
}

func distanceOf(s models.StudySpot) float64 {
	if s.Distance == nil {
		return math.Inf(1)
	}
	return *s.Distance
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
