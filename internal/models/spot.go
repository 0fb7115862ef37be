package models

import "github.com/jengzang/studyspots-backend-go/internal/spatial"

// Canonical category tokens as stored in the spots table
const (
	CategoryLibrary    = "library"
	CategoryCafe       = "cafe"
	CategoryRestaurant = "restaurant"
	CategoryPark       = "park"
	CategoryCoworking  = "coworking"
)

// Noise levels
const (
	NoiseQuiet    = "Quiet"
	NoiseLow      = "Low"
	NoiseModerate = "Moderate"
	NoiseLoud     = "Loud"
)

// StudySpot represents a place in NYC that is usable for studying
type StudySpot struct {
	Key          string   `json:"key" db:"spot_key"` // Format: spot:<n>
	Name         string   `json:"name" db:"name"`
	Category     string   `json:"category" db:"category"` // library, cafe, restaurant, park, coworking
	Neighborhood string   `json:"neighborhood" db:"neighborhood"`
	Address      *string  `json:"address,omitempty" db:"address"`
	WiFi         bool     `json:"wifi" db:"wifi"`
	Outlets      bool     `json:"outlets" db:"outlets"`
	Noise        *string  `json:"noise,omitempty" db:"noise"` // Quiet, Low, Moderate, Loud
	Hours        *string  `json:"hours,omitempty" db:"hours"`
	Latitude     *float64 `json:"latitude,omitempty" db:"latitude"`
	Longitude    *float64 `json:"longitude,omitempty" db:"longitude"`
	Description  *string  `json:"description,omitempty" db:"description"`

	// Derived from reviews on every read
	AvgRating   float64 `json:"avg_rating" db:"avg_rating"`
	ReviewCount int     `json:"review_count" db:"review_count"`

	// Miles from the request origin, only set when an origin was supplied
	Distance *float64 `json:"distance,omitempty" db:"-"`
}

// Coordinates returns the spot position, ok is false when it is missing or invalid
func (s StudySpot) Coordinates() (spatial.Coordinates, bool) {
	if s.Latitude == nil || s.Longitude == nil {
		return spatial.Coordinates{}, false
	}
	c := spatial.Coordinates{Latitude: *s.Latitude, Longitude: *s.Longitude}
	return c, c.Valid()
}

// SpotsResponse represents a paginated response of study spots
type SpotsResponse struct {
	Spots      []StudySpot   `json:"spots"`
	Total      int           `json:"total"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
	TotalPages int           `json:"totalPages"`
	Intent     *SearchIntent `json:"intent,omitempty"`
}

// SearchIntent is the category/search pair derived from free text
type SearchIntent struct {
	Category string `json:"category"`
	Search   string `json:"search"`
}

// SeedResult reports what POST /init-spots did
type SeedResult struct {
	Message string `json:"message"`
	Count   int    `json:"count,omitempty"`
}
