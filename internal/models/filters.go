package models

// SpotFilter represents the parsed query parameters of GET /spots.
// Out-of-range values are already replaced by their defaults.
type SpotFilter struct {
	Page     int
	Limit    int
	Search   string   // literal text filter
	Query    string   // free text to run through the intent classifier
	Category string   // UI label: all, libraries, cafes, restaurants, parks, coworking; empty when not given
	SortBy   string   // none, rating, distance
	UserLat  *float64 // origin for distance sort
	UserLon  *float64
}
