package spatial

import (
	"math"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// EarthRadiusMiles is the Earth radius used for every spot distance.
// Server and client must agree on it, so it is not configurable.
const EarthRadiusMiles = 3959.0

// Coordinates is a WGS84 position in degrees
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Valid reports whether both components are finite and inside the lat/lng ranges
func (c Coordinates) Valid() bool {
	return s2.LatLngFromDegrees(c.Latitude, c.Longitude).IsValid()
}

// MilesTo returns the rounded haversine distance from c to other
func (c Coordinates) MilesTo(other Coordinates) float64 {
	return Miles(c.Latitude, c.Longitude, other.Latitude, other.Longitude)
}

// Miles calculates the great-circle distance between two points in miles
// using the haversine formula, rounded to one decimal place.
// Callers must not pass invalid coordinates.
func Miles(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return math.Round(EarthRadiusMiles*c*10) / 10
}

func toRadians(degrees float64) float64 {
	return (s1.Angle(degrees) * s1.Degree).Radians()
}
