package geo

import (
	"math"

	"bus-track/internal/journey-service/core/domain/model"
)

// EarthRadiusMeters is the spherical-earth approximation radius.
const EarthRadiusMeters = 6371000.0

// Distance returns the great-circle distance between a and b in meters using
// the haversine formula. The atan2 form is kept over asin for stability near
// antipodal points.
func Distance(a, b model.Coordinate) float64 {
	if a.Latitude == b.Latitude && a.Longitude == b.Longitude {
		return 0
	}

	lat1 := a.Latitude * math.Pi / 180
	lon1 := a.Longitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	lon2 := b.Longitude * math.Pi / 180

	dlat := lat2 - lat1
	dlon := lon2 - lon1

	h := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dlon/2)*math.Sin(dlon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusMeters * c
}

// IsNear reports whether a and b are within thresholdMeters of each other.
func IsNear(a, b model.Coordinate, thresholdMeters float64) bool {
	return Distance(a, b) <= thresholdMeters
}

// Valid reports whether c is a usable WGS-84 coordinate.
func Valid(c model.Coordinate) bool {
	return c.Latitude >= -90 && c.Latitude <= 90 &&
		c.Longitude >= -180 && c.Longitude <= 180
}
