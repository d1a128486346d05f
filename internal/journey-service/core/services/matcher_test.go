package services

import (
	"testing"

	"bus-track/internal/journey-service/core/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func coord(lat, lon float64) model.Coordinate {
	return model.Coordinate{Latitude: lat, Longitude: lon}
}

func route(lons ...float64) []model.TrajectoryPoint {
	pts := make([]model.TrajectoryPoint, len(lons))
	for i, lon := range lons {
		pts[i] = model.TrajectoryPoint{Coordinates: coord(0, lon)}
	}
	return pts
}

// trackAt builds a vehicle travelling an equatorial route; prev and cur are
// route indices marking its direction of travel.
func trackAt(deviceID string, r []model.TrajectoryPoint, prev, cur int) model.VehicleTrack {
	return model.VehicleTrack{
		DeviceID:         deviceID,
		Route:            r,
		PreviousLocation: r[prev],
		CurrentLocation:  r[cur],
	}
}

func TestFirstIndexWithin_ReturnsFirstMatchNotClosest(t *testing.T) {
	// Points ~556 m apart: a query at the second point is within 1 km of
	// both, and the scan must still return the earlier index.
	r := route(0, 0.005, 0.04)

	idx := FirstIndexWithin(coord(0, 0.005), r, 1000)
	assert.Equal(t, 0, idx)
}

func TestFirstIndexWithin_NoMatch(t *testing.T) {
	r := route(0, 0.02, 0.04)
	assert.Equal(t, -1, FirstIndexWithin(coord(0, 1), r, 1000))
	assert.Equal(t, -1, FirstIndexWithin(coord(0, 0), nil, 1000))
}

func TestFindDirect_ForwardMatch(t *testing.T) {
	// Stops ~2.2 km apart so each query resolves to exactly one index.
	r := route(0, 0.02, 0.04, 0.06)
	vehicle := trackAt("bus-1", r, 0, 1)

	m := NewMatcher(1000)
	matches := m.FindDirect(coord(0, 0.002), coord(0, 0.042), []model.VehicleTrack{vehicle})

	assert.Equal(t, []string{"bus-1"}, matches)
}

func TestFindDirect_RejectsVehicleDrivingAway(t *testing.T) {
	r := route(0, 0.02, 0.04, 0.06)
	vehicle := trackAt("bus-1", r, 2, 1) // heading back toward index 0

	m := NewMatcher(1000)
	matches := m.FindDirect(coord(0, 0.002), coord(0, 0.042), []model.VehicleTrack{vehicle})

	assert.Empty(t, matches)
}

func TestFindDirect_BackwardRiderMatchesBackwardVehicle(t *testing.T) {
	r := route(0, 0.02, 0.04, 0.06)
	vehicle := trackAt("bus-1", r, 2, 1)

	m := NewMatcher(1000)
	matches := m.FindDirect(coord(0, 0.042), coord(0, 0.002), []model.VehicleTrack{vehicle})

	assert.Equal(t, []string{"bus-1"}, matches)
}

func TestFindDirect_OriginOffRoute(t *testing.T) {
	r := route(0, 0.02, 0.04)
	vehicle := trackAt("bus-1", r, 0, 1)

	m := NewMatcher(1000)
	matches := m.FindDirect(coord(1, 1), coord(0, 0.042), []model.VehicleTrack{vehicle})

	assert.Empty(t, matches)
}

func TestFindDirect_SameIndexTieDoesNotCountAsForward(t *testing.T) {
	r := route(0, 0.02, 0.04)
	// Origin and destination both resolve to index 0; the rider's direction
	// is treated as non-forward, so a forward-moving vehicle is rejected.
	vehicle := trackAt("bus-1", r, 0, 1)

	m := NewMatcher(1000)
	matches := m.FindDirect(coord(0, 0.001), coord(0, 0.003), []model.VehicleTrack{vehicle})

	assert.Empty(t, matches)
}

func TestFindDirect_PreservesInputOrder(t *testing.T) {
	r := route(0, 0.02, 0.04, 0.06)
	fleet := []model.VehicleTrack{
		trackAt("bus-b", r, 0, 1),
		trackAt("bus-a", r, 0, 1),
	}

	m := NewMatcher(1000)
	matches := m.FindDirect(coord(0, 0.002), coord(0, 0.042), fleet)

	assert.Equal(t, []string{"bus-b", "bus-a"}, matches)
}

func TestDirectPath_BracketsWithLiteralEndpoints(t *testing.T) {
	r := route(0, 0.02, 0.04, 0.06)
	vehicle := trackAt("bus-1", r, 0, 1)
	origin := coord(0, 0.002)
	destination := coord(0, 0.042)

	m := NewMatcher(1000)
	path := m.DirectPath(origin, destination, vehicle)

	require.Len(t, path, 5)
	assert.Equal(t, origin, path[0])
	assert.Equal(t, coord(0, 0), path[1])
	assert.Equal(t, coord(0, 0.04), path[3])
	assert.Equal(t, destination, path[4])
}
