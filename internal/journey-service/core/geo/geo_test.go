package geo

import (
	"testing"

	"bus-track/internal/journey-service/core/domain/model"

	"github.com/stretchr/testify/assert"
)

func TestDistance_SamePointIsZero(t *testing.T) {
	p := model.Coordinate{Latitude: 43.238949, Longitude: 76.889709}
	assert.Equal(t, 0.0, Distance(p, p))
}

func TestDistance_Symmetric(t *testing.T) {
	a := model.Coordinate{Latitude: 43.238949, Longitude: 76.889709}
	b := model.Coordinate{Latitude: 43.256, Longitude: 76.928}

	assert.InDelta(t, Distance(a, b), Distance(b, a), 1e-9)
}

func TestDistance_KnownValues(t *testing.T) {
	// One degree of latitude is ~111.2 km everywhere on the sphere.
	a := model.Coordinate{Latitude: 0, Longitude: 0}
	b := model.Coordinate{Latitude: 1, Longitude: 0}
	assert.InDelta(t, 111195, Distance(a, b), 100)

	// Almaty center to the airport, ~17.9 km.
	center := model.Coordinate{Latitude: 43.238949, Longitude: 76.889709}
	airport := model.Coordinate{Latitude: 43.354087, Longitude: 77.045013}
	assert.InDelta(t, 17900, Distance(center, airport), 500)
}

func TestDistance_TinySeparationStaysPositive(t *testing.T) {
	a := model.Coordinate{Latitude: 43.238949, Longitude: 76.889709}
	b := model.Coordinate{Latitude: 43.238950, Longitude: 76.889709}

	d := Distance(a, b)
	assert.Greater(t, d, 0.0)
	assert.Less(t, d, 1.0)
}

func TestIsNear(t *testing.T) {
	a := model.Coordinate{Latitude: 0, Longitude: 0}
	b := model.Coordinate{Latitude: 0.005, Longitude: 0} // ~556 m

	assert.True(t, IsNear(a, b, 1000))
	assert.False(t, IsNear(a, b, 500))
}

func TestValid(t *testing.T) {
	assert.True(t, Valid(model.Coordinate{Latitude: 90, Longitude: -180}))
	assert.True(t, Valid(model.Coordinate{Latitude: -90, Longitude: 180}))
	assert.False(t, Valid(model.Coordinate{Latitude: 90.1, Longitude: 0}))
	assert.False(t, Valid(model.Coordinate{Latitude: 0, Longitude: -180.5}))
}
