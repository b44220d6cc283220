package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	// Highway 4 test coordinates: Angels Camp to Murphys (real route)
	angelscamp := Point{Latitude: 38.0675, Longitude: -120.5436}
	murphys := Point{Latitude: 38.1391, Longitude: -120.4561}

	// Expected distance ~11.0 km between Angels Camp and Murphys
	distance := Distance(angelscamp, murphys)
	assert.InDelta(t, 11046, distance, 100, "Distance should be approximately 11.0km")

	// Distance is symmetric
	assert.InDelta(t, distance, Distance(murphys, angelscamp), 0.001)

	// Distance from a point to itself is 0
	assert.Equal(t, 0.0, Distance(angelscamp, angelscamp))
}

func TestDistanceFromCoords(t *testing.T) {
	angelscamp := Point{Latitude: 38.0675, Longitude: -120.5436}
	murphys := Point{Latitude: 38.1391, Longitude: -120.4561}

	assert.Equal(t,
		Distance(angelscamp, murphys),
		DistanceFromCoords(38.0675, -120.5436, 38.1391, -120.4561))
}

func TestDistance3D(t *testing.T) {
	// Two points ~300m apart on the equator, 400m of climb: the 3-4-5
	// triangle gives a 500m slant distance.
	p1 := Point{Latitude: 0, Longitude: 0}
	p2 := Point{Latitude: 0, Longitude: 0.0026978}

	flat := Distance(p1, p2)
	assert.InDelta(t, 300, flat, 1)

	slant := Distance3D(p1, p2, 100, 500)
	assert.InDelta(t, 500, slant, 1)

	// Equal elevations degenerate to the flat distance
	assert.Equal(t, flat, Distance3D(p1, p2, 250, 250))
}

func TestPathLength(t *testing.T) {
	points := []Point{
		{Latitude: 38.0675, Longitude: -120.5436},
		{Latitude: 38.1000, Longitude: -120.5000},
		{Latitude: 38.1391, Longitude: -120.4561},
	}

	want := Distance(points[0], points[1]) + Distance(points[1], points[2])
	assert.InDelta(t, want, PathLength(points), 0.001)

	assert.Equal(t, 0.0, PathLength(nil))
	assert.Equal(t, 0.0, PathLength(points[:1]))
}

func TestPointValid(t *testing.T) {
	assert.True(t, Point{Latitude: 38.0675, Longitude: -120.5436}.Valid())
	assert.True(t, Point{Latitude: -90, Longitude: 180}.Valid())
	assert.False(t, Point{Latitude: 200, Longitude: -300}.Valid())
	assert.False(t, Point{Latitude: 0, Longitude: -180.5}.Valid())
}
