package trip

import (
	"encoding/xml"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gpxtrip/gpxtable/internal/gpx"
)

func TestWalkRouteShapingContributesDistance(t *testing.T) {
	// Start, an unnamed shaping point, a "Via " point and an end. Only the
	// named endpoints become stops, but every leg counts.
	route := &gpx.Route{Points: []gpx.RoutePoint{
		routePoint(0, 0, "Start"),
		routePoint(0, 0.1, ""),
		routePoint(0, 0.2, "Via Somewhere"),
		routePoint(0, 0.3, "End"),
	}}

	stops, path, length := walkRoute(route)
	require.Len(t, stops, 2)
	assert.Len(t, path, 4)

	assert.Equal(t, "Start", stops[0].name)
	assert.Equal(t, "End", stops[1].name)
	assert.Equal(t, 0.0, stops[0].dist)
	// The end stop's distance covers the shaped legs in between.
	assert.InDelta(t, length, stops[1].dist, 0.001)
	assert.Greater(t, length, 33000.0)

	assert.False(t, stops[0].final)
	assert.True(t, stops[1].final)
}

func TestWalkRouteSubPointsBetweenStops(t *testing.T) {
	route := &gpx.Route{Points: []gpx.RoutePoint{
		routePoint(0, 0, "Start", gpx.ExtensionNode{
			XMLName: xml.Name{Space: gpxxNS, Local: "RoutePointExtension"},
			Children: []gpx.ExtensionNode{
				rptNode("0", "0.05"),
				rptNode("0", "0.1"),
			},
		}),
		routePoint(0, 0.1, "End"),
	}}

	stops, path, length := walkRoute(route)
	require.Len(t, stops, 2)
	// Declared points plus the two expanded sub-points.
	assert.Len(t, path, 4)

	// The sub-points follow the road back to the end point, so the total
	// stays the straight-line distance here, but the end stop's distance
	// includes the expanded legs rather than the declared-point delta.
	assert.InDelta(t, stops[1].dist, length, 0.001)
}

func TestWalkRouteEmpty(t *testing.T) {
	stops, path, length := walkRoute(&gpx.Route{})
	assert.Empty(t, stops)
	assert.Empty(t, path)
	assert.Zero(t, length)
}
