package export

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gpxtrip/gpxtable/internal/lib/geo"
	"github.com/gpxtrip/gpxtable/internal/lib/trip"
)

func TestKML(t *testing.T) {
	sections := []trip.Section{
		{
			Kind: trip.SectionTrack,
			Name: "Day 1",
			Rows: []trip.Row{
				{
					Point:    geo.Point{Latitude: 48.2081, Longitude: 16.3738},
					Name:     "Shell",
					Marker:   "G",
					Distance: 80450,
					Arrival:  time.Date(2023, 7, 3, 11, 40, 0, 0, time.UTC),
				},
			},
			Path: []geo.Point{
				{Latitude: 48.2081, Longitude: 16.3738},
				{Latitude: 48.2181, Longitude: 16.4738},
			},
		},
	}

	var b strings.Builder
	require.NoError(t, KML(&b, "Alps 2023", sections))
	out := b.String()

	assert.Contains(t, out, "<name>Alps 2023</name>")
	assert.Contains(t, out, "<name>Day 1</name>")
	assert.Contains(t, out, "<name>Shell</name>")
	assert.Contains(t, out, "80.5 km [G] ETA 2023-07-03 11:40")
	assert.Contains(t, out, "<LineString>")
	// KML coordinates are lon,lat ordered.
	assert.Contains(t, out, "16.3738,48.2081")
}

func TestKMLEmpty(t *testing.T) {
	var b strings.Builder
	require.NoError(t, KML(&b, "empty", nil))
	assert.Contains(t, b.String(), "<name>empty</name>")
	assert.NotContains(t, b.String(), "<Folder>")
}

func TestPolyline(t *testing.T) {
	path := []geo.Point{
		{Latitude: 38.5, Longitude: -120.2},
		{Latitude: 40.7, Longitude: -120.95},
		{Latitude: 43.252, Longitude: -126.453},
	}
	assert.Equal(t, "_p~iF~ps|U_ulLnnqC_mqNvxq`@", Polyline(path))
}

func TestPolylineEmpty(t *testing.T) {
	assert.Equal(t, "", Polyline(nil))
}
