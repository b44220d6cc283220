package render

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gpxtrip/gpxtable/internal/gpx"
	"github.com/gpxtrip/gpxtable/internal/lib/geo"
	"github.com/gpxtrip/gpxtable/internal/lib/trip"
)

func sampleSection() trip.Section {
	depart := time.Date(2023, 7, 3, 10, 0, 0, 0, time.UTC)
	return trip.Section{
		Kind:      trip.SectionTrack,
		Name:      "Day 1",
		Rows: []trip.Row{
			{
				Point:   geo.Point{Latitude: 48.2081, Longitude: 16.3738},
				Name:    "Start",
				Arrival: depart,
			},
			{
				Point:    geo.Point{Latitude: 48.2181, Longitude: 16.4738},
				Name:     "Shell",
				Symbol:   "Gas Station",
				Marker:   "G",
				Distance: 80450,
				FuelLeg:  80450,
				FuelStop: true,
				Arrival:  depart.Add(100 * time.Minute),
				Layover:  15 * time.Minute,
			},
		},
		Length:    160000,
		Start:     geo.Point{Latitude: 48.2081, Longitude: 16.3738},
		Departure: depart,
	}
}

func TestSectionMarkdown(t *testing.T) {
	sec := sampleSection()
	r := &Renderer{Units: Imperial, SpeedKPH: 48.28032}

	var b strings.Builder
	require.NoError(t, r.Section(&b, &sec))
	out := b.String()

	assert.Contains(t, out, "## Track: Day 1")
	assert.Contains(t, out, "| Name")
	assert.Contains(t, out, "Start")
	// Gas stop row: marker, cumulative/leg distance, layover + symbol notes.
	assert.Contains(t, out, "| G |")
	assert.Contains(t, out, "50.0 mi/50.0 mi")
	assert.Contains(t, out, "+15m Gas Station")
	assert.Contains(t, out, "11:40")
	assert.Contains(t, out, "- Total distance: 99.4 mi")
	assert.Contains(t, out, "- Travel speed: 30.0 mph")
}

func TestSectionMetricAndCoordinates(t *testing.T) {
	sec := sampleSection()
	r := &Renderer{Units: Metric, Coordinates: true}

	var b strings.Builder
	require.NoError(t, r.Section(&b, &sec))
	out := b.String()

	assert.Contains(t, out, "80.5 km")
	assert.Contains(t, out, "48.2081,16.3738 Start")
	assert.Contains(t, out, "- Total distance: 160.0 km")
}

func TestSectionSunTimes(t *testing.T) {
	sec := sampleSection()
	r := &Renderer{
		Sun: func(p geo.Point, date time.Time) (time.Time, time.Time) {
			return time.Date(2023, 7, 3, 4, 57, 0, 0, time.UTC),
				time.Date(2023, 7, 3, 19, 58, 0, 0, time.UTC)
		},
	}

	var b strings.Builder
	require.NoError(t, r.Section(&b, &sec))
	assert.Contains(t, b.String(), "- Sunrise: 04:57, Sunset: 19:58")
}

func TestSectionNoDeparture(t *testing.T) {
	sec := sampleSection()
	sec.Departure = time.Time{}
	for i := range sec.Rows {
		sec.Rows[i].Arrival = time.Time{}
	}
	r := &Renderer{Sun: func(geo.Point, time.Time) (time.Time, time.Time) {
		t := time.Now()
		return t, t
	}}

	var b strings.Builder
	require.NoError(t, r.Section(&b, &sec))
	out := b.String()

	assert.NotContains(t, out, "- Depart:")
	assert.NotContains(t, out, "Sunrise")
	// ETA column stays blank but the table still renders.
	assert.Contains(t, out, "| Start")
}

func TestMarkdownDocument(t *testing.T) {
	doc := &gpx.GPX{
		Creator: "unit test",
		Metadata: gpx.Metadata{
			Name:        "Alps 2023",
			Description: "Five passes in three days",
		},
	}
	sections := []trip.Section{sampleSection(), {Kind: trip.SectionRoute, Name: "Day 2 plan"}}

	var b strings.Builder
	r := &Renderer{}
	require.NoError(t, r.Markdown(&b, doc, sections))
	out := b.String()

	assert.Contains(t, out, "# Alps 2023")
	assert.Contains(t, out, "Five passes in three days")
	assert.Contains(t, out, "## Track: Day 1")
	assert.Contains(t, out, "## Route: Day 2 plan")
	assert.Less(t, strings.Index(out, "# Alps 2023"), strings.Index(out, "## Track"))
}

func TestUnitsFormatting(t *testing.T) {
	assert.Equal(t, "62.1 mi", Imperial.LongLength(100000))
	assert.Equal(t, "100.0 km", Metric.LongLength(100000))
	assert.Equal(t, "328 ft", Imperial.ShortLength(100))
	assert.Equal(t, "100 m", Metric.ShortLength(100))
	assert.Equal(t, "30.0 mph", Imperial.Speed(48.28032))
	assert.Equal(t, "50.0 km/h", Metric.Speed(50))
}

func TestLayoverFormatting(t *testing.T) {
	assert.Equal(t, "", Layover(0))
	assert.Equal(t, "+15m", Layover(15*time.Minute))
	assert.Equal(t, "+1h", Layover(time.Hour))
	assert.Equal(t, "+1h30m", Layover(90*time.Minute))
}

func TestHoursMinutes(t *testing.T) {
	assert.Equal(t, "00:00", HoursMinutes(0))
	assert.Equal(t, "02:05", HoursMinutes(125*time.Minute))
	assert.Equal(t, "26:00", HoursMinutes(26*time.Hour))
}
