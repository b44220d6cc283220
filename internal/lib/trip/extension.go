package trip

import (
	"encoding/xml"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gpxtrip/gpxtable/internal/gpx"
	"github.com/gpxtrip/gpxtable/internal/lib/geo"
)

// BaseCamp writes stop durations as a restricted ISO-8601 form: hours and
// minutes only, either part optional.
var stopDurationPattern = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?$`)

// ExtractPointExtensions walks a point's vendor extension tree once and
// lifts out the trip-planning properties. The walk is depth-first in
// document order; the first DepartureTime and StopDuration win, sub-points
// accumulate in order. Unknown or malformed elements are skipped, so a
// point with no usable extensions yields the zero value.
func ExtractPointExtensions(nodes []gpx.ExtensionNode) PointExtensions {
	var ext PointExtensions
	for i := range nodes {
		extractNode(&nodes[i], &ext)
	}
	return ext
}

func extractNode(n *gpx.ExtensionNode, ext *PointExtensions) {
	local := n.XMLName.Local
	switch {
	case strings.Contains(local, "ShapingPoint"):
		ext.ShapingPoint = true
	case local == "DepartureTime" && ext.DepartureTime == nil:
		if t, err := time.Parse(time.RFC3339, strings.TrimSpace(n.Value)); err == nil {
			ext.DepartureTime = &t
		}
	case local == "StopDuration" && ext.StopDuration == nil:
		if d, ok := parseStopDuration(strings.TrimSpace(n.Value)); ok {
			ext.StopDuration = &d
		}
	case local == "rpt":
		if p, ok := subPoint(n.Attrs); ok {
			ext.SubPoints = append(ext.SubPoints, p)
		}
	}

	for i := range n.Children {
		extractNode(&n.Children[i], ext)
	}
}

// parseStopDuration parses durations like "PT1H30M", "PT45M" or "PT2H".
// A bare "PT" parses as zero; anything outside the pattern is rejected.
func parseStopDuration(s string) (time.Duration, bool) {
	m := stopDurationPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}

	var d time.Duration
	if m[1] != "" {
		hours, err := strconv.Atoi(m[1])
		if err != nil {
			return 0, false
		}
		d += time.Duration(hours) * time.Hour
	}
	if m[2] != "" {
		minutes, err := strconv.Atoi(m[2])
		if err != nil {
			return 0, false
		}
		d += time.Duration(minutes) * time.Minute
	}
	return d, true
}

// subPoint reads the lat/lon attribute pair of a route sub-point element.
func subPoint(attrs []xml.Attr) (geo.Point, bool) {
	var (
		p        geo.Point
		lat, lon bool
	)
	for _, a := range attrs {
		switch a.Name.Local {
		case "lat":
			v, err := strconv.ParseFloat(a.Value, 64)
			if err != nil {
				return geo.Point{}, false
			}
			p.Latitude = v
			lat = true
		case "lon":
			v, err := strconv.ParseFloat(a.Value, 64)
			if err != nil {
				return geo.Point{}, false
			}
			p.Longitude = v
			lon = true
		}
	}
	return p, lat && lon && p.Valid()
}
