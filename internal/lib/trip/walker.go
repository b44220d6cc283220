package trip

import (
	"github.com/gpxtrip/gpxtable/internal/gpx"
	"github.com/gpxtrip/gpxtable/internal/lib/geo"
)

// stop is the engine's internal unit of work: one candidate itinerary entry
// with its distances resolved, before the timing pass runs over it.
type stop struct {
	coord    geo.Point
	name     string
	symbol   string
	category Category
	ext      PointExtensions
	// dist is the running distance within the traversal. It is also the
	// axis the fuel ledger works in.
	dist float64
	// total is the monotonic distance across chained traversals. For a
	// standalone route it equals dist.
	total float64
	// final marks a stop at (or near) the traversal's end; final stops
	// always report their fuel leg.
	final bool
}

// walkRoute expands a route into emitted stops, the full path geometry and
// the total length. Declared points advance the running distance, and so do
// the road-following sub-points stored between them. Shaping points shape
// the distance and path but produce no stop.
func walkRoute(route *gpx.Route) (stops []stop, path []geo.Point, length float64) {
	var (
		dist     float64
		prev     geo.Point
		havePrev bool
	)

	for i := range route.Points {
		p := &route.Points[i]
		c := p.Coordinate()
		if havePrev {
			dist += geo.Distance(prev, c)
		}
		path = append(path, c)

		ext := ExtractPointExtensions(p.ExtensionNodes())
		if !IsShaping(p.PointName(), ext) {
			stops = append(stops, stop{
				coord:    c,
				name:     p.PointName(),
				symbol:   p.PointSymbol(),
				category: Classify(p.PointName(), p.PointSymbol()),
				ext:      ext,
				dist:     dist,
				total:    dist,
			})
		}

		// Sub-points sit between this declared point and the next one.
		prev = c
		for _, sp := range ext.SubPoints {
			dist += geo.Distance(prev, sp)
			path = append(path, sp)
			prev = sp
		}
		havePrev = true
	}

	if len(stops) > 0 {
		stops[len(stops)-1].final = true
	}
	return stops, path, dist
}
