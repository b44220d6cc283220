package trip

import (
	"sort"
	"time"

	"github.com/gpxtrip/gpxtable/internal/gpx"
	"github.com/gpxtrip/gpxtable/internal/lib/geo"
)

// Defaults applied by NewEngine when the matching option is unset.
const (
	// DefaultSpeedKPH is 30 mph expressed in km/h.
	DefaultSpeedKPH = 48.28032
	// DefaultMatchThreshold is the waypoint closeness cutoff as a fraction
	// of the indexed track span.
	DefaultMatchThreshold = 0.01
	// DefaultDedupeDistance is the along-track window in meters inside
	// which repeat matches collapse.
	DefaultDedupeDistance = 2000.0
)

// DefaultDelays returns the stock layover table: how long a stop of each
// category costs when the point carries no explicit stop duration.
func DefaultDelays() map[Category]time.Duration {
	return map[Category]time.Duration{
		CategoryMeal:     60 * time.Minute,
		CategoryGas:      15 * time.Minute,
		CategoryRestroom: 15 * time.Minute,
		CategoryScenic:   5 * time.Minute,
	}
}

// SortKey orders matched waypoints whose track positions tie.
type SortKey int

const (
	SortByPosition SortKey = iota
	SortByName
	SortBySymbol
)

// Options configure an Engine. The zero value is usable: every field falls
// back to its documented default.
type Options struct {
	// SpeedKPH is the assumed travel speed in km/h. Values <= 0 fall back
	// to DefaultSpeedKPH.
	SpeedKPH float64
	// DepartAt is the trip's start instant. Zero means no configured
	// start; arrival times then come from recorded track times or from
	// departure extensions, or stay blank.
	DepartAt time.Time
	// IgnoreTimes drops recorded track timestamps from consideration.
	IgnoreTimes bool
	// ThreeD switches track distance deltas to slant distance.
	ThreeD bool
	// MatchThreshold is the waypoint closeness cutoff as a fraction of the
	// indexed span. Values <= 0 fall back to DefaultMatchThreshold.
	MatchThreshold float64
	// DedupeDistance is the along-track repeat-match window in meters.
	// Values <= 0 fall back to DefaultDedupeDistance.
	DedupeDistance float64
	// Delays maps stop categories to their default layovers. Nil falls
	// back to DefaultDelays().
	Delays map[Category]time.Duration
	// SortKey breaks ties between waypoints matching the same position.
	SortKey SortKey
}

// Engine computes itinerary tables from GPX tracks, routes and waypoints.
// An Engine is stateless across calls and safe to reuse; each computation
// is an independent pass over its inputs.
type Engine struct {
	opts Options
}

// NewEngine normalizes opts and returns a ready engine.
func NewEngine(opts Options) *Engine {
	if opts.SpeedKPH <= 0 {
		opts.SpeedKPH = DefaultSpeedKPH
	}
	if opts.MatchThreshold <= 0 {
		opts.MatchThreshold = DefaultMatchThreshold
	}
	if opts.DedupeDistance <= 0 {
		opts.DedupeDistance = DefaultDedupeDistance
	}
	if opts.Delays == nil {
		opts.Delays = DefaultDelays()
	}
	return &Engine{opts: opts}
}

// TrackItinerary locates the waypoints along a recorded track and times the
// stops in track order. Unmatched waypoints produce no row.
func (e *Engine) TrackItinerary(track *gpx.Track, waypoints []gpx.Waypoint) []Row {
	ix := &Indexer{ThreeD: e.opts.ThreeD}
	sec, _ := e.trackSection(track, waypoints, ix, 0, 0)
	return sec.Rows
}

// RouteItinerary walks a planned route and times its declared stops.
// Shaping points contribute distance but no rows.
func (e *Engine) RouteItinerary(route *gpx.Route) []Row {
	return e.routeSection(route).Rows
}

// Plan computes the whole document: every track in order, chained into one
// multi-day itinerary (total distance and the fuel ledger carry across
// tracks), followed by every route as an independent traversal.
func (e *Engine) Plan(doc *gpx.GPX) []Section {
	sections := make([]Section, 0, len(doc.Tracks)+len(doc.Routes))

	ix := &Indexer{ThreeD: e.opts.ThreeD}
	fuelRef := 0.0
	for i := range doc.Tracks {
		sec, out := e.trackSection(&doc.Tracks[i], doc.Waypoints, ix, i, fuelRef)
		fuelRef = out
		sections = append(sections, sec)
	}
	for i := range doc.Routes {
		sections = append(sections, e.routeSection(&doc.Routes[i]))
	}
	return sections
}

func (e *Engine) trackSection(track *gpx.Track, waypoints []gpx.Waypoint, ix *Indexer, index int, fuelRef float64) (Section, float64) {
	seq := ix.Index(track)
	stops := e.trackStops(seq, waypoints)
	start := e.trackStart(track, index)
	rows, fuelOut := e.timeStops(stops, start, fuelRef)

	sec := Section{
		Kind:        SectionTrack,
		Name:        track.Name,
		Description: track.Description,
		Rows:        rows,
		Departure:   start,
	}
	if len(seq) > 0 {
		sec.Length = seq[0].TrackLength
		sec.Start = seq[0].Point.Coordinate()
		sec.Path = pathOfSeq(seq)
	}
	return sec, fuelOut
}

func (e *Engine) routeSection(route *gpx.Route) Section {
	stops, path, length := walkRoute(route)
	rows, _ := e.timeStops(stops, e.opts.DepartAt, 0)

	sec := Section{
		Kind:        SectionRoute,
		Name:        route.Name,
		Description: route.Description,
		Rows:        rows,
		Length:      length,
		Path:        path,
		Departure:   e.opts.DepartAt,
	}
	// A departure extension on the first stop moves the effective start.
	if len(rows) > 0 && !rows[0].Arrival.IsZero() {
		sec.Departure = rows[0].Arrival
	}
	if len(path) > 0 {
		sec.Start = path[0]
	}
	return sec
}

// trackStops matches every waypoint against the indexed sequence and builds
// the ordered stop list for the timing pass.
func (e *Engine) trackStops(seq []PointData, waypoints []gpx.Waypoint) []stop {
	if len(seq) == 0 {
		return nil
	}

	matcher := &Matcher{
		Threshold:      e.opts.MatchThreshold,
		DedupeDistance: e.opts.DedupeDistance,
	}
	var matches []Match
	for i := range waypoints {
		matches = append(matches, matcher.Locate(&waypoints[i], seq)...)
	}
	e.sortMatches(matches)

	stops := make([]stop, 0, len(matches))
	for _, m := range matches {
		wp := m.Waypoint
		stops = append(stops, stop{
			coord:    wp.Coordinate(),
			name:     wp.PointName(),
			symbol:   wp.PointSymbol(),
			category: Classify(wp.PointName(), wp.PointSymbol()),
			ext:      ExtractPointExtensions(wp.ExtensionNodes()),
			dist:     m.Data.TrackDistance,
			total:    m.Data.TotalDistance,
			final:    m.Data.TrackLength-m.Data.TrackDistance <= e.opts.DedupeDistance,
		})
	}
	return stops
}

// sortMatches orders matches by track position, or by the requested
// alternate key with track position breaking ties.
func (e *Engine) sortMatches(matches []Match) {
	sort.SliceStable(matches, func(i, j int) bool {
		switch e.opts.SortKey {
		case SortByName:
			if a, b := matches[i].Waypoint.Name, matches[j].Waypoint.Name; a != b {
				return a < b
			}
		case SortBySymbol:
			if a, b := matches[i].Waypoint.Symbol, matches[j].Waypoint.Symbol; a != b {
				return a < b
			}
		}
		return matches[i].Data.TotalDistance < matches[j].Data.TotalDistance
	})
}

// trackStart resolves the instant a track traversal begins. A configured
// trip start applies to the first track only; otherwise the first recorded
// point timestamp seeds the clock unless recorded times are ignored.
func (e *Engine) trackStart(track *gpx.Track, index int) time.Time {
	if index == 0 && !e.opts.DepartAt.IsZero() {
		return e.opts.DepartAt
	}
	if e.opts.IgnoreTimes {
		return time.Time{}
	}
	return firstPointTime(track)
}

// timeStops runs the timing and fuel pass over an ordered stop list.
//
// The clock starts at start (zero keeps every arrival blank until a
// departure extension supplies an instant) and advances by travel time
// between stops. Layovers are added after a stop's row is emitted, so they
// delay everything downstream but never the stop itself. The fuel ledger
// enters as fuelRef and the updated value is returned for chaining.
func (e *Engine) timeStops(stops []stop, start time.Time, fuelRef float64) ([]Row, float64) {
	if len(stops) == 0 {
		return nil, fuelRef
	}

	rows := make([]Row, 0, len(stops))
	cur := start
	// Distance base of the traversal, so the first stop's travel time is
	// measured from the traversal start rather than from zero.
	prevTotal := stops[0].total - stops[0].dist
	last := len(stops) - 1

	for i, s := range stops {
		delta := s.total - prevTotal
		if delta < 0 {
			delta = 0
		}
		if !cur.IsZero() {
			cur = cur.Add(e.travel(delta))
		}
		if s.ext.DepartureTime != nil {
			// An explicit departure always wins over the running clock.
			cur = *s.ext.DepartureTime
		}

		if fuelRef > s.dist {
			// Distance shrank: a new day started, the ledger restarts.
			fuelRef = 0
		}

		row := Row{
			Point:         s.coord,
			Name:          s.name,
			Symbol:        s.symbol,
			Marker:        s.category.Marker(),
			Distance:      s.dist,
			TotalDistance: s.total,
			FuelLeg:       s.dist - fuelRef,
			FuelStop:      s.category == CategoryGas || s.final,
			Arrival:       cur,
		}

		var layover time.Duration
		if s.ext.StopDuration != nil {
			layover = *s.ext.StopDuration
		} else if i != 0 && i != last {
			layover = e.opts.Delays[s.category]
		}
		row.Layover = layover
		if !cur.IsZero() && layover > 0 {
			cur = cur.Add(layover)
		}

		if s.category == CategoryGas {
			fuelRef = s.dist
		}

		rows = append(rows, row)
		prevTotal = s.total
	}

	return rows, fuelRef
}

// travel converts a distance in meters into riding time at the configured
// speed.
func (e *Engine) travel(meters float64) time.Duration {
	if meters <= 0 {
		return 0
	}
	hours := meters / 1000 / e.opts.SpeedKPH
	return time.Duration(hours * float64(time.Hour))
}

func firstPointTime(track *gpx.Track) time.Time {
	for _, seg := range track.Segments {
		for i := range seg.Points {
			if !seg.Points[i].Time.IsZero() {
				return seg.Points[i].Time
			}
		}
	}
	return time.Time{}
}

func pathOfSeq(seq []PointData) []geo.Point {
	path := make([]geo.Point, len(seq))
	for i, pd := range seq {
		path[i] = pd.Point.Coordinate()
	}
	return path
}
