package trip

import (
	"github.com/gpxtrip/gpxtable/internal/gpx"
	"github.com/gpxtrip/gpxtable/internal/lib/geo"
)

// Match ties a waypoint to the position along an indexed track where it sits.
type Match struct {
	Waypoint *gpx.Waypoint
	// Data is the indexed track point the waypoint matched.
	Data PointData
	// Distance is the gap in meters between the waypoint and Data's point.
	Distance float64
}

// Matcher locates free waypoints along an indexed track sequence.
//
// For each waypoint it scans the sequence in order, tracking the best
// candidate while point gaps stay below the closeness threshold; when the
// gap rises back above the threshold the candidate is emitted and the scan
// keeps going. A track that loops past the same waypoint twice therefore
// matches it twice. Matches that land within DedupeDistance along the track
// of the previous one collapse into it.
type Matcher struct {
	// Threshold is the closeness cutoff as a fraction of the indexed span.
	Threshold float64
	// DedupeDistance is the along-track window, in meters, inside which
	// repeat matches collapse.
	DedupeDistance float64
}

// Locate returns the positions where wp sits on the indexed sequence,
// ordered by track position. An empty sequence yields no matches.
func (m *Matcher) Locate(wp *gpx.Waypoint, seq []PointData) []Match {
	if len(seq) == 0 {
		return nil
	}

	// The span covered by seq, independent of any batch carry-over.
	first, last := seq[0], seq[len(seq)-1]
	span := last.TotalDistance - (first.TotalDistance - first.TrackDistance)
	limit := m.Threshold * span

	target := wp.Coordinate()

	var (
		matches  []Match
		best     Match
		haveBest bool
	)
	for _, pd := range seq {
		d := geo.Distance(target, pd.Point.Coordinate())
		if d < limit {
			if !haveBest || d < best.Distance {
				best = Match{Waypoint: wp, Data: pd, Distance: d}
				haveBest = true
			}
			continue
		}
		if haveBest {
			matches = append(matches, best)
			haveBest = false
		}
	}
	if haveBest {
		matches = append(matches, best)
	}

	return m.dedupe(matches)
}

func (m *Matcher) dedupe(matches []Match) []Match {
	if len(matches) < 2 {
		return matches
	}

	out := matches[:1]
	lastAt := matches[0].Data.TotalDistance
	for _, c := range matches[1:] {
		if c.Data.TotalDistance-lastAt < m.DedupeDistance {
			continue
		}
		out = append(out, c)
		lastAt = c.Data.TotalDistance
	}
	return out
}
