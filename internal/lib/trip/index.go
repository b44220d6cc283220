package trip

import (
	"github.com/gpxtrip/gpxtable/internal/gpx"
	"github.com/gpxtrip/gpxtable/internal/lib/geo"
)

// PointData ties one track point to the running distances the matcher and
// the timing pass need.
type PointData struct {
	Point *gpx.TrackPoint
	// TrackDistance is the distance from the start of the owning track.
	// It restarts at zero for every track.
	TrackDistance float64
	// TotalDistance is the distance from the start of the indexing batch.
	// It is monotonic across every track fed to the same Indexer.
	TotalDistance float64
	// TrackLength is the owning track's fixed total 2D length.
	TrackLength float64
}

// Indexer flattens tracks into ordered PointData sequences. Feeding several
// tracks to one Indexer chains them: TrackDistance restarts per track while
// TotalDistance keeps accumulating, which is how multi-day files with one
// track per day become a single itinerary.
type Indexer struct {
	// ThreeD switches the per-point deltas to slant distance using point
	// elevations. Track lengths stay 2D either way.
	ThreeD bool

	total float64
}

// Index walks the track's segments in order and returns one PointData per
// track point. Segment boundaries do not reset the running distance; the
// gap between segments counts like any other leg.
func (ix *Indexer) Index(track *gpx.Track) []PointData {
	length := trackLength(track)

	var (
		seq  []PointData
		dist float64
		prev *gpx.TrackPoint
	)
	for si := range track.Segments {
		points := track.Segments[si].Points
		for pi := range points {
			p := &points[pi]
			if prev != nil {
				if ix.ThreeD {
					dist += geo.Distance3D(prev.Coordinate(), p.Coordinate(), prev.Elevation, p.Elevation)
				} else {
					dist += geo.Distance(prev.Coordinate(), p.Coordinate())
				}
			}
			seq = append(seq, PointData{
				Point:         p,
				TrackDistance: dist,
				TotalDistance: ix.total + dist,
				TrackLength:   length,
			})
			prev = p
		}
	}

	ix.total += dist
	return seq
}

// trackLength sums the consecutive-point 2D distances across all segments.
func trackLength(track *gpx.Track) float64 {
	var (
		total float64
		prev  *gpx.TrackPoint
	)
	for si := range track.Segments {
		points := track.Segments[si].Points
		for pi := range points {
			if prev != nil {
				total += geo.Distance(prev.Coordinate(), points[pi].Coordinate())
			}
			prev = &points[pi]
		}
	}
	return total
}
