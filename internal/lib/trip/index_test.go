package trip

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gpxtrip/gpxtable/internal/gpx"
	"github.com/gpxtrip/gpxtable/internal/lib/geo"
)

// equatorTrack builds a track along the equator with points at the given
// longitudes, split into one segment per slice.
func equatorTrack(name string, segments ...[]float64) *gpx.Track {
	track := &gpx.Track{Name: name}
	for _, lons := range segments {
		var seg gpx.TrackSegment
		for _, lon := range lons {
			seg.Points = append(seg.Points, gpx.TrackPoint{Lat: 0, Lon: lon})
		}
		track.Segments = append(track.Segments, seg)
	}
	return track
}

func TestIndexerSingleTrack(t *testing.T) {
	// Two segments; the segment gap counts like any other leg.
	track := equatorTrack("Day 1", []float64{0, 0.01}, []float64{0.02, 0.03})

	ix := &Indexer{}
	seq := ix.Index(track)
	require.Len(t, seq, 4)

	step := geo.DistanceFromCoords(0, 0, 0, 0.01)
	for i, pd := range seq {
		assert.InDelta(t, float64(i)*step, pd.TrackDistance, 0.1)
		assert.InDelta(t, pd.TrackDistance, pd.TotalDistance, 0.1)
		assert.InDelta(t, 3*step, pd.TrackLength, 0.1)
	}

	// First point anchors at zero, distances never decrease.
	assert.Equal(t, 0.0, seq[0].TrackDistance)
	for i := 1; i < len(seq); i++ {
		assert.GreaterOrEqual(t, seq[i].TrackDistance, seq[i-1].TrackDistance)
	}
}

func TestIndexerBatchChaining(t *testing.T) {
	day1 := equatorTrack("Day 1", []float64{0, 0.01, 0.02})
	day2 := equatorTrack("Day 2", []float64{1.0, 1.01})

	ix := &Indexer{}
	seq1 := ix.Index(day1)
	seq2 := ix.Index(day2)

	step := geo.DistanceFromCoords(0, 0, 0, 0.01)

	// The second track restarts its own distance but keeps the batch total.
	assert.Equal(t, 0.0, seq2[0].TrackDistance)
	assert.InDelta(t, 2*step, seq2[0].TotalDistance, 0.1)
	assert.InDelta(t, 3*step, seq2[1].TotalDistance, 0.1)
	assert.InDelta(t, step, seq2[1].TrackDistance, 0.1)
	assert.InDelta(t, step, seq2[0].TrackLength, 0.1)

	assert.InDelta(t, 2*step, seq1[len(seq1)-1].TotalDistance, 0.1)
}

func TestIndexerThreeD(t *testing.T) {
	// ~300m apart with 400m of climb: slant distance is 500m while the
	// track length stays 2D.
	track := &gpx.Track{Segments: []gpx.TrackSegment{{Points: []gpx.TrackPoint{
		{Lat: 0, Lon: 0, Elevation: 100},
		{Lat: 0, Lon: 0.0026978, Elevation: 500},
	}}}}

	flat := (&Indexer{}).Index(track)
	require.Len(t, flat, 2)
	assert.InDelta(t, 300, flat[1].TrackDistance, 1)

	slant := (&Indexer{ThreeD: true}).Index(track)
	assert.InDelta(t, 500, slant[1].TrackDistance, 1)
	assert.InDelta(t, 300, slant[1].TrackLength, 1)
}

func TestIndexerEmptyTrack(t *testing.T) {
	ix := &Indexer{}
	assert.Empty(t, ix.Index(&gpx.Track{}))
	assert.Empty(t, ix.Index(&gpx.Track{Segments: []gpx.TrackSegment{{}}}))
}
