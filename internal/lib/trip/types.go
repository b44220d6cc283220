// Package trip computes rider-facing itinerary tables from GPX documents.
// It locates named stops along recorded tracks, walks planned routes point
// by point, and projects arrival times, layovers and fuel legs over the
// resulting stop sequence.
package trip

import (
	"time"

	"github.com/gpxtrip/gpxtable/internal/gpx"
	"github.com/gpxtrip/gpxtable/internal/lib/geo"
)

// PointSource is the read-only view of a GPX point the engine works with.
// Waypoints, route points and track points all satisfy it, so classification
// and extension extraction never care which element a point came from.
type PointSource interface {
	Coordinate() geo.Point
	PointName() string
	PointSymbol() string
	ExtensionNodes() []gpx.ExtensionNode
}

// Category classifies a stop by its name and symbol.
type Category int

const (
	CategoryNone Category = iota
	CategoryMeal
	CategoryGas
	CategoryScenic
	CategoryRestroom
)

// Marker returns the single-character table marker for the category.
// Restroom stops influence layover defaults but carry no marker.
func (c Category) Marker() string {
	switch c {
	case CategoryMeal:
		return "M"
	case CategoryGas:
		return "G"
	case CategoryScenic:
		return "S"
	}
	return ""
}

func (c Category) String() string {
	switch c {
	case CategoryMeal:
		return "meal"
	case CategoryGas:
		return "gas"
	case CategoryScenic:
		return "scenic"
	case CategoryRestroom:
		return "restroom"
	}
	return "none"
}

// PointExtensions is the typed property bag lifted out of a point's vendor
// extension payload. Absent properties stay nil, false or empty; extraction
// never fails.
type PointExtensions struct {
	// DepartureTime forces the running clock to an absolute instant.
	DepartureTime *time.Time
	// StopDuration is an explicit dwell, overriding category defaults.
	StopDuration *time.Duration
	// ShapingPoint marks a route point that only shapes the path geometry.
	ShapingPoint bool
	// SubPoints are the computed road-following coordinates between this
	// declared route point and the next one.
	SubPoints []geo.Point
}

// Row is one emitted itinerary stop.
type Row struct {
	Point         geo.Point
	Name          string
	Symbol        string
	Marker        string        // single-character category marker, or ""
	Distance      float64       // meters traveled within this traversal
	TotalDistance float64       // meters traveled across chained traversals
	FuelLeg       float64       // meters ridden since the last refuel
	FuelStop      bool          // the fuel leg is worth showing: gas stop or final point
	Arrival       time.Time     // zero when no departure instant was ever supplied
	Layover       time.Duration // dwell added to the clock after this stop
}

// SectionKind tells a renderer which GPX element a section came from.
type SectionKind int

const (
	SectionTrack SectionKind = iota
	SectionRoute
)

// Section is one traversal's computed itinerary plus the context a renderer
// needs around the table itself.
type Section struct {
	Kind        SectionKind
	Name        string
	Description string
	Rows        []Row
	Length      float64     // total geometric length of the traversal, meters
	Path        []geo.Point // full traversal geometry, for exports
	Start       geo.Point   // coordinate where the traversal begins
	Departure   time.Time   // effective start instant, zero if none
}
