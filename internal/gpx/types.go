// Package gpx implements a GPX 1.1 document model that preserves vendor
// extension payloads. Trip-planning tools written with Garmin BaseCamp and
// friends stash departure times, stop durations and route shaping hints in
// per-point <extensions> blocks; the stock track/route/waypoint structs here
// carry those blocks as a generic element tree so higher layers can interpret
// them without this package knowing any vendor schema.
package gpx

import (
	"encoding/xml"
	"time"

	"github.com/gpxtrip/gpxtable/internal/lib/geo"
)

// GPX is the root of a parsed document.
type GPX struct {
	XMLName   xml.Name   `xml:"gpx"`
	Version   string     `xml:"version,attr"`
	Creator   string     `xml:"creator,attr"`
	Metadata  Metadata   `xml:"metadata"`
	Waypoints []Waypoint `xml:"wpt"`
	Routes    []Route    `xml:"rte"`
	Tracks    []Track    `xml:"trk"`
}

// Name returns the document's display name: the metadata name when present,
// otherwise the creator string.
func (g *GPX) Name() string {
	if g.Metadata.Name != "" {
		return g.Metadata.Name
	}
	return g.Creator
}

// Metadata holds the document-level <metadata> block.
type Metadata struct {
	Name        string    `xml:"name,omitempty"`
	Description string    `xml:"desc,omitempty"`
	Time        time.Time `xml:"time,omitempty"`
}

// Waypoint is a free-standing point of interest (<wpt>).
type Waypoint struct {
	Lat         float64    `xml:"lat,attr"`
	Lon         float64    `xml:"lon,attr"`
	Elevation   float64    `xml:"ele,omitempty"`
	Time        time.Time  `xml:"time,omitempty"`
	Name        string     `xml:"name,omitempty"`
	Comment     string     `xml:"cmt,omitempty"`
	Description string     `xml:"desc,omitempty"`
	Symbol      string     `xml:"sym,omitempty"`
	Extensions  Extensions `xml:"extensions"`
}

// Route is an ordered list of declared points (<rte>).
type Route struct {
	Name        string       `xml:"name,omitempty"`
	Description string       `xml:"desc,omitempty"`
	Points      []RoutePoint `xml:"rtept"`
}

// RoutePoint is one declared point of a route (<rtept>).
type RoutePoint struct {
	Lat         float64    `xml:"lat,attr"`
	Lon         float64    `xml:"lon,attr"`
	Elevation   float64    `xml:"ele,omitempty"`
	Time        time.Time  `xml:"time,omitempty"`
	Name        string     `xml:"name,omitempty"`
	Comment     string     `xml:"cmt,omitempty"`
	Description string     `xml:"desc,omitempty"`
	Symbol      string     `xml:"sym,omitempty"`
	Extensions  Extensions `xml:"extensions"`
}

// Track is a recorded path (<trk>) made of one or more segments.
type Track struct {
	Name        string         `xml:"name,omitempty"`
	Description string         `xml:"desc,omitempty"`
	Segments    []TrackSegment `xml:"trkseg"`
}

// TrackSegment is a contiguous run of track points (<trkseg>).
type TrackSegment struct {
	Points []TrackPoint `xml:"trkpt"`
}

// TrackPoint is one recorded point of a track segment (<trkpt>).
type TrackPoint struct {
	Lat        float64    `xml:"lat,attr"`
	Lon        float64    `xml:"lon,attr"`
	Elevation  float64    `xml:"ele,omitempty"`
	Time       time.Time  `xml:"time,omitempty"`
	Name       string     `xml:"name,omitempty"`
	Symbol     string     `xml:"sym,omitempty"`
	Extensions Extensions `xml:"extensions"`
}

// Extensions carries the raw child elements of an <extensions> block.
type Extensions struct {
	Nodes []ExtensionNode `xml:",any"`
}

// ExtensionNode is one vendor extension element preserved as a generic tree:
// name, attributes, character data and nested children. Namespace prefixes
// are resolved by the XML decoder, so XMLName.Local is the bare tag name.
type ExtensionNode struct {
	XMLName  xml.Name
	Attrs    []xml.Attr      `xml:",any,attr"`
	Value    string          `xml:",chardata"`
	Children []ExtensionNode `xml:",any"`
}

// Coordinate returns the waypoint's position.
func (w *Waypoint) Coordinate() geo.Point {
	return geo.Point{Latitude: w.Lat, Longitude: w.Lon}
}

// PointName returns the waypoint's display name.
func (w *Waypoint) PointName() string { return w.Name }

// PointSymbol returns the waypoint's map symbol.
func (w *Waypoint) PointSymbol() string { return w.Symbol }

// ExtensionNodes returns the waypoint's vendor extension elements.
func (w *Waypoint) ExtensionNodes() []ExtensionNode { return w.Extensions.Nodes }

// Coordinate returns the route point's position.
func (p *RoutePoint) Coordinate() geo.Point {
	return geo.Point{Latitude: p.Lat, Longitude: p.Lon}
}

// PointName returns the route point's display name.
func (p *RoutePoint) PointName() string { return p.Name }

// PointSymbol returns the route point's map symbol.
func (p *RoutePoint) PointSymbol() string { return p.Symbol }

// ExtensionNodes returns the route point's vendor extension elements.
func (p *RoutePoint) ExtensionNodes() []ExtensionNode { return p.Extensions.Nodes }

// Coordinate returns the track point's position.
func (p *TrackPoint) Coordinate() geo.Point {
	return geo.Point{Latitude: p.Lat, Longitude: p.Lon}
}

// PointName returns the track point's display name, usually empty.
func (p *TrackPoint) PointName() string { return p.Name }

// PointSymbol returns the track point's map symbol, usually empty.
func (p *TrackPoint) PointSymbol() string { return p.Symbol }

// ExtensionNodes returns the track point's vendor extension elements.
func (p *TrackPoint) ExtensionNodes() []ExtensionNode { return p.Extensions.Nodes }
