// Package export serializes computed itineraries for mapping tools: a KML
// document with per-stop placemarks and section paths, and Google encoded
// polylines for the traversal geometry.
package export

import (
	"fmt"
	"io"

	"github.com/twpayne/go-kml/v2"
	"github.com/twpayne/go-polyline"

	"github.com/gpxtrip/gpxtable/internal/lib/geo"
	"github.com/gpxtrip/gpxtable/internal/lib/trip"
)

// KML writes the computed sections as a KML document. Each section becomes a
// folder holding its path as a LineString plus one placemark per stop, with
// the category marker and arrival time in the description.
func KML(w io.Writer, name string, sections []trip.Section) error {
	doc := kml.Document(kml.Name(name))

	for i := range sections {
		doc.Add(sectionFolder(&sections[i]))
	}

	return kml.KML(doc).WriteIndent(w, "", "  ")
}

func sectionFolder(sec *trip.Section) kml.Element {
	folder := kml.Folder(kml.Name(sec.Name))

	if len(sec.Path) > 0 {
		folder.Add(kml.Placemark(
			kml.Name(sec.Name+" path"),
			kml.LineString(
				kml.Tessellate(true),
				kml.Coordinates(pathCoordinates(sec.Path)...),
			),
		))
	}

	for i := range sec.Rows {
		folder.Add(stopPlacemark(&sec.Rows[i]))
	}
	return folder
}

func stopPlacemark(row *trip.Row) kml.Element {
	desc := fmt.Sprintf("%.1f km", row.Distance/1000)
	if row.Marker != "" {
		desc += " [" + row.Marker + "]"
	}
	if !row.Arrival.IsZero() {
		desc += " ETA " + row.Arrival.Format("2006-01-02 15:04")
	}

	return kml.Placemark(
		kml.Name(row.Name),
		kml.Description(desc),
		kml.Point(kml.Coordinates(kml.Coordinate{
			Lon: row.Point.Longitude,
			Lat: row.Point.Latitude,
		})),
	)
}

func pathCoordinates(path []geo.Point) []kml.Coordinate {
	coords := make([]kml.Coordinate, len(path))
	for i, p := range path {
		coords[i] = kml.Coordinate{Lon: p.Longitude, Lat: p.Latitude}
	}
	return coords
}

// Polyline encodes a traversal path as a Google encoded polyline string.
// An empty path yields an empty string.
func Polyline(path []geo.Point) string {
	if len(path) == 0 {
		return ""
	}
	coords := make([][]float64, len(path))
	for i, p := range path {
		coords[i] = []float64{p.Latitude, p.Longitude}
	}
	return string(polyline.EncodeCoords(coords))
}
