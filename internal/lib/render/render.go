// Package render turns computed itinerary sections into a markdown document:
// a header for the GPX file, one table per track or route, and footer bullets
// with departure, total distance and sunrise/sunset for the start point.
package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gpxtrip/gpxtable/internal/gpx"
	"github.com/gpxtrip/gpxtable/internal/lib/geo"
	"github.com/gpxtrip/gpxtable/internal/lib/trip"
)

const (
	tableHeader    = "| Name                           |   Dist. | G |   ETA | Notes |"
	tableSeparator = "| :----------------------------- | ------: | :-: | ----: | :---- |"
)

// SunTimes returns the sunrise and sunset instants for a coordinate on the
// given date. Astronomy stays outside this package; cmd wires in a provider.
type SunTimes func(p geo.Point, date time.Time) (rise, set time.Time)

// Renderer writes itinerary markdown. The zero value renders imperial units
// without coordinates or sun times.
type Renderer struct {
	Units       Units
	Coordinates bool
	SpeedKPH    float64
	// Sun supplies sunrise/sunset for section footers; nil omits the line.
	Sun SunTimes
}

// Markdown writes the whole document: header, then one section per track
// and route in computed order.
func (r *Renderer) Markdown(w io.Writer, doc *gpx.GPX, sections []trip.Section) error {
	if err := r.header(w, doc); err != nil {
		return err
	}
	for i := range sections {
		if err := r.Section(w, &sections[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) header(w io.Writer, doc *gpx.GPX) error {
	var b strings.Builder
	if name := doc.Name(); name != "" {
		fmt.Fprintf(&b, "# %s\n", name)
	}
	if doc.Metadata.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", doc.Metadata.Description)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// Section writes one track or route heading, its stop table and its footer
// bullets.
func (r *Renderer) Section(w io.Writer, sec *trip.Section) error {
	var b strings.Builder

	kind := "Track"
	if sec.Kind == trip.SectionRoute {
		kind = "Route"
	}
	fmt.Fprintf(&b, "\n## %s: %s\n", kind, sec.Name)
	if sec.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", sec.Description)
	}

	b.WriteString("\n" + tableHeader + "\n" + tableSeparator + "\n")
	for i := range sec.Rows {
		b.WriteString(r.row(&sec.Rows[i]) + "\n")
	}

	r.footer(&b, sec)

	_, err := io.WriteString(w, b.String())
	return err
}

func (r *Renderer) row(row *trip.Row) string {
	name := strings.ReplaceAll(row.Name, "\n", " ")
	if r.Coordinates {
		name = fmt.Sprintf("%.4f,%.4f %s", row.Point.Latitude, row.Point.Longitude, name)
	}

	dist := r.Units.LongLength(row.Distance)
	if row.FuelStop {
		// Final and gas stops show the fuel leg alongside the cumulative
		// distance so riders can see tank range at a glance.
		dist = fmt.Sprintf("%s/%s", dist, r.Units.LongLength(row.FuelLeg))
	}

	notes := Layover(row.Layover)
	if row.Symbol != "" {
		if notes != "" {
			notes += " "
		}
		notes += row.Symbol
	}

	return fmt.Sprintf("| %-30.30s | %7s | %1s | %5s | %s |",
		name, dist, row.Marker, Clock(row.Arrival), notes)
}

func (r *Renderer) footer(b *strings.Builder, sec *trip.Section) {
	b.WriteString("\n")
	if !sec.Departure.IsZero() {
		fmt.Fprintf(b, "- Depart: %s %s\n", Day(sec.Departure), Clock(sec.Departure))
	}
	fmt.Fprintf(b, "- Total distance: %s\n", r.Units.LongLength(sec.Length))
	if r.SpeedKPH > 0 {
		fmt.Fprintf(b, "- Travel speed: %s\n", r.Units.Speed(r.SpeedKPH))
	}
	if r.Sun != nil && !sec.Departure.IsZero() && sec.Start.Valid() {
		rise, set := r.Sun(sec.Start, sec.Departure)
		if !rise.IsZero() && !set.IsZero() {
			fmt.Fprintf(b, "- Sunrise: %s, Sunset: %s\n", Clock(rise), Clock(set))
		}
	}
}
