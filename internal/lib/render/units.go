package render

import (
	"fmt"
	"time"
)

const (
	kmToMiles = 0.621371
	mToFeet   = 3.28084
)

// Units selects the display unit system. The engine always works in meters;
// conversion happens only here.
type Units int

const (
	Imperial Units = iota
	Metric
)

// LongLength formats a length in meters as miles or kilometers.
func (u Units) LongLength(meters float64) string {
	if u == Imperial {
		return fmt.Sprintf("%.1f mi", meters/1000*kmToMiles)
	}
	return fmt.Sprintf("%.1f km", meters/1000)
}

// ShortLength formats a length in meters as feet or meters.
func (u Units) ShortLength(meters float64) string {
	if u == Imperial {
		return fmt.Sprintf("%.0f ft", meters*mToFeet)
	}
	return fmt.Sprintf("%.0f m", meters)
}

// Speed formats a speed given in km/h.
func (u Units) Speed(kph float64) string {
	if u == Imperial {
		return fmt.Sprintf("%.1f mph", kph*kmToMiles)
	}
	return fmt.Sprintf("%.1f km/h", kph)
}

// Clock formats an instant as HH:MM, or blank for the zero instant.
func Clock(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("15:04")
}

// Day formats an instant's date, or blank for the zero instant.
func Day(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("Mon 02 Jan 2006")
}

// Layover formats a dwell duration as a "+1h30m" annotation. Zero yields
// blank, whole hours and sub-hour dwells drop the empty part.
func Layover(d time.Duration) string {
	if d <= 0 {
		return ""
	}
	h := int(d / time.Hour)
	m := int(d % time.Hour / time.Minute)
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("+%dh%dm", h, m)
	case h > 0:
		return fmt.Sprintf("+%dh", h)
	default:
		return fmt.Sprintf("+%dm", m)
	}
}

// HoursMinutes formats a duration as HH:MM.
func HoursMinutes(d time.Duration) string {
	minutes := int(d.Round(time.Minute) / time.Minute)
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
