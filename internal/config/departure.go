package config

import (
	"fmt"
	"strings"
	"time"
)

// departureLayouts are the accepted forms for user-supplied departure
// instants, tried in order. Layouts without a zone are interpreted in loc.
var departureLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseDeparture parses a trip-start instant supplied on the command line or
// in a web form. An empty string means no departure and parses to the zero
// instant without error.
func ParseDeparture(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range departureLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized departure time %q", s)
}
