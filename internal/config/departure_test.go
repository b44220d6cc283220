package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDeparture(t *testing.T) {
	loc := time.FixedZone("CEST", 2*3600)

	tests := []struct {
		in   string
		want time.Time
	}{
		{"", time.Time{}},
		{"2023-07-03T10:00:00Z", time.Date(2023, 7, 3, 10, 0, 0, 0, time.UTC)},
		{"2023-07-03T10:00", time.Date(2023, 7, 3, 10, 0, 0, 0, loc)},
		{"2023-07-03 10:00", time.Date(2023, 7, 3, 10, 0, 0, 0, loc)},
		{"2023-07-03", time.Date(2023, 7, 3, 0, 0, 0, 0, loc)},
		{"  2023-07-03  ", time.Date(2023, 7, 3, 0, 0, 0, 0, loc)},
	}
	for _, tt := range tests {
		got, err := ParseDeparture(tt.in, loc)
		require.NoError(t, err, tt.in)
		assert.True(t, got.Equal(tt.want), "%s: got %v want %v", tt.in, got, tt.want)
	}
}

func TestParseDepartureInvalid(t *testing.T) {
	for _, in := range []string{"sometime", "10:00", "2023/07/03"} {
		_, err := ParseDeparture(in, time.UTC)
		assert.Error(t, err, in)
	}
}
