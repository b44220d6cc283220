// Package config loads gpxtable configuration from built-in defaults, an
// optional YAML file and GPXTABLE_-prefixed environment variables, in that
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/gpxtrip/gpxtable/internal/lib/trip"
)

const envPrefix = "GPXTABLE_"

// Config is the complete application configuration.
type Config struct {
	Trip   TripConfig   `koanf:"trip"`
	Server ServerConfig `koanf:"server"`
}

// TripConfig holds the itinerary computation settings.
type TripConfig struct {
	// SpeedKPH is the assumed travel speed in km/h. Must be positive.
	SpeedKPH float64 `koanf:"speed_kph"`
	// Metric selects metric display units; the default is imperial.
	Metric bool `koanf:"metric"`
	// Coordinates prefixes itinerary names with lat,lon.
	Coordinates bool `koanf:"coordinates"`
	// IgnoreTimes drops recorded track timestamps from ETA seeding.
	IgnoreTimes bool `koanf:"ignore_times"`
	// MatchThreshold is the waypoint closeness cutoff as a fraction of the
	// indexed track span.
	MatchThreshold float64 `koanf:"match_threshold"`
	// DedupeDistanceM is the along-track repeat-match window in meters.
	DedupeDistanceM float64 `koanf:"dedupe_distance_m"`
	// DelayMinutes maps stop categories (meal, gas, restroom, scenic) to
	// their default layovers in minutes.
	DelayMinutes map[string]int `koanf:"delay_minutes"`
}

// ServerConfig holds the upload front-end settings.
type ServerConfig struct {
	Addr           string   `koanf:"addr"`
	CorsOrigins    []string `koanf:"cors_origins"`
	MaxUploadBytes int64    `koanf:"max_upload_bytes"`
	// MetricsAddr exposes /metrics on a separate listener; empty disables it.
	MetricsAddr string `koanf:"metrics_addr"`
}

// DefaultConfig returns the out-of-the-box configuration.
func DefaultConfig() *Config {
	return &Config{
		Trip: TripConfig{
			SpeedKPH:        trip.DefaultSpeedKPH,
			MatchThreshold:  trip.DefaultMatchThreshold,
			DedupeDistanceM: trip.DefaultDedupeDistance,
			DelayMinutes: map[string]int{
				"meal":     60,
				"gas":      15,
				"restroom": 15,
				"scenic":   5,
			},
		},
		Server: ServerConfig{
			Addr:           ":8080",
			CorsOrigins:    []string{"*"},
			MaxUploadBytes: 16 << 20,
		},
	}
}

// Load builds the configuration: defaults, then the YAML file at path (if
// path is non-empty), then GPXTABLE_ environment variables.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	defaults := DefaultConfig()
	if err := k.Load(confmap.Provider(map[string]interface{}{
		"trip.speed_kph":          defaults.Trip.SpeedKPH,
		"trip.match_threshold":    defaults.Trip.MatchThreshold,
		"trip.dedupe_distance_m":  defaults.Trip.DedupeDistanceM,
		"trip.delay_minutes":      defaults.Trip.DelayMinutes,
		"server.addr":             defaults.Server.Addr,
		"server.cors_origins":     defaults.Server.CorsOrigins,
		"server.max_upload_bytes": defaults.Server.MaxUploadBytes,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
	}

	// GPXTABLE_SERVER__ADDR -> server.addr; the double underscore separates
	// key path segments so single underscores survive inside key names.
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects configurations the engine is not allowed to see.
func (c *Config) Validate() error {
	if c.Trip.SpeedKPH <= 0 {
		return errors.New("trip.speed_kph must be positive")
	}
	if c.Trip.MatchThreshold <= 0 || c.Trip.MatchThreshold >= 1 {
		return fmt.Errorf("trip.match_threshold must be in (0, 1), got %v", c.Trip.MatchThreshold)
	}
	if c.Trip.DedupeDistanceM <= 0 {
		return errors.New("trip.dedupe_distance_m must be positive")
	}
	if c.Server.MaxUploadBytes <= 0 {
		return errors.New("server.max_upload_bytes must be positive")
	}
	return nil
}

// Delays converts the configured per-category minutes into the engine's
// delay table. Unknown category names are ignored.
func (c *Config) Delays() map[trip.Category]time.Duration {
	categories := map[string]trip.Category{
		"meal":     trip.CategoryMeal,
		"gas":      trip.CategoryGas,
		"restroom": trip.CategoryRestroom,
		"scenic":   trip.CategoryScenic,
	}
	delays := make(map[trip.Category]time.Duration, len(c.Trip.DelayMinutes))
	for name, minutes := range c.Trip.DelayMinutes {
		if cat, ok := categories[strings.ToLower(name)]; ok {
			delays[cat] = time.Duration(minutes) * time.Minute
		}
	}
	return delays
}

// EngineOptions assembles the trip engine options from the configuration.
// Departure instants come from the caller, not the config file.
func (c *Config) EngineOptions(departAt time.Time) trip.Options {
	return trip.Options{
		SpeedKPH:       c.Trip.SpeedKPH,
		DepartAt:       departAt,
		IgnoreTimes:    c.Trip.IgnoreTimes,
		MatchThreshold: c.Trip.MatchThreshold,
		DedupeDistance: c.Trip.DedupeDistanceM,
		Delays:         c.Delays(),
	}
}
