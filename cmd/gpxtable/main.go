// Command gpxtable prints an itinerary table for one or more GPX files:
// cumulative distances, arrival times, fuel legs and layovers for every
// named stop along the file's tracks and routes.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/nathan-osman/go-sunrise"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"go.uber.org/zap"

	"github.com/gpxtrip/gpxtable/internal/config"
	"github.com/gpxtrip/gpxtable/internal/gpx"
	"github.com/gpxtrip/gpxtable/internal/lib/export"
	"github.com/gpxtrip/gpxtable/internal/lib/geo"
	"github.com/gpxtrip/gpxtable/internal/lib/render"
	"github.com/gpxtrip/gpxtable/internal/lib/trip"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "gpxtable: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath  = flag.String("config", "", "path to gpxtable.yaml")
		depart      = flag.String("depart", "", "departure time for the first point (e.g. \"2023-07-03 10:00\", local timezone)")
		speed       = flag.Float64("speed", 0, "average travel speed in display units (mph, or km/h with -metric)")
		metric      = flag.Bool("metric", false, "use metric units (default imperial)")
		coordinates = flag.Bool("coordinates", false, "prefix stop names with latitude,longitude")
		ignoreTimes = flag.Bool("ignore-times", false, "ignore recorded track times")
		htmlOut     = flag.Bool("html", false, "output HTML instead of markdown")
		output      = flag.String("o", "", "write output to file instead of stdout")
		kmlPath     = flag.String("kml", "", "also write the itinerary as KML to this path")
		verbose     = flag.Bool("verbose", false, "enable debug logging")
	)
	flag.Parse()

	if flag.NArg() == 0 {
		return fmt.Errorf("no input files (usage: gpxtable [flags] file.gpx ...)")
	}

	log, err := newLogger(*verbose)
	if err != nil {
		return err
	}
	defer log.Sync()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *metric {
		cfg.Trip.Metric = true
	}
	if *coordinates {
		cfg.Trip.Coordinates = true
	}
	if *ignoreTimes {
		cfg.Trip.IgnoreTimes = true
	}
	if *speed != 0 {
		if *speed < 0 {
			return fmt.Errorf("speed must be positive")
		}
		cfg.Trip.SpeedKPH = *speed
		if !cfg.Trip.Metric {
			cfg.Trip.SpeedKPH = *speed * 1.609344
		}
	}

	departAt, err := config.ParseDeparture(*depart, time.Local)
	if err != nil {
		return err
	}

	out := io.Writer(os.Stdout)
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	var md bytes.Buffer
	for _, path := range flag.Args() {
		if err := processFile(&md, path, cfg, departAt, kmlPath, log); err != nil {
			return err
		}
	}

	if *htmlOut {
		converter := goldmark.New(goldmark.WithExtensions(extension.Table))
		return converter.Convert(md.Bytes(), out)
	}
	_, err = out.Write(md.Bytes())
	return err
}

func processFile(w io.Writer, path string, cfg *config.Config, departAt time.Time, kmlPath *string, log *zap.SugaredLogger) error {
	doc, err := gpx.Parse(path)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	log.Debugw("parsed",
		"file", path,
		"tracks", len(doc.Tracks),
		"routes", len(doc.Routes),
		"waypoints", len(doc.Waypoints),
	)

	engine := trip.NewEngine(cfg.EngineOptions(departAt))
	sections := engine.Plan(doc)

	units := render.Imperial
	if cfg.Trip.Metric {
		units = render.Metric
	}
	rend := &render.Renderer{
		Units:       units,
		Coordinates: cfg.Trip.Coordinates,
		SpeedKPH:    cfg.Trip.SpeedKPH,
		Sun:         sunTimes,
	}
	if err := rend.Markdown(w, doc, sections); err != nil {
		return err
	}

	if *kmlPath != "" {
		f, err := os.Create(*kmlPath)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := export.KML(f, doc.Name(), sections); err != nil {
			return fmt.Errorf("writing %s: %w", *kmlPath, err)
		}
		log.Debugw("wrote KML", "file", *kmlPath)
	}
	return nil
}

// sunTimes adapts go-sunrise to the renderer's provider type.
func sunTimes(p geo.Point, date time.Time) (time.Time, time.Time) {
	rise, set := sunrise.SunriseSunset(p.Latitude, p.Longitude, date.Year(), date.Month(), date.Day())
	return rise.Local(), set.Local()
}

func newLogger(verbose bool) (*zap.SugaredLogger, error) {
	if !verbose {
		return zap.NewNop().Sugar(), nil
	}
	log, err := zap.NewDevelopment()
	if err != nil {
		return nil, err
	}
	return log.Sugar(), nil
}
