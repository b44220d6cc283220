package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"go.uber.org/zap"

	"github.com/gpxtrip/gpxtable/internal/config"
	"github.com/gpxtrip/gpxtable/internal/gpx"
	"github.com/gpxtrip/gpxtable/internal/lib/export"
	"github.com/gpxtrip/gpxtable/internal/lib/render"
	"github.com/gpxtrip/gpxtable/internal/lib/trip"
)

const uploadForm = `<!DOCTYPE html>
<html>
<head><title>gpxtable</title></head>
<body>
<h1>GPX itinerary table</h1>
<form method="post" enctype="multipart/form-data">
  <p><input type="file" name="file" accept=".gpx" required></p>
  <p><label>Departure (e.g. 2023-07-03 10:00): <input type="text" name="departure"></label></p>
  <p><label>Average speed: <input type="number" name="speed" min="1" step="any"></label></p>
  <p><label><input type="checkbox" name="metric"> Metric units</label></p>
  <p><label><input type="checkbox" name="coordinates"> Show coordinates</label></p>
  <p><label><input type="checkbox" name="ignore_times"> Ignore track times</label></p>
  <p><label>Output:
    <select name="output">
      <option value="html">HTML</option>
      <option value="markdown">Markdown</option>
      <option value="htmlcode">HTML source</option>
      <option value="json">JSON</option>
    </select>
  </label></p>
  <p><input type="submit" value="Generate"></p>
</form>
</body>
</html>
`

func (s *Server) handleForm(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, uploadForm)
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	id := uuid.New().String()
	log := s.log.With(zap.String("upload_id", id))

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.cfg.Server.MaxUploadBytes); err != nil {
		s.reject(w, log, http.StatusRequestEntityTooLarge, "upload too large or malformed", err)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.reject(w, log, http.StatusBadRequest, "missing file field", err)
		return
	}
	defer file.Close()

	if !strings.EqualFold(filepath.Ext(header.Filename), ".gpx") {
		s.reject(w, log, http.StatusBadRequest, "only .gpx files are accepted", nil)
		return
	}

	depart, err := config.ParseDeparture(r.FormValue("departure"), time.Local)
	if err != nil {
		s.reject(w, log, http.StatusBadRequest, err.Error(), nil)
		return
	}

	metric := r.FormValue("metric") == "on"
	opts := s.cfg.EngineOptions(depart)
	opts.IgnoreTimes = opts.IgnoreTimes || r.FormValue("ignore_times") == "on"
	if v := r.FormValue("speed"); v != "" {
		speed, err := strconv.ParseFloat(v, 64)
		if err != nil || speed <= 0 {
			s.reject(w, log, http.StatusBadRequest, "speed must be a positive number", err)
			return
		}
		// The form speed arrives in display units: mph unless metric is on.
		if !metric {
			speed *= 1.609344
		}
		opts.SpeedKPH = speed
	}

	start := time.Now()
	doc, err := gpx.ParseReader(file)
	if err != nil {
		s.metrics.Uploads.WithLabelValues("invalid").Inc()
		log.Warn("unparseable upload", zap.String("filename", header.Filename), zap.Error(err))
		http.Error(w, fmt.Sprintf("%s: not a valid GPX file", header.Filename), http.StatusBadRequest)
		return
	}

	sections := trip.NewEngine(opts).Plan(doc)
	s.metrics.ComputeDuration.Observe(time.Since(start).Seconds())
	s.metrics.Uploads.WithLabelValues("ok").Inc()
	for i := range sections {
		s.metrics.RowsRendered.Add(float64(len(sections[i].Rows)))
	}

	log.Info("upload computed",
		zap.String("filename", header.Filename),
		zap.Int("tracks", len(doc.Tracks)),
		zap.Int("routes", len(doc.Routes)),
		zap.Int("waypoints", len(doc.Waypoints)),
		zap.Int("sections", len(sections)),
	)

	if r.FormValue("output") == "json" {
		s.writeJSON(w, doc, sections)
		return
	}

	units := render.Imperial
	if metric {
		units = render.Metric
	}
	rend := &render.Renderer{
		Units:       units,
		Coordinates: r.FormValue("coordinates") == "on",
		SpeedKPH:    opts.SpeedKPH,
		Sun:         s.sun,
	}
	var md bytes.Buffer
	if err := rend.Markdown(&md, doc, sections); err != nil {
		log.Error("render failed", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	s.writeRendered(w, r.FormValue("output"), md.Bytes())
}

// writeRendered emits the markdown in the requested form: raw, converted to
// HTML, or the converted HTML shown as escaped source.
func (s *Server) writeRendered(w http.ResponseWriter, mode string, markdown []byte) {
	if mode == "markdown" {
		w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
		w.Write(markdown)
		return
	}

	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	var buf bytes.Buffer
	if err := md.Convert(markdown, &buf); err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if mode == "htmlcode" {
		fmt.Fprintf(w, "<pre>%s</pre>", html.EscapeString(buf.String()))
		return
	}
	w.Write(buf.Bytes())
}

type jsonSection struct {
	Name     string  `json:"name"`
	Kind     string  `json:"kind"`
	Rows     int     `json:"rows"`
	LengthM  float64 `json:"length_m"`
	Polyline string  `json:"polyline,omitempty"`
}

func (s *Server) writeJSON(w http.ResponseWriter, doc *gpx.GPX, sections []trip.Section) {
	out := struct {
		Name     string        `json:"name"`
		Sections []jsonSection `json:"sections"`
	}{
		Name:     doc.Name(),
		Sections: make([]jsonSection, 0, len(sections)),
	}
	for i := range sections {
		sec := &sections[i]
		kind := "track"
		if sec.Kind == trip.SectionRoute {
			kind = "route"
		}
		out.Sections = append(out.Sections, jsonSection{
			Name:     sec.Name,
			Kind:     kind,
			Rows:     len(sec.Rows),
			LengthM:  sec.Length,
			Polyline: export.Polyline(sec.Path),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

func (s *Server) reject(w http.ResponseWriter, log *zap.Logger, status int, msg string, err error) {
	s.metrics.Uploads.WithLabelValues("rejected").Inc()
	log.Warn("upload rejected", zap.String("reason", msg), zap.Error(err))
	http.Error(w, msg, status)
}
