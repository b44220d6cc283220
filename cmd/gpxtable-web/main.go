// Command gpxtable-web serves the GPX upload front-end: an HTML form that
// accepts a GPX file plus trip options and responds with the rendered
// itinerary table.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/nathan-osman/go-sunrise"
	"go.uber.org/zap"

	"github.com/gpxtrip/gpxtable/internal/config"
	"github.com/gpxtrip/gpxtable/internal/lib/geo"
	"github.com/gpxtrip/gpxtable/internal/web"
)

func main() {
	configPath := flag.String("config", "", "path to gpxtable.yaml")
	flag.Parse()

	// .env feeds the GPXTABLE_ environment overrides; missing is fine.
	_ = godotenv.Load()

	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("config error", zap.Error(err))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	srv := web.New(cfg, log, sunTimes)

	var metricsSrv *http.Server
	if cfg.Server.MetricsAddr != "" {
		metricsSrv = srv.Metrics().Serve(cfg.Server.MetricsAddr, log)
	}

	httpSrv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("listening", zap.String("addr", cfg.Server.Addr))
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Warn("shutdown error", zap.Error(err))
	}
	if metricsSrv != nil {
		_ = metricsSrv.Shutdown(shutdownCtx)
	}
}

func sunTimes(p geo.Point, date time.Time) (time.Time, time.Time) {
	rise, set := sunrise.SunriseSunset(p.Latitude, p.Longitude, date.Year(), date.Month(), date.Day())
	return rise.Local(), set.Local()
}
