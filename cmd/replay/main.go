package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/exchange-core/engine"
	"github.com/yourusername/exchange-core/ingest"
	"github.com/yourusername/exchange-core/logging"
	"github.com/yourusername/exchange-core/profiling"
	"github.com/yourusername/exchange-core/report"
)

func main() {
	// .env is optional; real env vars win
	_ = godotenv.Load()

	var (
		inputPath   = flag.String("input", "", "path to the order file (one record per line: id time symbol side price quantity)")
		metricsAddr = flag.String("metrics-addr", os.Getenv("METRICS_ADDR"), "address for the Prometheus /metrics endpoint (empty disables it)")
		profileDir  = flag.String("profile-dir", os.Getenv("PROFILE_DIR"), "write CPU and heap profiles of the replay to this directory (empty disables profiling)")
	)
	flag.Parse()

	log := logging.InitLogger()

	if *inputPath == "" && flag.NArg() > 0 {
		*inputPath = flag.Arg(0)
	}
	if *inputPath == "" {
		fmt.Fprintln(os.Stderr, "usage: replay [-input] <order-file>")
		os.Exit(1)
	}

	if *metricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			if err := http.ListenAndServe(*metricsAddr, mux); err != nil {
				log.WithFields(logrus.Fields{"error": err.Error()}).Warn("Metrics endpoint stopped")
			}
		}()
	}

	var profiler *profiling.Profiler
	if *profileDir != "" {
		cfg := profiling.DefaultProfilerConfig()
		cfg.OutputDir = *profileDir
		profiler = profiling.NewProfiler(cfg)
		if err := profiler.Start(); err != nil {
			log.WithFields(logrus.Fields{"error": err.Error()}).Fatal("Failed to start profiler")
		}
	}

	me := engine.NewMatchingEngine()

	// Trades print to stdout as they occur; the structured log copy is
	// diagnostic only.
	stream := report.NewStreamReporter(os.Stdout)
	reporter := report.MultiReporter{stream, report.NewLogReporter()}
	me.SetTradeHandler(reporter.Report)

	src, err := ingest.OpenFile(*inputPath)
	if err != nil {
		log.WithFields(logrus.Fields{"error": err.Error(), "path": *inputPath}).Fatal("Failed to open order file")
	}
	defer src.Close()

	logging.LogReplayStarted(*inputPath)

	feeder := ingest.NewFeeder(me)
	feeder.SetLabel(*inputPath)
	stats, err := feeder.Run(src)
	if err != nil {
		log.WithFields(logrus.Fields{"error": err.Error()}).Fatal("Replay aborted")
	}

	if profiler != nil {
		if err := profiler.Stop(); err != nil {
			log.WithFields(logrus.Fields{"error": err.Error()}).Warn("Failed to write profiles")
		}
	}

	if err := stream.Err(); err != nil {
		log.WithFields(logrus.Fields{"error": err.Error()}).Fatal("Failed writing trade output")
	}

	log.WithFields(logrus.Fields{
		"lines":     stats.Lines,
		"submitted": stats.Submitted,
		"rejected":  stats.Rejected,
		"skipped":   stats.Skipped,
		"trades":    stats.Trades,
	}).Info("Replay finished")
}
