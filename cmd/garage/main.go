package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/garagemonitor/garagemonitor/internal/config"
	"github.com/garagemonitor/garagemonitor/internal/fleet"
	"github.com/garagemonitor/garagemonitor/internal/ingest"
	"github.com/garagemonitor/garagemonitor/internal/metrics"
	"github.com/garagemonitor/garagemonitor/internal/report"
)

func main() {
	configPath := flag.String("config", "", "path to config file; built-in defaults apply when empty")
	format := flag.String("format", "", "report format: text|prometheus (overrides report.format)")
	interval := flag.Duration("interval", 0, "print a report this often while input streams (overrides report.interval)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] <diagnostics.csv|->\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			slog.Error("failed to load config", "err", err)
			os.Exit(1)
		}
	}
	if *format != "" {
		cfg.Report.Format = *format
	}
	if *interval > 0 {
		cfg.Report.Interval = *interval
	}
	slog.SetDefault(cfg.Log.NewLogger(os.Stderr))

	policy, err := ingest.ParsePolicy(cfg.Ingest.OnInvalid)
	if err != nil {
		slog.Error("invalid ingest policy", "err", err)
		os.Exit(1)
	}
	if cfg.Report.Format != config.FormatText && cfg.Report.Format != config.FormatPrometheus {
		slog.Error("unknown report format", "format", cfg.Report.Format)
		os.Exit(2)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	mon := fleet.NewLocked(fleet.NewRegistry(
		fleet.WithSevereStressThreshold(cfg.Monitor.SevereStressThreshold),
	))
	ingestMetrics := metrics.NewIngest()
	promReg, err := metrics.NewRegistry(metrics.NewFleetCollector(mon), ingestMetrics)
	if err != nil {
		slog.Error("failed to register metrics", "err", err)
		os.Exit(1)
	}

	src, closeSrc, err := openInput(flag.Arg(0))
	if err != nil {
		slog.Error("failed to open input", "err", err)
		os.Exit(1)
	}
	defer closeSrc()

	if *configPath != "" {
		go func() {
			if err := config.Watch(ctx, *configPath, func(updated *config.Config) {
				mon.SetSevereStressThreshold(updated.Monitor.SevereStressThreshold)
			}); err != nil {
				slog.Error("config watcher stopped", "err", err)
			}
		}()
	}

	emit := func() {
		if err := writeReport(os.Stdout, cfg.Report.Format, mon, promReg); err != nil {
			slog.Error("failed to write report", "err", err)
		}
	}

	// Periodic reports while the input is still streaming.
	stopReports := make(chan struct{})
	reportsDone := make(chan struct{})
	go func() {
		defer close(reportsDone)
		if cfg.Report.Interval <= 0 {
			return
		}
		ticker := time.NewTicker(cfg.Report.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-stopReports:
				return
			case <-ticker.C:
				emit()
			}
		}
	}()

	slog.Info("garage: ingesting", "input", flag.Arg(0), "policy", cfg.Ingest.OnInvalid,
		"severe_stress_threshold", cfg.Monitor.SevereStressThreshold)

	res, err := ingest.New(mon,
		ingest.WithPolicy(policy),
		ingest.WithObserver(ingestMetrics),
	).Read(ctx, src)

	close(stopReports)
	<-reportsDone

	slog.Info("garage: ingest finished",
		"lines", res.Lines,
		"applied", res.Applied,
		"skipped", res.SkippedTotal(),
	)
	if err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("ingest aborted", "err", err)
		os.Exit(1)
	}

	emit()
}

// openInput returns the reader for path; "-" means stdin.
func openInput(path string) (io.Reader, func(), error) {
	if path == "-" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}

func writeReport(w io.Writer, format string, mon fleet.Monitor, g prometheus.Gatherer) error {
	if format == config.FormatPrometheus {
		return report.Exposition(w, g)
	}
	return report.Text(w, mon.Snapshot())
}
