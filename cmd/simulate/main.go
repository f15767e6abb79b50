package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/garagemonitor/garagemonitor/internal/config"
	"github.com/garagemonitor/garagemonitor/internal/report"
	"github.com/garagemonitor/garagemonitor/internal/simulate"
)

// sampleCars is how many car statuses from the concurrent run are printed.
const sampleCars = 2

func main() {
	configPath := flag.String("config", "", "path to config file; built-in defaults apply when empty")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			slog.Error("failed to load config", "err", err)
			os.Exit(1)
		}
	}
	slog.SetDefault(cfg.Log.NewLogger(os.Stderr))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	simCfg := simulate.Config{
		Cars:      cfg.Simulation.Cars,
		Updates:   cfg.Simulation.Updates,
		Delay:     cfg.Simulation.Delay,
		MinValue:  cfg.Simulation.MinValue,
		MaxValue:  cfg.Simulation.MaxValue,
		Seed:      cfg.Simulation.Seed,
		Threshold: cfg.Monitor.SevereStressThreshold,
	}
	feeds := simulate.Plan(simCfg)

	fmt.Println("Running single-threaded simulation...")
	single, err := simulate.Replay(ctx, feeds, simCfg, false)
	if err != nil {
		slog.Error("sequential simulation failed", "err", err)
		os.Exit(1)
	}
	fmt.Printf("Single-threaded time: %.4f seconds\n", single.Elapsed.Seconds())

	fmt.Println("Running multi-threaded simulation...")
	multi, err := simulate.Replay(ctx, feeds, simCfg, true)
	if err != nil {
		slog.Error("concurrent simulation failed", "err", err)
		os.Exit(1)
	}
	fmt.Printf("Multi-threaded time: %.4f seconds\n", multi.Elapsed.Seconds())

	fmt.Println("\nSample car status (multi-threaded):")
	sample := multi.Snapshot
	if len(sample.Statuses) > sampleCars {
		sample.Statuses = sample.Statuses[:sampleCars]
	}
	if err := report.Text(os.Stdout, sample); err != nil {
		slog.Error("failed to write report", "err", err)
		os.Exit(1)
	}
}
