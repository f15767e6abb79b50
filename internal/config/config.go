package config

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/garagemonitor/garagemonitor/internal/compute"
)

// Default values applied when fields are absent from the config file.
const (
	DefaultOnInvalid    = OnInvalidSkip
	DefaultReportFormat = FormatText
	DefaultCars         = 5
	DefaultUpdates      = 100
	DefaultDelay        = 10 * time.Millisecond
	DefaultMinValue     = 1000.0
	DefaultMaxValue     = 7000.0
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "json"
)

// Policies for rows that fail validation during ingestion.
const (
	OnInvalidSkip  = "skip"
	OnInvalidAbort = "abort"
)

// Report output formats.
const (
	FormatText       = "text"
	FormatPrometheus = "prometheus"
)

// Config is the top-level configuration. Fields map 1:1 to config.example.yaml.
type Config struct {
	Monitor    MonitorConfig    `yaml:"monitor"`
	Ingest     IngestConfig     `yaml:"ingest"`
	Report     ReportConfig     `yaml:"report"`
	Simulation SimulationConfig `yaml:"simulation"`
	Log        LogConfig        `yaml:"log"`
}

// MonitorConfig holds the scoring settings applied by the fleet registry.
type MonitorConfig struct {
	// SevereStressThreshold is the score below which a complete car raises
	// a severe engine stress alert. Defaults to 40.
	SevereStressThreshold float64 `yaml:"severe_stress_threshold"`
}

// IngestConfig controls how input rows are handled.
type IngestConfig struct {
	// OnInvalid is one of: skip | abort. skip logs and drops the row;
	// abort stops ingestion with an error.
	OnInvalid string `yaml:"on_invalid"`
}

// ReportConfig controls report output.
type ReportConfig struct {
	// Format is one of: text | prometheus.
	Format string `yaml:"format"`

	// Interval, when positive, prints a report periodically while input is
	// still streaming. Zero prints a single report after input ends.
	Interval time.Duration `yaml:"interval"`
}

// SimulationConfig drives the realtime simulation binary.
type SimulationConfig struct {
	// Cars is the number of simulated vehicles, each fed by its own producer.
	Cars int `yaml:"cars"`

	// Updates is the number of readings each producer sends.
	Updates int `yaml:"updates"`

	// Delay is the pause between readings of one producer in concurrent mode.
	Delay time.Duration `yaml:"delay"`

	// MinValue and MaxValue bound the uniformly drawn reading values.
	MinValue float64 `yaml:"min_value"`
	MaxValue float64 `yaml:"max_value"`

	// Seed makes runs reproducible. Zero seeds from the clock.
	Seed int64 `yaml:"seed"`
}

// LogConfig controls the process logger.
type LogConfig struct {
	// Level is one of: debug | info | warn | error.
	Level string `yaml:"level"`

	// Format is one of: json | text.
	Format string `yaml:"format"`
}

// SlogLevel returns the slog level for l.Level. Unknown values fall back to info;
// validate rejects them before a Config is handed out.
func (l LogConfig) SlogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// NewLogger returns a logger writing to w in the configured format and level.
func (l LogConfig) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: l.SlogLevel()}
	if l.Format == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// Load reads and parses the YAML config file at path.
// Missing optional fields are filled with sensible defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file: %w", err)
	}

	cfg := defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return defaults()
}

// defaults returns a Config pre-populated with default values.
func defaults() *Config {
	return &Config{
		Monitor: MonitorConfig{
			SevereStressThreshold: compute.DefaultSevereStressThreshold,
		},
		Ingest: IngestConfig{
			OnInvalid: DefaultOnInvalid,
		},
		Report: ReportConfig{
			Format: DefaultReportFormat,
		},
		Simulation: SimulationConfig{
			Cars:     DefaultCars,
			Updates:  DefaultUpdates,
			Delay:    DefaultDelay,
			MinValue: DefaultMinValue,
			MaxValue: DefaultMaxValue,
		},
		Log: LogConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// validate checks enums and numeric ranges.
func validate(cfg *Config) error {
	if t := cfg.Monitor.SevereStressThreshold; math.IsNaN(t) || math.IsInf(t, 0) {
		return fmt.Errorf("monitor.severe_stress_threshold must be finite, got %v", t)
	}
	switch cfg.Ingest.OnInvalid {
	case OnInvalidSkip, OnInvalidAbort:
	default:
		return fmt.Errorf("ingest.on_invalid %q unknown: want skip|abort", cfg.Ingest.OnInvalid)
	}
	switch cfg.Report.Format {
	case FormatText, FormatPrometheus:
	default:
		return fmt.Errorf("report.format %q unknown: want text|prometheus", cfg.Report.Format)
	}
	if cfg.Report.Interval < 0 {
		return fmt.Errorf("report.interval must not be negative")
	}

	sim := cfg.Simulation
	if sim.Cars <= 0 {
		return fmt.Errorf("simulation.cars must be positive")
	}
	if sim.Updates < 0 {
		return fmt.Errorf("simulation.updates must not be negative")
	}
	if sim.Delay < 0 {
		return fmt.Errorf("simulation.delay must not be negative")
	}
	if sim.MaxValue <= sim.MinValue {
		return fmt.Errorf("simulation.max_value %v must exceed min_value %v", sim.MaxValue, sim.MinValue)
	}

	switch strings.ToLower(cfg.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level %q unknown: want debug|info|warn|error", cfg.Log.Level)
	}
	switch cfg.Log.Format {
	case "json", "text":
	default:
		return fmt.Errorf("log.format %q unknown: want json|text", cfg.Log.Format)
	}
	return nil
}
