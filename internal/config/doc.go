// Package config loads and watches the garage monitor configuration file.
//
// Top-level types:
//   - Config{Monitor, Ingest, Report, Simulation, Log}: full tree parsed from YAML
//   - MonitorConfig: severe_stress_threshold
//   - IngestConfig: on_invalid (skip|abort)
//   - ReportConfig: format (text|prometheus), interval
//   - SimulationConfig: cars, updates, delay, min_value, max_value, seed
//   - LogConfig: level, format (json|text); SlogLevel() resolves the slog level
//
// Load(path) reads the YAML file, applies defaults (threshold 40, skip
// invalid rows, text reports, 5 cars × 100 updates at 10ms), then validates
// enums and ranges. Default() returns the same defaults without a file.
//
// Watch(ctx, path, onChange) uses fsnotify on the file's directory and calls
// onChange with the newly parsed Config after an in-place write or a
// temp-file-and-rename save. A non-finite severe_stress_threshold is
// rejected by validate.
package config
