// Package report renders fleet snapshots for operators.
//
// Text writes the human-readable per-car report: score to two decimals or
// INVALID, the alert line when one is raised, the latest diagnostics, and a
// fleet summary. Exposition writes everything a prometheus.Gatherer holds in
// the Prometheus text format.
package report
