// Package ingest feeds diagnostic readings from CSV input into a fleet
// monitor.
//
// Each row is "car_id,metric,value". Fields are trimmed and blank lines are
// ignored. Rows are rejected as malformed (wrong field count or empty car
// ID), invalid_kind (metric outside the recognized set) or invalid_value
// (non-numeric or non-finite value). The Policy decides whether a rejected
// row is logged and skipped or aborts the read.
package ingest
