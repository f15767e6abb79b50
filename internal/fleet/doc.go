// Package fleet aggregates diagnostics per car and produces fleet-wide
// status snapshots.
//
// Car holds the latest Record per diagnostic kind for one vehicle and
// computes its completeness and performance score. Registry maps car IDs to
// Cars in first-seen order; it is not safe for concurrent use. Locked wraps
// a Registry with a single mutex so concurrent producers can share it.
// Both satisfy Monitor.
package fleet
