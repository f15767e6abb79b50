// Package metrics exposes fleet state and ingestion counters as Prometheus
// metrics on a private registry.
//
// FleetCollector takes one fleet snapshot per Collect call, so every gauge in
// a scrape comes from the same point in time. Ingest counts accepted and
// rejected input rows and satisfies ingest.Observer.
package metrics
