package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/garagemonitor/garagemonitor/internal/fleet"
)

const namespace = "garage"

// Snapshotter is the read side of fleet.Monitor.
type Snapshotter interface {
	Snapshot() fleet.Snapshot
}

// FleetCollector is a prometheus.Collector that reports the current fleet
// snapshot.
type FleetCollector struct {
	src Snapshotter

	score      *prometheus.Desc
	complete   *prometheus.Desc
	alert      *prometheus.Desc
	diagnostic *prometheus.Desc
	cars       *prometheus.Desc
	average    *prometheus.Desc
	alerts     *prometheus.Desc
}

// NewFleetCollector returns a collector reading from src.
func NewFleetCollector(src Snapshotter) *FleetCollector {
	return &FleetCollector{
		src: src,
		score: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "car", "performance_score"),
			"Performance score of a car with a complete set of diagnostics.",
			[]string{"car"}, nil,
		),
		complete: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "car", "complete"),
			"1 if every recognized diagnostic has been reported for the car, else 0.",
			[]string{"car"}, nil,
		),
		alert: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "car", "alert"),
			"Active alert for a car; always 1 when present.",
			[]string{"car", "alert"}, nil,
		),
		diagnostic: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "car", "diagnostic_value"),
			"Latest reported value per car and diagnostic metric.",
			[]string{"car", "metric"}, nil,
		),
		cars: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "fleet", "cars"),
			"Number of cars known to the monitor.",
			nil, nil,
		),
		average: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "fleet", "average_score"),
			"Mean performance score over complete cars.",
			nil, nil,
		),
		alerts: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "fleet", "alerts"),
			"Number of cars carrying each alert.",
			[]string{"alert"}, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *FleetCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.score
	ch <- c.complete
	ch <- c.alert
	ch <- c.diagnostic
	ch <- c.cars
	ch <- c.average
	ch <- c.alerts
}

// Collect implements prometheus.Collector.
func (c *FleetCollector) Collect(ch chan<- prometheus.Metric) {
	snap := c.src.Snapshot()

	for _, st := range snap.Statuses {
		complete := 0.0
		if score, ok := st.ScoreValue(); ok {
			complete = 1
			ch <- prometheus.MustNewConstMetric(c.score, prometheus.GaugeValue, score, st.CarID)
		}
		ch <- prometheus.MustNewConstMetric(c.complete, prometheus.GaugeValue, complete, st.CarID)
		if st.Alert != "" {
			ch <- prometheus.MustNewConstMetric(c.alert, prometheus.GaugeValue, 1, st.CarID, string(st.Alert))
		}
		for kind, rec := range st.Diagnostics {
			ch <- prometheus.MustNewConstMetric(c.diagnostic, prometheus.GaugeValue, rec.Value(), st.CarID, kind.String())
		}
	}

	ch <- prometheus.MustNewConstMetric(c.cars, prometheus.GaugeValue, float64(snap.Len()))
	if avg, ok := snap.AverageScore(); ok {
		ch <- prometheus.MustNewConstMetric(c.average, prometheus.GaugeValue, avg)
	}
	for alert, n := range snap.AlertCounts() {
		ch <- prometheus.MustNewConstMetric(c.alerts, prometheus.GaugeValue, float64(n), string(alert))
	}
}

var _ prometheus.Collector = (*FleetCollector)(nil)
