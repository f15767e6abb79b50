package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/garagemonitor/garagemonitor/internal/ingest"
)

// Ingest counts input rows. It satisfies ingest.Observer.
type Ingest struct {
	records  prometheus.Counter
	rejected *prometheus.CounterVec
}

// NewIngest returns unregistered ingestion counters.
func NewIngest() *Ingest {
	i := &Ingest{
		records: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingest",
			Name:      "records_total",
			Help:      "Input rows recorded into the fleet monitor.",
		}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ingest",
			Name:      "rejected_total",
			Help:      "Input rows rejected, by reason.",
		}, []string{"reason"}),
	}
	// Pre-create the known reasons so they export as 0 before the first rejection.
	for _, reason := range []string{ingest.ReasonMalformed, ingest.ReasonInvalidKind, ingest.ReasonInvalidValue} {
		i.rejected.WithLabelValues(reason)
	}
	return i
}

// Accepted implements ingest.Observer.
func (i *Ingest) Accepted() { i.records.Inc() }

// Rejected implements ingest.Observer.
func (i *Ingest) Rejected(reason string) { i.rejected.WithLabelValues(reason).Inc() }

// Describe implements prometheus.Collector.
func (i *Ingest) Describe(ch chan<- *prometheus.Desc) {
	i.records.Describe(ch)
	i.rejected.Describe(ch)
}

// Collect implements prometheus.Collector.
func (i *Ingest) Collect(ch chan<- prometheus.Metric) {
	i.records.Collect(ch)
	i.rejected.Collect(ch)
}

var (
	_ ingest.Observer      = (*Ingest)(nil)
	_ prometheus.Collector = (*Ingest)(nil)
)
