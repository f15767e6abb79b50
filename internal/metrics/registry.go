package metrics

import "github.com/prometheus/client_golang/prometheus"

// NewRegistry returns a private registry holding the given collectors.
// Using a private registry keeps tests and multiple monitors independent of
// prometheus.DefaultRegisterer.
func NewRegistry(cs ...prometheus.Collector) (*prometheus.Registry, error) {
	reg := prometheus.NewRegistry()
	for _, c := range cs {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return reg, nil
}
