package tiles

import (
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "worldgraph"

// Metrics are the collectors a Runner updates.
type Metrics struct {
	Built    *prometheus.CounterVec
	Skipped  *prometheus.CounterVec
	Duration *prometheus.HistogramVec
}

func newMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Built: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "tiles_built_total",
			Help:      "Tiles committed by generator",
		}, []string{"generator"}),
		Skipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "tiles_skipped_total",
			Help:      "Tiles skipped because their marker was already processed",
		}, []string{"generator"}),
		Duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "tile_build_seconds",
			Help:      "Plan plus commit time per built tile",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 14), // 0.1ms to ~1.6s
		}, []string{"generator"}),
	}
	if reg == nil {
		return m, nil
	}
	for _, c := range []prometheus.Collector{m.Built, m.Skipped, m.Duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}
