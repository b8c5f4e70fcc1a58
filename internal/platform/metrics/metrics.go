// Package metrics exposes quotebook's domain measurements as Prometheus collectors.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Sources for quotes_added_total.
const (
	SourceForm   = "form"
	SourceImport = "import"
	SourceRemote = "remote"
)

// Results for sync_ticks_total.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Collectors holds the registered domain collectors.
type Collectors struct {
	quotes    prometheus.Gauge
	added     *prometheus.CounterVec
	syncTicks *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
// Pass prometheus.DefaultRegisterer to expose them on the /-/metrics endpoint.
func New(reg prometheus.Registerer) (*Collectors, error) {
	c := &Collectors{
		quotes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "quotebook",
			Name:      "quotes",
			Help:      "Number of quotes currently stored.",
		}),
		added: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quotebook",
			Name:      "quotes_added_total",
			Help:      "Quotes added, by source.",
		}, []string{"source"}),
		syncTicks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quotebook",
			Name:      "sync_ticks_total",
			Help:      "Remote sync attempts, by result.",
		}, []string{"result"}),
	}

	for _, col := range []prometheus.Collector{c.quotes, c.added, c.syncTicks} {
		if err := reg.Register(col); err != nil {
			return nil, fmt.Errorf("registering collector: %w", err)
		}
	}

	return c, nil
}

// QuoteCount records the current number of stored quotes.
func (c *Collectors) QuoteCount(n int) {
	c.quotes.Set(float64(n))
}

// QuotesAdded counts n quotes added from source.
func (c *Collectors) QuotesAdded(source string, n int) {
	c.added.WithLabelValues(source).Add(float64(n))
}

// SyncTick counts one sync attempt with the given result.
func (c *Collectors) SyncTick(result string) {
	c.syncTicks.WithLabelValues(result).Inc()
}
