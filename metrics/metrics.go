// package metrics exports block cache events as prometheus metrics
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kava-labs/block-resolver-cache/blockcache"
)

const namespace = "block_resolver_cache"

// Observer counts block cache events by type.
type Observer struct {
	events *prometheus.CounterVec
}

var _ blockcache.Observer = (*Observer)(nil)

// NewObserver creates an Observer and registers its collectors with registerer.
func NewObserver(registerer prometheus.Registerer) (*Observer, error) {
	events := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_total",
			Help:      "Block cache lookups and loader outcomes by event type.",
		},
		[]string{"event"},
	)

	if err := registerer.Register(events); err != nil {
		return nil, err
	}

	return &Observer{
		events: events,
	}, nil
}

func (o *Observer) On(data blockcache.EventData) {
	o.events.WithLabelValues(data.Event.String()).Inc()
}

// Handler serves the metrics gathered by gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
