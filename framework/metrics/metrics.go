package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/km-arc/go-serializer/framework/serializer"
)

// Collector counts validation outcomes. It implements serializer.Observer.
//
//	reg := prometheus.NewRegistry()
//	m := metrics.New(reg)
//	s := serializer.New(schema, serializer.WithObserver(m))
type Collector struct {
	validations *prometheus.CounterVec
	failures    *prometheus.CounterVec
}

var _ serializer.Observer = (*Collector)(nil)

// New creates a Collector and registers it with reg.
func New(reg prometheus.Registerer) *Collector {
	c := &Collector{
		validations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "serializer",
				Name:      "validations_total",
				Help:      "Validation runs by schema and result (valid or invalid).",
			},
			[]string{"schema", "result"},
		),
		failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "serializer",
				Name:      "field_failures_total",
				Help:      "First failing field of invalid runs, by schema, field and error kind.",
			},
			[]string{"schema", "field", "kind"},
		),
	}
	reg.MustRegister(c.validations, c.failures)
	return c
}

func (c *Collector) Observe(schema string, err *serializer.FieldError) {
	if err == nil {
		c.validations.WithLabelValues(schema, "valid").Inc()
		return
	}
	c.validations.WithLabelValues(schema, "invalid").Inc()
	c.failures.WithLabelValues(schema, err.Field, err.Kind.String()).Inc()
}

// Handler exposes the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
