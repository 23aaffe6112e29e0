// Package metrics exposes Prometheus instrumentation for validation runs:
// notices observed per city/severity, and per-city validation duration.
// Collectors are registered against a caller-supplied registry rather
// than the global default so library consumers can compose it with their
// own metrics server.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Recorder wraps the Prometheus collectors a validation run reports to.
type Recorder struct {
	notices  *prometheus.CounterVec
	duration *prometheus.HistogramVec
	cities   prometheus.Counter
}

// NewRecorder constructs and registers the collectors against reg. Pass
// prometheus.NewRegistry() for an isolated registry, or
// prometheus.DefaultRegisterer to publish on the default /metrics path.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		notices: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "subway_validator",
			Name:      "notices_total",
			Help:      "Number of diagnostics emitted, by city and severity.",
		}, []string{"city", "severity"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "subway_validator",
			Name:      "city_validation_duration_seconds",
			Help:      "Time spent validating a single city's network.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"city"}),
		cities: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "subway_validator",
			Name:      "cities_validated_total",
			Help:      "Number of cities for which a validation run completed.",
		}),
	}
	reg.MustRegister(r.notices, r.duration, r.cities)
	return r
}

// ObserveNotice increments the notice counter for one (city, severity)
// pair. severity should be diagnostics.Severity.String()'s output.
func (r *Recorder) ObserveNotice(city, severity string) {
	r.notices.WithLabelValues(city, severity).Inc()
}

// ObserveDuration records how long validating city took.
func (r *Recorder) ObserveDuration(city string, d time.Duration) {
	r.duration.WithLabelValues(city).Observe(d.Seconds())
	r.cities.Inc()
}

// Timer starts a duration measurement for city; call the returned func
// once validation for that city completes.
func (r *Recorder) Timer(city string) func() {
	start := time.Now()
	return func() {
		r.ObserveDuration(city, time.Since(start))
	}
}
