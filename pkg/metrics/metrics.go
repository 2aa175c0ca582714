// Package metrics holds the Prometheus collectors barkeep exports.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// UnknownAction is the action label recorded for actions a widget does not
// have. Configured names are not used as labels.
const UnknownAction = "unknown"

var (
	// Renders counts label renders per widget type
	Renders = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "barkeep",
		Name:      "renders_total",
		Help:      "Number of widget label renders.",
	}, []string{"type"})

	// SourceErrors counts failed data source fetches per widget type
	SourceErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "barkeep",
		Name:      "source_errors_total",
		Help:      "Number of failed widget data source fetches.",
	}, []string{"type"})

	// Dispatches counts callback actions per action name and outcome
	Dispatches = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "barkeep",
		Name:      "callback_dispatches_total",
		Help:      "Number of widget callback actions dispatched.",
	}, []string{"action", "result"})

	// UpdateDuration observes the time spent fetching and rendering a widget
	UpdateDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "barkeep",
		Name:      "update_duration_seconds",
		Help:      "Time spent fetching data and rendering a widget label.",
		Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
	}, []string{"type"})

	// ActiveWidgets is the number of widget instances run by the scheduler
	ActiveWidgets = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "barkeep",
		Name:      "widgets_active",
		Help:      "Number of widget instances managed by the scheduler.",
	})
)

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
