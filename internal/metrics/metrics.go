// Package metrics exposes Prometheus counters for control file traffic.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ControlWrites counts successful integer writes per control file.
	ControlWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lighthald_control_writes_total",
		Help: "Successful control file writes by path.",
	}, []string{"path"})

	// ControlWriteFailures counts failed opens and short writes per
	// control file.
	ControlWriteFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lighthald_control_write_failures_total",
		Help: "Failed control file writes by path.",
	}, []string{"path"})

	// LightApplies counts applied light states per logical light.
	LightApplies = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lighthald_light_applies_total",
		Help: "Applied light states by logical light and outcome.",
	}, []string{"light", "outcome"})
)

// Handler returns the Prometheus metrics HTTP handler. This collects all
// promauto-registered metrics automatically.
func Handler() http.Handler {
	return promhttp.Handler()
}
