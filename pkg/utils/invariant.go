// Invariants are conditions that must hold unless there is a bug in chain itself, e.g. a circular list whose tail
// doesn't link back to its head, or a doubly linked node whose back reference is stale. Think of what you'd `panic()`
// on, without crashing a server that holds thousands of lists because one of them went bad. A violation is logged,
// counted in the `invariants_total` metric and only panics in test-mode builds.
// The caller still has to handle the erroneous case, e.g. by returning early.
//
// Do not raise invariants for conditions that depend on the outside world: a client sending an unknown command or
// deleting a missing value is not a bug.

package utils

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	promclient "github.com/prometheus/client_model/go"
)

var invariantsMetric = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "invariants_total",
	Help: "The total number of invariant violations",
}, []string{
	"module", // The module in which this invariant occurred.
	"type",   // The type of the invariant that occurred.
})

// RaiseInvariant records a violation of `invariantType` inside `module`. `args` are slog attributes.
func RaiseInvariant(module, invariantType, msg string, args ...any) {
	invariantsMetric.WithLabelValues(module, invariantType).Inc()
	slog.With("invariant", invariantType, "module", module).Error(msg, args...)
	if IsTestMode {
		panic("invariant violated: " + invariantType)
	}
}

// GetMetricValue returns how many times `invariantType` was raised inside `module`.
func GetMetricValue(module, invariantType string) int {
	var metric = &promclient.Metric{}
	if err := invariantsMetric.WithLabelValues(module, invariantType).Write(metric); err != nil {
		slog.Error("Failed to read invariant metric.", "error", err)
		return 0
	}
	return int(metric.Counter.GetValue())
}
