package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// getTestMetrics returns a Metrics instance registered on a fresh registry so
// tests can run repeatedly without duplicate-registration panics.
func getTestMetrics() *Metrics {
	return NewWithRegistry(prometheus.NewRegistry(), nil)
}
