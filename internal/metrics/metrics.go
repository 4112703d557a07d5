package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tireshop",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "tireshop",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "path"},
	)

	conflictChecks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tireshop",
			Subsystem: "appointments",
			Name:      "conflict_checks_total",
			Help:      "Conflict checks by outcome.",
		},
		[]string{"outcome"},
	)

	appointmentTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tireshop",
			Subsystem: "appointments",
			Name:      "status_transitions_total",
			Help:      "Appointment status change requests.",
		},
		[]string{"from", "to", "result"},
	)

	depositTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tireshop",
			Subsystem: "deposits",
			Name:      "status_changes_total",
			Help:      "Persisted deposit status changes by origin.",
		},
		[]string{"to", "origin"},
	)

	sweepRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tireshop",
			Subsystem: "deposits",
			Name:      "sweep_runs_total",
			Help:      "Deposit status sweeps by result.",
		},
		[]string{"result"},
	)
)

func init() {
	Registry.MustRegister(
		httpRequests,
		httpDuration,
		conflictChecks,
		appointmentTransitions,
		depositTransitions,
		sweepRuns,
	)
}

// Handler exposes the registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

func ObserveHTTP(method, path string, status int, elapsed time.Duration) {
	httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}

func RecordConflictCheck(conflicts int) {
	outcome := "clear"
	if conflicts > 0 {
		outcome = "conflict"
	}
	conflictChecks.WithLabelValues(outcome).Inc()
}

func RecordConflictOverride() {
	conflictChecks.WithLabelValues("overridden").Inc()
}

func RecordAppointmentTransition(from, to string, err error) {
	result := "ok"
	if err != nil {
		result = "rejected"
	}
	appointmentTransitions.WithLabelValues(from, to, result).Inc()
}

func RecordDepositStatus(to, origin string) {
	depositTransitions.WithLabelValues(to, origin).Inc()
}

func RecordSweep(err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	sweepRuns.WithLabelValues(result).Inc()
}
