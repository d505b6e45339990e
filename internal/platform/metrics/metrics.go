package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the gateway.
type Metrics struct {
	RegistrationsCreated prometheus.Counter
	LoginsSucceeded      prometheus.Counter
	LoginsFailed         prometheus.Counter
	AuditRecorded        prometheus.Counter
	AuditDropped         prometheus.Counter
}

// New creates and registers all metrics against reg. Tests pass a fresh
// prometheus.NewRegistry to avoid duplicate registration panics.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RegistrationsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "hr_gateway_registrations_created_total",
			Help: "Total number of identities registered.",
		}),
		LoginsSucceeded: factory.NewCounter(prometheus.CounterOpts{
			Name: "hr_gateway_logins_succeeded_total",
			Help: "Total number of successful logins.",
		}),
		LoginsFailed: factory.NewCounter(prometheus.CounterOpts{
			Name: "hr_gateway_logins_failed_total",
			Help: "Total number of failed login attempts.",
		}),
		AuditRecorded: factory.NewCounter(prometheus.CounterOpts{
			Name: "hr_gateway_audit_entries_recorded_total",
			Help: "Total number of audit entries persisted.",
		}),
		AuditDropped: factory.NewCounter(prometheus.CounterOpts{
			Name: "hr_gateway_audit_entries_dropped_total",
			Help: "Total number of audit entries dropped on write failure or full buffer.",
		}),
	}
}
