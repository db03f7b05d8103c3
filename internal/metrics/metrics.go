package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	RegistrationsConfirmed  prometheus.Counter
	RegistrationsWaitlisted prometheus.Counter
	RegistrationsCancelled  prometheus.Counter
	EmailsSent              prometheus.Counter
	EmailsFailed            prometheus.Counter
	NotificationsDropped    prometheus.Counter
}

// New creates and registers all Prometheus metrics on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RegistrationsConfirmed: factory.NewCounter(prometheus.CounterOpts{
			Name: "eventhive_registrations_confirmed_total",
			Help: "Total number of confirmed event registrations",
		}),
		RegistrationsWaitlisted: factory.NewCounter(prometheus.CounterOpts{
			Name: "eventhive_registrations_waitlisted_total",
			Help: "Total number of registrations placed on a waitlist",
		}),
		RegistrationsCancelled: factory.NewCounter(prometheus.CounterOpts{
			Name: "eventhive_registrations_cancelled_total",
			Help: "Total number of cancelled registrations",
		}),
		EmailsSent: factory.NewCounter(prometheus.CounterOpts{
			Name: "eventhive_emails_sent_total",
			Help: "Total number of emails sent successfully",
		}),
		EmailsFailed: factory.NewCounter(prometheus.CounterOpts{
			Name: "eventhive_emails_failed_total",
			Help: "Total number of email sends that failed",
		}),
		NotificationsDropped: factory.NewCounter(prometheus.CounterOpts{
			Name: "eventhive_notifications_dropped_total",
			Help: "Total number of notifications dropped because the queue was full",
		}),
	}
}
