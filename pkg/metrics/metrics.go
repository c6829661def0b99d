package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор prometheus коллекторов сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	SlotsGenerated   prometheus.Counter
	SlotsReserved    prometheus.Counter
	ReserveConflicts prometheus.Counter
	PaymentsVerified prometheus.Counter
	PaymentsRejected prometheus.Counter
	PaymentsRefunded prometheus.Counter
	UsersOnboarded   prometheus.Counter
	EventsPublished  *prometheus.CounterVec
	NotifyFailures   prometheus.Counter
}

// New регистрирует и возвращает коллекторы метрик
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		SlotsGenerated: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "slots_generated_total",
			Help:        "Total number of slots created by the catalog generator",
			ConstLabels: constLabels,
		}),

		SlotsReserved: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "slots_reserved_total",
			Help:        "Total number of successful slot reservations",
			ConstLabels: constLabels,
		}),

		ReserveConflicts: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "slot_reserve_conflicts_total",
			Help:        "Total number of reservations lost to a concurrent booker",
			ConstLabels: constLabels,
		}),

		PaymentsVerified: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "payments_verified_total",
			Help:        "Total number of payments confirmed by the provider",
			ConstLabels: constLabels,
		}),

		PaymentsRejected: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "payments_rejected_total",
			Help:        "Total number of rejected payments",
			ConstLabels: constLabels,
		}),

		PaymentsRefunded: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "payments_refunded_total",
			Help:        "Total number of refunded payments",
			ConstLabels: constLabels,
		}),

		UsersOnboarded: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "users_onboarded_total",
			Help:        "Total number of users that completed onboarding",
			ConstLabels: constLabels,
		}),

		EventsPublished: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "domain_events_published_total",
			Help:        "Total number of domain events published to the broker",
			ConstLabels: constLabels,
		}, []string{"event"}),

		NotifyFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "notification_failures_total",
			Help:        "Total number of failed best-effort user notifications",
			ConstLabels: constLabels,
		}),
	}
}
