package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	MembersCreated   prometheus.Counter
	CheckIns         prometheus.Counter
	PaymentsRecorded prometheus.Counter
	RolesAssigned    prometheus.Counter
	RequestDuration  *prometheus.HistogramVec
}

// New creates and registers all metrics against the given registerer.
// Taking the registerer explicitly keeps tests free to build isolated
// instances without tripping duplicate-registration panics.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		MembersCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "gymdesk_members_created_total",
			Help: "Total number of members created.",
		}),
		CheckIns: factory.NewCounter(prometheus.CounterOpts{
			Name: "gymdesk_checkins_total",
			Help: "Total number of member check-ins recorded.",
		}),
		PaymentsRecorded: factory.NewCounter(prometheus.CounterOpts{
			Name: "gymdesk_payments_recorded_total",
			Help: "Total number of payments recorded.",
		}),
		RolesAssigned: factory.NewCounter(prometheus.CounterOpts{
			Name: "gymdesk_role_assignments_total",
			Help: "Total number of role assignments applied.",
		}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gymdesk_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}
