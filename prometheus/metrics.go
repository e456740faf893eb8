package prometheus

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Counter metrics
var (
	// Entity operations by entity and operation ("create", "list", "update", "upsert")
	EntityOperationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_entity_operations_total",
			Help: "Total number of CRM entity operations",
		},
		[]string{"entity", "operation"},
	)

	// Form submissions by entity and outcome ("created", "invalid", "no_workspace", "failed")
	FormSubmissionCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_form_submissions_total",
			Help: "Total number of entity form submissions",
		},
		[]string{"entity", "outcome"},
	)

	SearchCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_search_requests_total",
			Help: "Total number of list searches with a non-empty query",
		},
		[]string{"page"},
	)

	DoorKnockCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_door_knocks_total",
			Help: "Total number of recorded door knocks by result",
		},
		[]string{"result"},
	)

	AuthErrorCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_auth_errors_total",
			Help: "Total number of authentication errors",
		},
		[]string{"type"},
	)

	EventPublishCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_events_published_total",
			Help: "Total number of domain events handed to the broker",
		},
		[]string{"entity", "outcome"},
	)
)

// Histogram metrics
var (
	// Backend operation duration ("select", "insert", "update", "upsert", "rpc")
	DBOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "crm_db_operation_duration_seconds",
			Help:    "Duration of backend operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
)

// Gauge metrics
var (
	ActiveSessionsGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "crm_active_sessions",
			Help: "Number of signed-in sessions",
		},
	)

	ActiveBannersGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "crm_active_banners",
			Help: "Number of activity banners currently shown",
		},
	)

	InfoGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "crm_info",
			Help: "Information about the CRM service",
		},
		[]string{"version"},
	)
)

func init() {
	prometheus.MustRegister(EntityOperationCounter)
	prometheus.MustRegister(FormSubmissionCounter)
	prometheus.MustRegister(SearchCounter)
	prometheus.MustRegister(DoorKnockCounter)
	prometheus.MustRegister(AuthErrorCounter)
	prometheus.MustRegister(EventPublishCounter)

	prometheus.MustRegister(DBOperationDuration)

	prometheus.MustRegister(ActiveSessionsGauge)
	prometheus.MustRegister(ActiveBannersGauge)
	prometheus.MustRegister(InfoGauge)

	InfoGauge.With(prometheus.Labels{"version": "1.0.0"}).Set(1)
}

// TrackDBOperation measures backend operation durations:
//
//	defer prometheus.TrackDBOperation("select")(time.Now())
func TrackDBOperation(operation string) func(time.Time) {
	startTime := time.Now()
	return func(endTime time.Time) {
		DBOperationDuration.With(prometheus.Labels{
			"operation": operation,
		}).Observe(time.Since(startTime).Seconds())
	}
}

func RecordEntityOperation(entity, operation string) {
	EntityOperationCounter.With(prometheus.Labels{"entity": entity, "operation": operation}).Inc()
}

func RecordFormSubmission(entity, outcome string) {
	FormSubmissionCounter.With(prometheus.Labels{"entity": entity, "outcome": outcome}).Inc()
}

func RecordSearch(page string) {
	SearchCounter.With(prometheus.Labels{"page": page}).Inc()
}

func RecordDoorKnock(result string) {
	DoorKnockCounter.With(prometheus.Labels{"result": result}).Inc()
}

// RecordAuthError records an authentication error by type
func RecordAuthError(errorType string) {
	AuthErrorCounter.With(prometheus.Labels{"type": errorType}).Inc()
}

func RecordEventPublish(entity, outcome string) {
	EventPublishCounter.With(prometheus.Labels{"entity": entity, "outcome": outcome}).Inc()
}

func IncreaseActiveSessions() {
	ActiveSessionsGauge.Inc()
}

func DecreaseActiveSessions() {
	ActiveSessionsGauge.Dec()
}

func SetActiveBanners(count int) {
	ActiveBannersGauge.Set(float64(count))
}
