package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fithub_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fithub_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	BookingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fithub_bookings_total",
			Help: "Total number of bookings created",
		},
		[]string{"status"},
	)

	CapacityConflictsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fithub_capacity_conflicts_total",
			Help: "Booking attempts rejected because the gym was at capacity",
		},
	)

	StatusTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fithub_booking_status_transitions_total",
			Help: "Booking status transitions applied",
		},
		[]string{"from", "to"},
	)

	AvailabilityRequestsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fithub_availability_requests_total",
			Help: "Total number of availability queries",
		},
	)

	PeakHoursCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fithub_peak_hours_cache_total",
			Help: "Peak-hours cache lookups",
		},
		[]string{"result"},
	)

	NotificationsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fithub_notifications_sent_total",
			Help: "Total number of notification emails sent",
		},
		[]string{"type", "status"},
	)

	NotificationQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "fithub_notification_queue_length",
			Help: "Current length of the notification queue",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordBooking(status string) {
	BookingsTotal.WithLabelValues(status).Inc()
}

func RecordCapacityConflict() {
	CapacityConflictsTotal.Inc()
}

func RecordStatusTransition(from, to string) {
	StatusTransitionsTotal.WithLabelValues(from, to).Inc()
}

func RecordAvailabilityRequest() {
	AvailabilityRequestsTotal.Inc()
}

func RecordPeakHoursCache(result string) {
	PeakHoursCacheHits.WithLabelValues(result).Inc()
}

func RecordNotification(notifType, status string) {
	NotificationsSentTotal.WithLabelValues(notifType, status).Inc()
}
