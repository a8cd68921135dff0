package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Registros de usuarios por resultado
	RegistrationCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pulsefeed_registrations_total",
			Help: "Total number of registration attempts",
		},
		[]string{"result"}, // result: success, mismatch, duplicate, failed
	)

	// Intentos de login por resultado
	LoginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pulsefeed_login_attempts_total",
			Help: "Total number of login attempts",
		},
		[]string{"result"}, // result: success, invalid
	)

	// Posts creados por origen
	PostsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pulsefeed_posts_created_total",
			Help: "Total number of posts created",
		},
		[]string{"source"}, // source: form, api
	)

	// Notificaciones generadas por el fan-out
	NotificationsFannedOut = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "pulsefeed_notifications_fanned_out_total",
			Help: "Total number of notification rows written by post fan-out",
		},
	)

	// Latencia de peticiones HTTP (segundos)
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pulsefeed_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		},
		[]string{"method", "path", "status"},
	)
)

// IncrementRegistration cuenta un intento de registro por resultado
func IncrementRegistration(result string) {
	RegistrationCount.WithLabelValues(result).Inc()
}

func IncrementLogin(result string) {
	LoginAttempts.WithLabelValues(result).Inc()
}

func IncrementPostCreated(source string) {
	PostsCreated.WithLabelValues(source).Inc()
}

func AddNotificationsFannedOut(n int) {
	NotificationsFannedOut.Add(float64(n))
}

func RecordHTTPRequestDuration(method, path, status string, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}
