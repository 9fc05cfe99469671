package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	activeConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)

	outreachEmails = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outreach_emails_total",
			Help: "Outreach emails by delivery outcome",
		},
		[]string{"status"},
	)

	calendlyWebhooks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "calendly_webhooks_total",
			Help: "Calendly webhooks by event and outcome",
		},
		[]string{"event", "outcome"},
	)

	leadEventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lead_events_published_total",
			Help: "Lead events published to RabbitMQ",
		},
		[]string{"type", "result"},
	)

	integrationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "integration_errors_total",
			Help: "Total number of integration errors",
		},
		[]string{"service"},
	)
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		activeConnections.Inc()
		defer activeConnections.Dec()

		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(rw.statusCode)
		path := routePattern(r)

		httpRequestsTotal.WithLabelValues(r.Method, path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, path).Observe(duration)
	})
}

// routePattern keeps the path label bounded: /api/leads/{id} instead of
// one series per lead.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}

func RecordOutreachBatch(sent, failed int) {
	outreachEmails.WithLabelValues("sent").Add(float64(sent))
	outreachEmails.WithLabelValues("failed").Add(float64(failed))
}

// RecordCalendlyWebhook counts a webhook. Unrecognized event names share the
// "other" label.
func RecordCalendlyWebhook(event, outcome string) {
	switch event {
	case "invitee.created", "invitee.canceled":
	case "":
		event = "unknown"
	default:
		event = "other"
	}
	calendlyWebhooks.WithLabelValues(event, outcome).Inc()
}

func RecordLeadEvent(eventType string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	leadEventsPublished.WithLabelValues(eventType, result).Inc()
}

func RecordIntegrationError(service string) {
	integrationErrors.WithLabelValues(service).Inc()
}
