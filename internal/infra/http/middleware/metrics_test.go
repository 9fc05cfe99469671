package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_UsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Metrics)
	r.Get("/api/leads/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "/api/leads/{id}", "404"))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/leads/123", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/leads/456", nil))

	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "/api/leads/{id}", "404"))
	assert.Equal(t, 2.0, after-before)
}

func TestRecordCalendlyWebhook_BoundsEventLabel(t *testing.T) {
	other := calendlyWebhooks.WithLabelValues("other", "processed")
	unknown := calendlyWebhooks.WithLabelValues("unknown", "unauthorized")
	otherBefore, unknownBefore := testutil.ToFloat64(other), testutil.ToFloat64(unknown)

	RecordCalendlyWebhook("routing_form_submission.created", "processed")
	RecordCalendlyWebhook("", "unauthorized")

	assert.Equal(t, 1.0, testutil.ToFloat64(other)-otherBefore)
	assert.Equal(t, 1.0, testutil.ToFloat64(unknown)-unknownBefore)
}

func TestRecordOutreachBatchAndLeadEvents(t *testing.T) {
	sent := outreachEmails.WithLabelValues("sent")
	failed := outreachEmails.WithLabelValues("failed")
	publishErr := leadEventsPublished.WithLabelValues("lead.contacted", "error")
	sentBefore, failedBefore, errBefore := testutil.ToFloat64(sent), testutil.ToFloat64(failed), testutil.ToFloat64(publishErr)

	RecordOutreachBatch(2, 1)
	RecordLeadEvent("lead.contacted", errors.New("closed"))

	assert.Equal(t, 2.0, testutil.ToFloat64(sent)-sentBefore)
	assert.Equal(t, 1.0, testutil.ToFloat64(failed)-failedBefore)
	assert.Equal(t, 1.0, testutil.ToFloat64(publishErr)-errBefore)
}
