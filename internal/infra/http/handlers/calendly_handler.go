package handlers

import (
	"io"
	"net/http"
	"time"

	"github.com/xavierca1/ligue-outreach/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-outreach/internal/usecase"
	"go.uber.org/zap"
)

const (
	CalendlySignatureHeader = "Calendly-Webhook-Signature"
	maxWebhookBodyBytes     = 1 << 20
)

type CalendlyWebhookHandler struct {
	WebhookUC *usecase.ProcessCalendlyWebhookUseCase
	Logger    *zap.Logger
	Now       func() time.Time
}

func NewCalendlyWebhookHandler(uc *usecase.ProcessCalendlyWebhookUseCase, logger *zap.Logger) *CalendlyWebhookHandler {
	return &CalendlyWebhookHandler{WebhookUC: uc, Logger: logger, Now: time.Now}
}

type CalendlyWebhookResponse struct {
	Success bool `json:"success"`
	*usecase.CalendlyWebhookResult
}

// Handle serves POST /api/calendly/webhook. The signature covers the exact
// bytes received, so the body is read raw before any decoding.
func (h *CalendlyWebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBodyBytes))
	if err != nil {
		middleware.RecordCalendlyWebhook("", "bad_request")
		writeErrorResponse(w, http.StatusBadRequest, usecase.CodeValidation, "unable to read body")
		return
	}

	result, err := h.WebhookUC.Execute(r.Context(), r.Header.Get(CalendlySignatureHeader), body, h.Now().Unix())
	if err != nil {
		status := statusForError(err)
		switch {
		case status == http.StatusUnauthorized:
			h.Logger.Warn("calendly webhook rejected", zap.String("reason", err.Error()), zap.String("remote", r.RemoteAddr))
			middleware.RecordCalendlyWebhook("", "unauthorized")
		case status >= http.StatusInternalServerError:
			h.Logger.Error("calendly webhook failed", zap.Error(err))
			middleware.RecordCalendlyWebhook("", "error")
		default:
			middleware.RecordCalendlyWebhook("", "invalid")
		}
		writeUseCaseError(w, err)
		return
	}

	outcome := "processed"
	if !result.LeadFound {
		outcome = "lead_not_found"
	}
	middleware.RecordCalendlyWebhook(result.Event, outcome)

	writeJSON(w, http.StatusOK, CalendlyWebhookResponse{Success: true, CalendlyWebhookResult: result})
}
