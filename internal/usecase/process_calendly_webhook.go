package usecase

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xavierca1/ligue-outreach/internal/entity"
	"github.com/xavierca1/ligue-outreach/internal/infra/queue"
	"go.uber.org/zap"
)

const (
	CalendlyEventInviteeCreated  = "invitee.created"
	CalendlyEventInviteeCanceled = "invitee.canceled"

	// CalendlySignatureTolerance is the max distance, in seconds, between the
	// signed timestamp and the server clock. Applies in both directions.
	CalendlySignatureTolerance int64 = 180
)

type CalendlyInvitee struct {
	URI   string `json:"uri"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type CalendlyEventPayload struct {
	Event   string           `json:"event"`
	Invitee *CalendlyInvitee `json:"invitee"`
}

type CalendlyWebhookPayload struct {
	Event   string                `json:"event"`
	Time    string                `json:"time"`
	Payload *CalendlyEventPayload `json:"payload"`
}

func (p *CalendlyWebhookPayload) InviteeEmail() string {
	if p.Payload == nil || p.Payload.Invitee == nil {
		return ""
	}
	return entity.NormalizeEmail(p.Payload.Invitee.Email)
}

type ProcessCalendlyWebhookUseCase struct {
	LeadRepo   LeadRepository
	Events     LeadEventPublisher
	SigningKey string
	Logger     *zap.Logger
}

func NewProcessCalendlyWebhookUseCase(leadRepo LeadRepository, events LeadEventPublisher, signingKey string, logger *zap.Logger) *ProcessCalendlyWebhookUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProcessCalendlyWebhookUseCase{
		LeadRepo:   leadRepo,
		Events:     events,
		SigningKey: signingKey,
		Logger:     logger,
	}
}

// Execute authenticates the request before touching the lead store, so an
// unauthenticated caller learns nothing about which emails exist.
func (uc *ProcessCalendlyWebhookUseCase) Execute(ctx context.Context, signatureHeader string, rawBody []byte, nowUnix int64) (*CalendlyWebhookResult, error) {
	if strings.TrimSpace(uc.SigningKey) == "" {
		return nil, &DomainError{Code: CodeConfiguration, Message: "webhook signing key is not configured"}
	}

	ts, signature, err := ParseCalendlySignature(signatureHeader)
	if err != nil {
		return nil, err
	}

	if diff := nowUnix - ts; diff > CalendlySignatureTolerance || diff < -CalendlySignatureTolerance {
		return nil, authFailed("stale timestamp")
	}

	expected := SignCalendlyPayload(uc.SigningKey, ts, rawBody)
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return nil, authFailed("signature mismatch")
	}

	var payload CalendlyWebhookPayload
	if err := json.Unmarshal(rawBody, &payload); err != nil {
		return nil, validationFailed("invalid payload", ValidationError{"body", "must be valid JSON"})
	}

	email := payload.InviteeEmail()
	if email == "" {
		return nil, validationFailed("email missing", ValidationError{"payload.invitee.email", "is required"})
	}

	log := uc.Logger.With(zap.String("event", payload.Event))

	lead, err := uc.LeadRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			log.Info("calendly webhook verified but lead not found")
			return &CalendlyWebhookResult{
				Processed: false,
				LeadFound: false,
				Event:     payload.Event,
				Message:   "verified but lead not found",
			}, nil
		}
		return nil, databaseError("failed to look up lead", err)
	}

	result := &CalendlyWebhookResult{
		Processed: true,
		LeadFound: true,
		LeadID:    lead.ID,
		Event:     payload.Event,
	}

	switch payload.Event {
	case CalendlyEventInviteeCreated:
		if !lead.ApplyMeetingBooked() {
			result.Message = "lead already booked"
			return result, nil
		}
		if err := uc.LeadRepo.UpdateStatus(ctx, lead.ID, lead.Status); err != nil {
			return nil, databaseError("failed to update lead status", err)
		}
		log.Info("lead marked as meeting booked", zap.String("lead_id", lead.ID))
		publishLeadEvent(ctx, uc.Events, uc.Logger, queue.EventLeadMeetingBooked, lead, time.Unix(nowUnix, 0))
		result.Message = "lead marked as meeting booked"
	case CalendlyEventInviteeCanceled:
		log.Info("calendly invitee canceled", zap.String("lead_id", lead.ID))
		result.Message = "cancellation recorded"
	default:
		log.Info("calendly event ignored", zap.String("lead_id", lead.ID))
		result.Message = "event ignored"
	}

	return result, nil
}

// ParseCalendlySignature splits a "t=<unix>,v1=<hex>" header.
func ParseCalendlySignature(header string) (int64, string, error) {
	var tsRaw, sig string
	for _, part := range strings.Split(header, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		switch key {
		case "t":
			tsRaw = value
		case "v1":
			sig = value
		}
	}
	if tsRaw == "" || sig == "" {
		return 0, "", authFailed("missing/invalid signature format")
	}
	ts, err := strconv.ParseInt(tsRaw, 10, 64)
	if err != nil {
		return 0, "", authFailed("missing/invalid signature format")
	}
	return ts, sig, nil
}

// SignCalendlyPayload returns the lowercase hex HMAC-SHA256 of "<ts>.<body>".
func SignCalendlyPayload(key string, ts int64, body []byte) string {
	mac := hmac.New(sha256.New, []byte(key))
	fmt.Fprintf(mac, "%d.", ts)
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// CalendlySignatureHeader builds the header value for a signed body.
func CalendlySignatureHeader(key string, ts int64, body []byte) string {
	return fmt.Sprintf("t=%d,v1=%s", ts, SignCalendlyPayload(key, ts, body))
}
