package entity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type OutreachStatus string

const (
	OutreachStatusSent   OutreachStatus = "SENT"
	OutreachStatusFailed OutreachStatus = "FAILED"
)

// OutreachMessage is the receipt of one send attempt. Never updated.
type OutreachMessage struct {
	ID                string         `json:"id"`
	LeadID            string         `json:"leadId"`
	TemplateID        *string        `json:"templateId,omitempty"`
	Subject           string         `json:"subject"`
	Body              string         `json:"body"`
	SentAt            time.Time      `json:"sentAt"`
	Status            OutreachStatus `json:"status"`
	ProviderMessageID *string        `json:"providerMessageId,omitempty"`
	CreatedAt         time.Time      `json:"createdAt"`
}

func NewOutreachMessage(leadID, templateID, subject, body string, sentAt time.Time, result DeliveryResult) *OutreachMessage {
	msg := &OutreachMessage{
		ID:        uuid.New().String(),
		LeadID:    leadID,
		Subject:   subject,
		Body:      body,
		SentAt:    sentAt,
		Status:    OutreachStatusFailed,
		CreatedAt: sentAt,
	}
	if templateID != "" {
		msg.TemplateID = &templateID
	}
	if result.Success {
		msg.Status = OutreachStatusSent
	}
	if result.MessageID != "" {
		id := result.MessageID
		msg.ProviderMessageID = &id
	}
	return msg
}

type OutreachMessageRepositoryInterface interface {
	Create(ctx context.Context, msg *OutreachMessage) error
	ListByLeadID(ctx context.Context, leadID string) ([]*OutreachMessage, error)
}
