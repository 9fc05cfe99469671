package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	EventLeadContacted     = "lead.contacted"
	EventLeadMeetingBooked = "lead.meeting_booked"
)

// LeadEventPayload is published whenever a lead changes status through
// outreach or a booking. Type doubles as the routing key.
type LeadEventPayload struct {
	Type        string    `json:"type"`
	LeadID      string    `json:"lead_id"`
	Email       string    `json:"email"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	CompanyName string    `json:"company_name"`
	Status      string    `json:"status"`
	OccurredAt  time.Time `json:"occurred_at"`
}

func NewLeadEventPayload(eventType, leadID, email, firstName, lastName, companyName, status string, at time.Time) LeadEventPayload {
	return LeadEventPayload{
		Type:        eventType,
		LeadID:      leadID,
		Email:       email,
		FirstName:   firstName,
		LastName:    lastName,
		CompanyName: companyName,
		Status:      status,
		OccurredAt:  at.UTC(),
	}
}

// FullName joins first and last name, skipping empty parts.
func (p LeadEventPayload) FullName() string {
	switch {
	case p.FirstName == "":
		return p.LastName
	case p.LastName == "":
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

// Publisher is the subset of *amqp.Channel the producer uses.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type RabbitMQProducer struct {
	Ch        Publisher
	OnPublish func(eventType string, err error)
}

func NewProducer(ch Publisher) *RabbitMQProducer {
	return &RabbitMQProducer{Ch: ch}
}

func (p *RabbitMQProducer) PublishLeadEvent(ctx context.Context, payload LeadEventPayload) error {
	err := p.publish(ctx, payload)
	if p.OnPublish != nil {
		p.OnPublish(payload.Type, err)
	}
	return err
}

func (p *RabbitMQProducer) publish(ctx context.Context, payload LeadEventPayload) error {
	if payload.Type == "" {
		return fmt.Errorf("lead event type is required")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode lead event: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		payload.Type,
		false, // Mandatory
		false, // Immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    payload.OccurredAt,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish to RabbitMQ: %w", err)
	}
	return nil
}
