package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// CRMClient pushes booked meetings to the sales CRM.
type CRMClient interface {
	SyncMeetingBooked(ctx context.Context, event LeadEventPayload) error
}

type Worker struct {
	Channel *amqp.Channel
	CRM     CRMClient
	Logger  *zap.Logger
	// OnError is called with the failing service name. Optional.
	OnError func(service string)
}

func NewWorker(ch *amqp.Channel, crm CRMClient, logger *zap.Logger) *Worker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Worker{
		Channel: ch,
		CRM:     crm,
		Logger:  logger,
	}
}

// Start consumes queueName until ctx is done or the channel closes.
func (w *Worker) Start(ctx context.Context, queueName string) error {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	w.Logger.Info("worker waiting for lead events", zap.String("queue", queueName))
	return w.Consume(ctx, msgs)
}

func (w *Worker) Consume(ctx context.Context, msgs <-chan amqp.Delivery) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return nil
			}
			w.handle(ctx, d)
		}
	}
}

func (w *Worker) handle(ctx context.Context, d amqp.Delivery) {
	var payload LeadEventPayload
	if err := json.Unmarshal(d.Body, &payload); err != nil {
		w.Logger.Error("malformed lead event", zap.Error(err))
		// poison message: dead-letter it instead of requeueing
		_ = d.Nack(false, false)
		return
	}

	log := w.Logger.With(zap.String("type", payload.Type), zap.String("lead_id", payload.LeadID))

	if err := w.processMessage(ctx, payload); err != nil {
		log.Error("lead event processing failed", zap.Error(err))
		if w.OnError != nil {
			w.OnError("kommo")
		}
		_ = d.Nack(false, false)
		return
	}

	log.Debug("lead event processed")
	_ = d.Ack(false)
}

func (w *Worker) processMessage(ctx context.Context, payload LeadEventPayload) error {
	switch payload.Type {
	case EventLeadMeetingBooked:
		if w.CRM == nil {
			return nil
		}
		return w.CRM.SyncMeetingBooked(ctx, payload)
	case EventLeadContacted:
		// nothing downstream consumes contact events yet
		return nil
	default:
		w.Logger.Warn("unknown lead event type", zap.String("type", payload.Type))
		return nil
	}
}
