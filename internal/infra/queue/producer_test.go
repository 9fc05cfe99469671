package queue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	args := m.Called(exchange, key, msg)
	return args.Error(0)
}

func TestProducer_PublishLeadEvent(t *testing.T) {
	pub := new(MockPublisher)
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	payload := NewLeadEventPayload(EventLeadContacted, "lead-1", "ana@acme.com", "Ana", "", "Acme", "CONTACTED", at)

	pub.On("PublishWithContext", ExchangeName, EventLeadContacted, mock.MatchedBy(func(msg amqp.Publishing) bool {
		var decoded LeadEventPayload
		if err := json.Unmarshal(msg.Body, &decoded); err != nil {
			return false
		}
		return msg.DeliveryMode == amqp.Persistent && decoded.LeadID == "lead-1" && decoded.Type == EventLeadContacted
	})).Return(nil)

	var observed string
	producer := NewProducer(pub)
	producer.OnPublish = func(eventType string, err error) {
		observed = eventType
		assert.NoError(t, err)
	}

	require.NoError(t, producer.PublishLeadEvent(context.Background(), payload))
	assert.Equal(t, EventLeadContacted, observed)
	pub.AssertExpectations(t)
}

func TestProducer_PublishLeadEvent_BrokerError(t *testing.T) {
	pub := new(MockPublisher)
	pub.On("PublishWithContext", ExchangeName, EventLeadMeetingBooked, mock.Anything).Return(errors.New("channel closed"))

	err := NewProducer(pub).PublishLeadEvent(context.Background(),
		NewLeadEventPayload(EventLeadMeetingBooked, "lead-1", "ana@acme.com", "", "", "", "MEETING_BOOKED", time.Now()))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "channel closed")
}

func TestProducer_RejectsUntypedEvent(t *testing.T) {
	pub := new(MockPublisher)

	err := NewProducer(pub).PublishLeadEvent(context.Background(), LeadEventPayload{LeadID: "x"})

	require.Error(t, err)
	pub.AssertNotCalled(t, "PublishWithContext", mock.Anything, mock.Anything, mock.Anything)
}

func TestLeadEventPayload_FullName(t *testing.T) {
	assert.Equal(t, "Ana Silva", LeadEventPayload{FirstName: "Ana", LastName: "Silva"}.FullName())
	assert.Equal(t, "Ana", LeadEventPayload{FirstName: "Ana"}.FullName())
	assert.Equal(t, "Silva", LeadEventPayload{LastName: "Silva"}.FullName())
	assert.Empty(t, LeadEventPayload{}.FullName())
}
