package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewLeadNormalizesEmail(t *testing.T) {
	lead := NewLead(" Ana ", "Souza", "Acme", "  Ana@Acme.COM ", "", "Recife", "")

	assert.Equal(t, "ana@acme.com", lead.Email)
	assert.Equal(t, "Ana", lead.FirstName)
	assert.Equal(t, LeadStatusNew, lead.Status)
	assert.Nil(t, lead.LastContactedAt)
	assert.NotEmpty(t, lead.ID)
}

func TestRecordSuccessfulSend(t *testing.T) {
	t.Run("NEW moves to CONTACTED", func(t *testing.T) {
		lead := &Lead{Status: LeadStatusNew}
		at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

		changed := lead.RecordSuccessfulSend(at)

		assert.True(t, changed)
		assert.Equal(t, LeadStatusContacted, lead.Status)
		assert.Equal(t, at, *lead.LastContactedAt)
	})

	t.Run("other statuses are kept but timestamp advances", func(t *testing.T) {
		for _, status := range []LeadStatus{LeadStatusContacted, LeadStatusReplied, LeadStatusMeetingBooked, LeadStatusLost} {
			first := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
			lead := &Lead{Status: status, LastContactedAt: &first}
			at := first.Add(48 * time.Hour)

			changed := lead.RecordSuccessfulSend(at)

			assert.False(t, changed, status)
			assert.Equal(t, status, lead.Status)
			assert.Equal(t, at, *lead.LastContactedAt)
		}
	})
}

func TestApplyMeetingBooked(t *testing.T) {
	for _, status := range []LeadStatus{LeadStatusNew, LeadStatusContacted, LeadStatusReplied, LeadStatusLost} {
		lead := &Lead{Status: status}
		assert.True(t, lead.ApplyMeetingBooked(), status)
		assert.Equal(t, LeadStatusMeetingBooked, lead.Status)
	}

	booked := &Lead{Status: LeadStatusMeetingBooked}
	assert.False(t, booked.ApplyMeetingBooked())
	assert.Equal(t, LeadStatusMeetingBooked, booked.Status)
}

func TestLeadStatusValid(t *testing.T) {
	assert.True(t, LeadStatusReplied.Valid())
	assert.False(t, LeadStatus("ARCHIVED").Valid())
	assert.False(t, LeadStatus("").Valid())
}

func TestNewOutreachMessage(t *testing.T) {
	at := time.Now()

	sent := NewOutreachMessage("lead-1", "tpl-1", "Hi", "Body", at, DeliveryResult{Success: true, MessageID: "msg-1"})
	assert.Equal(t, OutreachStatusSent, sent.Status)
	assert.Equal(t, "msg-1", *sent.ProviderMessageID)
	assert.Equal(t, "tpl-1", *sent.TemplateID)

	failed := NewOutreachMessage("lead-1", "", "Hi", "Body", at, DeliveryResult{Error: "boom"})
	assert.Equal(t, OutreachStatusFailed, failed.Status)
	assert.Nil(t, failed.ProviderMessageID)
	assert.Nil(t, failed.TemplateID)
}

func TestOutboundEmailFrom(t *testing.T) {
	assert.Equal(t, "Rafa <rafa@ligue.dev>", OutboundEmail{FromName: "Rafa", FromEmail: "rafa@ligue.dev"}.From())
	assert.Equal(t, "rafa@ligue.dev", OutboundEmail{FromEmail: "rafa@ligue.dev"}.From())
}
