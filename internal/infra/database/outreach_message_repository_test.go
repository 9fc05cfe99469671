package database

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xavierca1/ligue-outreach/internal/entity"
)

func TestOutreachMessageRepository_CreateForDeletedLead(t *testing.T) {
	db, mock := newMockDB(t)
	msg := entity.NewOutreachMessage(leadID, templateID, "Hi", "Body", time.Now(), entity.DeliveryResult{Success: true, MessageID: "m1"})

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO outreach_messages")).
		WillReturnError(&pgconn.PgError{Code: "23503", Message: "violates foreign key constraint"})

	err := NewOutreachMessageRepository(db).Create(context.Background(), msg)
	assert.ErrorIs(t, err, entity.ErrLeadNotFound)
}

func TestOutreachMessageRepository_ListByLeadID(t *testing.T) {
	db, mock := newMockDB(t)
	sentAt := time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("FROM outreach_messages WHERE lead_id = $1 ORDER BY sent_at DESC")).
		WithArgs(leadID).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "lead_id", "template_id", "subject", "body", "sent_at", "status", "provider_message_id", "created_at",
		}).
			AddRow("m2", leadID, nil, "Hi", "Body", sentAt, "FAILED", nil, sentAt).
			AddRow("m1", leadID, templateID, "Hi", "Body", sentAt.Add(-time.Hour), "SENT", "re_1", sentAt))

	messages, err := NewOutreachMessageRepository(db).ListByLeadID(context.Background(), leadID)

	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Nil(t, messages[0].TemplateID)
	assert.Equal(t, entity.OutreachStatusFailed, messages[0].Status)
	require.NotNil(t, messages[1].ProviderMessageID)
	assert.Equal(t, "re_1", *messages[1].ProviderMessageID)
}

func TestOutreachMessageRepository_ListByMalformedLeadID(t *testing.T) {
	db, _ := newMockDB(t)

	messages, err := NewOutreachMessageRepository(db).ListByLeadID(context.Background(), "x")

	require.NoError(t, err)
	assert.Empty(t, messages)
}
