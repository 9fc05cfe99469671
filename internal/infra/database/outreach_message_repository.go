package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/xavierca1/ligue-outreach/internal/entity"
)

const pgForeignKeyViolation = "23503"

type OutreachMessageRepository struct {
	DB *sql.DB
	sb sq.StatementBuilderType
}

func NewOutreachMessageRepository(db *sql.DB) *OutreachMessageRepository {
	return &OutreachMessageRepository{
		DB: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *OutreachMessageRepository) Create(ctx context.Context, msg *entity.OutreachMessage) error {
	sqlStr, args, err := r.sb.
		Insert("outreach_messages").
		Columns("id", "lead_id", "template_id", "subject", "body", "sent_at", "status", "provider_message_id", "created_at").
		Values(msg.ID, msg.LeadID, msg.TemplateID, msg.Subject, msg.Body, msg.SentAt, string(msg.Status), msg.ProviderMessageID, msg.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build outreach message insert: %w", err)
	}
	if _, err := r.DB.ExecContext(ctx, sqlStr, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			// lead deleted while the batch was running
			return fmt.Errorf("insert outreach message: %w", entity.ErrLeadNotFound)
		}
		return fmt.Errorf("insert outreach message: %w", err)
	}
	return nil
}

// ListByLeadID returns the lead's receipts, newest first.
func (r *OutreachMessageRepository) ListByLeadID(ctx context.Context, leadID string) ([]*entity.OutreachMessage, error) {
	leadID, ok := parseID(leadID)
	if !ok {
		return []*entity.OutreachMessage{}, nil
	}
	sqlStr, args, err := r.sb.
		Select("id", "lead_id", "template_id", "subject", "body", "sent_at", "status", "provider_message_id", "created_at").
		From("outreach_messages").
		Where(sq.Eq{"lead_id": leadID}).
		OrderBy("sent_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build outreach message select: %w", err)
	}

	rows, err := r.DB.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("query outreach messages: %w", err)
	}
	defer rows.Close()

	messages := make([]*entity.OutreachMessage, 0)
	for rows.Next() {
		var (
			m          entity.OutreachMessage
			templateID sql.NullString
			providerID sql.NullString
			status     string
		)
		if err := rows.Scan(&m.ID, &m.LeadID, &templateID, &m.Subject, &m.Body, &m.SentAt, &status, &providerID, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan outreach message row: %w", err)
		}
		m.Status = entity.OutreachStatus(status)
		if templateID.Valid {
			s := templateID.String
			m.TemplateID = &s
		}
		if providerID.Valid {
			s := providerID.String
			m.ProviderMessageID = &s
		}
		messages = append(messages, &m)
	}
	return messages, rows.Err()
}
